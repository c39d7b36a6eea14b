package main

import "github.com/mkts/navirad/cmd"

func main() {
	cmd.Execute()
}
