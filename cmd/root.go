package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkts/navirad/internal/config"
	"github.com/mkts/navirad/internal/logger"
)

var dbPathFlag string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "navirad",
	Short: "Search Radio-Browser and import stations into Navidrome",
	Long: `navirad searches the Radio-Browser public directory, lets you browse
the results interactively, and imports the stations you pick straight into a
Navidrome database. Navidrome does not need a restart; refresh its web
interface after importing.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is the only place that decides the
// process exit code.
func Execute() {
	logger.Init()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "path to the Navidrome database file (overrides config)")
}

// loadConfig loads configuration and applies the --db flag on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	if dbPathFlag != "" {
		cfg.DBPath = dbPathFlag
	}
	return cfg, nil
}
