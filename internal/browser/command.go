package browser

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/mkts/navirad/internal/errors"
)

// CommandKind identifies one browser command.
type CommandKind int

const (
	CmdToggle CommandKind = iota
	CmdRange
	CmdNext
	CmdPrev
	CmdGotoPage
	CmdSelectAll
	CmdClearSelection
	CmdAdd
	CmdBack
)

// Command is one parsed operator input line.
type Command struct {
	Kind CommandKind

	// Index is the global station number for CmdToggle.
	Index int

	// RangeStart and RangeEnd are the raw endpoints for CmdRange.
	RangeStart int
	RangeEnd   int

	// Page is the target page for CmdGotoPage.
	Page int
}

// ParseCommand turns one input line into a Command. Tokens are
// case-insensitive. Anything that is not part of the command surface fails
// with UNRECOGNIZED_COMMAND and must cause no side effect.
func ParseCommand(input string) (Command, error) {
	token := strings.ToLower(strings.TrimSpace(input))
	if token == "" {
		return Command{}, apperrors.New(apperrors.CodeUnrecognizedCommand, "empty command")
	}

	switch token {
	case "n", "next":
		return Command{Kind: CmdNext}, nil
	case "p", "prev":
		return Command{Kind: CmdPrev}, nil
	case "all":
		return Command{Kind: CmdSelectAll}, nil
	case "none":
		return Command{Kind: CmdClearSelection}, nil
	case "add":
		return Command{Kind: CmdAdd}, nil
	case "back":
		return Command{Kind: CmdBack}, nil
	}

	if page, ok := strings.CutPrefix(token, "page "); ok {
		n, err := strconv.Atoi(strings.TrimSpace(page))
		if err != nil {
			return Command{}, apperrors.New(apperrors.CodeOutOfRange,
				fmt.Sprintf("page number %q is not numeric", strings.TrimSpace(page)))
		}
		return Command{Kind: CmdGotoPage, Page: n}, nil
	}

	if strings.Contains(token, "-") {
		parts := strings.SplitN(token, "-", 2)
		a, errA := strconv.Atoi(strings.TrimSpace(parts[0]))
		b, errB := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errA != nil || errB != nil {
			return Command{}, apperrors.New(apperrors.CodeUnrecognizedCommand,
				fmt.Sprintf("invalid range %q, expected a-b", token))
		}
		return Command{Kind: CmdRange, RangeStart: a, RangeEnd: b}, nil
	}

	if n, err := strconv.Atoi(token); err == nil {
		return Command{Kind: CmdToggle, Index: n}, nil
	}

	return Command{}, apperrors.New(apperrors.CodeUnrecognizedCommand,
		fmt.Sprintf("unknown command %q", token))
}
