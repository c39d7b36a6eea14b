package session

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/mkts/navirad/internal/browser"
	apperrors "github.com/mkts/navirad/internal/errors"
	"github.com/mkts/navirad/internal/logger"
	"github.com/mkts/navirad/internal/model"
	"github.com/mkts/navirad/internal/provider"
	"github.com/mkts/navirad/internal/repository"
)

// Controller runs the interactive browse-and-import loop. It reads commands
// line by line, dispatches to the result browser or the repository, and writes
// everything user-visible to its output writer, so it is testable without a
// terminal.
type Controller struct {
	provider provider.SearchProvider
	repo     repository.StationRepository
	in       *bufio.Scanner
	out      io.Writer
}

// NewController creates a session controller over the given I/O pair.
func NewController(p provider.SearchProvider, r repository.StationRepository, in io.Reader, out io.Writer) *Controller {
	return &Controller{
		provider: p,
		repo:     r,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// SearchAndBrowse runs one search and, when it finds anything, hands the
// results to the interactive browser. Recoverable input mistakes stay inside
// the loop; only provider and structural storage failures propagate.
func (c *Controller) SearchAndBrowse(ctx context.Context, kind provider.SearchKind, query string) (*model.ImportReport, error) {
	stations, err := c.provider.Search(ctx, kind, query)
	if err != nil {
		return nil, err
	}

	logger.WithComponent("session").Infof("search kind=%s query=%q returned %d station(s)", kind, query, len(stations))

	if len(stations) == 0 {
		fmt.Fprintln(c.out, "No stations found.")
		return nil, nil
	}

	fmt.Fprintf(c.out, "Found %d station(s).\n", len(stations))
	return c.Browse(ctx, stations)
}

// Browse runs the selection loop over one fixed result sequence. It returns
// the import report when the operator imported their selection, or nil when
// they backed out.
func (c *Controller) Browse(ctx context.Context, results []model.Station) (*model.ImportReport, error) {
	b := browser.New(results)

	for {
		c.renderPage(b)
		fmt.Fprint(c.out, "\nEnter command: ")

		if !c.in.Scan() {
			// EOF on input behaves like "back"
			fmt.Fprintln(c.out)
			return nil, c.in.Err()
		}

		cmd, err := browser.ParseCommand(c.in.Text())
		if err != nil {
			c.notice(err)
			continue
		}

		switch cmd.Kind {
		case browser.CmdBack:
			return nil, nil

		case browser.CmdNext:
			err = b.Next()
		case browser.CmdPrev:
			err = b.Prev()
		case browser.CmdGotoPage:
			err = b.GotoPage(cmd.Page)
		case browser.CmdToggle:
			err = b.Toggle(cmd.Index)
		case browser.CmdRange:
			err = b.SelectRange(cmd.RangeStart, cmd.RangeEnd)
		case browser.CmdSelectAll:
			err = b.SelectAllOnPage()
		case browser.CmdClearSelection:
			b.ClearSelection()

		case browser.CmdAdd:
			records := b.SelectedRecords()
			if len(records) == 0 {
				fmt.Fprintln(c.out, "No stations selected.")
				continue
			}

			report, importErr := c.repo.ImportBatch(ctx, records)
			if importErr != nil {
				return nil, importErr
			}
			c.printReport(report)
			return report, nil
		}

		if err != nil {
			c.notice(err)
		}
	}
}

// ListStations prints the stations already stored in the database.
func (c *Controller) ListStations(ctx context.Context) error {
	entries, err := c.repo.ListExisting(ctx)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No radio stations found in database.")
		return nil
	}

	fmt.Fprintf(c.out, "Current radio stations (%d):\n", len(entries))
	for i, entry := range entries {
		fmt.Fprintf(c.out, "%3d. %s\n", i+1, entry.Name)
		fmt.Fprintf(c.out, "     URL: %s\n", truncate(entry.StreamURL, 70))
	}
	return nil
}

// notice prints a recoverable error without disturbing the loop state.
func (c *Controller) notice(err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		fmt.Fprintf(c.out, "! %s\n", appErr.Message)
		return
	}
	fmt.Fprintf(c.out, "! %v\n", err)
}
