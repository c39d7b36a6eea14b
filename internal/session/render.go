package session

import (
	"fmt"
	"strings"

	"github.com/mkts/navirad/internal/browser"
	"github.com/mkts/navirad/internal/model"
)

const separator = "--------------------------------------------------------------------------------"

// renderPage writes the current page, selection markers included, followed by
// the command help. Formatting lives here so the browser itself stays a pure
// state machine.
func (c *Controller) renderPage(b *browser.Browser) {
	if b.ResultCount() == 0 {
		fmt.Fprintln(c.out, "Page 0 of 0 - no stations to show.")
		return
	}

	rows := b.RenderPage()
	first := rows[0].GlobalIndex
	last := rows[len(rows)-1].GlobalIndex

	fmt.Fprintf(c.out, "\nPage %d of %d (showing %d-%d of %d)\n",
		b.CurrentPage(), b.TotalPages(), first, last, b.ResultCount())
	fmt.Fprintf(c.out, "Selected: %d station(s)\n", b.SelectionCount())
	fmt.Fprintln(c.out, separator)

	for _, row := range rows {
		marker := " "
		if row.Selected {
			marker = "*"
		}
		s := row.Station

		fmt.Fprintf(c.out, "[%s] %3d. %s\n", marker, row.GlobalIndex, truncate(s.Name, 60))
		fmt.Fprintf(c.out, "        Country: %-20s Tags: %s\n",
			valueOr(s.Country, "-"), truncate(strings.Join(s.Tags, ", "), 40))
		fmt.Fprintf(c.out, "        Bitrate: %-10s Votes: %d\n", formatBitrate(s.BitrateKbps), s.Votes)
		fmt.Fprintf(c.out, "        URL: %s\n", truncate(s.StreamURL, 70))
		fmt.Fprintln(c.out, separator)
	}

	fmt.Fprintln(c.out, "Commands: [number] toggle | a-b range | n/next | p/prev | page <n> | all | none | add | back")
}

// printReport summarizes one import batch for the operator.
func (c *Controller) printReport(report *model.ImportReport) {
	fmt.Fprintln(c.out, separator)
	fmt.Fprintf(c.out, "Import finished: %d added, %d skipped (duplicate), %d skipped (error)\n",
		report.Added, report.SkippedDuplicate, report.SkippedError)

	for _, skipped := range report.Skipped {
		fmt.Fprintf(c.out, "  skipped %-30s %s: %s\n", truncate(skipped.Name, 30), skipped.Reason, skipped.Detail)
	}

	if report.Added > 0 {
		fmt.Fprintln(c.out, "Refresh the Navidrome web interface to see the new stations.")
	}
}

func formatBitrate(kbps int) string {
	if kbps == model.BitrateUnknown {
		return "n/a"
	}
	return fmt.Sprintf("%d kbps", kbps)
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
