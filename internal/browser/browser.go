package browser

import (
	"fmt"
	"sort"

	apperrors "github.com/mkts/navirad/internal/errors"
	"github.com/mkts/navirad/internal/model"
)

// PageSize is how many stations one page shows.
const PageSize = 10

// Row is one rendered line of the current page: the station, its global
// 1-based index into the full result sequence, and whether it is selected.
// Global indices never change when the page changes; they are a pure function
// of position in the result sequence.
type Row struct {
	GlobalIndex int
	Station     model.Station
	Selected    bool
}

// Browser owns pagination and a selection set over one fixed search result
// sequence. The selection holds global indices, so it survives page
// navigation. A Browser is not safe for concurrent use; the command loop is
// single-threaded.
type Browser struct {
	results     []model.Station
	currentPage int // 1-based; 0 only when results is empty
	selection   map[int]struct{}
}

// New creates a Browser over a search result sequence. The slice is treated
// as immutable for the Browser's lifetime.
func New(results []model.Station) *Browser {
	b := &Browser{
		results:   results,
		selection: make(map[int]struct{}),
	}
	if len(results) > 0 {
		b.currentPage = 1
	}
	return b
}

// TotalPages returns how many pages the result sequence spans (0 when empty).
func (b *Browser) TotalPages() int {
	return (len(b.results) + PageSize - 1) / PageSize
}

// CurrentPage returns the 1-based current page, or 0 when there are no results.
func (b *Browser) CurrentPage() int {
	return b.currentPage
}

// ResultCount returns the size of the underlying result sequence.
func (b *Browser) ResultCount() int {
	return len(b.results)
}

// SelectionCount returns how many stations are currently selected.
func (b *Browser) SelectionCount() int {
	return len(b.selection)
}

// GotoPage moves to page n, clamping n into the valid page range. It fails
// with OUT_OF_RANGE when there are no results. The selection is untouched.
func (b *Browser) GotoPage(n int) error {
	if len(b.results) == 0 {
		return apperrors.New(apperrors.CodeOutOfRange, "no results to navigate")
	}

	total := b.TotalPages()
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	b.currentPage = n
	return nil
}

// Next moves one page forward, saturating at the last page.
func (b *Browser) Next() error {
	if len(b.results) == 0 {
		return apperrors.New(apperrors.CodeOutOfRange, "no results to navigate")
	}
	return b.GotoPage(b.currentPage + 1)
}

// Prev moves one page back, saturating at the first page.
func (b *Browser) Prev() error {
	if len(b.results) == 0 {
		return apperrors.New(apperrors.CodeOutOfRange, "no results to navigate")
	}
	return b.GotoPage(b.currentPage - 1)
}

// Toggle flips selection membership of the given global index.
func (b *Browser) Toggle(globalIndex int) error {
	if globalIndex < 1 || globalIndex > len(b.results) {
		return apperrors.New(apperrors.CodeIndexOutOfBounds,
			fmt.Sprintf("station number must be between 1 and %d", len(b.results)))
	}

	if _, ok := b.selection[globalIndex]; ok {
		delete(b.selection, globalIndex)
	} else {
		b.selection[globalIndex] = struct{}{}
	}
	return nil
}

// SelectRange adds every global index in [a,b] that lies on the current page.
// Endpoints are normalized and clamped to the current page's span; a range
// entirely outside the page is a no-op, not an error.
func (b *Browser) SelectRange(a, c int) error {
	if len(b.results) == 0 {
		return apperrors.New(apperrors.CodeOutOfRange, "no results to select from")
	}

	if a > c {
		a, c = c, a
	}

	lo, hi := b.pageSpan()
	if a < lo {
		a = lo
	}
	if c > hi {
		c = hi
	}
	// Disjoint from the current page after clamping
	if a > c {
		return nil
	}

	for i := a; i <= c; i++ {
		b.selection[i] = struct{}{}
	}
	return nil
}

// SelectAllOnPage adds every global index on the current page to the selection.
func (b *Browser) SelectAllOnPage() error {
	if len(b.results) == 0 {
		return apperrors.New(apperrors.CodeOutOfRange, "no results to select from")
	}

	lo, hi := b.pageSpan()
	for i := lo; i <= hi; i++ {
		b.selection[i] = struct{}{}
	}
	return nil
}

// ClearSelection empties the selection unconditionally.
func (b *Browser) ClearSelection() {
	b.selection = make(map[int]struct{})
}

// RenderPage returns the rows of the current page in order, for the output
// layer to format. An empty result sequence renders zero rows.
func (b *Browser) RenderPage() []Row {
	if len(b.results) == 0 {
		return nil
	}

	lo, hi := b.pageSpan()
	rows := make([]Row, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		_, selected := b.selection[i]
		rows = append(rows, Row{
			GlobalIndex: i,
			Station:     b.results[i-1],
			Selected:    selected,
		})
	}
	return rows
}

// SelectedRecords returns the selected stations in ascending global-index
// order. This is the exact order handed to the repository, so import order is
// deterministic.
func (b *Browser) SelectedRecords() []model.Station {
	indices := make([]int, 0, len(b.selection))
	for i := range b.selection {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	records := make([]model.Station, 0, len(indices))
	for _, i := range indices {
		records = append(records, b.results[i-1])
	}
	return records
}

// pageSpan returns the inclusive global-index bounds of the current page.
// Callers must ensure results is non-empty.
func (b *Browser) pageSpan() (lo, hi int) {
	lo = (b.currentPage-1)*PageSize + 1
	hi = b.currentPage * PageSize
	if hi > len(b.results) {
		hi = len(b.results)
	}
	return lo, hi
}
