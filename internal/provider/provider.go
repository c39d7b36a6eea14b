package provider

import (
	"context"

	"github.com/mkts/navirad/internal/model"
)

// SearchKind selects which directory index a search queries.
type SearchKind string

const (
	KindName     SearchKind = "name"
	KindTag      SearchKind = "tag"
	KindCountry  SearchKind = "country"
	KindTopVoted SearchKind = "top_voted"
)

// SearchProvider defines operations for querying a radio station directory.
// An empty result list is a valid outcome, not an error.
type SearchProvider interface {
	// Search queries the directory and returns normalized station records in
	// the directory's order. The query is ignored for KindTopVoted.
	Search(ctx context.Context, kind SearchKind, query string) ([]model.Station, error)
}
