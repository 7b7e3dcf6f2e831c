package pagination

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/rs/zerolog/log"
)

// PageFetcher issues a single list request and decodes its envelope.
// A nil page addresses the endpoint without a page segment, which is how
// page-count discovery and non-paginated resources are queried.
type PageFetcher interface {
	FetchPage(ctx context.Context, page *int) (*Envelope, error)
}

// Accumulator collects items across pages with structural deduplication.
// An item deep-equal to one already held is dropped; first occurrence wins
// and insertion order is preserved. The membership check is a linear scan,
// which is fine at the result-set sizes Unleashed pages carry.
type Accumulator struct {
	items []any
}

// Add appends item unless a structurally equal item is already present.
// Reports whether the item was appended.
func (a *Accumulator) Add(item any) bool {
	for _, existing := range a.items {
		if reflect.DeepEqual(existing, item) {
			return false
		}
	}
	a.items = append(a.items, item)
	return true
}

// AddAll runs every item of the envelope through Add.
func (a *Accumulator) AddAll(env *Envelope) {
	for _, item := range env.Items {
		a.Add(item)
	}
}

// Items returns the accumulated items in insertion order, never nil.
func (a *Accumulator) Items() []any {
	if a.items == nil {
		return []any{}
	}
	return a.items
}

// FetchAll walks every page of a resource and returns the deduplicated
// items. It first issues a discovery request without a page segment; if the
// response carries no Pagination object the endpoint is not paginated and
// that response's Items are returned verbatim, with no further requests and
// no dedup. Otherwise pages 1..N are fetched strictly in ascending order,
// each through a fresh request from the fetcher, and items are accumulated
// with cross-page dedup.
//
// Any error aborts immediately and discards pages already accumulated;
// there are no partial results.
func FetchAll(ctx context.Context, fetcher PageFetcher) ([]any, error) {
	start := time.Now()

	env, err := fetcher.FetchPage(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("discover page count: %w", err)
	}

	pages, paginated := env.PageCount()
	if !paginated {
		log.Debug().
			Int("items", len(env.Items)).
			Dur("duration", time.Since(start)).
			Msg("Fetch complete (not paginated)")
		return env.Items, nil
	}

	log.Debug().
		Int("total_pages", pages).
		Msg("Starting page traversal")

	var acc Accumulator
	for page := 1; page <= pages; page++ {
		p := page
		env, err := fetcher.FetchPage(ctx, &p)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d of %d: %w", page, pages, err)
		}
		acc.AddAll(env)
	}

	log.Debug().
		Int("pages", pages).
		Int("items", len(acc.Items())).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return acc.Items(), nil
}
