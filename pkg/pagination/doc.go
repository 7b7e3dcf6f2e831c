// Package pagination traverses paginated Unleashed list endpoints.
//
// Unleashed list responses are wrapped in an envelope:
//
//	{"Items": [...], "Pagination": {"NumberOfPages": N, ...}}
//
// The Pagination object is optional; endpoints without it return every item
// in a single response regardless of any page segment in the address. The
// traversal therefore first issues a discovery request without a page
// segment, then walks pages 1..N strictly in order, one request at a time.
//
// Items collected across pages are deduplicated structurally: an item equal
// to one already accumulated is dropped, first occurrence wins, order is
// preserved. Page boundaries on the vendor side can legitimately repeat an
// item, so this collapse is part of the contract.
//
// Example usage:
//
//	items, err := pagination.FetchAll(ctx, fetcher)
//	if err != nil {
//		return err
//	}
//
// Traversal is all-or-nothing: an error on any page aborts and discards
// everything accumulated so far.
package pagination
