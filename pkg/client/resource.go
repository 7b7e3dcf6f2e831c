package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/upOwa/unleashed-py/pkg/endpoint"
	"github.com/upOwa/unleashed-py/pkg/pagination"
)

// Resource reads a named Unleashed collection endpoint, e.g. Products or
// StockOnHand. The optional filter fixed at construction narrows every query
// the resource issues and is the payload of the authorization signature.
type Resource struct {
	client *Client
	desc   endpoint.Descriptor
}

// Resource returns a client for the named collection. The filter may be nil
// for an unfiltered query.
func (c *Client) Resource(name string, filter endpoint.Filter) *Resource {
	return &Resource{
		client: c,
		desc: endpoint.Descriptor{
			BaseURL:  c.config.BaseURL,
			Resource: name,
			Filter:   filter,
		},
	}
}

// FetchPage issues one signed list request and decodes its envelope. A nil
// page omits the page segment. Implements pagination.PageFetcher.
func (r *Resource) FetchPage(ctx context.Context, page *int) (*pagination.Envelope, error) {
	resp, err := r.client.get(ctx, r.desc, page)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	env, err := pagination.DecodeEnvelope(resp.Body)
	if err != nil {
		return nil, err
	}

	unleashedPagesFetchedTotal.WithLabelValues(r.desc.Resource).Inc()
	return env, nil
}

// FirstPage issues a single request without a page segment and returns the
// response's Items serialized verbatim. Unlike AllResults it performs no
// deduplication and no traversal.
func (r *Resource) FirstPage(ctx context.Context) ([]byte, error) {
	env, err := r.FetchPage(ctx, nil)
	if err != nil {
		return nil, err
	}
	return marshalItems(env.Items)
}

// Page fetches exactly one page and returns its items with within-page
// structural deduplication applied.
func (r *Resource) Page(ctx context.Context, page int) ([]byte, error) {
	env, err := r.FetchPage(ctx, &page)
	if err != nil {
		return nil, err
	}

	var acc pagination.Accumulator
	acc.AddAll(env)
	return marshalItems(acc.Items())
}

// AllResults fetches every page of the resource and returns the accumulated
// items as a serialized JSON array. Items repeated across page boundaries
// collapse to their first occurrence. Traversal is sequential and
// all-or-nothing: any failure discards pages already fetched.
func (r *Resource) AllResults(ctx context.Context) ([]byte, error) {
	items, err := pagination.FetchAll(ctx, r)
	if err != nil {
		return nil, err
	}
	return marshalItems(items)
}

// marshalItems serializes the item list. Items carry json.Number values, so
// numeric wire representations survive the round trip; key order normalizes.
func marshalItems(items []any) ([]byte, error) {
	if items == nil {
		items = []any{}
	}
	out, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return out, nil
}

// EditableResource extends Resource with write access for the Unleashed
// resources that accept POST.
type EditableResource struct {
	Resource
}

// EditableResource returns a read/write client for the named collection.
func (c *Client) EditableResource(name string, filter endpoint.Filter) *EditableResource {
	return &EditableResource{Resource: *c.Resource(name, filter)}
}

// Post sends the caller-supplied JSON body to {resource}/{guid} under a
// freshly signed request. The raw transport response is returned with its
// body unconsumed and its status uninspected; the caller decides how to
// treat non-2xx and closes the body. No retry, no decoding.
func (e *EditableResource) Post(ctx context.Context, guid string, body []byte) (*http.Response, error) {
	desc := e.desc
	desc.ID = guid

	sr, err := e.client.buildRequest(desc, nil)
	if err != nil {
		return nil, err
	}
	return e.client.roundTrip(ctx, http.MethodPost, sr, bytes.NewReader(body))
}
