// Package endpoint builds Unleashed API request addresses.
//
// Addresses follow the fixed scheme
//
//	{base}/{resource}[/{id}][/{detail}][/{page}][?{filter}]
//
// where the page number, when present, is always the last path segment and
// the filter is appended verbatim as the query string.
package endpoint

import (
	"strconv"
	"strings"
)

// Filter is an ordered list of query parameters. Order matters: the joined
// string is both the query string on the wire and the payload covered by the
// authorization signature, so two filters with the same pairs in different
// order produce different signatures.
//
// Values are NOT percent-encoded. The Unleashed signature is computed over
// the literal filter string, so encoding here would break signature
// verification server-side; callers must supply already-safe values.
type Filter []Param

// Param is a single key=value query parameter.
type Param struct {
	Key   string
	Value string
}

// NewFilter builds a Filter from alternating key, value strings.
// Panics if the number of arguments is odd.
func NewFilter(pairs ...string) Filter {
	if len(pairs)%2 != 0 {
		panic("endpoint: NewFilter requires an even number of arguments")
	}
	f := make(Filter, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		f = append(f, Param{Key: pairs[i], Value: pairs[i+1]})
	}
	return f
}

// With returns a copy of the filter with one more parameter appended.
func (f Filter) With(key, value string) Filter {
	out := make(Filter, len(f), len(f)+1)
	copy(out, f)
	return append(out, Param{Key: key, Value: value})
}

// String joins the parameters as key=value pairs separated by '&'.
// A filter with no pairs yields the empty string.
func (f Filter) String() string {
	var b strings.Builder
	for i, p := range f {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}

// Descriptor identifies one Unleashed endpoint. All fields except BaseURL and
// Resource are optional. Descriptors are immutable values; deriving the
// address for a specific page never mutates the descriptor.
type Descriptor struct {
	// BaseURL is the API root, e.g. https://api.unleashedsoftware.com.
	BaseURL string

	// Resource is the collection name, e.g. Products or StockOnHand.
	Resource string

	// ID is the Guid of a single entity, for item and detail lookups.
	ID string

	// Detail is a sub-resource segment scoped to ID, e.g. AllWarehouses.
	Detail string

	// Filter narrows the query and is the payload of the auth signature.
	Filter Filter
}

// URL renders the address for the given page. A nil page omits the page
// segment, which is how non-paginated resources and page-count discovery
// requests are addressed.
func (d Descriptor) URL(page *int) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(d.BaseURL, "/"))
	b.WriteByte('/')
	b.WriteString(d.Resource)
	if d.ID != "" {
		b.WriteByte('/')
		b.WriteString(d.ID)
	}
	if d.Detail != "" {
		b.WriteByte('/')
		b.WriteString(d.Detail)
	}
	if page != nil {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(*page))
	}
	if q := d.Filter.String(); q != "" {
		b.WriteByte('?')
		b.WriteString(q)
	}
	return b.String()
}
