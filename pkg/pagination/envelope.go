package pagination

import (
	"encoding/json"
	"fmt"
	"io"
)

// EnvelopeError reports a list response body that does not match the
// expected envelope shape. A missing Pagination object is NOT an envelope
// error; it marks the benign "not paginated" case.
type EnvelopeError struct {
	// Field is the envelope field that is missing or malformed.
	Field string

	// Reason describes what was wrong with the field.
	Reason string
}

// Error implements the error interface.
func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("envelope: field %s %s", e.Field, e.Reason)
}

// Envelope is a decoded list response.
type Envelope struct {
	// Items holds the decoded item objects. Opaque to this library; numbers
	// are json.Number so re-encoding preserves the wire representation.
	Items []any

	pages     int
	paginated bool
}

// PageCount returns the total number of pages and whether the endpoint is
// paginated at all. (0, false) means the response carried no Pagination
// object and the single response holds the complete result set.
func (e *Envelope) PageCount() (int, bool) {
	return e.pages, e.paginated
}

// DecodeEnvelope decodes a list response body. The Items field is required;
// its absence is an *EnvelopeError surfaced to the caller, never an empty
// result. Numbers decode as json.Number to keep numeric fidelity through the
// decode/re-encode round trip.
func DecodeEnvelope(r io.Reader) (*Envelope, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, &EnvelopeError{Field: "body", Reason: fmt.Sprintf("is not a JSON object: %v", err)}
	}

	rawItems, ok := body["Items"]
	if !ok {
		return nil, &EnvelopeError{Field: "Items", Reason: "is missing"}
	}
	items, ok := rawItems.([]any)
	if !ok {
		return nil, &EnvelopeError{Field: "Items", Reason: "is not an array"}
	}

	env := &Envelope{Items: items}

	rawPagination, ok := body["Pagination"]
	if !ok {
		// Not paginated: the endpoint returns everything in one response.
		return env, nil
	}
	pagination, ok := rawPagination.(map[string]any)
	if !ok {
		return nil, &EnvelopeError{Field: "Pagination", Reason: "is not an object"}
	}
	rawPages, ok := pagination["NumberOfPages"]
	if !ok {
		return nil, &EnvelopeError{Field: "Pagination.NumberOfPages", Reason: "is missing"}
	}
	num, ok := rawPages.(json.Number)
	if !ok {
		return nil, &EnvelopeError{Field: "Pagination.NumberOfPages", Reason: "is not a number"}
	}
	pages, err := num.Int64()
	if err != nil {
		return nil, &EnvelopeError{Field: "Pagination.NumberOfPages", Reason: fmt.Sprintf("is not an integer: %v", err)}
	}

	env.pages = int(pages)
	env.paginated = true
	return env, nil
}
