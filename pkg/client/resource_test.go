package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/upOwa/unleashed-py/internal/testutil"
	"github.com/upOwa/unleashed-py/pkg/endpoint"
	"github.com/upOwa/unleashed-py/pkg/pagination"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	c, err := New(Config{
		BaseURL:       baseURL,
		AuthID:        "api-id",
		AuthSignature: "api-key",
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c
}

func decodeItems(t *testing.T, data []byte) []map[string]any {
	t.Helper()

	var items []map[string]any
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("result is not a JSON array: %v", err)
	}
	return items
}

func codes(items []map[string]any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item["ProductCode"].(string))
	}
	return out
}

func TestResource_FirstPage(t *testing.T) {
	mock := testutil.NewMockUnleashed()
	defer mock.Close()

	// Duplicates in the page must survive: FirstPage never deduplicates.
	mock.SetResponse("/Products", testutil.NewListResponse(3,
		`{"ProductCode": "A"}`, `{"ProductCode": "A"}`, `{"ProductCode": "B"}`))

	c := newTestClient(t, mock.URL())
	result, err := c.Resource(ResourceProducts, nil).FirstPage(context.Background())
	if err != nil {
		t.Fatalf("FirstPage() error: %v", err)
	}

	if got := codes(decodeItems(t, result)); !reflect.DeepEqual(got, []string{"A", "A", "B"}) {
		t.Errorf("FirstPage() items = %v, want duplicates preserved", got)
	}

	requests := mock.Requests()
	if len(requests) != 1 {
		t.Fatalf("request count = %d, want 1", len(requests))
	}
	if requests[0].Path != "/Products" {
		t.Errorf("path = %q, want /Products (no page segment)", requests[0].Path)
	}
}

func TestResource_RequestHeaders(t *testing.T) {
	mock := testutil.NewMockUnleashed()
	defer mock.Close()

	c := newTestClient(t, mock.URL())
	if _, err := c.Resource(ResourceProducts, nil).FirstPage(context.Background()); err != nil {
		t.Fatalf("FirstPage() error: %v", err)
	}

	header := mock.Requests()[0].Header
	if got := header.Get("api-auth-id"); got != "api-id" {
		t.Errorf("api-auth-id = %q, want api-id", got)
	}
	// HMAC-SHA256("", "api-key"), base64.
	if got := header.Get("api-auth-signature"); got != "fJmKd+p8cUsSsTNOE8LXp+5qATh2vy/kDriqjktJGHY=" {
		t.Errorf("api-auth-signature = %q", got)
	}
	if got := header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := header.Get("Accept"); got != "application/json" {
		t.Errorf("Accept = %q", got)
	}
}

func TestResource_FilterSignedAndSent(t *testing.T) {
	mock := testutil.NewMockUnleashed()
	defer mock.Close()

	filter := endpoint.NewFilter("productCode", "Artifact")

	c := newTestClient(t, mock.URL())
	if _, err := c.Resource(ResourceProducts, filter).FirstPage(context.Background()); err != nil {
		t.Fatalf("FirstPage() error: %v", err)
	}

	req := mock.Requests()[0]
	if req.Query != "productCode=Artifact" {
		t.Errorf("query = %q, want productCode=Artifact", req.Query)
	}
	// HMAC-SHA256("productCode=Artifact", "api-key"), base64.
	if got := req.Header.Get("api-auth-signature"); got != "LDIxpAogGSWJ1RNcJsJ1L5az5q8II0ZMxZv5jMbwwrc=" {
		t.Errorf("api-auth-signature = %q", got)
	}
}

func TestResource_AllResults_NotPaginated(t *testing.T) {
	mock := testutil.NewMockUnleashed()
	defer mock.Close()

	mock.SetResponse("/Warehouses", testutil.NewUnpaginatedResponse(
		`{"ProductCode": "A"}`, `{"ProductCode": "B"}`))

	c := newTestClient(t, mock.URL())
	result, err := c.Resource(ResourceWarehouses, nil).AllResults(context.Background())
	if err != nil {
		t.Fatalf("AllResults() error: %v", err)
	}

	if got := codes(decodeItems(t, result)); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("AllResults() items = %v", got)
	}
	if mock.RequestCount() != 1 {
		t.Errorf("request count = %d, want exactly 1", mock.RequestCount())
	}
}

func TestResource_AllResults_Paginated(t *testing.T) {
	mock := testutil.NewMockUnleashed()
	defer mock.Close()

	mock.SetResponse("/Products", testutil.NewListResponse(3, `{"ProductCode": "A"}`))
	mock.SetResponse("/Products/1", testutil.NewListResponse(3, `{"ProductCode": "A"}`, `{"ProductCode": "B"}`))
	// Page 2's last item repeats as page 3's first item.
	mock.SetResponse("/Products/2", testutil.NewListResponse(3, `{"ProductCode": "C"}`, `{"ProductCode": "D"}`))
	mock.SetResponse("/Products/3", testutil.NewListResponse(3, `{"ProductCode": "D"}`, `{"ProductCode": "E"}`))

	c := newTestClient(t, mock.URL())
	result, err := c.Resource(ResourceProducts, nil).AllResults(context.Background())
	if err != nil {
		t.Fatalf("AllResults() error: %v", err)
	}

	if got := codes(decodeItems(t, result)); !reflect.DeepEqual(got, []string{"A", "B", "C", "D", "E"}) {
		t.Errorf("AllResults() items = %v, want boundary duplicate collapsed", got)
	}

	var paths []string
	for _, req := range mock.Requests() {
		paths = append(paths, req.Path)
	}
	want := []string{"/Products", "/Products/1", "/Products/2", "/Products/3"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("request paths = %v, want %v", paths, want)
	}
}

func TestResource_AllResults_SinglePageDedup(t *testing.T) {
	mock := testutil.NewMockUnleashed()
	defer mock.Close()

	mock.SetResponse("/Products", testutil.NewListResponse(1))
	mock.SetResponse("/Products/1", testutil.NewListResponse(1,
		`{"ProductCode": "A"}`, `{"ProductCode": "A"}`))

	c := newTestClient(t, mock.URL())
	result, err := c.Resource(ResourceProducts, nil).AllResults(context.Background())
	if err != nil {
		t.Fatalf("AllResults() error: %v", err)
	}

	if got := codes(decodeItems(t, result)); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("AllResults() items = %v, want within-page dedup on a 1-page resource", got)
	}
}

func TestResource_AllResults_MidTraversalFailure(t *testing.T) {
	mock := testutil.NewMockUnleashed()
	defer mock.Close()

	mock.SetResponse("/Products", testutil.NewListResponse(5))
	mock.SetResponse("/Products/1", testutil.NewListResponse(5, `{"ProductCode": "A"}`))
	mock.SetResponse("/Products/2", testutil.NewServerErrorResponse())

	c := newTestClient(t, mock.URL())
	result, err := c.Resource(ResourceProducts, nil).AllResults(context.Background())
	if err == nil {
		t.Fatal("AllResults() expected error, got nil")
	}
	if result != nil {
		t.Errorf("result = %s, want nil (page 1 discarded)", result)
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error type = %T, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", statusErr.StatusCode)
	}
	if statusErr.Class() != ErrorClassServer {
		t.Errorf("Class() = %q, want server", statusErr.Class())
	}

	// Traversal stops at the failing page.
	if mock.RequestCount() != 3 {
		t.Errorf("request count = %d, want 3 (discovery, page 1, page 2)", mock.RequestCount())
	}
}

func TestResource_Page(t *testing.T) {
	mock := testutil.NewMockUnleashed()
	defer mock.Close()

	mock.SetResponse("/Products/2", testutil.NewListResponse(3,
		`{"ProductCode": "A"}`, `{"ProductCode": "A"}`, `{"ProductCode": "B"}`))

	c := newTestClient(t, mock.URL())
	result, err := c.Resource(ResourceProducts, nil).Page(context.Background(), 2)
	if err != nil {
		t.Fatalf("Page() error: %v", err)
	}

	// Within-page dedup applies even for a single-page fetch.
	if got := codes(decodeItems(t, result)); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("Page() items = %v", got)
	}
	if got := mock.Requests()[0].Path; got != "/Products/2" {
		t.Errorf("path = %q, want /Products/2", got)
	}
}

func TestResource_MissingItems(t *testing.T) {
	mock := testutil.NewMockUnleashed()
	defer mock.Close()

	mock.SetResponse("/Products", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"Pagination": {"NumberOfPages": 1}}`,
	})

	c := newTestClient(t, mock.URL())
	_, err := c.Resource(ResourceProducts, nil).FirstPage(context.Background())
	if err == nil {
		t.Fatal("FirstPage() expected error for missing Items, got nil")
	}

	var envErr *pagination.EnvelopeError
	if !errors.As(err, &envErr) {
		t.Fatalf("error type = %T, want *EnvelopeError", err)
	}
	if envErr.Field != "Items" {
		t.Errorf("EnvelopeError.Field = %q, want Items", envErr.Field)
	}
}

func TestResource_TransportError(t *testing.T) {
	mock := testutil.NewMockUnleashed()
	mock.Close() // nothing listening

	c := newTestClient(t, mock.URL())
	_, err := c.Resource(ResourceProducts, nil).FirstPage(context.Background())
	if err == nil {
		t.Fatal("FirstPage() expected error, got nil")
	}

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error type = %T, want *TransportError", err)
	}
}

func TestEditableResource_Post(t *testing.T) {
	mock := testutil.NewMockUnleashed()
	defer mock.Close()

	mock.SetResponse("/Customers/12345678-9abc-def0-1234-56789abcdef0", testutil.MockResponse{
		StatusCode: http.StatusCreated,
		Body:       `{"Guid": "12345678-9abc-def0-1234-56789abcdef0"}`,
	})

	c := newTestClient(t, mock.URL())
	resource := c.EditableResource(ResourceCustomers, nil)

	body := []byte(`{"CustomerName": "ACME"}`)
	resp, err := resource.Post(context.Background(), "12345678-9abc-def0-1234-56789abcdef0", body)
	if err != nil {
		t.Fatalf("Post() error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("StatusCode = %d, want 201", resp.StatusCode)
	}

	req := mock.Requests()[0]
	if req.Method != http.MethodPost {
		t.Errorf("method = %q, want POST", req.Method)
	}
	if req.Path != "/Customers/12345678-9abc-def0-1234-56789abcdef0" {
		t.Errorf("path = %q", req.Path)
	}
	if got := req.Header.Get("api-auth-signature"); got != "fJmKd+p8cUsSsTNOE8LXp+5qATh2vy/kDriqjktJGHY=" {
		t.Errorf("api-auth-signature = %q, want empty-filter signature", got)
	}
}

func TestEditableResource_PostReturnsRawResponseOnError(t *testing.T) {
	mock := testutil.NewMockUnleashed()
	defer mock.Close()

	mock.SetResponse("/Customers/bad", testutil.MockResponse{
		StatusCode: http.StatusBadRequest,
		Body:       `{"description": "Validation failed"}`,
	})

	c := newTestClient(t, mock.URL())
	resp, err := c.EditableResource(ResourceCustomers, nil).Post(context.Background(), "bad", []byte(`{}`))
	if err != nil {
		t.Fatalf("Post() error: %v, want raw response even for non-2xx", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400 passed through", resp.StatusCode)
	}
}
