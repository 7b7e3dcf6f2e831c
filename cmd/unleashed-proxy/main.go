// Command unleashed-proxy exposes the Unleashed client over plain HTTP so
// that internal tooling can query vendor resources without handling HMAC
// credentials itself.
package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/upOwa/unleashed-py/pkg/client"
	"github.com/upOwa/unleashed-py/pkg/endpoint"
	"github.com/upOwa/unleashed-py/pkg/logging"
)

func main() {
	logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: false,
		Output: os.Stderr,
	})

	authID := os.Getenv("UNLEASHED_API_ID")
	authKey := os.Getenv("UNLEASHED_API_KEY")
	baseURL := getEnv("UNLEASHED_API_URL", client.DefaultBaseURL)
	port := getEnv("PORT", "8080")

	cfg := client.DefaultConfig(authID, authKey)
	cfg.BaseURL = baseURL

	unleashed, err := client.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Unleashed client")
	}

	http.HandleFunc("/health", healthHandler)
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/api/", apiHandler(unleashed))

	addr := ":" + port
	log.Info().Str("addr", addr).Str("base_url", baseURL).Msg("Starting Unleashed proxy")

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

// apiHandler proxies GET /api/{Resource}?... to the vendor API.
//
// The query string becomes the resource filter, preserved in the order the
// caller sent it, except for two control parameters handled by the proxy
// itself: _page=N fetches a single page and _all=true walks every page with
// cross-page dedup. Without either, the first page is returned verbatim.
// The underscore prefix keeps the control keys out of the vendor namespace,
// so filters legitimately named page or all still reach the signed filter
// string.
func apiHandler(unleashed *client.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/"), "/")
		if name == "" || strings.Contains(name, "/") {
			http.Error(w, "expected /api/{Resource}", http.StatusBadRequest)
			return
		}

		filter, page, all, err := parseQuery(r.URL.RawQuery)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resource := unleashed.Resource(name, filter)

		var result []byte
		switch {
		case all:
			result, err = resource.AllResults(r.Context())
		case page != nil:
			result, err = resource.Page(r.Context(), *page)
		default:
			result, err = resource.FirstPage(r.Context())
		}
		if err != nil {
			log.Warn().Err(err).Str("resource", name).Msg("Proxy request failed")
			http.Error(w, fmt.Sprintf("unleashed request failed: %v", err), http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(result)
	}
}

// parseQuery splits the raw query into the vendor filter and the proxy's own
// control parameters. Control keys carry an underscore prefix so they never
// shadow a vendor filter of the same name. Order of the remaining pairs is
// preserved because the filter string is also the signature payload.
func parseQuery(rawQuery string) (endpoint.Filter, *int, bool, error) {
	var (
		filter endpoint.Filter
		page   *int
		all    bool
	)

	if rawQuery == "" {
		return nil, nil, false, nil
	}

	for _, pair := range strings.Split(rawQuery, "&") {
		key, value, _ := strings.Cut(pair, "=")
		switch key {
		case "_page":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return nil, nil, false, fmt.Errorf("invalid _page %q", value)
			}
			page = &n
		case "_all":
			all = value == "true" || value == "1"
		default:
			filter = filter.With(key, value)
		}
	}

	return filter, page, all, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
