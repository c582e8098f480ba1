package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

// newHTTPClient returns an http.Client with a 10-second timeout.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// ErrNotTabular is returned when a catalog endpoint answers with something
// other than a JSON array of records, including a bare null.
var ErrNotTabular = errors.New("catalog payload is not a list of records")

// doGet performs a GET request and decodes the JSON response into dst.
func doGet(ctx context.Context, client *http.Client, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", rawURL, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned status %d", rawURL, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", rawURL, err)
	}

	return nil
}

// getTable fetches a JSON array of records. An object fails to decode and
// null decodes to a nil slice; both are rejected. An empty array is valid.
func getTable[T any](ctx context.Context, client *http.Client, rawURL string) ([]T, error) {
	var out []T
	if err := doGet(ctx, client, rawURL, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("GET %s: %w", rawURL, ErrNotTabular)
	}
	return out, nil
}

// HTTPSource reads the three catalog datasets as JSON arrays published
// under a common base URL (e.g. a static bucket next to the web app).
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource constructs an HTTPSource for the given base URL.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{baseURL: strings.TrimRight(baseURL, "/"), client: newHTTPClient()}
}

// ListLocations fetches {base}/locations.json.
func (s *HTTPSource) ListLocations(ctx context.Context) ([]RawLocation, error) {
	out, err := getTable[RawLocation](ctx, s.client, s.baseURL+"/locations.json")
	if err != nil {
		return nil, fmt.Errorf("fetching locations: %w", err)
	}
	return out, nil
}

// ListActivities fetches {base}/activities.json.
func (s *HTTPSource) ListActivities(ctx context.Context) ([]RawActivity, error) {
	out, err := getTable[RawActivity](ctx, s.client, s.baseURL+"/activities.json")
	if err != nil {
		return nil, fmt.Errorf("fetching activities: %w", err)
	}
	return out, nil
}

// ListTransitLegs fetches {base}/ferries.json.
func (s *HTTPSource) ListTransitLegs(ctx context.Context) ([]RawTransitLeg, error) {
	out, err := getTable[RawTransitLeg](ctx, s.client, s.baseURL+"/ferries.json")
	if err != nil {
		return nil, fmt.Errorf("fetching transit legs: %w", err)
	}
	return out, nil
}
