package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jobhive/jobboard-api/internal/core/domain"
	"github.com/jobhive/jobboard-api/internal/core/ports"
)

type memCache struct {
	mu      sync.Mutex
	entries map[string]*ports.GeocodeResult
	gets    int
	puts    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]*ports.GeocodeResult)}
}

func (c *memCache) Get(_ context.Context, query string) (*ports.GeocodeResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	return c.entries[query], nil
}

func (c *memCache) Put(_ context.Context, query string, res *ports.GeocodeResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	c.entries[query] = res
	return nil
}

func geocodeServer(t *testing.T, body string, status int, hits *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestNominatim_Resolve(t *testing.T) {
	hits := 0
	srv := geocodeServer(t, `[{"lat":"40.75","lon":"-73.99","display_name":"New York, NY 10001"}]`, http.StatusOK, &hits)
	defer srv.Close()

	geo := New(Config{BaseURL: srv.URL, UserAgent: "jobboard-test"}, nil, zerolog.Nop())

	res, err := geo.Resolve(context.Background(), "10001")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if res.Lat != 40.75 || res.Lng != -73.99 {
		t.Fatalf("unexpected coordinates: %+v", res)
	}
	if res.Location != "New York, NY 10001" {
		t.Fatalf("unexpected normalized location: %q", res.Location)
	}
}

func TestNominatim_Resolve_EmptyResult(t *testing.T) {
	hits := 0
	srv := geocodeServer(t, `[]`, http.StatusOK, &hits)
	defer srv.Close()

	geo := New(Config{BaseURL: srv.URL}, nil, zerolog.Nop())

	if _, err := geo.Resolve(context.Background(), "nowhere"); err != domain.ErrGeocodeFailed {
		t.Fatalf("expected ErrGeocodeFailed, got %v", err)
	}
}

func TestNominatim_Resolve_ProviderError(t *testing.T) {
	hits := 0
	srv := geocodeServer(t, `upstream exploded`, http.StatusBadGateway, &hits)
	defer srv.Close()

	geo := New(Config{BaseURL: srv.URL}, nil, zerolog.Nop())

	if _, err := geo.Resolve(context.Background(), "10001"); err != domain.ErrGeocodeFailed {
		t.Fatalf("expected ErrGeocodeFailed, got %v", err)
	}
	if hits != 1 {
		t.Fatalf("expected a single provider call (no internal retry), got %d", hits)
	}
}

func TestNominatim_Resolve_CacheHitSkipsProvider(t *testing.T) {
	hits := 0
	srv := geocodeServer(t, `[{"lat":"40.0","lon":"-73.0","display_name":"Testville"}]`, http.StatusOK, &hits)
	defer srv.Close()

	cache := newMemCache()
	geo := New(Config{BaseURL: srv.URL}, cache, zerolog.Nop())

	if _, err := geo.Resolve(context.Background(), "5 Main St"); err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	if _, err := geo.Resolve(context.Background(), "5 Main St"); err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}

	if hits != 1 {
		t.Fatalf("expected 1 provider call, got %d", hits)
	}
	if cache.puts != 1 {
		t.Fatalf("expected 1 cache write, got %d", cache.puts)
	}
}

func TestNominatim_Resolve_EmptyQuery(t *testing.T) {
	geo := New(Config{}, nil, zerolog.Nop())
	if _, err := geo.Resolve(context.Background(), ""); err != domain.ErrGeocodeFailed {
		t.Fatalf("expected ErrGeocodeFailed, got %v", err)
	}
}
