// Package geocoder resolves postal codes and free-text addresses to
// coordinates via the Nominatim search API. Calls are throttled to the
// provider's one-request-per-second policy and results are cached.
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jobhive/jobboard-api/internal/core/domain"
	"github.com/jobhive/jobboard-api/internal/core/ports"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Cache stores resolved results keyed by query. Get returns (nil, nil) on
// a miss. Implemented by the Redis geocache.
type Cache interface {
	Get(ctx context.Context, query string) (*ports.GeocodeResult, error)
	Put(ctx context.Context, query string, res *ports.GeocodeResult) error
}

// Config holds the provider settings.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Nominatim implements ports.Geocoder against the Nominatim HTTP API.
type Nominatim struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	cache     Cache
	logger    zerolog.Logger
}

func New(cfg Config, cache Cache, logger zerolog.Logger) *Nominatim {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Nominatim{
		baseURL:   baseURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		cache:     cache,
		logger:    logger,
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve looks the query up in the cache, then the provider. Any provider
// failure or empty result surfaces domain.ErrGeocodeFailed; the call is
// never retried here.
func (n *Nominatim) Resolve(ctx context.Context, query string) (*ports.GeocodeResult, error) {
	if query == "" {
		return nil, domain.ErrGeocodeFailed
	}

	if n.cache != nil {
		cached, err := n.cache.Get(ctx, query)
		if err != nil {
			n.logger.Warn().Err(err).Msg("geocode cache read failed, querying provider")
		} else if cached != nil {
			return cached, nil
		}
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	res, err := n.query(ctx, query)
	if err != nil {
		return nil, err
	}

	if n.cache != nil {
		if err := n.cache.Put(ctx, query, res); err != nil {
			n.logger.Warn().Err(err).Msg("geocode cache write failed")
		}
	}
	return res, nil
}

func (n *Nominatim) query(ctx context.Context, query string) (*ports.GeocodeResult, error) {
	endpoint := fmt.Sprintf("%s/search?format=jsonv2&limit=1&q=%s", n.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.ErrGeocodeFailed
	}
	if n.userAgent != "" {
		req.Header.Set("User-Agent", n.userAgent)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn().Err(err).Str("query", query).Msg("geocode request failed")
		return nil, domain.ErrGeocodeFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		n.logger.Warn().Int("status", resp.StatusCode).Str("query", query).Msg("geocode provider error")
		return nil, domain.ErrGeocodeFailed
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, domain.ErrGeocodeFailed
	}
	if len(results) == 0 {
		return nil, domain.ErrGeocodeFailed
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		return nil, domain.ErrGeocodeFailed
	}

	return &ports.GeocodeResult{
		Lat:      lat,
		Lng:      lng,
		Location: results[0].DisplayName,
	}, nil
}
