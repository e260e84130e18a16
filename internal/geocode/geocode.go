package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"riverdesk/internal/config"
	"riverdesk/internal/desk"
)

// Result is one candidate location.
type Result struct {
	Name     string      `json:"name"`
	Position desk.LatLng `json:"position"`
}

// Client queries a Nominatim-compatible geocoding service. Requests are
// spaced by a limiter so the public instance's usage policy is respected.
//
// Concurrent searches for the same query are not coalesced; each one is a
// separate request.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
}

// NewClient creates a client for baseURL. A non-positive perSecond disables
// the limiter.
func NewClient(baseURL, userAgent string, perSecond float64, timeout time.Duration) *Client {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(limit, 1),
	}
}

// NewClientFromConfig creates a client from the geocode section.
func NewClientFromConfig(cfg config.GeocodeConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("geocode base_url is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("parsing geocode base_url: %w", err)
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return NewClient(cfg.BaseURL, cfg.UserAgent, cfg.RatePerSecond, timeout), nil
}

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

func (p place) result() (Result, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("parsing latitude %q: %w", p.Lat, err)
	}
	lng, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("parsing longitude %q: %w", p.Lon, err)
	}
	return Result{Name: p.DisplayName, Position: desk.LatLng{Lat: lat, Lng: lng}}, nil
}

// Search returns candidates for a free-text query, best match first. A
// query with no candidates fails with GeocodeNotFoundError.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))

	var places []place
	if err := c.get(ctx, "/search", params, &places); err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	if len(places) == 0 {
		return nil, &desk.GeocodeNotFoundError{Query: query}
	}

	results := make([]Result, 0, len(places))
	for _, p := range places {
		r, err := p.result()
		if err != nil {
			return nil, fmt.Errorf("searching %q: %w", query, err)
		}
		results = append(results, r)
	}
	return results, nil
}

// Reverse returns the name of the place at pos.
func (c *Client) Reverse(ctx context.Context, pos desk.LatLng) (Result, error) {
	if !pos.Valid() {
		return Result{}, fmt.Errorf("invalid coordinates %v,%v", pos.Lat, pos.Lng)
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(pos.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(pos.Lng, 'f', -1, 64))
	params.Set("format", "json")

	var p place
	if err := c.get(ctx, "/reverse", params, &p); err != nil {
		return Result{}, fmt.Errorf("reverse geocoding: %w", err)
	}
	query := params.Get("lat") + "," + params.Get("lon")
	if p.Error != "" || p.DisplayName == "" {
		return Result{}, &desk.GeocodeNotFoundError{Query: query}
	}
	r, err := p.result()
	if err != nil {
		return Result{}, fmt.Errorf("reverse geocoding: %w", err)
	}
	return r, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
