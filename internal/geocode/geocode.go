// Package geocode resolves facility street addresses to coordinates through
// the public Nominatim API. Nominatim's usage policy caps clients at roughly
// one request per second and requires an identifying User-Agent, so the
// client serializes requests behind a minimum delay.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// DefaultMinDelay spaces requests a little slower than the documented
// one-per-second limit.
const DefaultMinDelay = 1200 * time.Millisecond

// ErrNotFound means Nominatim returned no match for the address.
var ErrNotFound = errors.New("address not found")

// Client is a rate-limited Nominatim search client. Not safe for concurrent
// use; the geocoding loop is deliberately sequential.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	email      string
	minDelay   time.Duration
	lastReq    time.Time
}

// NewClient builds a client. userAgent is mandatory per Nominatim's policy;
// email is optional but recommended for bulk runs. A non-positive minDelay
// falls back to DefaultMinDelay.
func NewClient(userAgent, email string, minDelay time.Duration) (*Client, error) {
	if userAgent == "" {
		return nil, fmt.Errorf("geocoder user agent is required")
	}
	if minDelay <= 0 {
		minDelay = DefaultMinDelay
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		userAgent:  userAgent,
		email:      email,
		minDelay:   minDelay,
	}, nil
}

// Result is a resolved coordinate pair.
type Result struct {
	Lat float64
	Lng float64
}

// Geocode resolves one structured US address. Blocks until the rate limit
// window allows the request, or returns early when ctx is done.
func (c *Client) Geocode(ctx context.Context, street, city, state, zip string) (*Result, error) {
	if err := c.waitTurn(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("country", "USA")
	if street != "" {
		q.Set("street", street)
	}
	if city != "" {
		q.Set("city", city)
	}
	if state != "" {
		q.Set("state", state)
	}
	if zip != "" {
		q.Set("postalcode", zip)
	}
	if c.email != "" {
		q.Set("email", c.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("geocode request: status %d: %s", resp.StatusCode, body)
	}

	// Nominatim encodes coordinates as strings.
	var hits []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(hits) == 0 {
		return nil, ErrNotFound
	}

	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lat %q: %w", hits[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lon %q: %w", hits[0].Lon, err)
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return nil, fmt.Errorf("non-finite coordinates %q,%q", hits[0].Lat, hits[0].Lon)
	}
	return &Result{Lat: lat, Lng: lng}, nil
}

func (c *Client) waitTurn(ctx context.Context) error {
	if !c.lastReq.IsZero() {
		if wait := c.minDelay - time.Since(c.lastReq); wait > 0 {
			t := time.NewTimer(wait)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
			}
		}
	}
	c.lastReq = time.Now()
	return nil
}
