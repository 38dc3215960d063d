package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClientRequiresUserAgent(t *testing.T) {
	if _, err := NewClient("", "", 0); err == nil {
		t.Fatal("NewClient accepted an empty user agent")
	}
}

func TestGeocode(t *testing.T) {
	var gotUA string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = map[string]string{
			"street":     r.URL.Query().Get("street"),
			"city":       r.URL.Query().Get("city"),
			"postalcode": r.URL.Query().Get("postalcode"),
			"email":      r.URL.Query().Get("email"),
		}
		w.Write([]byte(`[{"lat":"41.8781","lon":"-87.6298"}]`))
	}))
	defer srv.Close()

	c, err := NewClient("surveyload-test/1.0", "ops@example.org", time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	c.baseURL = srv.URL

	res, err := c.Geocode(context.Background(), "100 Main St", "Chicago", "IL", "60601")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if res.Lat != 41.8781 || res.Lng != -87.6298 {
		t.Errorf("coordinates = %v, %v", res.Lat, res.Lng)
	}
	if gotUA != "surveyload-test/1.0" {
		t.Errorf("user agent = %q", gotUA)
	}
	if gotQuery["street"] != "100 Main St" || gotQuery["city"] != "Chicago" {
		t.Errorf("query = %v", gotQuery)
	}
	if gotQuery["email"] != "ops@example.org" {
		t.Errorf("email = %q, want contact address forwarded", gotQuery["email"])
	}
}

func TestGeocodeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, _ := NewClient("surveyload-test/1.0", "", time.Millisecond)
	c.baseURL = srv.URL

	_, err := c.Geocode(context.Background(), "nowhere", "", "IL", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, _ := NewClient("surveyload-test/1.0", "", time.Millisecond)
	c.baseURL = srv.URL

	if _, err := c.Geocode(context.Background(), "100 Main St", "Chicago", "IL", ""); err == nil {
		t.Fatal("Geocode accepted a 429 response")
	}
}

func TestGeocodeRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"1","lon":"2"}]`))
	}))
	defer srv.Close()

	delay := 50 * time.Millisecond
	c, _ := NewClient("surveyload-test/1.0", "", delay)
	c.baseURL = srv.URL

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := c.Geocode(context.Background(), "100 Main St", "Chicago", "IL", ""); err != nil {
			t.Fatal(err)
		}
	}
	if elapsed := time.Since(start); elapsed < 2*delay {
		t.Errorf("three requests took %v, want at least %v between each", elapsed, delay)
	}
}

func TestGeocodeCancelledWhileWaiting(t *testing.T) {
	c, _ := NewClient("surveyload-test/1.0", "", time.Hour)
	c.lastReq = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := c.Geocode(ctx, "100 Main St", "Chicago", "IL", ""); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}
