package geocode_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riverdesk/internal/config"
	"riverdesk/internal/desk"
	"riverdesk/internal/geocode"
)

func newServer(t *testing.T, handler http.HandlerFunc) *geocode.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return geocode.NewClient(server.URL, "riverdesk-test", 0, 5*time.Second)
}

func TestSearch(t *testing.T) {
	var gotUA, gotQuery string
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"lat":"13.7187","lon":"100.5133","display_name":"Sathorn Pier, Bangkok"},
			{"lat":"13.7526","lon":"100.4905","display_name":"Tha Chang"}
		]`))
	})

	results, err := client.Search(context.Background(), "  ท่าเรือสาทร ", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Sathorn Pier, Bangkok", results[0].Name)
	assert.InDelta(t, 13.7187, results[0].Position.Lat, 1e-9)
	assert.InDelta(t, 100.5133, results[0].Position.Lng, 1e-9)
	assert.Equal(t, "riverdesk-test", gotUA)
	assert.Equal(t, "ท่าเรือสาทร", gotQuery)
}

func TestSearch_NoResults(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := client.Search(context.Background(), "nowhere", 5)
	var nf *desk.GeocodeNotFoundError
	require.True(t, errors.As(err, &nf), "error = %v", err)
	assert.Equal(t, "nowhere", nf.Query)
}

func TestSearch_Errors(t *testing.T) {
	t.Run("empty query", func(t *testing.T) {
		client := geocode.NewClient("http://127.0.0.1:1", "", 0, time.Second)
		_, err := client.Search(context.Background(), "   ", 5)
		assert.Error(t, err)
	})

	t.Run("upstream failure", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		_, err := client.Search(context.Background(), "x", 5)
		require.Error(t, err)
		var nf *desk.GeocodeNotFoundError
		assert.False(t, errors.As(err, &nf))
	})

	t.Run("malformed coordinates", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"lat":"north","lon":"100","display_name":"x"}]`))
		})
		_, err := client.Search(context.Background(), "x", 5)
		assert.Error(t, err)
	})
}

func TestReverse(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		if r.URL.Query().Get("lat") == "0" {
			w.Write([]byte(`{"error":"Unable to geocode"}`))
			return
		}
		w.Write([]byte(`{"lat":"13.7437","lon":"100.4889","display_name":"Wat Arun Pier"}`))
	})

	r, err := client.Reverse(context.Background(), desk.LatLng{Lat: 13.7437, Lng: 100.4889})
	require.NoError(t, err)
	assert.Equal(t, "Wat Arun Pier", r.Name)

	_, err = client.Reverse(context.Background(), desk.LatLng{Lat: 0, Lng: 0})
	var nf *desk.GeocodeNotFoundError
	assert.True(t, errors.As(err, &nf), "error = %v", err)

	_, err = client.Reverse(context.Background(), desk.LatLng{Lat: 100, Lng: 0})
	assert.Error(t, err)
}

func TestClient_RateLimited(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`[{"lat":"1","lon":"2","display_name":"x"}]`))
	}))
	defer server.Close()

	client := geocode.NewClient(server.URL, "", 0.001, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := client.Search(ctx, "first", 1)
	require.NoError(t, err)
	_, err = client.Search(ctx, "second", 1)
	assert.Error(t, err, "second request should wait past the deadline")
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewClientFromConfig(t *testing.T) {
	_, err := geocode.NewClientFromConfig(config.GeocodeConfig{})
	assert.Error(t, err)

	c, err := geocode.NewClientFromConfig(config.GeocodeConfig{BaseURL: "https://example.org/", RatePerSecond: 1})
	require.NoError(t, err)
	assert.NotNil(t, c)
}
