package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"riverdesk/internal/desk"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(rate.Limit(1), 2))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Another client has its own bucket.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(0, 0))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestCache_FlushOnWrite(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)
	bus := desk.NewEventBus()
	gen := &Generation{}
	defer FlushOnWrite(bus, store, gen)()

	hits := 0
	r := gin.New()
	r.GET("/items", Cache(store, gen, time.Minute), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/items", nil)
		r.ServeHTTP(w, req)
		return w
	}

	first := get()
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	second := get()
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"hits":1}`, second.Body.String())

	bus.Publish(desk.WriteEvent{Key: desk.KeyEquipment, Op: "update"})

	third := get()
	assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"hits":2}`, third.Body.String())
}

func TestCache_WriteDuringRead(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)
	bus := desk.NewEventBus()
	gen := &Generation{}
	defer FlushOnWrite(bus, store, gen)()

	data := "v1"
	r := gin.New()
	r.GET("/items", Cache(store, gen, time.Minute), func(c *gin.Context) {
		body := data
		if data == "v1" {
			// A write lands after the read but before the response.
			data = "v2"
			bus.Publish(desk.WriteEvent{Key: desk.KeyEquipment, Op: "update"})
		}
		c.String(http.StatusOK, body)
	})

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/items", nil)
		r.ServeHTTP(w, req)
		return w
	}

	first := get()
	assert.Equal(t, "v1", first.Body.String())
	assert.Equal(t, 0, store.ItemCount(), "response built across a write must not be cached")

	second := get()
	assert.Equal(t, "MISS", second.Header().Get("X-Cache"))
	assert.Equal(t, "v2", second.Body.String())

	third := get()
	assert.Equal(t, "HIT", third.Header().Get("X-Cache"))
	assert.Equal(t, "v2", third.Body.String())
}

func TestCache_SkipsErrors(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)
	r := gin.New()
	r.GET("/broken", Cache(store, &Generation{}, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/broken", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	}
	assert.Equal(t, 0, store.ItemCount())
}
