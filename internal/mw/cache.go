package mw

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"riverdesk/internal/desk"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyCacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Generation counts flushes of a response cache. A response built while a
// flush happened is not stored.
type Generation struct {
	mu sync.Mutex
	n  uint64
}

func (g *Generation) current() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

// setIf stores v under key only if no flush happened since generation n.
func (g *Generation) setIf(n uint64, store *cache.Cache, key string, v cachedResponse, d time.Duration) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.n != n {
		return false
	}
	store.Set(key, v, d)
	return true
}

func (g *Generation) flush(store *cache.Cache) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	store.Flush()
}

// Cache serves repeated GET requests from store. Only 2xx responses are
// cached, and only when gen was not flushed while the handler ran.
// Responses carry X-Cache: HIT or MISS.
func Cache(store *cache.Cache, gen *Generation, duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if resp, found := store.Get(key); found {
			cached := resp.(cachedResponse)
			for k, v := range cached.headers {
				c.Writer.Header()[k] = v
			}
			c.Writer.Header().Set("X-Cache", "HIT")
			c.Writer.WriteHeader(cached.status)
			c.Writer.Write(cached.body)
			c.Abort()
			return
		}

		started := gen.current()
		c.Writer.Header().Set("X-Cache", "MISS")
		blw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if blw.Status() >= 200 && blw.Status() < 300 {
			headers := blw.Header().Clone()
			headers.Del("X-Cache")
			gen.setIf(started, store, key, cachedResponse{
				status:  blw.Status(),
				headers: headers,
				body:    blw.body.Bytes(),
			}, duration)
		}
	}
}

// FlushOnWrite empties store and advances gen whenever a collection is
// written, so cached reads never outlive the data they were built from. It
// returns the unsubscribe function.
func FlushOnWrite(bus *desk.EventBus, store *cache.Cache, gen *Generation) func() {
	return bus.Subscribe(func(desk.WriteEvent) { gen.flush(store) })
}
