// Package cache provides an advisory TTL cache for GET responses under
// /api, invalidated per resource family whenever a mutation against that
// family succeeds. It is never correctness-critical: entries simply go
// stale after the TTL.
package cache

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/labstack/echo/v4"
)

// TopicResourceChanged is published with the resource family name after
// every successful mutation, by HTTP handlers and background writers alike.
const TopicResourceChanged = "resource.changed"

const DefaultTTL = 30 * time.Second

type entry struct {
	status      int
	contentType string
	body        []byte
	storedAt    time.Time
}

type ResponseCache struct {
	mu       sync.RWMutex
	entries  map[string]entry
	ttl      time.Duration
	excluded map[string]bool
}

// New creates a response cache and subscribes it to invalidation events
// on bus. A nil bus is allowed; invalidation is then explicit only.
func New(ttl time.Duration, bus EventBus.Bus) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	rc := &ResponseCache{
		entries:  make(map[string]entry),
		ttl:      ttl,
		excluded: make(map[string]bool),
	}
	if bus != nil {
		_ = bus.Subscribe(TopicResourceChanged, rc.InvalidateFamily)
	}
	return rc
}

// Exclude marks a resource family as uncacheable. Per-session data such
// as the cart must never be shared across cache keys.
func (rc *ResponseCache) Exclude(families ...string) *ResponseCache {
	for _, f := range families {
		rc.excluded[f] = true
	}
	return rc
}

func (rc *ResponseCache) get(key string) (entry, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	e, ok := rc.entries[key]
	if !ok || time.Since(e.storedAt) > rc.ttl {
		return entry{}, false
	}
	return e, true
}

func (rc *ResponseCache) put(key string, e entry) {
	e.storedAt = time.Now()
	rc.mu.Lock()
	rc.entries[key] = e
	rc.mu.Unlock()
}

// InvalidateFamily drops every cached read whose path belongs to the
// given resource family (e.g. "products" clears /api/products and
// /api/products/12/reviews).
func (rc *ResponseCache) InvalidateFamily(family string) {
	prefix := "/api/" + family
	rc.mu.Lock()
	for key := range rc.entries {
		if strings.HasPrefix(key, prefix) {
			delete(rc.entries, key)
		}
	}
	rc.mu.Unlock()
}

// Family extracts the resource family from an /api request path, or ""
// when the path is not a resource path.
func Family(path string) string {
	trimmed := strings.TrimPrefix(path, "/api/")
	if trimmed == path {
		return ""
	}
	if i := strings.IndexByte(trimmed, '/'); i > 0 {
		return trimmed[:i]
	}
	return trimmed
}

// Middleware caches successful GET responses and publishes family
// invalidation after successful mutations.
func (rc *ResponseCache) Middleware(bus EventBus.Bus) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if rc.excluded[Family(req.URL.Path)] {
				return next(c)
			}
			if req.Method == http.MethodGet {
				key := cacheKey(c)
				if e, ok := rc.get(key); ok {
					return c.Blob(e.status, e.contentType, e.body)
				}

				rec := &captureWriter{ResponseWriter: c.Response().Writer}
				c.Response().Writer = rec
				if err := next(c); err != nil {
					return err
				}
				if rec.status == http.StatusOK {
					rc.put(key, entry{
						status:      rec.status,
						contentType: rec.Header().Get(echo.HeaderContentType),
						body:        rec.buf.Bytes(),
					})
				}
				return nil
			}

			if err := next(c); err != nil {
				return err
			}
			status := c.Response().Status
			if status >= 200 && status < 300 {
				if family := Family(req.URL.Path); family != "" {
					if bus != nil {
						bus.Publish(TopicResourceChanged, family)
					} else {
						rc.InvalidateFamily(family)
					}
				}
			}
			return nil
		}
	}
}

func cacheKey(c echo.Context) string {
	req := c.Request()
	if req.URL.RawQuery == "" {
		return req.URL.Path
	}
	return req.URL.Path + "?" + req.URL.RawQuery
}

// captureWriter tees the response body so it can be cached.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *captureWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.buf.Write(p)
	return w.ResponseWriter.Write(p)
}

var _ io.Writer = (*captureWriter)(nil)
