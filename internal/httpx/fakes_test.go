package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-shop-admin.git/internal/events"
)

type memCache struct {
	mu          sync.Mutex
	data        map[string][]byte
	invalidated [][]int64
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) get(key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) set(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) GetDetail(_ context.Context, id int64, out any) (bool, error) {
	return c.get(fmt.Sprint("detail:", id), out)
}

func (c *memCache) SetDetail(_ context.Context, id int64, v any) error {
	return c.set(fmt.Sprint("detail:", id), v)
}

func (c *memCache) GetListing(_ context.Context, out any) (bool, error) { return c.get("listing", out) }

func (c *memCache) SetListing(_ context.Context, v any) error { return c.set("listing", v) }

func (c *memCache) Invalidate(_ context.Context, ids ...int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, ids)
	delete(c.data, "listing")
	for _, id := range ids {
		delete(c.data, fmt.Sprint("detail:", id))
	}
	return nil
}

type published struct {
	Key string
	Env events.Envelope
}

type memPublisher struct {
	mu   sync.Mutex
	msgs []published
}

func (p *memPublisher) Publish(key, value []byte, _ ...kafkago.Header) {
	var env events.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		panic(err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, published{Key: string(key), Env: env})
}

func (p *memPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.msgs))
	for _, m := range p.msgs {
		out = append(out, m.Env.EventType)
	}
	return out
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func adminRouter(register ...func(chi.Router)) http.Handler {
	r := NewRouter(zap.NewNop())
	r.Route("/admin", func(r chi.Router) {
		for _, reg := range register {
			reg(r)
		}
	})
	return r
}

func ptr[T any](v T) *T { return &v }
