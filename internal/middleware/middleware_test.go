package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"shopadmin/internal/web"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestTraceID_GeneratesAndEchoes(t *testing.T) {
	var seen string
	h := TraceID(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = web.TraceID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(TraceHeader))
}

func TestTraceID_ReusesValidIncomingID(t *testing.T) {
	incoming := uuid.NewString()
	h := TraceID(zap.NewNop())(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceHeader, incoming)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, incoming, rec.Header().Get(TraceHeader))

	req.Header.Set(TraceHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(TraceHeader))
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	r := chi.NewRouter()
	r.Use(TraceID(logger), RequestLogger())
	r.Get("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hi"))
	})

	for _, path := range []string{"/api/products/7", "/boom", "/ok"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 3)

	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, "/api/products/{id}", entries[0].ContextMap()["route"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, zap.InfoLevel, entries[2].Level)
	assert.Equal(t, int64(2), entries[2].ContextMap()["bytes"])
	assert.NotEmpty(t, entries[2].ContextMap()["traceId"])
}

func TestMetrics_PassesThrough(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics())
	r.Get("/api/faqs", okHandler)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/faqs", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

type mockVerifier struct {
	VerifyFunc func(token string) (string, error)
}

func (m *mockVerifier) Verify(token string) (string, error) {
	return m.VerifyFunc(token)
}

func TestRequireAdmin(t *testing.T) {
	verifier := &mockVerifier{
		VerifyFunc: func(token string) (string, error) {
			if token == "good" {
				return "admin", nil
			}
			return "", errors.New("signature is invalid")
		},
	}
	h := RequireAdmin(verifier)(okHandler)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer good", http.StatusNoContent},
		{"lowercase scheme", "bearer good", http.StatusNoContent},
		{"bad token", "Bearer bad", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/products/1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnauthorized {
				var resp web.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "UNAUTHORIZED", resp.Error)
			}
		})
	}
}

func TestRequireAdmin_Disabled(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireAdmin(nil)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

type failingCounter struct{}

func (failingCounter) Incr(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("redis: connection refused")
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	h := RateLimit(NewMemoryCounter(), 2, time.Minute)(okHandler)

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		req.RemoteAddr = ip + ":51000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1").Code)

	rec := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, send("10.0.0.2").Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	h := RateLimit(failingCounter{}, 1, time.Minute)(okHandler)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reviews", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestMemoryCounter_WindowResets(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCounter()
	c.now = func() time.Time { return now }

	n, reset, _ := c.Incr(context.Background(), "k", time.Minute)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, time.Minute, reset)

	now = now.Add(30 * time.Second)
	n, reset, _ = c.Incr(context.Background(), "k", time.Minute)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 30*time.Second, reset)

	now = now.Add(31 * time.Second)
	n, _, _ = c.Incr(context.Background(), "k", time.Minute)
	assert.Equal(t, int64(1), n)
}

func TestRealIP(t *testing.T) {
	trusted := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}

	tests := []struct {
		name    string
		trusted []netip.Prefix
		remote  string
		xff     []string
		realIP  string
		want    string
	}{
		{name: "no proxies configured", remote: "203.0.113.9:4000", xff: []string{"1.1.1.1"}, want: "203.0.113.9:4000"},
		{name: "untrusted peer", trusted: trusted, remote: "203.0.113.9:4000", xff: []string{"1.1.1.1"}, realIP: "2.2.2.2", want: "203.0.113.9:4000"},
		{name: "trusted peer", trusted: trusted, remote: "10.0.0.5:4000", xff: []string{"198.51.100.7"}, want: "198.51.100.7:4000"},
		{name: "spoofed leftmost hop", trusted: trusted, remote: "10.0.0.5:4000", xff: []string{"6.6.6.6, 198.51.100.7, 10.0.0.4"}, want: "198.51.100.7:4000"},
		{name: "repeated headers", trusted: trusted, remote: "10.0.0.5:4000", xff: []string{"6.6.6.6", "198.51.100.7"}, want: "198.51.100.7:4000"},
		{name: "malformed hop", trusted: trusted, remote: "10.0.0.5:4000", xff: []string{"198.51.100.7, junk"}, want: "10.0.0.5:4000"},
		{name: "x-real-ip", trusted: trusted, remote: "10.0.0.5:4000", realIP: "198.51.100.8", want: "198.51.100.8:4000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := RealIP(tt.trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = r.RemoteAddr
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for _, v := range tt.xff {
				req.Header.Add("X-Forwarded-For", v)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, seen)
		})
	}
}

func TestRateLimit_KeysOnRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Route("/api/reviews", func(r chi.Router) {
		r.With(RateLimit(NewMemoryCounter(), 2, time.Minute)).Post("/", okHandler)
	})

	var codes []int
	for _, path := range []string{"/api/reviews", "/api/reviews/", "/api/reviews", "/api/reviews/"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "10.0.0.1:51000"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}
