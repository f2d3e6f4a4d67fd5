package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a2sh3r/mlmnet/internal/hash"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func echoHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(body)
	})
}

func TestGzipMiddleware(t *testing.T) {
	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	_, err := zw.Write([]byte(`{"username":"alice"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &compressed)
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()

	NewGzipMiddleware()(echoHandler()).ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

	zr, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, `{"username":"alice"}`, string(body))
}

func TestGzipMiddleware_InvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("plain"))
	req.Header.Set("Content-Encoding", "gzip")
	w := httptest.NewRecorder()

	NewGzipMiddleware()(echoHandler()).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHashMiddleware(t *testing.T) {
	const secret = "webhook-secret"
	body := `{"user_id":3,"plan_id":1}`

	tests := []struct {
		name       string
		secret     string
		signature  string
		wantStatus int
	}{
		{"valid signature", secret, hash.CalculateHash(body, secret), http.StatusCreated},
		{"wrong signature", secret, "deadbeef", http.StatusBadRequest},
		{"missing signature", secret, "", http.StatusBadRequest},
		{"check disabled", "", "", http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/payments/enrollment", strings.NewReader(body))
			if tt.signature != "" {
				req.Header.Set(HashHeader, tt.signature)
			}
			w := httptest.NewRecorder()

			NewHashMiddleware(tt.secret)(echoHandler()).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, body, w.Body.String(), "body must reach the handler intact")
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewClientRateLimiter(rate.Limit(1), 2)
	handler := RateLimitMiddleware(limiter)(echoHandler())

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, statuses)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code, "other clients keep their own bucket")
}

func TestLoggingMiddleware(t *testing.T) {
	var pattern string
	r := chi.NewRouter()
	r.Use(NewLoggingMiddleware())
	r.Get("/api/users/{id}/network", func(w http.ResponseWriter, r *http.Request) {
		pattern = routePattern(r)
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users/42/network", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "/api/users/{id}/network", pattern)
	assert.Equal(t, "unmatched", routePattern(httptest.NewRequest(http.MethodGet, "/", nil)))
}
