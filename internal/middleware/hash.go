package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/a2sh3r/mlmnet/internal/apperrors"
	"github.com/a2sh3r/mlmnet/internal/hash"
	"github.com/a2sh3r/mlmnet/internal/logger"
	"go.uber.org/zap"
)

const HashHeader = "HashSHA256"

// NewHashMiddleware rejects requests whose body does not carry a valid
// HMAC-SHA256 signature in the HashSHA256 header. An empty secret disables
// the check.
func NewHashMiddleware(secretKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secretKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "failed to read body", http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			signature := r.Header.Get(HashHeader)
			if signature == "" {
				http.Error(w, "missing signature", http.StatusBadRequest)
				return
			}
			if err := hash.VerifyHash(string(body), secretKey, signature); err != nil {
				logger.Log.Warn("webhook signature rejected",
					zap.String("uri", r.RequestURI),
					zap.String("remote_addr", r.RemoteAddr),
				)
				http.Error(w, apperrors.ErrInvalidWebhookSignature.Error(), http.StatusBadRequest)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
