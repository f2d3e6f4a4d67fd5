package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a2sh3r/mlmnet/internal/hash"
	"github.com/a2sh3r/mlmnet/internal/middleware"
	"github.com/a2sh3r/mlmnet/internal/mocks/service_mocks"
	"github.com/a2sh3r/mlmnet/internal/models"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	products := service_mocks.NewMockProductService(ctrl)
	products.EXPECT().ListProducts(gomock.Any()).Return(nil, nil)

	handler := NewHandler(nil, nil, products, nil, nil)
	router := NewRouter(handler, "testsecret", nil)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/api/products", http.StatusOK},
		{"POST", "/api/users", http.StatusBadRequest},
		{"GET", "/api/users/abc/network", http.StatusBadRequest},
		{"POST", "/api/payments/enrollment", http.StatusBadRequest},
		{"DELETE", "/api/products", http.StatusMethodNotAllowed},
		{"GET", "/notfound", http.StatusNotFound},
		{"GET", "/metrics", http.StatusOK},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		resp := w.Result()
		if resp.StatusCode != tt.status {
			t.Errorf("%s %s: got %d, want %d", tt.method, tt.path, resp.StatusCode, tt.status)
		}
		resp.Body.Close()
	}
}

func TestRouter_SignedWebhook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	commissions := service_mocks.NewMockCommissionService(ctrl)
	commissions.EXPECT().OnRecurringPaid(gomock.Any(), int64(3), int64(1), "renew-1").
		Return(&models.DistributionResult{Key: "renew-1", OriginUserID: 3, Kind: models.EventRecurring}, nil)

	router := NewRouter(NewHandler(nil, nil, nil, commissions, nil), "testsecret", nil)
	body := `{"user_id":3,"plan_id":1}`

	unsigned := httptest.NewRequest(http.MethodPost, "/api/payments/recurring", strings.NewReader(body))
	unsigned.Header.Set("Idempotency-Key", "renew-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, unsigned)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	signed := httptest.NewRequest(http.MethodPost, "/api/payments/recurring", strings.NewReader(body))
	signed.Header.Set("Idempotency-Key", "renew-1")
	signed.Header.Set(middleware.HashHeader, hash.CalculateHash(body, "testsecret"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, signed)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	products := service_mocks.NewMockProductService(ctrl)
	products.EXPECT().ListProducts(gomock.Any()).Return([]models.Product{}, nil).Times(1)

	router := NewRouter(NewHandler(nil, nil, products, nil, nil), "", middleware.NewClientRateLimiter(rate.Limit(0.001), 1))

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
