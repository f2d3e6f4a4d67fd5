package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a2sh3r/mlmnet/internal/apperrors"
	"github.com/a2sh3r/mlmnet/internal/mocks/service_mocks"
	"github.com/a2sh3r/mlmnet/internal/models"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceMocks struct {
	users       *service_mocks.MockUserService
	network     *service_mocks.MockNetworkService
	products    *service_mocks.MockProductService
	commissions *service_mocks.MockCommissionService
	withdrawals *service_mocks.MockWithdrawalService
}

func newTestRouter(t *testing.T) (http.Handler, serviceMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := serviceMocks{
		users:       service_mocks.NewMockUserService(ctrl),
		network:     service_mocks.NewMockNetworkService(ctrl),
		products:    service_mocks.NewMockProductService(ctrl),
		commissions: service_mocks.NewMockCommissionService(ctrl),
		withdrawals: service_mocks.NewMockWithdrawalService(ctrl),
	}
	h := NewHandler(m.users, m.network, m.products, m.commissions, m.withdrawals)
	return NewRouter(h, "", nil), m
}

func doRequest(router http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_RegisterUser(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(m serviceMocks)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"username":"bob","email":"bob@example.com","referral_token":"tok-a"}`,
			mockSetup: func(m serviceMocks) {
				m.users.EXPECT().Register(gomock.Any(), "bob", "bob@example.com", "tok-a").
					Return(&models.Registration{UserID: 2, ReferralToken: "tok-b"}, nil)
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "invalid json",
			body:           `{"username":`,
			mockSetup:      func(serviceMocks) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing email",
			body:           `{"username":"bob"}`,
			mockSetup:      func(serviceMocks) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "unknown sponsor",
			body: `{"username":"bob","email":"bob@example.com","referral_token":"nope"}`,
			mockSetup: func(m serviceMocks) {
				m.users.EXPECT().Register(gomock.Any(), "bob", "bob@example.com", "nope").Return(nil, apperrors.ErrInvalidSponsor)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "duplicate identity",
			body: `{"username":"bob","email":"bob@example.com"}`,
			mockSetup: func(m serviceMocks) {
				m.users.EXPECT().Register(gomock.Any(), "bob", "bob@example.com", "").Return(nil, apperrors.ErrDuplicateIdentity)
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			name: "service error",
			body: `{"username":"bob","email":"bob@example.com"}`,
			mockSetup: func(m serviceMocks) {
				m.users.EXPECT().Register(gomock.Any(), "bob", "bob@example.com", "").Return(nil, errors.New("fail"))
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)
			tt.mockSetup(m)

			w := doRequest(router, http.MethodPost, "/api/users", tt.body)
			assert.Equal(t, tt.wantStatusCode, w.Code)
		})
	}
}

func TestHandler_GetNetwork(t *testing.T) {
	router, m := newTestRouter(t)

	snapshot := &models.NetworkSnapshot{UserID: 1}
	for i := range snapshot.Levels {
		snapshot.Levels[i] = []models.MemberSummary{}
	}
	snapshot.Levels[0] = []models.MemberSummary{{UserID: 2, Username: "b", IsActive: true}}
	m.network.EXPECT().Snapshot(gomock.Any(), int64(1)).Return(snapshot, nil)
	m.network.EXPECT().Snapshot(gomock.Any(), int64(9)).Return(nil, apperrors.ErrUserNotFound)

	w := doRequest(router, http.MethodGet, "/api/users/1/network", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Levels [][]models.MemberSummary `json:"levels"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Levels, models.MaxLevel)
	assert.Len(t, got.Levels[0], 1)
	assert.NotNil(t, got.Levels[7])

	w = doRequest(router, http.MethodGet, "/api/users/9/network", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_GetFinance(t *testing.T) {
	router, m := newTestRouter(t)
	m.commissions.EXPECT().GetFinance(gomock.Any(), int64(2)).Return(&models.Finance{
		Balance:     models.Balance{Current: decimal.NewFromInt(50)},
		Commissions: []models.CommissionEntry{{ID: 1, Amount: decimal.NewFromInt(50), Kind: models.EventEnrollment, Level: 1}},
	}, nil)

	w := doRequest(router, http.MethodGet, "/api/users/2/finance", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"current":"50"`)
}

func TestHandler_RequestWithdrawal(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(m serviceMocks)
		wantStatusCode int
	}{
		{
			name: "accepted",
			body: `{"amount":"70"}`,
			mockSetup: func(m serviceMocks) {
				m.withdrawals.EXPECT().RequestWithdrawal(gomock.Any(), int64(1), gomock.Any()).
					Return(&models.WithdrawalRequest{ID: 1, UserID: 1, Amount: decimal.NewFromInt(70), Status: models.WithdrawalPending}, nil)
			},
			wantStatusCode: http.StatusAccepted,
		},
		{
			name: "below minimum",
			body: `{"amount":30}`,
			mockSetup: func(m serviceMocks) {
				m.withdrawals.EXPECT().RequestWithdrawal(gomock.Any(), int64(1), gomock.Any()).Return(nil, apperrors.ErrBelowMinimumWithdrawal)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "insufficient funds",
			body: `{"amount":500}`,
			mockSetup: func(m serviceMocks) {
				m.withdrawals.EXPECT().RequestWithdrawal(gomock.Any(), int64(1), gomock.Any()).Return(nil, apperrors.ErrInsufficientBalance)
			},
			wantStatusCode: http.StatusPaymentRequired,
		},
		{
			name:           "not a number",
			body:           `{"amount":"lots"}`,
			mockSetup:      func(serviceMocks) {},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)
			tt.mockSetup(m)

			w := doRequest(router, http.MethodPost, "/api/users/1/withdrawals", tt.body)
			assert.Equal(t, tt.wantStatusCode, w.Code)
		})
	}
}

func TestHandler_EnrollmentPaid(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		headers        []string
		mockSetup      func(m serviceMocks)
		wantStatusCode int
	}{
		{
			name:    "key from header",
			body:    `{"user_id":3,"plan_id":1,"idempotency_key":"ignored"}`,
			headers: []string{"Idempotency-Key", "pay-1"},
			mockSetup: func(m serviceMocks) {
				m.commissions.EXPECT().OnEnrollmentPaid(gomock.Any(), int64(3), int64(1), "pay-1").
					Return(&models.Activation{UserID: 3, PlanID: 1, IsActive: true}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "key from body",
			body: `{"user_id":3,"plan_id":1,"idempotency_key":"pay-2"}`,
			mockSetup: func(m serviceMocks) {
				m.commissions.EXPECT().OnEnrollmentPaid(gomock.Any(), int64(3), int64(1), "pay-2").
					Return(&models.Activation{UserID: 3, PlanID: 1, IsActive: true, Duplicate: true}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "missing key",
			body: `{"user_id":3,"plan_id":1}`,
			mockSetup: func(m serviceMocks) {
				m.commissions.EXPECT().OnEnrollmentPaid(gomock.Any(), int64(3), int64(1), "").Return(nil, apperrors.ErrMissingIdempotencyKey)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing user",
			body:           `{"plan_id":1}`,
			mockSetup:      func(serviceMocks) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "already active",
			body: `{"user_id":3,"plan_id":1,"idempotency_key":"pay-3"}`,
			mockSetup: func(m serviceMocks) {
				m.commissions.EXPECT().OnEnrollmentPaid(gomock.Any(), int64(3), int64(1), "pay-3").Return(nil, apperrors.ErrUserAlreadyActive)
			},
			wantStatusCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)
			tt.mockSetup(m)

			w := doRequest(router, http.MethodPost, "/api/payments/enrollment", tt.body, tt.headers...)
			assert.Equal(t, tt.wantStatusCode, w.Code)
		})
	}
}

func TestHandler_CreateProduct(t *testing.T) {
	router, m := newTestRouter(t)
	body := `{"name":"starter","enrollment_fee":"199","recurring_fee":"49",
		"enrollment_commissions":["50","20","0","0","0","0","0","0"],
		"recurring_commissions":["5","2","0","0","0","0","0","0"]}`

	m.products.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, in models.ProductInput) (*models.Product, error) {
			assert.Equal(t, "starter", in.Name)
			assert.Len(t, in.Enrollment, models.MaxLevel)
			return &models.Product{ID: 1, Name: in.Name}, nil
		})

	w := doRequest(router, http.MethodPost, "/api/admin/products", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodPost, "/api/admin/products", `{"enrollment_fee":"1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_AdminWithdrawals(t *testing.T) {
	router, m := newTestRouter(t)

	m.withdrawals.EXPECT().ListWithdrawals(gomock.Any(), models.WithdrawalPending).Return(nil, nil)
	w := doRequest(router, http.MethodGet, "/api/admin/withdrawals?status=pending", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	m.withdrawals.EXPECT().GetWithdrawal(gomock.Any(), int64(7)).
		Return(&models.WithdrawalRequest{ID: 7, UserID: 3, Status: models.WithdrawalPending}, nil)
	w = doRequest(router, http.MethodGet, "/api/admin/withdrawals/7", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)

	m.withdrawals.EXPECT().GetWithdrawal(gomock.Any(), int64(404)).Return(nil, apperrors.ErrWithdrawalNotFound)
	w = doRequest(router, http.MethodGet, "/api/admin/withdrawals/404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/api/admin/withdrawals/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	gomock.InOrder(
		m.withdrawals.EXPECT().ApproveWithdrawal(gomock.Any(), int64(7)).
			Return(&models.WithdrawalRequest{ID: 7, Status: models.WithdrawalApproved}, nil),
		m.withdrawals.EXPECT().ApproveWithdrawal(gomock.Any(), int64(7)).Return(nil, apperrors.ErrAlreadyProcessed),
	)
	w = doRequest(router, http.MethodPost, "/api/admin/withdrawals/7/approve", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(router, http.MethodPost, "/api/admin/withdrawals/7/approve", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	m.withdrawals.EXPECT().RejectWithdrawal(gomock.Any(), int64(8), "duplicate account").
		Return(&models.WithdrawalRequest{ID: 8, Status: models.WithdrawalRejected}, nil)
	w = doRequest(router, http.MethodPost, "/api/admin/withdrawals/8/reject", `{"reason":"duplicate account"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	m.withdrawals.EXPECT().RejectWithdrawal(gomock.Any(), int64(9), "").Return(nil, apperrors.ErrWithdrawalNotFound)
	w = doRequest(router, http.MethodPost, "/api/admin/withdrawals/9/reject", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	m.withdrawals.EXPECT().FinancialReport(gomock.Any()).Return(models.FinancialReport{
		TotalUserBalance:         decimal.NewFromInt(300),
		TotalPendingWithdrawals:  decimal.NewFromInt(70),
		TotalApprovedWithdrawals: decimal.Zero,
	}, nil)
	w = doRequest(router, http.MethodGet, "/api/admin/reports/financial", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_pending_withdrawals":"70"`)
}
