package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/a2sh3r/mlmnet/internal/apperrors"
	"github.com/a2sh3r/mlmnet/internal/models"
)

type rejectRequest struct {
	Reason string `json:"reason" validate:"max=512"`
}

func (h *Handler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	status := models.WithdrawalStatus(r.URL.Query().Get("status"))

	requests, err := h.withdrawalService.ListWithdrawals(r.Context(), status)
	if err != nil {
		writeError(w, err, "list withdrawals")
		return
	}
	if requests == nil {
		requests = []models.WithdrawalRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *Handler) GetWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err, "get withdrawal")
		return
	}

	req, err := h.withdrawalService.GetWithdrawal(r.Context(), id)
	if err != nil {
		writeError(w, err, "get withdrawal")
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *Handler) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err, "approve withdrawal")
		return
	}

	req, err := h.withdrawalService.ApproveWithdrawal(r.Context(), id)
	if err != nil {
		writeError(w, err, "approve withdrawal")
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *Handler) RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err, "reject withdrawal")
		return
	}

	// the reason is optional, so is the body
	var body rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, apperrors.ErrInvalidRequest, "reject withdrawal")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		writeError(w, apperrors.ErrInvalidRequest, "reject withdrawal")
		return
	}

	req, err := h.withdrawalService.RejectWithdrawal(r.Context(), id, body.Reason)
	if err != nil {
		writeError(w, err, "reject withdrawal")
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *Handler) FinancialReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.withdrawalService.FinancialReport(r.Context())
	if err != nil {
		writeError(w, err, "financial report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
