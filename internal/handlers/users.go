package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type registerRequest struct {
	Username      string `json:"username" validate:"required"`
	Email         string `json:"email" validate:"required"`
	ReferralToken string `json:"referral_token"`
}

type withdrawalRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeError(w, err, "register user")
		return
	}

	reg, err := h.userService.Register(r.Context(), req.Username, req.Email, req.ReferralToken)
	if err != nil {
		writeError(w, err, "register user")
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err, "get user")
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, err, "get user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) GetNetwork(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err, "get network")
		return
	}

	snapshot, err := h.networkService.Snapshot(r.Context(), id)
	if err != nil {
		writeError(w, err, "get network")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) GetFinance(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err, "get finance")
		return
	}

	finance, err := h.commissionService.GetFinance(r.Context(), id)
	if err != nil {
		writeError(w, err, "get finance")
		return
	}
	writeJSON(w, http.StatusOK, finance)
}

func (h *Handler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err, "request withdrawal")
		return
	}

	var req withdrawalRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeError(w, err, "request withdrawal")
		return
	}

	created, err := h.withdrawalService.RequestWithdrawal(r.Context(), id, req.Amount)
	if err != nil {
		writeError(w, err, "request withdrawal")
		return
	}
	writeJSON(w, http.StatusAccepted, created)
}
