package handlers

import (
	"net/http"
	"strings"
)

const idempotencyHeader = "Idempotency-Key"

// paymentEvent is the webhook body posted by the payment provider.
type paymentEvent struct {
	UserID         int64  `json:"user_id" validate:"required,gt=0"`
	PlanID         int64  `json:"plan_id" validate:"required,gt=0"`
	IdempotencyKey string `json:"idempotency_key"`
}

// key prefers the header over the body field.
func (e paymentEvent) key(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get(idempotencyHeader)); key != "" {
		return key
	}
	return strings.TrimSpace(e.IdempotencyKey)
}

func (h *Handler) EnrollmentPaid(w http.ResponseWriter, r *http.Request) {
	var event paymentEvent
	if err := h.decodeJSON(r, &event); err != nil {
		writeError(w, err, "enrollment payment")
		return
	}

	activation, err := h.commissionService.OnEnrollmentPaid(r.Context(), event.UserID, event.PlanID, event.key(r))
	if err != nil {
		writeError(w, err, "enrollment payment")
		return
	}
	writeJSON(w, http.StatusOK, activation)
}

func (h *Handler) RecurringPaid(w http.ResponseWriter, r *http.Request) {
	var event paymentEvent
	if err := h.decodeJSON(r, &event); err != nil {
		writeError(w, err, "recurring payment")
		return
	}

	result, err := h.commissionService.OnRecurringPaid(r.Context(), event.UserID, event.PlanID, event.key(r))
	if err != nil {
		writeError(w, err, "recurring payment")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
