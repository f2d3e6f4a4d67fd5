package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/a2sh3r/mlmnet/internal/apperrors"
	"github.com/a2sh3r/mlmnet/internal/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// writeError maps an error category to its HTTP status. Anything outside the
// known categories is logged and hidden behind a 500.
func writeError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperrors.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
		logger.Log.Error(op+" failed", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", zap.Error(err))
	}
}

// decodeJSON reads the body into dst and runs struct validation on it.
func (h *Handler) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.ErrInvalidRequest
	}
	if err := h.validate.Struct(dst); err != nil {
		return apperrors.ErrInvalidRequest
	}
	return nil
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidRequest
	}
	return id, nil
}
