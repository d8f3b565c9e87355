package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kakairsyad/Interior-market/internal/auth"
	"github.com/kakairsyad/Interior-market/internal/catalog"
	"github.com/kakairsyad/Interior-market/internal/checkout"
	"github.com/kakairsyad/Interior-market/internal/session"
)

type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Details string   `json:"details,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleError maps package errors onto HTTP status codes.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var checkoutValidation *checkout.ValidationError
	var authValidation *auth.ValidationError

	switch {
	case errors.As(err, &checkoutValidation):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "missing required fields",
			Code:   "validation_failed",
			Fields: checkoutValidation.Fields,
		})
	case errors.As(err, &authValidation):
		respondError(w, http.StatusUnprocessableEntity, "validation_failed", authValidation.Message)
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", "product not found")
	case errors.Is(err, catalog.ErrCategoryNotFound):
		respondError(w, http.StatusNotFound, "category_not_found", "category not found")
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid_credentials", auth.MsgInvalidCredentials)
	case errors.Is(err, auth.ErrUserExists):
		respondError(w, http.StatusConflict, "user_exists", auth.MsgUserExists)
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", err.Error())
	case errors.Is(err, checkout.ErrSubmissionInProgress):
		respondError(w, http.StatusConflict, "submission_in_progress", err.Error())
	case errors.Is(err, checkout.ErrCheckoutComplete):
		respondError(w, http.StatusConflict, "checkout_complete", err.Error())
	case errors.Is(err, session.ErrCartLocked):
		respondError(w, http.StatusConflict, "cart_locked", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "request timed out")
	case errors.Is(err, context.Canceled):
		// client went away, nothing useful to send
		w.WriteHeader(499)
	default:
		loggerFrom(r.Context()).Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// decodeJSON reads a JSON body of at most limit bytes into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
			return false
		}
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}
