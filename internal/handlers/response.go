package handlers

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"koperasi-pos/internal/settlement"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func successResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func errorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
	}
}

func validAmount(s string) bool {
	d, err := decimal.NewFromString(s)
	return err == nil && !d.IsNegative()
}

// statusForError maps settlement failure kinds to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, settlement.ErrDebtNotFound),
		errors.Is(err, settlement.ErrProductNotFound),
		errors.Is(err, settlement.ErrMemberNotFound):
		return http.StatusNotFound
	case errors.Is(err, settlement.ErrInvalidInput),
		errors.Is(err, settlement.ErrMissingMember),
		errors.Is(err, settlement.ErrInsufficientPayment):
		return http.StatusBadRequest
	case errors.Is(err, settlement.ErrOverPayment),
		errors.Is(err, settlement.ErrPaymentConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
