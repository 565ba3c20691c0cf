package settlement

import "errors"

// Failure kinds surfaced to callers. Handlers map these to HTTP status codes
// with errors.Is; wrapped messages carry the specifics.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrMissingMember       = errors.New("member is required for a credit sale")
	ErrMemberNotFound      = errors.New("member not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrDebtNotFound        = errors.New("debt not found")
	ErrInsufficientPayment = errors.New("tendered amount is less than total")
	ErrOverPayment         = errors.New("payment exceeds remaining debt")
	ErrPaymentConflict     = errors.New("debt was modified concurrently")
)
