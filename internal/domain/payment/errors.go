package payment

import appErrors "sankofa/pkg/errors"

var (
	ErrPaymentNotFound    = appErrors.NotFound("PAYMENT_NOT_FOUND", "payment not found")
	ErrInvalidTransition  = appErrors.Conflict("INVALID_STATUS_TRANSITION", "payment status cannot change from its current state")
	ErrInsufficientFunds  = appErrors.Unprocessable("INSUFFICIENT_BALANCE", "amount exceeds the user's cash balance")
	ErrDuplicateReference = appErrors.Conflict("DUPLICATE_TRANSACTION", "transaction id already exists")
)
