package donation

import appErrors "sankofa/pkg/errors"

var (
	ErrDonationNotFound = appErrors.NotFound("DONATION_NOT_FOUND", "donation not found")
	ErrAlreadySettled   = appErrors.Conflict("DONATION_SETTLED", "donation has already been settled")
	ErrInvalidSignature = appErrors.Unauthorized("INVALID_SIGNATURE", "invalid webhook signature")
	ErrGatewayFailed    = appErrors.New(502, "GATEWAY_ERROR", "payment gateway request failed")
)
