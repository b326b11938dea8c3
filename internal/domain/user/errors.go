package user

import appErrors "sankofa/pkg/errors"

var (
	ErrUserNotFound        = appErrors.NotFound("USER_NOT_FOUND", "user not found")
	ErrUserAlreadyExists   = appErrors.Conflict("USER_EXISTS", "user with this email already exists")
	ErrUserInactive        = appErrors.Forbidden("USER_INACTIVE", "user account is inactive")
	ErrIdentityConflict    = appErrors.Conflict("IDENTITY_CONFLICT", "email is registered to a different account")
	ErrInsufficientTokens  = appErrors.Unprocessable("INSUFFICIENT_TOKENS", "insufficient health token balance")
	ErrInsufficientBalance = appErrors.Unprocessable("INSUFFICIENT_BALANCE", "insufficient cash balance")
)
