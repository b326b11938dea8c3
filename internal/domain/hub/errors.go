package hub

import appErrors "sankofa/pkg/errors"

var (
	ErrHubNotFound      = appErrors.NotFound("HUB_NOT_FOUND", "hub not found")
	ErrHubAlreadyExists = appErrors.Conflict("HUB_EXISTS", "a hub with this name already exists in the region")
	ErrInvalidFillLevel = appErrors.NewAppError("INVALID_FILL_LEVEL", "fill level cannot be negative", nil)
)
