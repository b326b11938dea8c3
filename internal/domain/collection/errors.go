package collection

import appErrors "sankofa/pkg/errors"

var (
	ErrCollectionNotFound = appErrors.NotFound("COLLECTION_NOT_FOUND", "collection not found")
	ErrAlreadyVerified    = appErrors.Conflict("ALREADY_VERIFIED", "collection has already been verified")
	ErrHubNotAccepting    = appErrors.Unprocessable("HUB_NOT_ACCEPTING", "hub is not accepting collections")
	ErrNotOwner           = appErrors.Forbidden("NOT_OWNER", "collection belongs to another collector")
	ErrDeleteVerified     = appErrors.Conflict("COLLECTION_VERIFIED", "verified collections cannot be deleted")
)
