package volunteer

import appErrors "sankofa/pkg/errors"

var (
	ErrVolunteerNotFound = appErrors.NotFound("VOLUNTEER_NOT_FOUND", "volunteer application not found")
	ErrAlreadyApplied    = appErrors.Conflict("ALREADY_APPLIED", "you have already submitted a volunteer application")
	ErrAlreadyReviewed   = appErrors.Conflict("ALREADY_REVIEWED", "application has already been reviewed")
	ErrNotApproved       = appErrors.Unprocessable("NOT_APPROVED", "hours can only be logged for approved volunteers")
)
