package healthdata

import appErrors "sankofa/pkg/errors"

var (
	ErrRecordNotFound    = appErrors.NotFound("HEALTH_DATA_NOT_FOUND", "health record not found")
	ErrNegativeCaseCount = appErrors.NewAppError("INVALID_CASE_COUNT", "disease case counts cannot be negative", nil)
)
