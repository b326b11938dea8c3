package ingestion

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const maxClockSkew = 5 * time.Minute

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %s", e.Field, e.Message)
}

func ValidateFillReading(r *FillReading) error {
	if r.HubID == "" {
		return &ValidationError{Field: "hub_id", Message: "hub_id is required"}
	}
	if _, err := uuid.Parse(r.HubID); err != nil {
		return &ValidationError{Field: "hub_id", Message: "hub_id must be valid UUID"}
	}
	if r.FillKg < 0 {
		return &ValidationError{Field: "fill_kg", Message: "fill_kg must be non-negative"}
	}
	if r.RecordedAt.After(time.Now().Add(maxClockSkew)) {
		return &ValidationError{Field: "recorded_at", Message: "recorded_at is in the future"}
	}

	return nil
}
