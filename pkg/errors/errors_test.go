package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	notFound := NotFound("HUB_NOT_FOUND", "hub not found")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "app error", err: notFound, want: http.StatusNotFound},
		{name: "wrapped app error", err: fmt.Errorf("repo: %w", notFound), want: http.StatusNotFound},
		{name: "default app error", err: NewAppError("X", "bad", nil), want: http.StatusBadRequest},
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	conflict := Conflict("ALREADY_VERIFIED", "collection already verified")
	wrapped := fmt.Errorf("verify: %w", conflict)

	assert.True(t, errors.Is(wrapped, conflict))
	assert.Equal(t, "collection already verified", MessageOf(wrapped))
	assert.Equal(t, "Internal server error", MessageOf(errors.New("db down")))
}

func TestValidationMessage(t *testing.T) {
	type payload struct {
		Weight float64 `validate:"required,gt=0"`
	}

	err := validator.New().Struct(payload{})
	appErr := Validation(err)

	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Invalid input: weight failed on 'required'", appErr.Message)
	assert.NotNil(t, appErr.Unwrap())
}

func TestWithErrKeepsStatus(t *testing.T) {
	gateway := New(http.StatusBadGateway, "GATEWAY_ERROR", "payment gateway request failed")
	cause := errors.New("timeout")

	wrapped := gateway.WithErr(cause)
	assert.Equal(t, http.StatusBadGateway, StatusOf(wrapped))
	assert.True(t, errors.Is(wrapped, cause))
	assert.Nil(t, gateway.Err)
}
