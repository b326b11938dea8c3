package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{name: "growth", current: 150, previous: 100, want: 50},
		{name: "decline", current: 75, previous: 100, want: -25},
		{name: "from zero", current: 10, previous: 0, want: 100},
		{name: "both zero", current: 0, previous: 0, want: 0},
		{name: "rounded", current: 2, previous: 3, want: -33.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentageChange(tt.current, tt.previous))
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.14, Round2(3.14159))
	assert.Equal(t, 2.5, Round2(2.499999))
}

func TestTokenRoundTrip(t *testing.T) {
	id := uuid.New()
	token, err := GenerateToken(id, "ama@example.com", "collector", "secret", 1)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)

	got, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "collector", claims.AppRole())

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestSupabaseStyleClaims(t *testing.T) {
	id := uuid.New()
	claims := Claims{
		Role:        "authenticated",
		AppMetadata: AppMetadata{Role: "hub-manager"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("supabase"))
	require.NoError(t, err)

	parsed, err := ValidateToken(signed, "supabase")
	require.NoError(t, err)

	got, err := parsed.Identity()
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "hub-manager", parsed.AppRole())
}

func TestValidateStructCustomTags(t *testing.T) {
	type req struct {
		Role        string `validate:"required,user_role"`
		PlasticType string `validate:"required,plastic_type"`
		Phone       string `validate:"omitempty,phone"`
	}

	assert.NoError(t, ValidateStruct(req{Role: "collector", PlasticType: "PET", Phone: "0241234567"}))
	assert.NoError(t, ValidateStruct(req{Role: "donor", PlasticType: "HDPE", Phone: "+233241234567"}))
	assert.Error(t, ValidateStruct(req{Role: "pirate", PlasticType: "PET"}))
	assert.Error(t, ValidateStruct(req{Role: "collector", PlasticType: "glass"}))
	assert.Error(t, ValidateStruct(req{Role: "collector", PlasticType: "PET", Phone: "abc"}))
}

func TestPasswordHelpers(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("Sankofa#2024"))

	hash, err := HashPassword("Sankofa#2024")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "Sankofa#2024"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestSanitizers(t *testing.T) {
	assert.Equal(t, "ama@example.com", SanitizeEmail("  <b>AMA@Example.com</b> "))
	assert.Equal(t, "+233 24 123", SanitizePhone("+233 24 123<script>"))
	assert.Equal(t, "&lt;b&gt;hi&lt;/b&gt;", SanitizeString(" <b>hi</b> "))

	_, err := ValidateAndSanitizeEmail("not-an-email")
	assert.Error(t, err)
}

func TestNewListResponse(t *testing.T) {
	resp := NewListResponse([]int{1, 2}, 41, 2, 20)
	assert.Equal(t, 3, resp.TotalPages)

	page, size := NormalizePage(0, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, size)
}

func TestEnvelopes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorResponse(c, http.StatusNotFound, "hub not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"hub not found"}`, w.Body.String())
}

func TestParseOptional(t *testing.T) {
	id, err := ParseOptionalUUID("")
	assert.NoError(t, err)
	assert.Nil(t, id)

	_, err = ParseOptionalUUID("hub-1")
	assert.Error(t, err)

	ts, err := ParseOptionalTime("2024-03-01")
	assert.NoError(t, err)
	assert.Equal(t, 2024, ts.Year())

	ts, err = ParseOptionalTime("2024-03-01T10:00:00+02:00")
	assert.NoError(t, err)
	assert.Equal(t, 8, ts.Hour())

	_, err = ParseOptionalTime("March 1st")
	assert.Error(t, err)
}
