package paystack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		var req InitializeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.EqualValues(t, 15000, req.Amount)
		assert.Equal(t, "SNK-DON-abc", req.Reference)

		_, _ = w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.paystack.com/xyz","access_code":"xyz","reference":"SNK-DON-abc"}}`))
	}))
	defer srv.Close()

	c := NewClient("sk_test_123", srv.URL, time.Second)
	res, err := c.Initialize(context.Background(), InitializeRequest{Email: "kofi@example.com", Amount: 15000, Currency: "GHS", Reference: "SNK-DON-abc"})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/xyz", res.AuthorizationURL)
}

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/SNK-DON-abc", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"reference":"SNK-DON-abc","status":"success","amount":15000,"currency":"GHS","channel":"mobile_money","paid_at":"2024-05-01T10:00:00Z"}}`))
	}))
	defer srv.Close()

	tx, err := NewClient("sk_test_123", srv.URL, time.Second).Verify(context.Background(), "SNK-DON-abc")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, tx.Status)
	assert.Equal(t, "mobile_money", tx.Channel)
	require.NotNil(t, tx.PaidAt)
	assert.Equal(t, 2024, tx.PaidAt.Year())
}

func TestGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":false,"message":"Invalid key"}`))
	}))
	defer srv.Close()

	_, err := NewClient("bad", srv.URL, time.Second).Verify(context.Background(), "ref")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid key")
}

func TestVerifySignature(t *testing.T) {
	c := NewClient("sk_test_123", "", 0)
	body := []byte(`{"event":"charge.success","data":{"reference":"SNK-DON-abc"}}`)

	assert.True(t, c.VerifySignature(body, Sign("sk_test_123", body)))
	assert.False(t, c.VerifySignature(body, Sign("other", body)))
	assert.False(t, c.VerifySignature(body, ""))
}
