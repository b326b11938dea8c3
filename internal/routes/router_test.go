package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sankofa/internal/config"
	domainUser "sankofa/internal/domain/user"
	"sankofa/internal/infrastructure/database/postgres"
	"sankofa/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	db     *postgres.DB
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	cfg := &config.Config{
		Server:  config.ServerConfig{Environment: "test"},
		JWT:     config.JWTConfig{Secret: testutil.JWTSecret},
		MQTT:    config.MQTTConfig{Workers: 1, BufferSize: 10},
		Pricing: config.DefaultPricing(),
	}
	db := testutil.OpenDB(t)
	svc := NewServices(cfg, db, Infrastructure{})
	return &testServer{t: t, db: db, router: SetupRoutes(cfg, db, svc, nil)}
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCollectionFlow(t *testing.T) {
	s := newTestServer(t)
	collector := testutil.SeedUser(t, s.db, domainUser.RoleCollector)
	manager := testutil.SeedUser(t, s.db, domainUser.RoleHubManager)
	hub := testutil.SeedHub(t, s.db, 100)

	w, env := s.do(http.MethodPost, "/api/v1/collections", testutil.Token(t, collector), gin.H{
		"hub_id":       hub.ID,
		"weight":       12.5,
		"plastic_type": "PET",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.Success)

	var created struct {
		ID         uuid.UUID `json:"id"`
		Status     string    `json:"status"`
		CashAmount float64   `json:"cash_amount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, 25.0, created.CashAmount)

	managerToken := testutil.Token(t, manager)

	w, env = s.do(http.MethodPut, "/api/v1/collections/"+uuid.NewString()+"/verify", managerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)

	w, _ = s.do(http.MethodPut, "/api/v1/collections/"+created.ID.String()+"/verify", managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = s.do(http.MethodPut, "/api/v1/collections/"+created.ID.String()+"/verify", managerToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = s.do(http.MethodGet, "/api/v1/wallet", testutil.Token(t, collector), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var wallet struct {
		CashBalance  float64 `json:"cash_balance"`
		TokenBalance float64 `json:"token_balance"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &wallet))
	assert.Equal(t, 25.0, wallet.CashBalance)
	assert.Equal(t, 62.5, wallet.TokenBalance)

	w, env = s.do(http.MethodGet, "/api/v1/analytics/dashboard", managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dashboard struct {
		Collections struct {
			VerifiedWeight float64 `json:"verified_weight"`
		} `json:"collections"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dashboard))
	assert.Equal(t, 12.5, dashboard.Collections.VerifiedWeight)
}

func TestRoleGuards(t *testing.T) {
	s := newTestServer(t)
	donor := testutil.SeedUser(t, s.db, domainUser.RoleDonor)
	collector := testutil.SeedUser(t, s.db, domainUser.RoleCollector)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"no token", http.MethodGet, "/api/v1/profile", "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/api/v1/profile", "not-a-jwt", http.StatusUnauthorized},
		{"donor creating collection", http.MethodPost, "/api/v1/collections", testutil.Token(t, donor), http.StatusForbidden},
		{"collector reading analytics", http.MethodGet, "/api/v1/analytics/dashboard", testutil.Token(t, collector), http.StatusForbidden},
		{"collector on admin routes", http.MethodGet, "/api/v1/admin/users", testutil.Token(t, collector), http.StatusForbidden},
		{"collector donating", http.MethodPost, "/api/v1/donations", testutil.Token(t, collector), http.StatusForbidden},
		{"profile", http.MethodGet, "/api/v1/profile", testutil.Token(t, collector), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := s.do(tt.method, tt.path, tt.token, gin.H{})
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.Equal(t, tt.want == http.StatusOK, env.Success)
		})
	}
}

func TestMessagesHideDeletedSide(t *testing.T) {
	s := newTestServer(t)
	alice := testutil.SeedUser(t, s.db, domainUser.RoleCollector)
	bob := testutil.SeedUser(t, s.db, domainUser.RoleHubManager)

	w, env := s.do(http.MethodPost, "/api/v1/messages", testutil.Token(t, alice), gin.H{
		"recipient_id": bob.ID,
		"subject":      "Pickup",
		"content":      "Five bags ready",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var msg struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &msg))

	w, _ = s.do(http.MethodDelete, "/api/v1/messages/"+msg.ID.String(), testutil.Token(t, bob), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/messages/"+msg.ID.String(), testutil.Token(t, bob), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/messages/"+msg.ID.String(), testutil.Token(t, alice), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/messages", testutil.Token(t, alice), gin.H{
		"recipient_id": uuid.New(),
		"subject":      "Hello",
		"content":      "Anyone there?",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMiscEndpoints(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.SeedUser(t, s.db, domainUser.RoleAdmin)
	token := testutil.Token(t, admin)

	w, _ := s.do(http.MethodPost, "/api/v1/donations/webhook", "", gin.H{"event": "charge.success"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w, env := s.do(http.MethodGet, "/api/v1/admin/ingestion/metrics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "messages_received")

	w, env = s.do(http.MethodPost, "/api/v1/assistant/chat", token, gin.H{"message": "Where can I drop off bottles?"})
	require.Equal(t, http.StatusOK, w.Code)
	var chat struct {
		Source string `json:"source"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &chat))
	assert.Equal(t, "static", chat.Source)

	w, _ = s.do(http.MethodGet, "/api/v1/hubs/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/admin/users/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStoredAccountDecidesAccess(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.SeedUser(t, s.db, domainUser.RoleAdmin)
	adminToken := testutil.Token(t, admin)

	t.Run("deactivated staff lose access", func(t *testing.T) {
		manager := testutil.SeedUser(t, s.db, domainUser.RoleHubManager)
		token := testutil.Token(t, manager)

		w, _ := s.do(http.MethodGet, "/api/v1/collections", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w, _ = s.do(http.MethodDelete, "/api/v1/admin/users/"+manager.ID.String(), adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w, env := s.do(http.MethodGet, "/api/v1/collections", token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, env.Success)
	})

	t.Run("demoted staff lose staff routes", func(t *testing.T) {
		manager := testutil.SeedUser(t, s.db, domainUser.RoleHubManager)
		token := testutil.Token(t, manager)

		w, _ := s.do(http.MethodPut, "/api/v1/admin/users/"+manager.ID.String(), adminToken, gin.H{"role": "collector"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w, _ = s.do(http.MethodGet, "/api/v1/payments", token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w, _ = s.do(http.MethodGet, "/api/v1/collections/mine", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSupabaseIdentityFlow(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.SeedUser(t, s.db, domainUser.RoleAdmin)
	manager := testutil.SeedUser(t, s.db, domainUser.RoleHubManager)
	hub := testutil.SeedHub(t, s.db, 100)

	authID := uuid.New()
	w, _ := s.do(http.MethodPost, "/api/v1/admin/users", testutil.Token(t, admin), gin.H{
		"id":    authID,
		"name":  "Kofi Mensah",
		"email": "kofi@example.com",
		"role":  "collector",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Supabase access tokens carry the generic "authenticated" role
	kofi := testutil.Token(t, &domainUser.User{ID: authID, Email: "kofi@example.com", Role: "authenticated"})

	w, _ = s.do(http.MethodGet, "/api/v1/profile", kofi, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(http.MethodPost, "/api/v1/collections", kofi, gin.H{"hub_id": hub.ID, "weight": 5, "plastic_type": "PET"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, _ = s.do(http.MethodPut, "/api/v1/collections/"+created.ID.String()+"/verify", testutil.Token(t, manager), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = s.do(http.MethodGet, "/api/v1/wallet", kofi, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var wallet struct {
		CashBalance float64 `json:"cash_balance"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &wallet))
	assert.Equal(t, 10.0, wallet.CashBalance)

	newcomer := testutil.Token(t, &domainUser.User{ID: uuid.New(), Email: "esi@example.com", Role: "authenticated"})
	w, env = s.do(http.MethodGet, "/api/v1/profile", newcomer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "collector", profile.Role)
}
