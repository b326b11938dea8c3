package testutil

import (
	"context"
	"testing"

	"sankofa/internal/domain/hub"
	"sankofa/internal/domain/user"
	"sankofa/internal/infrastructure/database/postgres"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const JWTSecret = "test-jwt-secret"

// OpenDB opens a private in-memory SQLite database migrated with the
// production models. It is closed via t.Cleanup.
func OpenDB(t *testing.T) *postgres.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := postgres.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// one connection keeps the in-memory database alive and serialises writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

// SeedUser inserts an active user with the given role.
func SeedUser(t *testing.T, db *postgres.DB, role user.Role, mutate ...func(*user.User)) *user.User {
	t.Helper()

	id := uuid.New()
	u := &user.User{
		ID:     id,
		Name:   string(role) + " " + id.String()[:8],
		Email:  id.String()[:8] + "@sankofa.test",
		Role:   role,
		Status: user.StatusActive,
		Region: utils.StringPtr("Greater Accra"),
	}
	for _, fn := range mutate {
		fn(u)
	}

	if err := postgres.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedHub inserts an active hub in Greater Accra.
func SeedHub(t *testing.T, db *postgres.DB, capacity float64, mutate ...func(*hub.Hub)) *hub.Hub {
	t.Helper()

	h := &hub.Hub{
		Name:     "Hub " + uuid.NewString()[:8],
		Region:   "Greater Accra",
		Location: "Agbogbloshie",
		Capacity: capacity,
		Status:   hub.StatusActive,
	}
	for _, fn := range mutate {
		fn(h)
	}

	if err := postgres.NewHubRepository(db).Create(context.Background(), h); err != nil {
		t.Fatalf("seed hub: %v", err)
	}
	return h
}

// Token mints a bearer token for u signed with JWTSecret.
func Token(t *testing.T, u *user.User) string {
	t.Helper()

	token, err := utils.GenerateToken(u.ID, u.Email, string(u.Role), JWTSecret, 1)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}
