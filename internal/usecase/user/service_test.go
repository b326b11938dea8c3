package user

import (
	"context"
	"net/http"
	"testing"

	domainUser "sankofa/internal/domain/user"
	"sankofa/internal/infrastructure/database/postgres"
	"sankofa/internal/testutil"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*Service, *postgres.DB) {
	db := testutil.OpenDB(t)
	return NewService(postgres.NewUserRepository(db)), db
}

func TestRedeemTokens(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	collector := testutil.SeedUser(t, db, domainUser.RoleCollector, func(u *domainUser.User) {
		u.TokenBalance = 50
	})

	resp, err := svc.RedeemTokens(ctx, collector.ID, &RedeemRequest{Tokens: 30, Purpose: "nhis_enrollment"})
	require.NoError(t, err)
	assert.Equal(t, 20.0, resp.TokenBalance)

	_, err = svc.RedeemTokens(ctx, collector.ID, &RedeemRequest{Tokens: 30, Purpose: "nhis_renewal"})
	assert.ErrorIs(t, err, domainUser.ErrInsufficientTokens)
	assert.Equal(t, http.StatusUnprocessableEntity, appErrors.StatusOf(err))

	_, err = svc.RedeemTokens(ctx, collector.ID, &RedeemRequest{Tokens: 1, Purpose: "groceries"})
	assert.Equal(t, http.StatusBadRequest, appErrors.StatusOf(err))

	wallet, err := svc.GetWallet(ctx, collector.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, wallet.TokenBalance)
	assert.Equal(t, "GHS", wallet.Currency)
}

func TestCreateUser(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &CreateUserRequest{
		Name:     "Kofi Mensah",
		Email:    "Kofi@Example.com",
		Role:     "hub-manager",
		Password: utils.StringPtr("Str0ng!pass"),
	})
	require.NoError(t, err)
	assert.Equal(t, "kofi@example.com", created.Email)
	assert.Equal(t, "active", created.Status)

	_, err = svc.CreateUser(ctx, &CreateUserRequest{Name: "Kofi Again", Email: "kofi@example.com", Role: "donor"})
	assert.Equal(t, http.StatusConflict, appErrors.StatusOf(err))

	_, err = svc.CreateUser(ctx, &CreateUserRequest{
		Name:     "Weak",
		Email:    "weak@example.com",
		Role:     "donor",
		Password: utils.StringPtr("password"),
	})
	assert.Equal(t, http.StatusBadRequest, appErrors.StatusOf(err))
}

func TestUpdateProfileAndDeactivate(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	donor := testutil.SeedUser(t, db, domainUser.RoleDonor)

	updated, err := svc.UpdateProfile(ctx, donor.ID, &UpdateProfileRequest{
		Name:   utils.StringPtr("Abena Owusu"),
		Region: utils.StringPtr("Ashanti"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Abena Owusu", updated.Name)
	assert.Equal(t, "Ashanti", *updated.Region)

	require.NoError(t, svc.DeactivateUser(ctx, donor.ID))
	got, err := svc.GetUser(ctx, donor.ID)
	require.NoError(t, err)
	assert.Equal(t, "inactive", got.Status)

	list, err := svc.ListUsers(ctx, &ListUsersRequest{Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
}

func TestCreateUser_WithAuthID(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	authID := uuid.New()

	created, err := svc.CreateUser(ctx, &CreateUserRequest{ID: &authID, Name: "Kofi Mensah", Email: "kofi@example.com", Role: "hub-manager"})
	require.NoError(t, err)
	assert.Equal(t, authID, created.ID)

	account, err := svc.Resolve(ctx, authID, "kofi@example.com", "authenticated")
	require.NoError(t, err)
	assert.Equal(t, domainUser.RoleHubManager, account.Role, "stored role wins over the token")
}

func TestResolve(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	t.Run("provisions a new identity", func(t *testing.T) {
		id := uuid.New()
		account, err := svc.Resolve(ctx, id, "Ama.Owusu@Example.com", "authenticated")
		require.NoError(t, err)
		assert.Equal(t, id, account.ID)
		assert.Equal(t, "ama.owusu@example.com", account.Email)
		assert.Equal(t, "ama.owusu", account.Name)
		assert.Equal(t, domainUser.RoleCollector, account.Role)

		profile, err := svc.GetProfile(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "active", profile.Status)
	})

	t.Run("keeps a known role claim", func(t *testing.T) {
		account, err := svc.Resolve(ctx, uuid.New(), "donor@example.com", "donor")
		require.NoError(t, err)
		assert.Equal(t, domainUser.RoleDonor, account.Role)
	})

	t.Run("returns the stored account", func(t *testing.T) {
		existing := testutil.SeedUser(t, db, domainUser.RoleVolunteer)
		account, err := svc.Resolve(ctx, existing.ID, "other@example.com", "admin")
		require.NoError(t, err)
		assert.Equal(t, domainUser.RoleVolunteer, account.Role)
		assert.Equal(t, existing.Email, account.Email)
	})

	t.Run("email owned by another account", func(t *testing.T) {
		existing := testutil.SeedUser(t, db, domainUser.RoleCollector)
		_, err := svc.Resolve(ctx, uuid.New(), existing.Email, "collector")
		assert.ErrorIs(t, err, domainUser.ErrIdentityConflict)
	})

	t.Run("token without email", func(t *testing.T) {
		_, err := svc.Resolve(ctx, uuid.New(), "", "collector")
		assert.ErrorIs(t, err, domainUser.ErrUserNotFound)
	})
}
