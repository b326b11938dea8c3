package hub

import (
	"context"
	"net/http"
	"testing"

	domainHub "sankofa/internal/domain/hub"
	domainUser "sankofa/internal/domain/user"
	"sankofa/internal/events"
	"sankofa/internal/infrastructure/database/postgres"
	"sankofa/internal/mocks"
	"sankofa/internal/testutil"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreateAndList(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewService(postgres.NewHubRepository(db), postgres.NewUserRepository(db), nil)
	ctx := context.Background()
	manager := testutil.SeedUser(t, db, domainUser.RoleHubManager)
	donor := testutil.SeedUser(t, db, domainUser.RoleDonor)

	created, err := svc.Create(ctx, &CreateHubRequest{
		Name:      "Kaneshie Market Hub",
		Region:    "Greater Accra",
		Location:  "Kaneshie",
		Capacity:  1000,
		ManagerID: &manager.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "active", created.Status)

	_, err = svc.Create(ctx, &CreateHubRequest{Name: "Kaneshie Market Hub", Region: "greater accra", Location: "x", Capacity: 10})
	assert.Equal(t, http.StatusConflict, appErrors.StatusOf(err))

	_, err = svc.Create(ctx, &CreateHubRequest{Name: "Tema Hub", Region: "Greater Accra", Location: "Tema", Capacity: 10, ManagerID: &donor.ID})
	assert.ErrorIs(t, err, ErrManagerRole)

	_, err = svc.Create(ctx, &CreateHubRequest{Name: "No Capacity", Region: "Volta", Location: "Ho"})
	assert.Equal(t, http.StatusBadRequest, appErrors.StatusOf(err))

	list, err := svc.List(ctx, &ListHubsRequest{Search: "kaneshie"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
}

func TestEmpty_ReopensFullHub(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := testutil.OpenDB(t)
	publisher := mocks.NewMockPublisher(ctrl)
	svc := NewService(postgres.NewHubRepository(db), postgres.NewUserRepository(db), publisher)
	ctx := context.Background()

	full := testutil.SeedHub(t, db, 100, func(h *domainHub.Hub) {
		h.Status = domainHub.StatusFull
		h.CurrentCapacity = 100
	})

	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e events.Event) error {
		assert.Equal(t, events.HubEmptied, e.Type)
		return nil
	})

	resp, err := svc.Empty(ctx, full.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
	assert.Zero(t, resp.CurrentCapacity)

	_, err = svc.Empty(ctx, uuid.New(), uuid.New())
	assert.Equal(t, http.StatusNotFound, appErrors.StatusOf(err))
}

func TestUpdateDeleteAndStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := testutil.OpenDB(t)
	publisher := mocks.NewMockPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	svc := NewService(postgres.NewHubRepository(db), postgres.NewUserRepository(db), publisher)
	ctx := context.Background()
	h := testutil.SeedHub(t, db, 200, func(h *domainHub.Hub) { h.CurrentCapacity = 50 })

	updated, err := svc.Update(ctx, h.ID, &UpdateHubRequest{Status: utils.StringPtr("maintenance")})
	require.NoError(t, err)
	assert.Equal(t, "maintenance", updated.Status)

	stats, err := svc.Stats(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, stats.Utilisation)
	assert.Zero(t, stats.CollectionCount)

	require.NoError(t, svc.Delete(ctx, h.ID))
	_, err = svc.Get(ctx, h.ID)
	assert.Equal(t, http.StatusNotFound, appErrors.StatusOf(err))
}
