package collection

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"sankofa/internal/config"
	domainCollection "sankofa/internal/domain/collection"
	domainHub "sankofa/internal/domain/hub"
	domainUser "sankofa/internal/domain/user"
	"sankofa/internal/events"
	"sankofa/internal/infrastructure/database/postgres"
	"sankofa/internal/infrastructure/notification"
	"sankofa/internal/mocks"
	"sankofa/internal/testutil"
	appErrors "sankofa/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc       *Service
	db        *postgres.DB
	publisher *mocks.MockPublisher
	notifier  *mocks.MockNotifier
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	db := testutil.OpenDB(t)
	publisher := mocks.NewMockPublisher(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)

	svc := NewService(
		postgres.NewCollectionRepository(db),
		postgres.NewHubRepository(db),
		postgres.NewUserRepository(db),
		config.DefaultPricing(),
		publisher,
		notifier,
	)
	return &fixture{svc: svc, db: db, publisher: publisher, notifier: notifier}
}

func TestQuote(t *testing.T) {
	svc := NewService(nil, nil, nil, config.DefaultPricing(), nil, nil)

	cash, tokens := svc.Quote(12.5, "PET")
	assert.Equal(t, 25.0, cash)
	assert.Equal(t, 62.5, tokens)

	cash, _ = svc.Quote(3.333, "glass")
	assert.Equal(t, 2.67, cash)
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	collector := testutil.SeedUser(t, f.db, domainUser.RoleCollector)
	hub := testutil.SeedHub(t, f.db, 500)

	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e events.Event) error {
		assert.Equal(t, events.CollectionCreated, e.Type)
		return errors.New("broker offline")
	})

	resp, err := f.svc.Create(ctx, collector.ID, &CreateCollectionRequest{HubID: hub.ID, Weight: 10, PlasticType: "HDPE"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 18.0, resp.CashAmount)
	assert.Equal(t, 50.0, resp.TokenAmount)
}

func TestCreate_HubChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	collector := testutil.SeedUser(t, f.db, domainUser.RoleCollector)
	closed := testutil.SeedHub(t, f.db, 100, func(h *domainHub.Hub) { h.Status = domainHub.StatusMaintenance })

	_, err := f.svc.Create(ctx, collector.ID, &CreateCollectionRequest{HubID: uuid.New(), Weight: 1, PlasticType: "PET"})
	assert.Equal(t, http.StatusNotFound, appErrors.StatusOf(err))

	_, err = f.svc.Create(ctx, collector.ID, &CreateCollectionRequest{HubID: closed.ID, Weight: 1, PlasticType: "PET"})
	assert.ErrorIs(t, err, domainCollection.ErrHubNotAccepting)

	_, err = f.svc.Create(ctx, collector.ID, &CreateCollectionRequest{HubID: closed.ID, Weight: 0, PlasticType: "PET"})
	assert.Equal(t, http.StatusBadRequest, appErrors.StatusOf(err))
}

func TestCreate_UnknownCollector(t *testing.T) {
	f := newFixture(t)
	hub := testutil.SeedHub(t, f.db, 100)

	_, err := f.svc.Create(context.Background(), uuid.New(), &CreateCollectionRequest{HubID: hub.ID, Weight: 1, PlasticType: "PET"})
	assert.ErrorIs(t, err, domainUser.ErrUserNotFound)
	assert.Equal(t, http.StatusNotFound, appErrors.StatusOf(err))
}

func TestVerify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	collector := testutil.SeedUser(t, f.db, domainUser.RoleCollector)
	manager := testutil.SeedUser(t, f.db, domainUser.RoleHubManager)
	hub := testutil.SeedHub(t, f.db, 20)

	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	created, err := f.svc.Create(ctx, collector.ID, &CreateCollectionRequest{HubID: hub.ID, Weight: 20, PlasticType: "PET"})
	require.NoError(t, err)

	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e notification.Email) error {
		assert.Equal(t, collector.Email, e.To)
		return errors.New("mailgun down")
	})

	resp, err := f.svc.Verify(ctx, created.ID, manager.ID)
	require.NoError(t, err)
	assert.Equal(t, "verified", resp.Collection.Status)
	assert.True(t, resp.HubFull)

	wallet, err := postgres.NewUserRepository(f.db).GetByID(ctx, collector.ID)
	require.NoError(t, err)
	assert.Equal(t, 40.0, wallet.CashBalance)
	assert.Equal(t, 100.0, wallet.TokenBalance)

	_, err = f.svc.Verify(ctx, created.ID, manager.ID)
	assert.Equal(t, http.StatusConflict, appErrors.StatusOf(err))

	_, err = f.svc.Verify(ctx, uuid.New(), manager.ID)
	assert.Equal(t, http.StatusNotFound, appErrors.StatusOf(err))
}

func TestGetAndDelete_Ownership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.SeedUser(t, f.db, domainUser.RoleCollector)
	other := testutil.SeedUser(t, f.db, domainUser.RoleCollector)
	hub := testutil.SeedHub(t, f.db, 500)

	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	created, err := f.svc.Create(ctx, owner.ID, &CreateCollectionRequest{HubID: hub.ID, Weight: 2, PlasticType: "PP"})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, created.ID, other.ID, "collector")
	assert.ErrorIs(t, err, domainCollection.ErrNotOwner)

	_, err = f.svc.Get(ctx, created.ID, uuid.New(), "hub-manager")
	assert.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, created.ID, other.ID, "collector"), domainCollection.ErrNotOwner)
	require.NoError(t, f.svc.Delete(ctx, created.ID, owner.ID, "collector"))

	_, err = f.svc.Get(ctx, created.ID, owner.ID, "collector")
	assert.Equal(t, http.StatusNotFound, appErrors.StatusOf(err))
}

func TestListAndStatistics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	collector := testutil.SeedUser(t, f.db, domainUser.RoleCollector)
	hub := testutil.SeedHub(t, f.db, 500)

	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	for _, w := range []float64{1, 2, 3} {
		_, err := f.svc.Create(ctx, collector.ID, &CreateCollectionRequest{HubID: hub.ID, Weight: w, PlasticType: "PET"})
		require.NoError(t, err)
	}

	mine, err := f.svc.ListMine(ctx, collector.ID, &ListCollectionsRequest{PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), mine.Total)
	assert.Equal(t, 2, mine.TotalPages)

	_, err = f.svc.List(ctx, &ListCollectionsRequest{HubID: "nope"})
	assert.Equal(t, http.StatusBadRequest, appErrors.StatusOf(err))

	stats, err := f.svc.Statistics(ctx, hub.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.PendingCount)
	assert.Equal(t, 6.0, stats.PendingWeight)
	assert.Equal(t, int64(3), stats.ByPlasticType["PET"].Count)
}
