package volunteer

import (
	"context"
	"net/http"
	"testing"

	domainUser "sankofa/internal/domain/user"
	domainVolunteer "sankofa/internal/domain/volunteer"
	"sankofa/internal/events"
	"sankofa/internal/infrastructure/database/postgres"
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

	svc := NewService(postgres.NewVolunteerRepository(db), postgres.NewUserRepository(db), publisher, notifier)
	return &fixture{svc: svc, db: db, publisher: publisher, notifier: notifier}
}

func validApplication() *ApplyRequest {
	return &ApplyRequest{
		Skills:       []string{"first aid", "community outreach"},
		Availability: "weekends",
		Region:       "Greater Accra",
	}
}

func TestApply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, f.db, domainUser.RoleVolunteer)

	resp, err := f.svc.Apply(ctx, u.ID, validApplication())
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Zero(t, resp.HoursLogged)

	_, err = f.svc.Apply(ctx, u.ID, validApplication())
	assert.ErrorIs(t, err, domainVolunteer.ErrAlreadyApplied)

	mine, err := f.svc.Mine(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, mine.ID)

	_, err = f.svc.Mine(ctx, uuid.New())
	assert.ErrorIs(t, err, domainVolunteer.ErrVolunteerNotFound)

	bad := validApplication()
	bad.Skills = nil
	_, err = f.svc.Apply(ctx, uuid.New(), bad)
	assert.Equal(t, http.StatusBadRequest, appErrors.StatusOf(err))
}

func TestReviewAndLogHours(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, f.db, domainUser.RoleVolunteer)
	admin := testutil.SeedUser(t, f.db, domainUser.RoleAdmin)
	stranger := testutil.SeedUser(t, f.db, domainUser.RoleCollector)

	app, err := f.svc.Apply(ctx, u.ID, validApplication())
	require.NoError(t, err)

	_, err = f.svc.LogHours(ctx, app.ID, u.ID, "volunteer", &LogHoursRequest{Hours: 2})
	assert.ErrorIs(t, err, domainVolunteer.ErrNotApproved)

	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e events.Event) error {
		assert.Equal(t, events.VolunteerReviewed, e.Type)
		assert.Equal(t, u.ID, *e.UserID)
		return nil
	})
	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	reviewed, err := f.svc.Review(ctx, app.ID, admin.ID, &ReviewRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, admin.ID, *reviewed.ReviewedBy)

	_, err = f.svc.Review(ctx, app.ID, admin.ID, &ReviewRequest{Status: "rejected"})
	assert.ErrorIs(t, err, domainVolunteer.ErrAlreadyReviewed)

	logged, err := f.svc.LogHours(ctx, app.ID, u.ID, "volunteer", &LogHoursRequest{Hours: 3.5})
	require.NoError(t, err)
	assert.InDelta(t, 3.5, logged.HoursLogged, 0.001)

	logged, err = f.svc.LogHours(ctx, app.ID, admin.ID, "admin", &LogHoursRequest{Hours: 1})
	require.NoError(t, err)
	assert.InDelta(t, 4.5, logged.HoursLogged, 0.001)

	_, err = f.svc.LogHours(ctx, app.ID, stranger.ID, "collector", &LogHoursRequest{Hours: 1})
	assert.ErrorIs(t, err, appErrors.ErrInsufficientPermissions)

	_, err = f.svc.LogHours(ctx, app.ID, u.ID, "volunteer", &LogHoursRequest{Hours: 25})
	assert.Equal(t, http.StatusBadRequest, appErrors.StatusOf(err))

	_, err = f.svc.Get(ctx, app.ID, stranger.ID, "collector")
	assert.ErrorIs(t, err, appErrors.ErrInsufficientPermissions)

	list, err := f.svc.List(ctx, &ListVolunteersRequest{Status: "approved", Region: "greater accra"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
}
