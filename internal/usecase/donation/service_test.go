package donation

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	domainDonation "sankofa/internal/domain/donation"
	domainUser "sankofa/internal/domain/user"
	"sankofa/internal/events"
	"sankofa/internal/infrastructure/database/postgres"
	"sankofa/internal/infrastructure/paystack"
	"sankofa/internal/mocks"
	"sankofa/internal/testutil"
	appErrors "sankofa/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc      *Service
	db       *postgres.DB
	gateway  *mocks.MockGateway
	notifier *mocks.MockNotifier
	donor    *domainUser.User
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	db := testutil.OpenDB(t)
	gateway := mocks.NewMockGateway(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := NewService(
		postgres.NewDonationRepository(db),
		postgres.NewUserRepository(db),
		gateway,
		"https://sankofa.africa/donate/callback",
		publisher,
		notifier,
	)
	return &fixture{
		svc:      svc,
		db:       db,
		gateway:  gateway,
		notifier: notifier,
		donor:    testutil.SeedUser(t, db, domainUser.RoleDonor),
	}
}

func TestReferenceAndMinorUnits(t *testing.T) {
	ref := NewReference()
	assert.True(t, strings.HasPrefix(ref, "SNK-DON-"))
	assert.Len(t, ref, len("SNK-DON-")+12)
	assert.NotEqual(t, ref, NewReference())

	assert.Equal(t, int64(1999), ToMinorUnits(19.99))
	assert.Equal(t, int64(5000), ToMinorUnits(50))
}

func TestCreate_InitializesCheckout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gateway.EXPECT().Initialize(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req paystack.InitializeRequest) (*paystack.InitializeResult, error) {
			assert.Equal(t, int64(12550), req.Amount)
			assert.Equal(t, f.donor.Email, req.Email)
			assert.Equal(t, "GHS", req.Currency)
			return &paystack.InitializeResult{AuthorizationURL: "https://checkout.paystack.com/xyz", Reference: req.Reference}, nil
		})

	resp, err := f.svc.Create(ctx, f.donor.ID, f.donor.Email, &CreateDonationRequest{Amount: 125.5, Type: "monthly"})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	require.NotNil(t, resp.Payment.AuthorizationURL)
	assert.Equal(t, "https://checkout.paystack.com/xyz", *resp.Payment.AuthorizationURL)
}

func TestCreate_GatewayFailureKeepsDonation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gateway.EXPECT().Initialize(gomock.Any(), gomock.Any()).Return(nil, errors.New("paystack: 500"))

	resp, err := f.svc.Create(ctx, f.donor.ID, f.donor.Email, &CreateDonationRequest{Amount: 10, Type: "one-time"})
	require.NoError(t, err)
	assert.Nil(t, resp.Payment.AuthorizationURL)

	got, err := f.svc.Get(ctx, resp.ID, f.donor.ID, "donor")
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)

	_, err = f.svc.Get(ctx, resp.ID, uuid.New(), "donor")
	assert.Equal(t, http.StatusForbidden, appErrors.StatusOf(err))
}

func TestCreate_WithoutGateway(t *testing.T) {
	db := testutil.OpenDB(t)
	donor := testutil.SeedUser(t, db, domainUser.RoleDonor)
	svc := NewService(postgres.NewDonationRepository(db), postgres.NewUserRepository(db), nil, "", nil, nil)

	resp, err := svc.Create(context.Background(), donor.ID, donor.Email, &CreateDonationRequest{Amount: 10, Type: "annual"})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)

	_, err = svc.VerifyPayment(context.Background(), resp.Payment.Reference, donor.ID, "donor")
	assert.ErrorIs(t, err, ErrGatewayDisabled)
}

func TestVerifyPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gateway.EXPECT().Initialize(gomock.Any(), gomock.Any()).Return(&paystack.InitializeResult{AuthorizationURL: "https://x"}, nil)
	created, err := f.svc.Create(ctx, f.donor.ID, f.donor.Email, &CreateDonationRequest{Amount: 40, Type: "one-time"})
	require.NoError(t, err)
	ref := created.Payment.Reference

	paidAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f.gateway.EXPECT().Verify(gomock.Any(), ref).Return(&paystack.Transaction{
		Reference: ref, Status: paystack.StatusSuccess, Channel: "mobile_money", PaidAt: &paidAt,
	}, nil)
	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := f.svc.VerifyPayment(ctx, ref, f.donor.ID, "donor")
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.Payment.Channel)
	assert.Equal(t, "mobile_money", *resp.Payment.Channel)

	// settled donations are not re-verified
	again, err := f.svc.VerifyPayment(ctx, ref, f.donor.ID, "donor")
	require.NoError(t, err)
	assert.Equal(t, "completed", again.Status)

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40.0, stats.TotalAmount)
}

func TestVerifyPayment_GatewayError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gateway.EXPECT().Initialize(gomock.Any(), gomock.Any()).Return(&paystack.InitializeResult{AuthorizationURL: "https://x"}, nil)
	created, err := f.svc.Create(ctx, f.donor.ID, f.donor.Email, &CreateDonationRequest{Amount: 5, Type: "one-time"})
	require.NoError(t, err)

	f.gateway.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
	_, err = f.svc.VerifyPayment(ctx, created.Payment.Reference, f.donor.ID, "donor")
	assert.Equal(t, http.StatusBadGateway, appErrors.StatusOf(err))
}

func TestHandleWebhook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gateway.EXPECT().Initialize(gomock.Any(), gomock.Any()).Return(&paystack.InitializeResult{AuthorizationURL: "https://x"}, nil)
	created, err := f.svc.Create(ctx, f.donor.ID, f.donor.Email, &CreateDonationRequest{Amount: 75, Type: "quarterly"})
	require.NoError(t, err)

	body := []byte(`{"event":"charge.success","data":{"reference":"` + created.Payment.Reference + `","status":"success","channel":"card"}}`)

	f.gateway.EXPECT().VerifySignature(body, "bad").Return(false)
	assert.ErrorIs(t, f.svc.HandleWebhook(ctx, body, "bad"), domainDonation.ErrInvalidSignature)

	f.gateway.EXPECT().VerifySignature(body, "good").Return(true).Times(2)
	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
	require.NoError(t, f.svc.HandleWebhook(ctx, body, "good"))
	require.NoError(t, f.svc.HandleWebhook(ctx, body, "good"))

	got, err := f.svc.Get(ctx, created.ID, f.donor.ID, "donor")
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)

	unknown := []byte(`{"event":"charge.success","data":{"reference":"SNK-DON-MISSING"}}`)
	f.gateway.EXPECT().VerifySignature(unknown, "good").Return(true)
	assert.NoError(t, f.svc.HandleWebhook(ctx, unknown, "good"))

	ignored := []byte(`{"event":"transfer.success","data":{}}`)
	f.gateway.EXPECT().VerifySignature(ignored, "good").Return(true)
	assert.NoError(t, f.svc.HandleWebhook(ctx, ignored, "good"))
}

func TestExpirePending(t *testing.T) {
	db := testutil.OpenDB(t)
	donor := testutil.SeedUser(t, db, domainUser.RoleDonor)
	svc := NewService(postgres.NewDonationRepository(db), postgres.NewUserRepository(db), nil, "", events.Noop{}, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, donor.ID, donor.Email, &CreateDonationRequest{Amount: 10, Type: "one-time"})
	require.NoError(t, err)

	svc.expirePending(ctx, -time.Minute)

	got, err := svc.Get(ctx, created.ID, donor.ID, "donor")
	require.NoError(t, err)
	assert.Equal(t, "failed", got.Status)
}

func TestHandleWebhook_CompletesExpiredDonation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gateway.EXPECT().Initialize(gomock.Any(), gomock.Any()).Return(&paystack.InitializeResult{AuthorizationURL: "https://x"}, nil)
	created, err := f.svc.Create(ctx, f.donor.ID, f.donor.Email, &CreateDonationRequest{Amount: 60, Type: "one-time"})
	require.NoError(t, err)

	f.svc.expirePending(ctx, -time.Minute)
	got, err := f.svc.Get(ctx, created.ID, f.donor.ID, "donor")
	require.NoError(t, err)
	require.Equal(t, "failed", got.Status)

	body := []byte(`{"event":"charge.success","data":{"reference":"` + created.Payment.Reference + `","status":"success","channel":"card"}}`)
	f.gateway.EXPECT().VerifySignature(body, "good").Return(true)
	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, f.svc.HandleWebhook(ctx, body, "good"))

	got, err = f.svc.Get(ctx, created.ID, f.donor.ID, "donor")
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 60.0, stats.TotalAmount)
}

func TestVerifyPayment_RechecksFailedDonation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gateway.EXPECT().Initialize(gomock.Any(), gomock.Any()).Return(&paystack.InitializeResult{AuthorizationURL: "https://x"}, nil)
	created, err := f.svc.Create(ctx, f.donor.ID, f.donor.Email, &CreateDonationRequest{Amount: 25, Type: "one-time"})
	require.NoError(t, err)
	ref := created.Payment.Reference

	f.gateway.EXPECT().Verify(gomock.Any(), ref).Return(&paystack.Transaction{Reference: ref, Status: paystack.StatusFailed}, nil)
	resp, err := f.svc.VerifyPayment(ctx, ref, f.donor.ID, "donor")
	require.NoError(t, err)
	require.Equal(t, "failed", resp.Status)

	f.gateway.EXPECT().Verify(gomock.Any(), ref).Return(&paystack.Transaction{Reference: ref, Status: paystack.StatusSuccess, Channel: "card"}, nil)
	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
	resp, err = f.svc.VerifyPayment(ctx, ref, f.donor.ID, "donor")
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
}
