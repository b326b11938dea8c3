package donation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	domainDonation "sankofa/internal/domain/donation"
	domainUser "sankofa/internal/domain/user"
	"sankofa/internal/events"
	"sankofa/internal/infrastructure/notification"
	"sankofa/internal/infrastructure/paystack"
	"sankofa/internal/logger"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultCurrency = "GHS"
	providerName    = "paystack"
)

var ErrGatewayDisabled = appErrors.New(503, "GATEWAY_DISABLED", "payment gateway is not configured")

// Gateway is the payment provider donations are charged through.
type Gateway interface {
	Initialize(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeResult, error)
	Verify(ctx context.Context, reference string) (*paystack.Transaction, error)
	VerifySignature(body []byte, signature string) bool
}

// Service implements donation use cases
type Service struct {
	donationRepo domainDonation.Repository
	userRepo     domainUser.Repository
	gateway      Gateway
	callbackURL  string
	publisher    events.Publisher
	notifier     notification.Notifier
}

// NewService creates a donation service. A nil gateway records donations
// without starting a checkout.
func NewService(
	donationRepo domainDonation.Repository,
	userRepo domainUser.Repository,
	gateway Gateway,
	callbackURL string,
	publisher events.Publisher,
	notifier notification.Notifier,
) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		donationRepo: donationRepo,
		userRepo:     userRepo,
		gateway:      gateway,
		callbackURL:  callbackURL,
		publisher:    publisher,
		notifier:     notifier,
	}
}

// NewReference returns a unique payment reference such as SNK-DON-3F2A9C1B7E04.
func NewReference() string {
	return "SNK-DON-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// ToMinorUnits converts cedis to pesewas.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (s *Service) Create(ctx context.Context, donorID uuid.UUID, donorEmail string, req *CreateDonationRequest) (*DonationResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	d := &domainDonation.Donation{
		DonorID:   donorID,
		Amount:    utils.Round2(req.Amount),
		Currency:  currency,
		Type:      domainDonation.Type(req.Type),
		Anonymous: req.Anonymous,
		Payment: domainDonation.Payment{
			Method:    "card",
			Provider:  providerName,
			Reference: NewReference(),
		},
	}
	if req.Note != nil {
		note := utils.SanitizeText(*req.Note)
		d.Note = &note
	}

	if err := s.donationRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	logger.Info("Donation created",
		zap.String("donation_id", d.ID.String()),
		zap.String("donor_id", donorID.String()),
		zap.Float64("amount", d.Amount),
		zap.String("reference", d.Payment.Reference),
		zap.String("event", "donation_created"),
	)

	if s.gateway != nil {
		s.startCheckout(ctx, d, firstNonEmpty(req.Email, donorEmail))
	}

	resp := ToDonationResponse(d)
	s.publish(ctx, events.New(events.DonationCreated, &d.DonorID, resp))
	return resp, nil
}

// startCheckout opens a gateway transaction. Failures leave the donation
// pending without an authorization URL.
func (s *Service) startCheckout(ctx context.Context, d *domainDonation.Donation, email string) {
	result, err := s.gateway.Initialize(ctx, paystack.InitializeRequest{
		Email:       email,
		Amount:      ToMinorUnits(d.Amount),
		Currency:    d.Currency,
		Reference:   d.Payment.Reference,
		CallbackURL: s.callbackURL,
		Metadata: map[string]interface{}{
			"donation_id": d.ID.String(),
			"type":        string(d.Type),
		},
	})
	if err != nil {
		logger.Warn("Failed to initialize payment",
			zap.String("donation_id", d.ID.String()),
			zap.Error(err),
			zap.String("event", "donation_checkout_failed"),
		)
		return
	}

	if err := s.donationRepo.SetAuthorizationURL(ctx, d.ID, result.AuthorizationURL); err != nil {
		logger.Warn("Failed to store authorization url", zap.String("donation_id", d.ID.String()), zap.Error(err))
		return
	}
	d.Payment.AuthorizationURL = &result.AuthorizationURL
}

func (s *Service) Get(ctx context.Context, id, callerID uuid.UUID, role string) (*DonationResponse, error) {
	d, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != domainUser.RoleAdmin.String() && d.DonorID != callerID {
		return nil, appErrors.ErrInsufficientPermissions
	}
	return ToDonationResponse(d), nil
}

func (s *Service) ListMine(ctx context.Context, donorID uuid.UUID, req *ListDonationsRequest) (*utils.ListResponse, error) {
	req.DonorID = donorID.String()
	return s.List(ctx, req)
}

func (s *Service) List(ctx context.Context, req *ListDonationsRequest) (*utils.ListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	req.Page, req.PageSize = utils.NormalizePage(req.Page, req.PageSize)

	filter, err := req.ToFilter()
	if err != nil {
		return nil, err
	}

	items, total, err := s.donationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return utils.NewListResponse(ToDonationResponses(items), total, req.Page, req.PageSize), nil
}

// VerifyPayment asks the gateway for the outcome of a checkout and settles
// the donation accordingly. Unfinished checkouts are returned unchanged;
// failed donations are re-checked since the donor may have paid late.
func (s *Service) VerifyPayment(ctx context.Context, reference string, callerID uuid.UUID, role string) (*DonationResponse, error) {
	d, err := s.donationRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if role != domainUser.RoleAdmin.String() && d.DonorID != callerID {
		return nil, appErrors.ErrInsufficientPermissions
	}
	if d.IsCompleted() {
		return ToDonationResponse(d), nil
	}
	if s.gateway == nil {
		return nil, ErrGatewayDisabled
	}

	tx, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		logger.Error("Payment verification failed",
			zap.String("reference", reference),
			zap.Error(err),
		)
		return nil, domainDonation.ErrGatewayFailed.WithErr(err)
	}

	var status domainDonation.Status
	switch tx.Status {
	case paystack.StatusSuccess:
		status = domainDonation.StatusCompleted
	case paystack.StatusFailed, paystack.StatusAbandoned:
		status = domainDonation.StatusFailed
	default:
		return ToDonationResponse(d), nil
	}

	settled, err := s.settle(ctx, reference, status, tx)
	if err != nil {
		return nil, err
	}
	return ToDonationResponse(settled), nil
}

// HandleWebhook processes a signed gateway callback. Unknown references and
// redelivered events are acknowledged without error so the gateway stops
// retrying.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if s.gateway == nil {
		return ErrGatewayDisabled
	}
	if !s.gateway.VerifySignature(body, signature) {
		logger.Warn("Webhook signature mismatch", zap.String("event", "webhook_invalid_signature"))
		return domainDonation.ErrInvalidSignature
	}

	var event paystack.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return appErrors.NewAppError("INVALID_PAYLOAD", "invalid webhook payload", err)
	}

	var status domainDonation.Status
	switch event.Event {
	case paystack.EventChargeSuccess:
		status = domainDonation.StatusCompleted
	case "charge.failed":
		status = domainDonation.StatusFailed
	default:
		logger.Debug("Ignoring webhook event", zap.String("type", event.Event))
		return nil
	}

	_, err := s.settle(ctx, event.Data.Reference, status, &event.Data)
	if errors.Is(err, domainDonation.ErrDonationNotFound) {
		logger.Warn("Webhook for unknown donation", zap.String("reference", event.Data.Reference))
		return nil
	}
	return err
}

func (s *Service) settle(ctx context.Context, reference string, status domainDonation.Status, tx *paystack.Transaction) (*domainDonation.Donation, error) {
	var channel *string
	if tx.Channel != "" {
		channel = &tx.Channel
	}
	paidAt := tx.PaidAt
	if status == domainDonation.StatusCompleted && paidAt == nil {
		now := time.Now().UTC()
		paidAt = &now
	}
	if status != domainDonation.StatusCompleted {
		paidAt = nil
	}

	d, err := s.donationRepo.Settle(ctx, reference, status, channel, paidAt)
	if errors.Is(err, domainDonation.ErrAlreadySettled) {
		logger.Info("Donation already settled", zap.String("reference", reference))
		return d, nil
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Donation settled",
		zap.String("donation_id", d.ID.String()),
		zap.String("reference", reference),
		zap.String("status", string(status)),
		zap.String("event", "donation_settled"),
	)

	eventType := events.DonationFailed
	if status == domainDonation.StatusCompleted {
		eventType = events.DonationCompleted
		s.thankDonor(ctx, d)
	}
	s.publish(ctx, events.New(eventType, &d.DonorID, ToDonationResponse(d)))

	return d, nil
}

func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	stats, err := s.donationRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	byType := make(map[string]float64, len(stats.ByType))
	for k, v := range stats.ByType {
		byType[k] = utils.Round2(v)
	}
	return &StatsResponse{
		TotalAmount:    utils.Round2(stats.TotalAmount),
		CompletedCount: stats.CompletedCount,
		PendingCount:   stats.PendingCount,
		AverageAmount:  utils.Round2(stats.AverageAmount),
		ByType:         byType,
	}, nil
}

func (s *Service) thankDonor(ctx context.Context, d *domainDonation.Donation) {
	if s.notifier == nil {
		return
	}
	donor, err := s.userRepo.GetByID(ctx, d.DonorID)
	if err != nil {
		logger.Warn("Could not load donor for notification", zap.Error(err))
		return
	}

	email := notification.Email{
		To:      donor.Email,
		Subject: "Thank you for supporting Sankofa",
		Body: fmt.Sprintf("Hello %s,\n\nWe received your %s donation of %s %.2f (reference %s). Thank you.\n\nSankofa",
			donor.Name, d.Type, d.Currency, d.Amount, d.Payment.Reference),
	}
	if err := s.notifier.Send(ctx, email); err != nil {
		logger.Warn("Failed to send donation receipt", zap.String("donation_id", d.ID.String()), zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("type", event.Type),
			zap.Error(err),
		)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
