package payment

import (
	"context"
	"fmt"
	"strings"

	domainPayment "sankofa/internal/domain/payment"
	domainUser "sankofa/internal/domain/user"
	"sankofa/internal/events"
	"sankofa/internal/infrastructure/notification"
	"sankofa/internal/logger"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultCurrency = "GHS"

// Service implements collector payout use cases
type Service struct {
	paymentRepo domainPayment.Repository
	userRepo    domainUser.Repository
	publisher   events.Publisher
	notifier    notification.Notifier
}

func NewService(
	paymentRepo domainPayment.Repository,
	userRepo domainUser.Repository,
	publisher events.Publisher,
	notifier notification.Notifier,
) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		notifier:    notifier,
	}
}

// NewTransactionID returns an identifier such as SNK-9A1C44E0B2F3.
func NewTransactionID() string {
	return "SNK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// Create records a pending payout. The payee's balance is only checked here;
// it is debited when the payout completes.
func (s *Service) Create(ctx context.Context, req *CreatePaymentRequest) (*PaymentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	payee, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	amount := utils.Round2(req.Amount)
	if amount > utils.Round2(payee.CashBalance) {
		return nil, domainPayment.ErrInsufficientFunds
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	p := &domainPayment.Payment{
		UserID:        payee.ID,
		Amount:        amount,
		Currency:      currency,
		Method:        domainPayment.Method(req.Method),
		TransactionID: NewTransactionID(),
	}
	if req.Description != nil {
		desc := utils.SanitizeText(*req.Description)
		p.Description = &desc
	}

	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.Info("Payment created",
		zap.String("payment_id", p.ID.String()),
		zap.String("user_id", p.UserID.String()),
		zap.Float64("amount", p.Amount),
		zap.String("transaction_id", p.TransactionID),
		zap.String("event", "payment_created"),
	)

	resp := ToPaymentResponse(p)
	s.publish(ctx, events.New(events.PaymentCreated, &p.UserID, resp))
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id, callerID uuid.UUID, role string) (*PaymentResponse, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != domainUser.RoleAdmin.String() && role != domainUser.RoleHubManager.String() && p.UserID != callerID {
		return nil, appErrors.ErrInsufficientPermissions
	}
	return ToPaymentResponse(p), nil
}

func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, req *ListPaymentsRequest) (*utils.ListResponse, error) {
	req.UserID = userID.String()
	return s.List(ctx, req)
}

func (s *Service) List(ctx context.Context, req *ListPaymentsRequest) (*utils.ListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	req.Page, req.PageSize = utils.NormalizePage(req.Page, req.PageSize)

	filter, err := req.ToFilter()
	if err != nil {
		return nil, err
	}

	items, total, err := s.paymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return utils.NewListResponse(ToPaymentResponses(items), total, req.Page, req.PageSize), nil
}

// UpdateStatus settles a pending payout. Completing debits the payee's cash
// balance in the same transaction.
func (s *Service) UpdateStatus(ctx context.Context, id, processorID uuid.UUID, req *UpdateStatusRequest) (*PaymentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	var (
		p         *domainPayment.Payment
		err       error
		eventType string
	)
	switch domainPayment.Status(req.Status) {
	case domainPayment.StatusCompleted:
		p, err = s.paymentRepo.Complete(ctx, id, processorID)
		eventType = events.PaymentCompleted
	default:
		p, err = s.paymentRepo.Fail(ctx, id, processorID)
		eventType = events.PaymentFailed
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Payment status updated",
		zap.String("payment_id", p.ID.String()),
		zap.String("status", string(p.Status)),
		zap.String("processed_by", processorID.String()),
		zap.String("event", "payment_status_updated"),
	)

	resp := ToPaymentResponse(p)
	s.publish(ctx, events.New(eventType, &p.UserID, resp))
	if p.Status == domainPayment.StatusCompleted {
		s.notifyPayee(ctx, p)
	}
	return resp, nil
}

func (s *Service) notifyPayee(ctx context.Context, p *domainPayment.Payment) {
	if s.notifier == nil {
		return
	}
	payee, err := s.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		logger.Warn("Could not load payee for notification", zap.Error(err))
		return
	}

	email := notification.Email{
		To:      payee.Email,
		Subject: "Your Sankofa payout has been sent",
		Body: fmt.Sprintf("Hello %s,\n\n%s %.2f was paid to you by %s (transaction %s).\n\nSankofa",
			payee.Name, p.Currency, p.Amount, strings.ReplaceAll(string(p.Method), "_", " "), p.TransactionID),
	}
	if err := s.notifier.Send(ctx, email); err != nil {
		logger.Warn("Failed to send payout notice", zap.String("payment_id", p.ID.String()), zap.Error(err))
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
