package collection

import (
	"context"
	"fmt"

	"sankofa/internal/config"
	domainCollection "sankofa/internal/domain/collection"
	domainHub "sankofa/internal/domain/hub"
	domainUser "sankofa/internal/domain/user"
	"sankofa/internal/events"
	"sankofa/internal/infrastructure/notification"
	"sankofa/internal/logger"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements collection use cases
type Service struct {
	collectionRepo domainCollection.Repository
	hubRepo        domainHub.Repository
	userRepo       domainUser.Repository
	pricing        config.PricingConfig
	publisher      events.Publisher
	notifier       notification.Notifier
}

// NewService creates a new collection service. publisher and notifier may be nil.
func NewService(
	collectionRepo domainCollection.Repository,
	hubRepo domainHub.Repository,
	userRepo domainUser.Repository,
	pricing config.PricingConfig,
	publisher events.Publisher,
	notifier notification.Notifier,
) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		collectionRepo: collectionRepo,
		hubRepo:        hubRepo,
		userRepo:       userRepo,
		pricing:        pricing,
		publisher:      publisher,
		notifier:       notifier,
	}
}

// Quote prices a weight of plastic in cash and health tokens.
func (s *Service) Quote(weight float64, plasticType string) (cash, tokens float64) {
	return utils.Round2(weight * s.pricing.CashRate(plasticType)),
		utils.Round2(weight * s.pricing.TokenRatePerKg)
}

func (s *Service) Create(ctx context.Context, collectorID uuid.UUID, req *CreateCollectionRequest) (*CollectionResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	if _, err := s.userRepo.GetByID(ctx, collectorID); err != nil {
		return nil, err
	}

	hub, err := s.hubRepo.GetByID(ctx, req.HubID)
	if err != nil {
		return nil, err
	}
	if !hub.IsAccepting() {
		logger.Warn("Collection rejected by hub",
			zap.String("hub_id", hub.ID.String()),
			zap.String("hub_status", string(hub.Status)),
			zap.String("event", "collection_hub_not_accepting"),
		)
		return nil, domainCollection.ErrHubNotAccepting
	}

	cash, tokens := s.Quote(req.Weight, req.PlasticType)
	c := &domainCollection.Collection{
		CollectorID: collectorID,
		HubID:       hub.ID,
		Weight:      utils.Round2(req.Weight),
		PlasticType: domainCollection.PlasticType(req.PlasticType),
		CashAmount:  cash,
		TokenAmount: tokens,
		Status:      domainCollection.StatusPending,
	}
	if req.Notes != nil {
		notes := utils.SanitizeText(*req.Notes)
		c.Notes = &notes
	}

	if err := s.collectionRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.Info("Collection recorded",
		zap.String("collection_id", c.ID.String()),
		zap.String("collector_id", collectorID.String()),
		zap.String("hub_id", hub.ID.String()),
		zap.Float64("weight", c.Weight),
		zap.String("event", "collection_created"),
	)

	resp := ToCollectionResponse(c)
	s.publish(ctx, events.New(events.CollectionCreated, nil, resp))
	return resp, nil
}

// Get returns a collection to its collector or to staff.
func (s *Service) Get(ctx context.Context, id, callerID uuid.UUID, role string) (*CollectionResponse, error) {
	c, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isStaff(role) && c.CollectorID != callerID {
		return nil, domainCollection.ErrNotOwner
	}
	return ToCollectionResponse(c), nil
}

func (s *Service) ListMine(ctx context.Context, collectorID uuid.UUID, req *ListCollectionsRequest) (*utils.ListResponse, error) {
	req.CollectorID = collectorID.String()
	return s.List(ctx, req)
}

func (s *Service) List(ctx context.Context, req *ListCollectionsRequest) (*utils.ListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	req.Page, req.PageSize = utils.NormalizePage(req.Page, req.PageSize)

	filter, err := req.ToFilter()
	if err != nil {
		return nil, err
	}

	items, total, err := s.collectionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return utils.NewListResponse(ToCollectionResponses(items), total, req.Page, req.PageSize), nil
}

// Verify confirms a pending collection. Crediting the collector and filling
// the hub happen in the same transaction as the status change.
func (s *Service) Verify(ctx context.Context, id, verifierID uuid.UUID) (*VerificationResponse, error) {
	result, err := s.collectionRepo.Verify(ctx, id, verifierID)
	if err != nil {
		return nil, err
	}
	c := result.Collection

	logger.Info("Collection verified",
		zap.String("collection_id", c.ID.String()),
		zap.String("verified_by", verifierID.String()),
		zap.Float64("cash_amount", c.CashAmount),
		zap.Float64("token_amount", c.TokenAmount),
		zap.String("event", "collection_verified"),
	)

	resp := &VerificationResponse{
		Collection:  ToCollectionResponse(c),
		HubFull:     result.HubFull,
		HubCapacity: result.HubCapacity,
		HubCurrent:  result.HubCurrent,
	}

	collectorID := c.CollectorID
	s.publish(ctx, events.New(events.CollectionVerified, &collectorID, resp.Collection))
	if result.HubFull {
		s.publish(ctx, events.New(events.HubCapacityFull, nil, map[string]interface{}{
			"hub_id":           c.HubID,
			"capacity":         result.HubCapacity,
			"current_capacity": result.HubCurrent,
		}))
	}
	s.notifyCollector(ctx, c)

	return resp, nil
}

// Delete removes a pending collection. Collectors may only delete their own.
func (s *Service) Delete(ctx context.Context, id, callerID uuid.UUID, role string) error {
	c, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role != domainUser.RoleAdmin.String() && c.CollectorID != callerID {
		return domainCollection.ErrNotOwner
	}
	if c.IsVerified() {
		return domainCollection.ErrDeleteVerified
	}

	if err := s.collectionRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Collection deleted",
		zap.String("collection_id", id.String()),
		zap.String("deleted_by", callerID.String()),
		zap.String("event", "collection_deleted"),
	)
	return nil
}

func (s *Service) Statistics(ctx context.Context, hubID string) (*StatisticsResponse, error) {
	id, err := utils.ParseOptionalUUID(hubID)
	if err != nil {
		return nil, appErrors.NewAppError("INVALID_ID", "invalid hub_id", err)
	}

	stats, err := s.collectionRepo.GetStatistics(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToStatisticsResponse(stats), nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("type", event.Type),
			zap.Error(err),
		)
	}
}

func (s *Service) notifyCollector(ctx context.Context, c *domainCollection.Collection) {
	if s.notifier == nil {
		return
	}

	collector, err := s.userRepo.GetByID(ctx, c.CollectorID)
	if err != nil {
		logger.Warn("Could not load collector for notification", zap.Error(err))
		return
	}

	email := notification.Email{
		To:      collector.Email,
		Subject: "Your plastic collection has been verified",
		Body: fmt.Sprintf(
			"Hello %s,\n\nYour %.2f kg of %s has been verified. GHS %.2f and %.2f health tokens were added to your wallet.\n\nSankofa",
			collector.Name, c.Weight, c.PlasticType, c.CashAmount, c.TokenAmount,
		),
	}
	if err := s.notifier.Send(ctx, email); err != nil {
		logger.Warn("Failed to notify collector",
			zap.String("collector_id", collector.ID.String()),
			zap.Error(err),
		)
	}
}

func isStaff(role string) bool {
	return role == domainUser.RoleAdmin.String() || role == domainUser.RoleHubManager.String()
}
