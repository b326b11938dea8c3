package hub

import (
	"context"

	domainHub "sankofa/internal/domain/hub"
	domainUser "sankofa/internal/domain/user"
	"sankofa/internal/events"
	"sankofa/internal/logger"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrManagerRole = appErrors.NewAppError("INVALID_MANAGER", "manager must be a hub-manager or admin", nil)

// Service implements hub use cases
type Service struct {
	hubRepo   domainHub.Repository
	userRepo  domainUser.Repository
	publisher events.Publisher
}

func NewService(hubRepo domainHub.Repository, userRepo domainUser.Repository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		hubRepo:   hubRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

func (s *Service) Create(ctx context.Context, req *CreateHubRequest) (*HubResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	if err := s.checkManager(ctx, req.ManagerID); err != nil {
		return nil, err
	}

	h := &domainHub.Hub{
		Name:      utils.SanitizeString(req.Name),
		Region:    utils.SanitizeString(req.Region),
		Location:  utils.SanitizeString(req.Location),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Capacity:  req.Capacity,
		Status:    domainHub.StatusActive,
		ManagerID: req.ManagerID,
	}

	if err := s.hubRepo.Create(ctx, h); err != nil {
		return nil, err
	}

	logger.Info("Hub created",
		zap.String("hub_id", h.ID.String()),
		zap.String("region", h.Region),
		zap.String("event", "hub_created"),
	)

	return ToHubResponse(h), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*HubResponse, error) {
	h, err := s.hubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToHubResponse(h), nil
}

func (s *Service) List(ctx context.Context, req *ListHubsRequest) (*utils.ListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	req.Page, req.PageSize = utils.NormalizePage(req.Page, req.PageSize)

	hubs, total, err := s.hubRepo.List(ctx, req.ToFilter())
	if err != nil {
		return nil, err
	}

	return utils.NewListResponse(ToHubResponses(hubs), total, req.Page, req.PageSize), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateHubRequest) (*HubResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	h, err := s.hubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		h.Name = utils.SanitizeString(*req.Name)
	}
	if req.Region != nil {
		h.Region = utils.SanitizeString(*req.Region)
	}
	if req.Location != nil {
		h.Location = utils.SanitizeString(*req.Location)
	}
	if req.Latitude != nil {
		h.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		h.Longitude = req.Longitude
	}
	if req.Capacity != nil {
		h.Capacity = *req.Capacity
	}
	if req.Status != nil {
		h.Status = domainHub.Status(*req.Status)
	}
	if req.ManagerID != nil {
		if err := s.checkManager(ctx, req.ManagerID); err != nil {
			return nil, err
		}
		h.ManagerID = req.ManagerID
	}

	if err := s.hubRepo.Update(ctx, h); err != nil {
		return nil, err
	}

	logger.Info("Hub updated",
		zap.String("hub_id", id.String()),
		zap.String("status", string(h.Status)),
		zap.String("event", "hub_updated"),
	)

	resp := ToHubResponse(h)
	s.publish(ctx, events.New(events.HubUpdated, nil, resp))
	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.hubRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Hub deleted",
		zap.String("hub_id", id.String()),
		zap.String("event", "hub_deleted"),
	)
	s.publish(ctx, events.New(events.HubUpdated, nil, map[string]interface{}{"hub_id": id, "deleted": true}))
	return nil
}

// Empty records that a hub was offloaded: the fill level drops to zero and a
// full hub starts accepting collections again.
func (s *Service) Empty(ctx context.Context, id, actorID uuid.UUID) (*HubResponse, error) {
	h, err := s.hubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var status domainHub.Status
	if h.Status == domainHub.StatusFull {
		status = domainHub.StatusActive
	}

	emptied, err := s.hubRepo.SetFillLevel(ctx, id, 0, status)
	if err != nil {
		return nil, err
	}

	logger.Info("Hub emptied",
		zap.String("hub_id", id.String()),
		zap.String("emptied_by", actorID.String()),
		zap.Float64("offloaded_kg", h.CurrentCapacity),
		zap.String("event", "hub_emptied"),
	)

	resp := ToHubResponse(emptied)
	s.publish(ctx, events.New(events.HubEmptied, nil, map[string]interface{}{
		"hub_id":       id,
		"offloaded_kg": h.CurrentCapacity,
	}))
	return resp, nil
}

func (s *Service) Stats(ctx context.Context, id uuid.UUID) (*StatsResponse, error) {
	stats, err := s.hubRepo.GetStats(ctx, id)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		HubID:           stats.HubID,
		CollectionCount: stats.CollectionCount,
		PendingCount:    stats.PendingCount,
		VerifiedWeight:  utils.Round2(stats.VerifiedWeight),
		Capacity:        stats.Capacity,
		CurrentCapacity: stats.CurrentCapacity,
		Utilisation:     utils.Round2(stats.Utilisation),
	}, nil
}

func (s *Service) checkManager(ctx context.Context, managerID *uuid.UUID) error {
	if managerID == nil {
		return nil
	}
	manager, err := s.userRepo.GetByID(ctx, *managerID)
	if err != nil {
		return err
	}
	if manager.Role != domainUser.RoleHubManager && manager.Role != domainUser.RoleAdmin {
		return ErrManagerRole
	}
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("type", event.Type),
			zap.Error(err),
		)
	}
}
