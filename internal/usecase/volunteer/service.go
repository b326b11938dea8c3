package volunteer

import (
	"context"
	"fmt"

	domainUser "sankofa/internal/domain/user"
	domainVolunteer "sankofa/internal/domain/volunteer"
	"sankofa/internal/events"
	"sankofa/internal/infrastructure/notification"
	"sankofa/internal/logger"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements volunteer application use cases
type Service struct {
	volunteerRepo domainVolunteer.Repository
	userRepo      domainUser.Repository
	publisher     events.Publisher
	notifier      notification.Notifier
}

func NewService(
	volunteerRepo domainVolunteer.Repository,
	userRepo domainUser.Repository,
	publisher events.Publisher,
	notifier notification.Notifier,
) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		volunteerRepo: volunteerRepo,
		userRepo:      userRepo,
		publisher:     publisher,
		notifier:      notifier,
	}
}

// Apply submits the caller's application. A user may apply once.
func (s *Service) Apply(ctx context.Context, userID uuid.UUID, req *ApplyRequest) (*VolunteerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	skills := make([]string, 0, len(req.Skills))
	for _, skill := range req.Skills {
		if clean := utils.SanitizeString(skill); clean != "" {
			skills = append(skills, clean)
		}
	}

	v := &domainVolunteer.Volunteer{
		UserID:       userID,
		Skills:       skills,
		Availability: req.Availability,
		Region:       utils.SanitizeString(req.Region),
	}
	if req.Motivation != nil {
		motivation := utils.SanitizeText(*req.Motivation)
		v.Motivation = &motivation
	}

	if err := s.volunteerRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	logger.Info("Volunteer application submitted",
		zap.String("volunteer_id", v.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("event", "volunteer_applied"),
	)

	return ToVolunteerResponse(v), nil
}

func (s *Service) Get(ctx context.Context, id, callerID uuid.UUID, role string) (*VolunteerResponse, error) {
	v, err := s.volunteerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != domainUser.RoleAdmin.String() && v.UserID != callerID {
		return nil, appErrors.ErrInsufficientPermissions
	}
	return ToVolunteerResponse(v), nil
}

func (s *Service) Mine(ctx context.Context, userID uuid.UUID) (*VolunteerResponse, error) {
	v, err := s.volunteerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToVolunteerResponse(v), nil
}

func (s *Service) List(ctx context.Context, req *ListVolunteersRequest) (*utils.ListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	req.Page, req.PageSize = utils.NormalizePage(req.Page, req.PageSize)

	items, total, err := s.volunteerRepo.List(ctx, req.ToFilter())
	if err != nil {
		return nil, err
	}

	return utils.NewListResponse(ToVolunteerResponses(items), total, req.Page, req.PageSize), nil
}

func (s *Service) Review(ctx context.Context, id, reviewerID uuid.UUID, req *ReviewRequest) (*VolunteerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	v, err := s.volunteerRepo.Review(ctx, id, domainVolunteer.Status(req.Status), reviewerID)
	if err != nil {
		return nil, err
	}

	logger.Info("Volunteer application reviewed",
		zap.String("volunteer_id", id.String()),
		zap.String("status", req.Status),
		zap.String("reviewed_by", reviewerID.String()),
		zap.String("event", "volunteer_reviewed"),
	)

	resp := ToVolunteerResponse(v)
	s.publish(ctx, events.New(events.VolunteerReviewed, &v.UserID, resp))
	s.notifyApplicant(ctx, v)
	return resp, nil
}

// LogHours adds hours to an approved volunteer's total. Only the volunteer
// or an admin may log them.
func (s *Service) LogHours(ctx context.Context, id, callerID uuid.UUID, role string, req *LogHoursRequest) (*VolunteerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	v, err := s.volunteerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != domainUser.RoleAdmin.String() && v.UserID != callerID {
		return nil, appErrors.ErrInsufficientPermissions
	}
	if !v.IsApproved() {
		return nil, domainVolunteer.ErrNotApproved
	}

	updated, err := s.volunteerRepo.AddHours(ctx, id, req.Hours)
	if err != nil {
		return nil, err
	}

	logger.Info("Volunteer hours logged",
		zap.String("volunteer_id", id.String()),
		zap.Float64("hours", req.Hours),
		zap.Float64("total", updated.HoursLogged),
		zap.String("event", "volunteer_hours_logged"),
	)
	return ToVolunteerResponse(updated), nil
}

func (s *Service) notifyApplicant(ctx context.Context, v *domainVolunteer.Volunteer) {
	if s.notifier == nil {
		return
	}
	applicant, err := s.userRepo.GetByID(ctx, v.UserID)
	if err != nil {
		logger.Warn("Could not load applicant for notification", zap.Error(err))
		return
	}

	email := notification.Email{
		To:      applicant.Email,
		Subject: "Your Sankofa volunteer application",
		Body:    fmt.Sprintf("Hello %s,\n\nYour volunteer application has been %s.\n\nSankofa", applicant.Name, v.Status),
	}
	if err := s.notifier.Send(ctx, email); err != nil {
		logger.Warn("Failed to send review notice", zap.String("volunteer_id", v.ID.String()), zap.Error(err))
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
