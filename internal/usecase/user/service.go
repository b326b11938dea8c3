package user

import (
	"context"
	"errors"
	"fmt"

	domainUser "sankofa/internal/domain/user"
	"sankofa/internal/logger"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements profile, wallet and back-office user use cases
type Service struct {
	userRepo domainUser.Repository
}

// NewService creates a new user service
func NewService(userRepo domainUser.Repository) *Service {
	return &Service{userRepo: userRepo}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = utils.SanitizeString(*req.Name)
	}
	if req.Phone != nil {
		phone := utils.SanitizePhone(*req.Phone)
		u.Phone = &phone
	}
	if req.Region != nil {
		region := utils.SanitizeString(*req.Region)
		u.Region = &region
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("Profile updated",
		zap.String("user_id", userID.String()),
		zap.String("event", "profile_updated"),
	)

	return ToUserResponse(u), nil
}

func (s *Service) GetWallet(ctx context.Context, userID uuid.UUID) (*WalletResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &WalletResponse{
		UserID:       u.ID,
		CashBalance:  u.CashBalance,
		TokenBalance: u.TokenBalance,
		Currency:     "GHS",
	}, nil
}

// RedeemTokens debits health tokens. The debit is a single conditional
// update, so concurrent redemptions cannot overdraw the balance.
func (s *Service) RedeemTokens(ctx context.Context, userID uuid.UUID, req *RedeemRequest) (*RedeemResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	tokens := utils.Round2(req.Tokens)
	if err := s.userRepo.DebitTokens(ctx, userID, tokens); err != nil {
		if errors.Is(err, domainUser.ErrInsufficientTokens) {
			logger.Warn("Token redemption rejected",
				zap.String("user_id", userID.String()),
				zap.Float64("tokens", tokens),
				zap.String("event", "redeem_insufficient_tokens"),
			)
		}
		return nil, err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	logger.Info("Health tokens redeemed",
		zap.String("user_id", userID.String()),
		zap.Float64("tokens", tokens),
		zap.String("purpose", req.Purpose),
		zap.String("event", "tokens_redeemed"),
	)

	return &RedeemResponse{
		Purpose:        req.Purpose,
		TokensRedeemed: tokens,
		TokenBalance:   u.TokenBalance,
	}, nil
}

func (s *Service) ListUsers(ctx context.Context, req *ListUsersRequest) (*utils.ListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	req.Page, req.PageSize = utils.NormalizePage(req.Page, req.PageSize)

	users, total, err := s.userRepo.List(ctx, req.ToFilter())
	if err != nil {
		return nil, err
	}

	return utils.NewListResponse(ToUserResponses(users), total, req.Page, req.PageSize), nil
}

func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	return s.GetProfile(ctx, userID)
}

func (s *Service) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	email, err := utils.ValidateAndSanitizeEmail(req.Email)
	if err != nil {
		return nil, appErrors.ErrInvalidEmail
	}

	u := &domainUser.User{
		Name:   utils.SanitizeString(req.Name),
		Email:  email,
		Role:   domainUser.Role(req.Role),
		Status: domainUser.StatusActive,
		Region: req.Region,
	}
	if req.ID != nil {
		u.ID = *req.ID
	}
	if req.Phone != nil {
		phone := utils.SanitizePhone(*req.Phone)
		u.Phone = &phone
	}

	if req.Password != nil {
		if err := utils.ValidatePassword(*req.Password); err != nil {
			return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
		}
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = &hashed
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			logger.Warn("User creation with existing email",
				zap.String("email", email),
				zap.String("event", "user_create_duplicate_email"),
			)
		}
		return nil, err
	}

	logger.Info("User created",
		zap.String("user_id", u.ID.String()),
		zap.String("role", string(u.Role)),
		zap.String("event", "user_created"),
	)

	return ToUserResponse(u), nil
}

func (s *Service) UpdateUser(ctx context.Context, userID uuid.UUID, req *UpdateUserRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = utils.SanitizeString(*req.Name)
	}
	if req.Phone != nil {
		phone := utils.SanitizePhone(*req.Phone)
		u.Phone = &phone
	}
	if req.Role != nil {
		u.Role = domainUser.Role(*req.Role)
	}
	if req.Status != nil {
		u.Status = domainUser.Status(*req.Status)
	}
	if req.Region != nil {
		u.Region = req.Region
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("User updated",
		zap.String("user_id", userID.String()),
		zap.String("event", "user_updated"),
	)

	return ToUserResponse(u), nil
}

// DeactivateUser soft-deletes a user by marking the account inactive.
func (s *Service) DeactivateUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.UpdateStatus(ctx, userID, domainUser.StatusInactive); err != nil {
		return err
	}

	logger.Info("User deactivated",
		zap.String("user_id", userID.String()),
		zap.String("event", "user_deactivated"),
	)
	return nil
}
