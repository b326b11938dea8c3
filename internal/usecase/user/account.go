package user

import (
	"context"
	"errors"
	"strings"

	domainUser "sankofa/internal/domain/user"
	"sankofa/internal/logger"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Resolve returns the stored account for a verified token identity. The first
// request from a new Supabase user creates the row from the token's email and
// role; after that the stored role and status are authoritative.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID, email, role string) (*domainUser.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, err
	}

	email, err = utils.ValidateAndSanitizeEmail(email)
	if err != nil {
		return nil, domainUser.ErrUserNotFound
	}

	u = &domainUser.User{
		ID:     id,
		Name:   nameFromEmail(email),
		Email:  email,
		Role:   provisionedRole(role),
		Status: domainUser.StatusActive,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if !errors.Is(err, domainUser.ErrUserAlreadyExists) {
			return nil, err
		}
		// a concurrent first request may have created it
		if existing, getErr := s.userRepo.GetByID(ctx, id); getErr == nil {
			return existing, nil
		}
		logger.Warn("Token identity collides with an existing email",
			zap.String("user_id", id.String()),
			zap.String("email", email),
			zap.String("event", "user_identity_conflict"),
		)
		return nil, domainUser.ErrIdentityConflict
	}

	logger.Info("User provisioned from token",
		zap.String("user_id", u.ID.String()),
		zap.String("role", string(u.Role)),
		zap.String("event", "user_provisioned"),
	)
	return u, nil
}

// provisionedRole maps the token role onto an application role. Supabase's
// generic "authenticated" role becomes collector.
func provisionedRole(role string) domainUser.Role {
	if r := domainUser.Role(role); r.Valid() {
		return r
	}
	return domainUser.RoleCollector
}

func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return email
	}
	return local
}
