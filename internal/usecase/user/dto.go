package user

import (
	"time"

	domainUser "sankofa/internal/domain/user"

	"github.com/google/uuid"
)

type UpdateProfileRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=2,max=255"`
	Phone  *string `json:"phone" validate:"omitempty,phone"`
	Region *string `json:"region" validate:"omitempty,max=100"`
}

// CreateUserRequest provisions an account. ID is the Supabase auth user id;
// a fresh one is generated when it is omitted.
type CreateUserRequest struct {
	ID       *uuid.UUID `json:"id"`
	Name     string  `json:"name" validate:"required,min=2,max=255"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
	Role     string  `json:"role" validate:"required,user_role"`
	Region   *string `json:"region" validate:"omitempty,max=100"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

type UpdateUserRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=2,max=255"`
	Phone  *string `json:"phone" validate:"omitempty,phone"`
	Role   *string `json:"role" validate:"omitempty,user_role"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	Region *string `json:"region" validate:"omitempty,max=100"`
}

type ListUsersRequest struct {
	Role     string `form:"role" validate:"omitempty,user_role"`
	Status   string `form:"status" validate:"omitempty,oneof=active inactive suspended"`
	Region   string `form:"region"`
	Search   string `form:"search" validate:"omitempty,max=100"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// RedeemRequest spends health tokens toward NHIS membership.
type RedeemRequest struct {
	Tokens  float64 `json:"tokens" validate:"required,gt=0"`
	Purpose string  `json:"purpose" validate:"required,oneof=nhis_enrollment nhis_renewal"`
}

type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	Region       *string   `json:"region"`
	CashBalance  float64   `json:"cash_balance"`
	TokenBalance float64   `json:"token_balance"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type WalletResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	CashBalance  float64   `json:"cash_balance"`
	TokenBalance float64   `json:"token_balance"`
	Currency     string    `json:"currency"`
}

type RedeemResponse struct {
	Purpose        string  `json:"purpose"`
	TokensRedeemed float64 `json:"tokens_redeemed"`
	TokenBalance   float64 `json:"token_balance"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         string(u.Role),
		Status:       string(u.Status),
		Region:       u.Region,
		CashBalance:  u.CashBalance,
		TokenBalance: u.TokenBalance,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func ToUserResponses(users []*domainUser.User) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i, u := range users {
		out[i] = ToUserResponse(u)
	}
	return out
}

func (r *ListUsersRequest) ToFilter() *domainUser.Filter {
	filter := &domainUser.Filter{
		Region:   r.Region,
		Search:   r.Search,
		Page:     r.Page,
		PageSize: r.PageSize,
	}
	if r.Role != "" {
		role := domainUser.Role(r.Role)
		filter.Role = &role
	}
	if r.Status != "" {
		status := domainUser.Status(r.Status)
		filter.Status = &status
	}
	return filter
}
