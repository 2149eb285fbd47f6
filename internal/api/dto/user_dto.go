package dto

import (
	"time"

	"github.com/assetflow/asset-service/internal/domain"
)

// UserRegisterRequest payload for new accounts.
type UserRegisterRequest struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	Role        domain.Role `json:"role"`
	CompanyName *string     `json:"companyName"`
	CompanyLogo *string     `json:"companyLogo"`
	PhotoURL    *string     `json:"photoURL"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdateRequest payload for profile changes.
type UserUpdateRequest struct {
	Name     string  `json:"name"`
	PhotoURL *string `json:"photoURL"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	Email            string      `json:"email"`
	Name             string      `json:"name"`
	Role             domain.Role `json:"role"`
	CompanyName      *string     `json:"companyName,omitempty"`
	CompanyLogo      *string     `json:"companyLogo,omitempty"`
	PhotoURL         *string     `json:"photoURL,omitempty"`
	Subscription     string      `json:"subscription,omitempty"`
	PackageLimit     *int        `json:"packageLimit,omitempty"`
	CurrentEmployees *int        `json:"currentEmployees,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// NewUserResponse maps an account; capacity fields are shown for HR only.
func NewUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		CompanyName: u.CompanyName,
		CompanyLogo: u.CompanyLogo,
		PhotoURL:    u.PhotoURL,
		CreatedAt:   u.CreatedAt,
	}
	if u.IsHR() {
		limit, current := u.PackageLimit, u.CurrentEmployees
		resp.Subscription = u.Subscription
		resp.PackageLimit = &limit
		resp.CurrentEmployees = &current
	}
	return resp
}
