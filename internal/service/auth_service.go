package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/assetflow/asset-service/internal/auth"
	"github.com/assetflow/asset-service/internal/config"
	"github.com/assetflow/asset-service/internal/domain"
	"github.com/assetflow/asset-service/internal/repository"
	apperrors "github.com/assetflow/asset-service/pkg/util"
)

// AuthService coordinates registration, login and profile flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	if tokens == nil {
		tokens = auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes)
	}
	return &AuthService{users: users, tokenMgr: tokens, bcryptCost: cfg.BcryptCost}
}

// RegisterInput describes a new account.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Role        domain.Role
	CompanyName *string
	CompanyLogo *string
	PhotoURL    *string
}

// Register creates an account and signs a token for it. HR accounts start on
// the basic package.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, domain.IssuedToken, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	if input.Role == "" {
		input.Role = domain.RoleEmployee
	}

	if missing := missingFields(map[string]string{
		"name":     input.Name,
		"email":    input.Email,
		"password": input.Password,
	}); len(missing) > 0 {
		return nil, domain.IssuedToken{}, apperrors.NewValidationError("missing required fields", map[string]any{"missing": missing})
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, domain.IssuedToken{}, apperrors.NewValidationError("invalid email", map[string]any{"email": input.Email})
	}
	if len(input.Password) < auth.MinPasswordLength {
		return nil, domain.IssuedToken{}, apperrors.NewValidationError("password too short", map[string]any{"min": auth.MinPasswordLength})
	}
	if !input.Role.Valid() {
		return nil, domain.IssuedToken{}, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
	}
	if input.Role == domain.RoleHR && domain.StringOrEmpty(input.CompanyName) == "" {
		return nil, domain.IssuedToken{}, apperrors.NewValidationError("companyName is required for hr accounts", nil)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, domain.IssuedToken{}, err
	}

	user := &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		Role:         input.Role,
		PasswordHash: hash,
		PhotoURL:     input.PhotoURL,
	}
	if input.Role == domain.RoleHR {
		user.CompanyName = input.CompanyName
		user.CompanyLogo = input.CompanyLogo
		user.Subscription = domain.DefaultSubscription
		user.PackageLimit = domain.DefaultPackageLimit
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.IssuedToken{}, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
		}
		return nil, domain.IssuedToken{}, err
	}

	token, err := s.tokenMgr.GenerateToken(user.Email, user.Role)
	if err != nil {
		return nil, domain.IssuedToken{}, err
	}
	return user, token, nil
}

// Login authenticates an account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, domain.IssuedToken, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.IssuedToken{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, domain.IssuedToken{}, err
	}
	if !auth.PasswordMatches(user.PasswordHash, password) {
		return nil, domain.IssuedToken{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, err := s.tokenMgr.GenerateToken(user.Email, user.Role)
	if err != nil {
		return nil, domain.IssuedToken{}, err
	}
	return user, token, nil
}

// GetProfile loads an account by email.
func (s *AuthService) GetProfile(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, notFoundOr(err, "user", map[string]any{"email": email})
	}
	return user, nil
}

// UpdateProfile changes the display name and photo.
func (s *AuthService) UpdateProfile(ctx context.Context, email, name string, photoURL *string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	email = normalizeEmail(email)
	if err := s.users.UpdateProfile(ctx, email, name, photoURL); err != nil {
		return nil, notFoundOr(err, "user", map[string]any{"email": email})
	}
	return s.GetProfile(ctx, email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
