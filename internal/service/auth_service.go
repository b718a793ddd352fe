package service

import (
	"context"
	"time"

	"datablog/internal/auth"
	"datablog/internal/dto"
	"datablog/internal/models"
	"datablog/internal/observability"
	"datablog/internal/repository"
)

// TokenBlacklist records revoked token ids until the tokens expire.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthService issues, checks and revokes access tokens.
type AuthService struct {
	store     repository.Store
	users     *UserService
	tokens    *auth.TokenManager
	blacklist TokenBlacklist
	hasher    passwordHasher
}

func NewAuthService(store repository.Store, users *UserService, tokens *auth.TokenManager, blacklist TokenBlacklist) *AuthService {
	return &AuthService{store: store, users: users, tokens: tokens, blacklist: blacklist}
}

// Login checks credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	ctx, end := observability.StartSpan(ctx, "AuthService.Login")
	resp, err := s.login(ctx, email, password)
	end(err)

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	observability.LoginAttempts.WithLabelValues(outcome).Inc()
	return resp, err
}

func (s *AuthService) login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, models.NewUnauthenticatedError("Invalid credentials")
		}
		return nil, err
	}
	if !s.hasher.Matches(user.Password, password) {
		return nil, models.NewUnauthenticatedError("Invalid credentials")
	}
	if !user.IsActive {
		return nil, models.NewUnauthenticatedError("Account is disabled")
	}

	token, _, err := s.tokens.Generate(user.ID, user.Email, user.RoleName())
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &dto.LoginResponse{Message: "Login successful", Email: user.Email, Token: token}, nil
}

// Register creates a USER account.
func (s *AuthService) Register(ctx context.Context, in dto.UserDTO) (*dto.UserDTO, error) {
	return s.users.Register(ctx, in)
}

// Authenticate verifies a bearer token and resolves the caller's current role.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Principal, *auth.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, nil, models.NewUnauthenticatedError("Invalid or expired token")
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, nil, models.NewInternalError(err)
		}
		if revoked {
			return nil, nil, models.NewUnauthenticatedError("Token has been revoked")
		}
	}

	user, err := s.store.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, nil, models.NewUnauthenticatedError("User no longer exists")
		}
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, models.NewUnauthenticatedError("Account is disabled")
	}

	return &auth.Principal{UserID: user.ID, Email: user.Email, Role: user.RoleName()}, claims, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.blacklist == nil || claims == nil {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
