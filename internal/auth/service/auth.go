package service

import (
	"context"
	"errors"

	autherrors "resbook/internal/auth/errors"
	"resbook/internal/auth/repository"
	"resbook/internal/auth/validator"
	"resbook/pkg/config"
	apperrors "resbook/pkg/errors"
	"resbook/pkg/model"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer abstracts the token manager so tests can fake issuance.
type TokenIssuer interface {
	Issue(user *model.User) (string, error)
}

type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
}

type authService struct {
	repo      repository.UserRepository
	tokens    TokenIssuer
	validator *validator.AuthValidator
	cfg       *config.Config
}

func NewAuthService(
	repo repository.UserRepository,
	tokens TokenIssuer,
	authValidator *validator.AuthValidator,
	cfg *config.Config,
) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		validator: authValidator,
		cfg:       cfg,
	}
}

// Register creates a USER account and returns a fresh token for it.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if err := s.validator.ValidateRegister(req); err != nil {
		s.cfg.Log.Warn("Registration validation failed", "error", err)
		return nil, apperrors.Validation("Invalid registration input", map[string]any{"error": err.Error()})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Roles:        []string{model.RoleUser},
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, autherrors.ErrEmailTaken) {
			return nil, apperrors.Conflict("Email is already registered")
		}
		return nil, apperrors.Internal("Failed to create user", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("User registered", "user_id", user.ID, "email", user.Email)
	return &model.AuthResponse{Token: token}, nil
}

// Login verifies credentials and returns a fresh token. Unknown email and
// wrong password report the same Unauthenticated error so login attempts
// cannot probe for registered addresses.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if err := s.validator.ValidateLogin(req); err != nil {
		s.cfg.Log.Warn("Login validation failed", "error", err)
		return nil, apperrors.Validation("Invalid login input", map[string]any{"error": err.Error()})
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return nil, apperrors.Unauthenticated("Invalid email or password")
		}
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthenticated("Invalid email or password")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("User logged in", "user_id", user.ID)
	return &model.AuthResponse{Token: token}, nil
}
