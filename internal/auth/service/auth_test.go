package service

import (
	"context"
	"testing"

	autherrors "resbook/internal/auth/errors"
	"resbook/internal/auth/validator"
	"resbook/pkg/config"
	apperrors "resbook/pkg/errors"
	"resbook/pkg/logger"
	"resbook/pkg/model"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepository struct {
	createFunc      func(ctx context.Context, user *model.User) error
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	findByIDFunc    func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = "65f1a2b3c4d5e6f7a8b9c0d1"
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, autherrors.ErrNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, autherrors.ErrNotFound
}

type staticIssuer struct{}

func (staticIssuer) Issue(user *model.User) (string, error) {
	return "token-for-" + user.Email, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Level: "error", Service: "test"}),
	}
}

func newTestService(repo *mockUserRepository) AuthService {
	cfg := testConfig()
	return NewAuthService(repo, staticIssuer{}, validator.NewAuthValidator(cfg.Log), cfg)
}

func TestRegister_AssignsUserRole(t *testing.T) {
	var created *model.User
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			user.ID = "65f1a2b3c4d5e6f7a8b9c0d1"
			created = user
			return nil
		},
	}
	svc := newTestService(repo)

	resp, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if created == nil {
		t.Fatal("expected user to be persisted")
	}
	if len(created.Roles) != 1 || created.Roles[0] != model.RoleUser {
		t.Errorf("Roles = %v, want [USER]", created.Roles)
	}
	if created.PasswordHash == "correct-horse" {
		t.Error("password must not be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("correct-horse")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			return autherrors.ErrEmailTaken
		},
	}
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	assertAppErrorCode(t, err, apperrors.CodeConflict)
}

func TestRegister_InvalidInput(t *testing.T) {
	called := false
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			called = true
			return nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
	})
	assertAppErrorCode(t, err, apperrors.CodeValidation)
	if called {
		t.Error("repository must not be touched when validation fails")
	}
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           "65f1a2b3c4d5e6f7a8b9c0d1",
				Email:        email,
				PasswordHash: string(hash),
				Roles:        []string{model.RoleUser},
			}, nil
		},
	}
	svc := newTestService(repo)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if resp.Token != "token-for-alice@example.com" {
		t.Errorf("Token = %q", resp.Token)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{Email: email, PasswordHash: string(hash), Roles: []string{model.RoleUser}}, nil
		},
	}
	svc := newTestService(repo)

	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assertAppErrorCode(t, err, apperrors.CodeUnauthenticated)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc := newTestService(&mockUserRepository{})

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assertAppErrorCode(t, err, apperrors.CodeUnauthenticated)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("error code = %s, want %s", appErr.Code, code)
	}
}
