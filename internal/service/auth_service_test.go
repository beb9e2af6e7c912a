package service

import (
	"errors"
	"testing"
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
)

func newAuth(e *testEnv) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(e.users, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	e := newTestEnv(t)
	auth := newAuth(e)

	reg, err := auth.Register(RegisterRequest{
		FullName: "Ada",
		Email:    "ada@test.local",
		Password: "correcthorse",
		Domain:   "backend",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.Token == "" {
		t.Fatalf("no token issued")
	}
	if reg.User.Role != model.Student {
		t.Fatalf("default role should be student, got %q", reg.User.Role)
	}

	claims, err := util.ParseJWT(reg.Token, "test-secret-test-secret-test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != reg.User.ID || claims.Email != "ada@test.local" {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	login, err := auth.Login(LoginRequest{Email: "ada@test.local", Password: "correcthorse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.Token == "" {
		t.Fatalf("login issued no token")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e := newTestEnv(t)
	auth := newAuth(e)

	req := RegisterRequest{FullName: "Ada", Email: "ada@test.local", Password: "correcthorse"}
	if _, err := auth.Register(req); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := auth.Register(req); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	e := newTestEnv(t)
	auth := newAuth(e)

	if _, err := auth.Register(RegisterRequest{FullName: "Ada", Email: "ada@test.local", Password: "correcthorse"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := auth.Login(LoginRequest{Email: "ada@test.local", Password: "wrong"}); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := auth.Login(LoginRequest{Email: "nobody@test.local", Password: "whatever"}); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
