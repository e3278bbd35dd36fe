package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taskfeed/taskfeed-go/internal/crypto"
	"github.com/taskfeed/taskfeed-go/internal/model"
	"github.com/taskfeed/taskfeed-go/internal/repository"
)

// Sentinel errors double as the user-facing API messages, so their text
// keeps the wire wording.
var (
	ErrUsernameRequired    = errors.New("Username is required")
	ErrEmailRequired       = errors.New("Email is required")
	ErrPasswordRequired    = errors.New("Password is required")
	ErrEmailRegistered     = errors.New("Email already registered")
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrMissingRefreshToken = errors.New("No refresh token provided")
	ErrInvalidRefreshToken = errors.New("Invalid refresh token")
)

// TokenConfig carries the signing secrets and lifetimes for the token pair.
// The two secrets must be distinct so refresh tokens are never accepted as
// access tokens and vice versa.
type TokenConfig struct {
	AccessSecret    string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// AuthService orchestrates signup, signin, and access-token refresh.
type AuthService struct {
	repo   *repository.UserRepository
	tokens TokenConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.UserRepository, tokens TokenConfig) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Signup registers a new user and returns a token pair with the public view
// of the created user. The duplicate-email pre-check is not atomic with the
// insert; the unique index maps a lost race to the same error.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username == "" {
		return model.AuthResponse{}, ErrUsernameRequired
	}
	if email == "" {
		return model.AuthResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.AuthResponse{}, ErrPasswordRequired
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return model.AuthResponse{}, ErrEmailRegistered
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.AuthResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailRegistered
		}
		return model.AuthResponse{}, err
	}

	return s.issueTokenPair(user)
}

// Signin authenticates a user by email and password. An unknown email and a
// wrong password yield the same error so callers cannot tell which failed.
func (s *AuthService) Signin(ctx context.Context, req model.SigninRequest) (model.AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	return s.issueTokenPair(user)
}

// Refresh verifies a refresh token and mints a new access token. The refresh
// token itself is not rotated or re-issued.
func (s *AuthService) Refresh(req model.RefreshRequest) (model.RefreshResponse, error) {
	if req.Token == "" {
		return model.RefreshResponse{}, ErrMissingRefreshToken
	}

	claims, err := crypto.ValidateToken(req.Token, s.tokens.RefreshSecret)
	if err != nil {
		return model.RefreshResponse{}, ErrInvalidRefreshToken
	}

	token, err := crypto.GenerateAccessToken(claims.UserID, s.tokens.AccessSecret, s.tokens.AccessTokenTTL)
	if err != nil {
		return model.RefreshResponse{}, err
	}

	return model.RefreshResponse{Token: token}, nil
}

// Me returns the public view of the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}
	return user.PublicView(), nil
}

func (s *AuthService) issueTokenPair(user *model.User) (model.AuthResponse, error) {
	access, err := crypto.GenerateAccessToken(user.ID, s.tokens.AccessSecret, s.tokens.AccessTokenTTL)
	if err != nil {
		return model.AuthResponse{}, err
	}

	refresh, err := crypto.GenerateRefreshToken(user.ID, s.tokens.RefreshSecret, s.tokens.RefreshTokenTTL)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Token:        access,
		RefreshToken: refresh,
		User:         user.PublicView(),
	}, nil
}
