// Package services contains server-side business logic: account handling,
// document storage rules, and export-archive presigning.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mlukyanov/promptstash/internal/common"
	"github.com/mlukyanov/promptstash/internal/cryptox"
	"github.com/mlukyanov/promptstash/internal/server/auth"
	"github.com/mlukyanov/promptstash/internal/server/config"
	"github.com/mlukyanov/promptstash/internal/server/models"
	"github.com/mlukyanov/promptstash/internal/server/repositories/users"
)

const saltSize = 16

// UserService handles registration and login. Passwords are stored as an
// argon2id verifier beside a random salt; login issues an HS256 JWT.
type UserService struct {
	repo                        users.Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new account. A taken login yields ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, login, password string) (*models.User, error) {
	if login == "" || password == "" {
		return nil, fmt.Errorf("%w: login and password are required", common.ErrInternal)
	}

	salt := common.GenerateRandByteArray(saltSize)
	user := &models.User{
		Login:    login,
		Salt:     salt,
		Verifier: cryptox.DeriveVerifier([]byte(password), salt),
	}

	u, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the credentials and returns a signed access token together
// with the user id. Unknown logins and wrong passwords are indistinguishable.
func (s *UserService) Login(ctx context.Context, login, password string) (token string, userID string, err error) {
	user, err := s.repo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", "", common.ErrUnauthorized
		}
		return "", "", common.ErrInternal
	}

	if !cryptox.VerifyPassword([]byte(password), user.Salt, user.Verifier) {
		return "", "", common.ErrUnauthorized
	}

	token, err = auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", "", common.ErrInternal
	}
	return token, user.ID, nil
}
