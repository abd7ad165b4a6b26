// Package services implements the application operations on top of the
// repositories: credential handling with token issuance, and catalog CRUD.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkragh/cereald/internal/common"
	"github.com/mkragh/cereald/internal/dbx"
	"github.com/mkragh/cereald/internal/server/auth"
	"github.com/mkragh/cereald/internal/server/config"
	"github.com/mkragh/cereald/internal/server/models"
	"github.com/mkragh/cereald/internal/server/repositories/repomanager"
)

// Session is a minted token together with its expiration timestamp.
type Session struct {
	Token   string
	Expires time.Time
}

type UserService struct {
	db                    dbx.DBTX
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	jwtIssuer             string
	jwtAudience           string
	tokenValidityDuration time.Duration
}

func NewUserService(db dbx.DBTX, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		jwtIssuer:             cfg.JWTIssuer,
		jwtAudience:           cfg.JWTAudience,
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register hashes the password and persists a new credential. A duplicate
// username surfaces as common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password, role string) (*models.User, error) {

	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}

	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login validates the credentials and mints a signed session token. An
// unknown username and a wrong password both return common.ErrorUnauthorized
// so the response does not reveal which of the two was wrong.
func (s *UserService) Login(ctx context.Context, username, password string) (*Session, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	token, expires, err := auth.GenerateToken(user.Username, user.Role,
		s.jwtSecret, s.jwtIssuer, s.jwtAudience, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &Session{Token: token, Expires: expires}, nil
}
