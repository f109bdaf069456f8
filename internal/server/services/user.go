// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and loading the current
// user profile.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/languagesphere/server/internal/common"
	"github.com/languagesphere/server/internal/server/auth"
	"github.com/languagesphere/server/internal/server/config"
	"github.com/languagesphere/server/internal/server/models"
	"github.com/languagesphere/server/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
//   - Register: validate input, create the user, issue a session token
//   - Login: verify credentials and issue a fresh token
//   - GetUser: load the profile referenced by a verified token
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            cfg.BcryptCost,
	}
}

// Register creates a new user and returns a session token alongside the
// created record. All validation violations are reported together via
// *ValidationError; a taken email yields common.ErrorAlreadyExists without
// mutating the existing record.
func (s *UserService) Register(ctx context.Context, name, email, password string) (string, *models.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if verr := validateRegistration(name, email, password); verr != nil {
		return "", nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	repo := s.repomanager.Users(s.db)
	created, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateToken(created.ID)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	return token, created, nil
}

// Login verifies the email/password pair and, on success, returns a fresh
// session token. Unknown email and wrong password are indistinguishable:
// both yield common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorInvalidCredentials
		}
		return "", nil, fmt.Errorf("error loading user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, common.ErrorInvalidCredentials
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	return token, user, nil
}

// GetUser loads the profile for a verified user id. A missing user yields
// common.ErrorNotFound (the account may have been removed after the token
// was issued).
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

func (s *UserService) generateToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.tokenValidityDuration)
}
