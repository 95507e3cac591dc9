package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pratik-mahalle/hireloop/internal/domain/user"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
)

// UserService implements user.Service
type UserService struct {
	repo       user.Repository
	logger     *logger.Logger
	bcryptCost int
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, log *logger.Logger, bcryptCost int) user.Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		repo:       repo,
		logger:     log,
		bcryptCost: bcryptCost,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.repo.GetByEmail(ctx, normalizeEmail(email))
}

// Register creates an unverified account
func (s *UserService) Register(ctx context.Context, email, password string, fullName *string) (*user.User, error) {
	email = normalizeEmail(email)

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, errors.Conflict("An account with this email already exists")
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	u := &user.User{
		Email:             email,
		FullName:          fullName,
		PasswordHash:      string(hash),
		Role:              user.RoleUser,
		VerificationToken: uuid.NewString(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create user")
		return nil, err
	}

	// mail delivery is handled outside this service
	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"token":   u.VerificationToken,
	}).Debug("Verification token issued")

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("User registered")

	return u, nil
}

// Authenticate checks an email and password pair
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Unauthorized("Invalid email or password")
	}

	return u, nil
}

// VerifyEmail marks the holder of token as verified
func (s *UserService) VerifyEmail(ctx context.Context, token string) (*user.User, error) {
	u, err := s.repo.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.BadRequest("Invalid or used verification token")
		}
		return nil, err
	}

	u.EmailVerified = true
	u.VerificationToken = ""
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to verify email")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
	}).Info("Email verified")

	return u, nil
}

// Update updates a user
func (s *UserService) Update(ctx context.Context, u *user.User) error {
	err := s.repo.Update(ctx, u)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to update user")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
	}).Info("User updated")

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
