package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/qubitgyan/qubitgyan-backend/internal/repository"
)

// ErrEmailTaken is returned when a create or update collides with an
// existing account email.
var ErrEmailTaken = errors.New("email already in use")

// UserService handles account management.
type UserService struct {
	users *repository.UserRepository
	auth  *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(users *repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{users: users, auth: auth}
}

// ListUsers retrieves accounts with pagination.
func (s *UserService) ListUsers(ctx context.Context, page, perPage int) ([]model.User, int64, error) {
	return s.users.List(ctx, page, perPage)
}

// GetUser retrieves one account.
func (s *UserService) GetUser(ctx context.Context, id int) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetProfile retrieves a user's capability profile.
func (s *UserService) GetProfile(ctx context.Context, userID int) (*model.UserProfile, error) {
	return s.users.GetProfile(ctx, userID)
}

// CreateUser creates an account with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		IsStaff:      req.IsStaff,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// UpdateUser patches an account. An empty password leaves the hash alone.
func (s *UserService) UpdateUser(ctx context.Context, id int, req *model.UpdateUserRequest) (*model.User, error) {
	u := &model.User{ID: id, Name: req.Name, Email: req.Email}
	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	if err := s.users.Update(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if req.AvatarURL != nil {
		if err := s.users.UpdateProfile(ctx, id, req.AvatarURL, nil, nil); err != nil {
			return nil, err
		}
	}
	return s.users.GetByID(ctx, id)
}

// UpdateCapabilities toggles a user's capability flags.
func (s *UserService) UpdateCapabilities(ctx context.Context, userID int, req *model.UpdateCapabilitiesRequest) (*model.UserProfile, error) {
	if err := s.users.UpdateProfile(ctx, userID, nil, req.CanManageUsers, req.CanManageContent); err != nil {
		return nil, err
	}
	return s.users.GetProfile(ctx, userID)
}

// DeleteUser removes an account.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	return s.users.Delete(ctx, id)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
