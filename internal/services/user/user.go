// Package user contains the business layer between the HTTP handlers
// and the user repository.
package user

import (
	"context"
	"log/slog"

	"github.com/frolovda/user-registry/internal/models"
)

// Repository defines the persistence operations the service relies on.
type Repository interface {
	// Create inserts a new user with stamped timestamps.
	Create(ctx context.Context, username, email string, feature models.Feature) error
	// List returns all users, newest first.
	List(ctx context.Context) ([]models.User, error)
	// GetByID returns a user or storage.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// Update applies a partial update and returns the affected row count.
	Update(ctx context.Context, id int64, fields models.UpdateFields) (int64, error)
	// Delete removes a user and returns the affected row count.
	Delete(ctx context.Context, id int64) (int64, error)
}

// Service implements the user operations on top of a Repository.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New creates a Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Create stores a new user.
func (s *Service) Create(ctx context.Context, req models.CreateUserRequest) error {
	if err := s.repo.Create(ctx, req.Username, req.Email, req.Feature); err != nil {
		return err
	}
	s.log.Info("created new user", slog.String("username", req.Username))
	return nil
}

// List returns all users ordered newest first.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update. Empty field sets are rejected by the
// HTTP layer before the service is called.
func (s *Service) Update(ctx context.Context, id int64, fields models.UpdateFields) (int64, error) {
	count, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated user", slog.Int64("id", id), slog.Int64("rows", count))
	return count, nil
}

// Delete removes a user by id. A missing id is not an error.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	count, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("deleted user", slog.Int64("id", id), slog.Int64("rows", count))
	return count, nil
}
