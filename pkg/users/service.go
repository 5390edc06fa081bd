package users

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shelfwise/shelfwise/pkg/auth"
	"github.com/shelfwise/shelfwise/pkg/errcodes"
	"github.com/shelfwise/shelfwise/pkg/models"
	"github.com/shelfwise/shelfwise/pkg/validation"
	"github.com/uptrace/bun"
)

// Service handles user account operations. The outstanding-fee balance is
// read here but only ever mutated by the rentals workflow.
type Service struct {
	db *bun.DB
}

// NewService creates a new users service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// RegisterOptions contains options for registering a user.
type RegisterOptions struct {
	Username string
	Password string
	IsAdmin  bool
}

// Register creates a new user account.
func (s *Service) Register(ctx context.Context, opts RegisterOptions) (*models.User, error) {
	username, verr := validation.Username(opts.Username)
	if verr != nil {
		return nil, errcodes.ValidationError(verr.Error())
	}
	if _, verr := validation.BoundedString("password", opts.Password, validation.MaxCredentialLen); verr != nil {
		return nil, errcodes.ValidationError(verr.Error())
	}

	exists, err := s.db.NewSelect().
		Model((*models.User)(nil)).
		Where("username = ? COLLATE NOCASE", username).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if exists {
		return nil, errcodes.ValidationError("Username already exists")
	}

	hashedPassword, err := auth.HashPassword(opts.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		CreatedAt:    now,
		UpdatedAt:    now,
		Username:     username,
		PasswordHash: hashedPassword,
		IsAdmin:      opts.IsAdmin,
	}

	_, err = s.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// Retrieve gets a user by ID.
func (s *Service) Retrieve(ctx context.Context, id int) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.NotFound("User")
	}
	return user, nil
}

// RetrieveByUsername gets a user by username, case-insensitively.
func (s *Service) RetrieveByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Where("u.username = ? COLLATE NOCASE", username).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.NotFound("User")
	}
	return user, nil
}

// ListOptions contains options for listing users.
type ListOptions struct {
	Limit  int
	Offset int
}

// List returns a paginated list of users.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*models.User, int, error) {
	users := []*models.User{}

	query := s.db.NewSelect().
		Model(&users).
		Order("u.id ASC")

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	total, err := query.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return users, total, nil
}

// ChangePassword replaces a user's password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	user, err := s.Retrieve(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(currentPassword, user.PasswordHash) {
		return errcodes.Unauthorized("Current password is incorrect")
	}

	if _, verr := validation.BoundedString("password", newPassword, validation.MaxCredentialLen); verr != nil {
		return errcodes.ValidationError(verr.Error())
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	_, err = s.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("password_hash = ?", hashedPassword).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}
