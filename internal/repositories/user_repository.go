package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/membersonly/backend/internal/models"
	"go.uber.org/zap"
)

// userRepository implements the user services' repository interfaces
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (first_name, last_name, email, password_hash, membership_status, admin_status)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.MembershipStatus, user.AdminStatus)
	if err != nil {
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, membership_status, admin_status
		FROM users
		WHERE email = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.MembershipStatus,
		&user.AdminStatus,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		r.logger.Error("failed to get user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, membership_status, admin_status
		FROM users
		WHERE id = ?
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.MembershipStatus,
		&user.AdminStatus,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		r.logger.Error("failed to get user by id", zap.Error(err), zap.Int("userId", userID))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// ExistsByEmail checks if a user exists with the given email
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM users WHERE email = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	if err != nil {
		r.logger.Error("failed to check email existence", zap.Error(err), zap.String("email", email))
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// SetMember marks a user as a member
func (r *userRepository) SetMember(ctx context.Context, userID int) error {
	query := `UPDATE users SET membership_status = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, models.Member, userID); err != nil {
		r.logger.Error("failed to set membership status", zap.Error(err), zap.Int("userId", userID))
		return fmt.Errorf("failed to set membership status: %w", err)
	}

	return nil
}

// SetAdmin marks a user as an admin. Admin implies member, so both
// statuses are set in a single update on the row.
func (r *userRepository) SetAdmin(ctx context.Context, userID int) error {
	query := `UPDATE users SET membership_status = ?, admin_status = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, models.Member, models.Admin, userID); err != nil {
		r.logger.Error("failed to set admin status", zap.Error(err), zap.Int("userId", userID))
		return fmt.Errorf("failed to set admin status: %w", err)
	}

	return nil
}
