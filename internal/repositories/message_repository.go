package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/membersonly/backend/internal/models"
	"go.uber.org/zap"
)

// listCap is the hard limit on message list responses, not a page cursor
const listCap = 100

// messageRepository implements the message service repository interface
type messageRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *sql.DB, logger *zap.Logger) *messageRepository {
	return &messageRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new message. The timestamp is assigned by the database.
func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (title, text, author_id)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, message.Title, message.Text, message.AuthorID)
	if err != nil {
		r.logger.Error("failed to create message", zap.Error(err))
		return fmt.Errorf("failed to create message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	message.ID = int(id)
	return nil
}

// ListPreviews retrieves the restricted message shape, newest first.
// Equal timestamps keep insertion order.
func (r *messageRepository) ListPreviews(ctx context.Context) ([]models.MessagePreview, error) {
	query := `
		SELECT id, title, text
		FROM messages
		ORDER BY created_at DESC, id ASC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, listCap)
	if err != nil {
		r.logger.Error("failed to query message previews", zap.Error(err))
		return nil, fmt.Errorf("failed to query message previews: %w", err)
	}
	defer rows.Close()

	previews := []models.MessagePreview{}
	for rows.Next() {
		var preview models.MessagePreview
		if err := rows.Scan(&preview.ID, &preview.Title, &preview.Text); err != nil {
			r.logger.Error("failed to scan message preview", zap.Error(err))
			return nil, fmt.Errorf("failed to scan message preview: %w", err)
		}
		previews = append(previews, preview)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return previews, nil
}

// ListWithAuthors retrieves the full message shape with the author joined in, newest first
func (r *messageRepository) ListWithAuthors(ctx context.Context) ([]models.MessageResponse, error) {
	query := `
		SELECT m.id, m.title, m.text, m.created_at,
		       u.id, u.first_name, u.last_name, u.membership_status, u.admin_status
		FROM messages m
		JOIN users u ON u.id = m.author_id
		ORDER BY m.created_at DESC, m.id ASC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, listCap)
	if err != nil {
		r.logger.Error("failed to query messages with authors", zap.Error(err))
		return nil, fmt.Errorf("failed to query messages with authors: %w", err)
	}
	defer rows.Close()

	messages := []models.MessageResponse{}
	for rows.Next() {
		var message models.MessageResponse
		err := rows.Scan(
			&message.ID,
			&message.Title,
			&message.Text,
			&message.CreatedAt,
			&message.Author.ID,
			&message.Author.FirstName,
			&message.Author.LastName,
			&message.Author.MembershipStatus,
			&message.Author.AdminStatus,
		)
		if err != nil {
			r.logger.Error("failed to scan message", zap.Error(err))
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return messages, nil
}

// Delete removes a message by ID and reports how many rows were affected
func (r *messageRepository) Delete(ctx context.Context, messageID int) (int64, error) {
	query := `DELETE FROM messages WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, messageID)
	if err != nil {
		r.logger.Error("failed to delete message", zap.Error(err), zap.Int("messageId", messageID))
		return 0, fmt.Errorf("failed to delete message: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("failed to get rows affected", zap.Error(err))
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}
