package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/membersonly/backend/internal/models"
	"go.uber.org/zap"
)

// Message content bounds
const (
	maxTitleLength = 30
	maxTextLength  = 255
)

// MessageRepository is the interface that wraps methods for Message table data access
type MessageRepository interface {
	// Method Create inserts a new message into the database.
	//
	// "message" parameter is used to create a new message; its ID is filled in on success.
	// The creation timestamp is assigned by the database.
	//
	// If some error occurs during message creation, the error will be returned.
	Create(ctx context.Context, message *models.Message) error
	// Method ListPreviews retrieves the restricted message shape, newest first.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	ListPreviews(ctx context.Context) ([]models.MessagePreview, error)
	// Method ListWithAuthors retrieves the full message shape with authors, newest first.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	ListWithAuthors(ctx context.Context) ([]models.MessageResponse, error)
	// Method Delete removes a message by ID.
	//
	// "messageID" parameter identifies the message.
	//
	// Returns the number of deleted rows; 0 means the id was unknown.
	Delete(ctx context.Context, messageID int) (int64, error)
}

// messageService implements MessageService
type messageService struct {
	messageRepo MessageRepository
	logger      *zap.Logger
}

// NewMessageService creates a new message service
func NewMessageService(messageRepo MessageRepository, logger *zap.Logger) *messageService {
	return &messageService{
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// ListPublic returns the restricted message shape visible to everyone
func (s *messageService) ListPublic(ctx context.Context) ([]models.MessagePreview, error) {
	return s.messageRepo.ListPreviews(ctx)
}

// ListFull returns the full message shape with authors and timestamps.
// Callers reach this only through the member-gated route.
func (s *messageService) ListFull(ctx context.Context) ([]models.MessageResponse, error) {
	return s.messageRepo.ListWithAuthors(ctx)
}

// Add validates and stores a new message authored by the given user
func (s *messageService) Add(ctx context.Context, authorID int, req *models.NewMessageRequest) error {
	if req.Title == "" || utf8.RuneCountInString(req.Title) > maxTitleLength {
		return fmt.Errorf("%w: title must contain 1 to %d characters", ErrValidation, maxTitleLength)
	}

	if req.Text == "" || utf8.RuneCountInString(req.Text) > maxTextLength {
		return fmt.Errorf("%w: text must contain 1 to %d characters", ErrValidation, maxTextLength)
	}

	message := &models.Message{
		Title:    req.Title,
		Text:     req.Text,
		AuthorID: authorID,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return err
	}

	s.logger.Info("message created", zap.Int("messageId", message.ID), zap.Int("authorId", authorID))
	return nil
}

// Delete removes a message by ID
func (s *messageService) Delete(ctx context.Context, messageID int) error {
	affected, err := s.messageRepo.Delete(ctx, messageID)
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrMessageNotFound
	}

	s.logger.Info("message deleted", zap.Int("messageId", messageID))
	return nil
}
