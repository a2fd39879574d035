package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/membersonly/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockMessageRepository is a mock implementation of MessageRepository
type mockMessageRepository struct {
	previews       []models.MessagePreview
	messages       []models.MessageResponse
	created        *models.Message
	deleteAffected int64
	err            error
}

func (m *mockMessageRepository) Create(ctx context.Context, message *models.Message) error {
	if m.err != nil {
		return m.err
	}
	message.ID = 1
	m.created = message
	return nil
}

func (m *mockMessageRepository) ListPreviews(ctx context.Context) ([]models.MessagePreview, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.previews, nil
}

func (m *mockMessageRepository) ListWithAuthors(ctx context.Context) ([]models.MessageResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.messages, nil
}

func (m *mockMessageRepository) Delete(ctx context.Context, messageID int) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.deleteAffected, nil
}

func TestMessageService_ListPublic(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := &mockMessageRepository{
			previews: []models.MessagePreview{
				{ID: 2, Title: "Second", Text: "newer"},
				{ID: 1, Title: "First", Text: "older"},
			},
		}
		svc := NewMessageService(mockRepo, zap.NewNop())

		previews, err := svc.ListPublic(context.Background())

		require.NoError(t, err)
		require.Len(t, previews, 2)
		assert.Equal(t, "Second", previews[0].Title)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := &mockMessageRepository{err: errors.New("database error")}
		svc := NewMessageService(mockRepo, zap.NewNop())

		previews, err := svc.ListPublic(context.Background())

		assert.Error(t, err)
		assert.Nil(t, previews)
	})
}

func TestMessageService_ListFull(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := &mockMessageRepository{
			messages: []models.MessageResponse{
				{
					ID:        1,
					Title:     "Hello",
					Text:      "full text",
					CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
					Author: models.MessageAuthor{
						ID:        2,
						FirstName: "Alice",
						LastName:  "Admin",
					},
				},
			},
		}
		svc := NewMessageService(mockRepo, zap.NewNop())

		messages, err := svc.ListFull(context.Background())

		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, "Alice", messages[0].Author.FirstName)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := &mockMessageRepository{err: errors.New("database error")}
		svc := NewMessageService(mockRepo, zap.NewNop())

		messages, err := svc.ListFull(context.Background())

		assert.Error(t, err)
		assert.Nil(t, messages)
	})
}

func TestMessageService_Add(t *testing.T) {
	tests := []struct {
		name          string
		request       *models.NewMessageRequest
		expectedError bool
	}{
		{
			name:    "success",
			request: &models.NewMessageRequest{Title: "Hello", Text: "A message"},
		},
		{
			name:    "title at maximum length",
			request: &models.NewMessageRequest{Title: strings.Repeat("a", 30), Text: "A message"},
		},
		{
			name:    "text at maximum length",
			request: &models.NewMessageRequest{Title: "Hello", Text: strings.Repeat("b", 255)},
		},
		{
			name:          "empty title",
			request:       &models.NewMessageRequest{Title: "", Text: "A message"},
			expectedError: true,
		},
		{
			name:          "title too long",
			request:       &models.NewMessageRequest{Title: strings.Repeat("a", 31), Text: "A message"},
			expectedError: true,
		},
		{
			name:          "empty text",
			request:       &models.NewMessageRequest{Title: "Hello", Text: ""},
			expectedError: true,
		},
		{
			name:          "text too long",
			request:       &models.NewMessageRequest{Title: "Hello", Text: strings.Repeat("b", 256)},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockMessageRepository{}
			svc := NewMessageService(mockRepo, zap.NewNop())

			err := svc.Add(context.Background(), 7, tt.request)

			if tt.expectedError {
				assert.ErrorIs(t, err, ErrValidation)
				assert.Nil(t, mockRepo.created)
			} else {
				require.NoError(t, err)
				require.NotNil(t, mockRepo.created)
				assert.Equal(t, 7, mockRepo.created.AuthorID)
				assert.Equal(t, tt.request.Title, mockRepo.created.Title)
			}
		})
	}

	t.Run("multibyte runes count as single characters", func(t *testing.T) {
		mockRepo := &mockMessageRepository{}
		svc := NewMessageService(mockRepo, zap.NewNop())

		err := svc.Add(context.Background(), 7, &models.NewMessageRequest{
			Title: strings.Repeat("日", 30),
			Text:  strings.Repeat("本", 255),
		})

		assert.NoError(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := &mockMessageRepository{err: errors.New("database error")}
		svc := NewMessageService(mockRepo, zap.NewNop())

		err := svc.Add(context.Background(), 7, &models.NewMessageRequest{Title: "Hello", Text: "A message"})

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrValidation)
	})
}

func TestMessageService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		mockRepo      *mockMessageRepository
		expectedError error
	}{
		{
			name:     "success",
			mockRepo: &mockMessageRepository{deleteAffected: 1},
		},
		{
			name:          "message not found",
			mockRepo:      &mockMessageRepository{deleteAffected: 0},
			expectedError: ErrMessageNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMessageService(tt.mockRepo, zap.NewNop())

			err := svc.Delete(context.Background(), 5)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("repository error", func(t *testing.T) {
		mockRepo := &mockMessageRepository{err: errors.New("database error")}
		svc := NewMessageService(mockRepo, zap.NewNop())

		err := svc.Delete(context.Background(), 5)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrMessageNotFound)
	})
}
