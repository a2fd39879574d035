package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/membersonly/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupUserTestRepository creates a user repository with a mock database
func setupUserTestRepository(t *testing.T) (*userRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewUserRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewUserRepository(db, zap.NewNop())

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		user          *models.User
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			user: &models.User{
				FirstName:        "Test",
				LastName:         "User",
				Email:            "test@example.com",
				PasswordHash:     "hashedpassword",
				MembershipStatus: models.NotMember,
				AdminStatus:      models.NotAdmin,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("Test", "User", "test@example.com", "hashedpassword", models.NotMember, models.NotAdmin).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedError: false,
			expectedID:    1,
		},
		{
			name: "database error on insert",
			user: &models.User{
				FirstName:        "Test",
				LastName:         "User",
				Email:            "test@example.com",
				PasswordHash:     "hashedpassword",
				MembershipStatus: models.NotMember,
				AdminStatus:      models.NotAdmin,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("Test", "User", "test@example.com", "hashedpassword", models.NotMember, models.NotAdmin).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			expectedID:    0,
		},
		{
			name: "duplicate email",
			user: &models.User{
				FirstName:        "Test",
				LastName:         "User",
				Email:            "duplicate@example.com",
				PasswordHash:     "hashedpassword",
				MembershipStatus: models.NotMember,
				AdminStatus:      models.NotAdmin,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("Test", "User", "duplicate@example.com", "hashedpassword", models.NotMember, models.NotAdmin).
					WillReturnError(errors.New("Error 1062: Duplicate entry 'duplicate@example.com' for key 'uq_email'"))
			},
			expectedError: true,
			expectedID:    0,
		},
		{
			name: "error getting last insert id",
			user: &models.User{
				FirstName:        "Test",
				LastName:         "User",
				Email:            "test@example.com",
				PasswordHash:     "hashedpassword",
				MembershipStatus: models.NotMember,
				AdminStatus:      models.NotAdmin,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("Test", "User", "test@example.com", "hashedpassword", models.NotMember, models.NotAdmin).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("last insert id error")))
			},
			expectedError: true,
			expectedID:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.user)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.user.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	columns := []string{"id", "first_name", "last_name", "email", "password_hash", "membership_status", "admin_status"}

	tests := []struct {
		name          string
		email         string
		setupMock     func(sqlmock.Sqlmock)
		expectedError string
		expectedUser  *models.User
	}{
		{
			name:  "success",
			email: "test@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(1, "Test", "User", "test@example.com", "hashedpassword", "MEMBER", "NOT_ADMIN")
				mock.ExpectQuery(`SELECT (.+) FROM users`).
					WithArgs("test@example.com").
					WillReturnRows(rows)
			},
			expectedUser: &models.User{
				ID:               1,
				FirstName:        "Test",
				LastName:         "User",
				Email:            "test@example.com",
				PasswordHash:     "hashedpassword",
				MembershipStatus: models.Member,
				AdminStatus:      models.NotAdmin,
			},
		},
		{
			name:  "user not found",
			email: "missing@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM users`).
					WithArgs("missing@example.com").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: "user not found",
		},
		{
			name:  "database error",
			email: "test@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM users`).
					WithArgs("test@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectedError: "failed to get user by email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			user, err := repo.GetByEmail(context.Background(), tt.email)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedUser, user)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	columns := []string{"id", "first_name", "last_name", "email", "password_hash", "membership_status", "admin_status"}

	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupUserTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows(columns).
			AddRow(5, "Admin", "User", "admin@example.com", "hash", "MEMBER", "ADMIN")
		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs(5).
			WillReturnRows(rows)

		user, err := repo.GetByID(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, 5, user.ID)
		assert.Equal(t, models.Member, user.MembershipStatus)
		assert.Equal(t, models.Admin, user.AdminStatus)
		assert.Equal(t, models.LevelAdmin, user.Level())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("user not found", func(t *testing.T) {
		repo, mock, cleanup := setupUserTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByID(context.Background(), 99)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "user not found")
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	tests := []struct {
		name           string
		email          string
		setupMock      func(sqlmock.Sqlmock)
		expectedError  bool
		expectedExists bool
	}{
		{
			name:  "email exists",
			email: "test@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("test@example.com").
					WillReturnRows(rows)
			},
			expectedExists: true,
		},
		{
			name:  "email does not exist",
			email: "missing@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"exists"}).AddRow(false)
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("missing@example.com").
					WillReturnRows(rows)
			},
			expectedExists: false,
		},
		{
			name:  "database error",
			email: "test@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("test@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			exists, err := repo.ExistsByEmail(context.Background(), tt.email)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedExists, exists)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_SetMember(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupUserTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE users SET`).
			WithArgs(models.Member, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetMember(context.Background(), 3)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupUserTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE users SET`).
			WithArgs(models.Member, 3).
			WillReturnError(errors.New("database error"))

		err := repo.SetMember(context.Background(), 3)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_SetAdmin(t *testing.T) {
	t.Run("sets both statuses", func(t *testing.T) {
		repo, mock, cleanup := setupUserTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE users SET`).
			WithArgs(models.Member, models.Admin, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetAdmin(context.Background(), 3)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupUserTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE users SET`).
			WithArgs(models.Member, models.Admin, 3).
			WillReturnError(errors.New("database error"))

		err := repo.SetAdmin(context.Background(), 3)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
