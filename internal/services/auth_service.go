package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/membersonly/backend/internal/auth"
	"github.com/membersonly/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost is the bcrypt work factor used for stored passwords
const passwordHashCost = 12

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user; its ID is filled in on success.
	//
	// If some error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by email.
	//
	// "email" parameter is used to retrieve a user by email.
	//
	// If user with such email does not exist, the error will be returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// "userID" parameter is used to retrieve a user by ID.
	//
	// If user with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// "email" parameter is used to check if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// authService implements AuthService
type authService struct {
	userRepo       UserRepository
	tokenGenerator *auth.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokenGenerator *auth.TokenGenerator, logger *zap.Logger) *authService {
	return &authService{
		userRepo:       userRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Name and password bounds for sign-up input
const (
	maxNameLength     = 50
	minPasswordLength = 4
)

// SignUp validates the sign-up input, creates the user with default statuses
// and returns the created profile together with access and refresh tokens.
func (s *authService) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.ProfileResponse, string, string, error) {
	normalizedEmail, err := s.checkSignUpInput(ctx, req)
	if err != nil {
		return nil, "", "", err
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	// Create user with default statuses
	user := &models.User{
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		Email:            normalizedEmail,
		PasswordHash:     string(passwordHash),
		MembershipStatus: models.NotMember,
		AdminStatus:      models.NotAdmin,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	s.logger.Info("user signed up", zap.Int("userId", user.ID))

	accessToken, refreshToken, err := s.tokenGenerator.GenerateTokens(user.ID, user.Level())
	if err != nil {
		return nil, "", "", err
	}

	return models.NewProfileResponse(user), accessToken, refreshToken, nil
}

// Login authenticates a user by email and password. An unknown email and a
// wrong password produce the same error, no account-existence leak.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.ProfileResponse, string, string, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return nil, "", "", ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.tokenGenerator.GenerateTokens(user.ID, user.Level())
	if err != nil {
		return nil, "", "", err
	}

	return models.NewProfileResponse(user), accessToken, refreshToken, nil
}

// Refresh validates a refresh token and issues a new token pair. The user's
// current role flags are re-read, so a membership upgrade survives rotation.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	userID, err := s.tokenGenerator.ValidateRefreshToken(strings.TrimSpace(refreshToken))
	if err != nil {
		return "", "", fmt.Errorf("invalid or expired refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", "", err
	}

	return s.tokenGenerator.GenerateTokens(user.ID, user.Level())
}

// checkSignUpInput validates all sign-up fields and checks email uniqueness.
// Returns the normalized email on success.
func (s *authService) checkSignUpInput(ctx context.Context, req *models.SignUpRequest) (string, error) {
	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" || utf8.RuneCountInString(firstName) > maxNameLength {
		return "", fmt.Errorf("%w: first name must contain 1 to %d characters", ErrValidation, maxNameLength)
	}

	lastName := strings.TrimSpace(req.LastName)
	if lastName == "" || utf8.RuneCountInString(lastName) > maxNameLength {
		return "", fmt.Errorf("%w: last name must contain 1 to %d characters", ErrValidation, maxNameLength)
	}

	normalizedEmail := strings.TrimSpace(strings.ToLower(req.Email))
	if !emailRegex.MatchString(normalizedEmail) {
		return "", fmt.Errorf("%w: invalid email format", ErrValidation)
	}

	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must contain at least %d characters", ErrValidation, minPasswordLength)
	}

	emailExists, err := s.userRepo.ExistsByEmail(ctx, normalizedEmail)
	if err != nil {
		return "", fmt.Errorf("failed to check email: %w", err)
	}
	if emailExists {
		return "", ErrEmailTaken
	}

	return normalizedEmail, nil
}
