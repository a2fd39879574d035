package services

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/membersonly/backend/internal/models"
	"go.uber.org/zap"
)

// MembershipUserRepository is the interface that wraps methods for User table data access
// needed by the membership service
type MembershipUserRepository interface {
	// Method GetByID retrieves a user by ID.
	//
	// "userID" parameter is used to retrieve a user by ID.
	//
	// If user with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method SetMember marks the user as a member.
	//
	// "userID" parameter is used to identify the user.
	//
	// If some error occurs during the update, the error will be returned.
	SetMember(ctx context.Context, userID int) error
	// Method SetAdmin marks the user as both member and admin.
	//
	// "userID" parameter is used to identify the user.
	//
	// If some error occurs during the update, the error will be returned.
	SetAdmin(ctx context.Context, userID int) error
}

// membershipService implements MembershipService
type membershipService struct {
	userRepo       MembershipUserRepository
	memberPasscode string
	adminPasscode  string
	logger         *zap.Logger
}

// NewMembershipService creates a new membership service
func NewMembershipService(userRepo MembershipUserRepository, memberPasscode, adminPasscode string, logger *zap.Logger) *membershipService {
	return &membershipService{
		userRepo:       userRepo,
		memberPasscode: memberPasscode,
		adminPasscode:  adminPasscode,
		logger:         logger,
	}
}

// GetProfile retrieves the profile of the given user
func (s *membershipService) GetProfile(ctx context.Context, userID int) (*models.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return models.NewProfileResponse(user), nil
}

// BecomeMember upgrades the user to member status when the passcode matches
func (s *membershipService) BecomeMember(ctx context.Context, userID int, passcode string) (*models.ProfileResponse, error) {
	if !passcodeMatches(passcode, s.memberPasscode) {
		return nil, ErrWrongPasscode
	}

	if err := s.userRepo.SetMember(ctx, userID); err != nil {
		return nil, err
	}

	s.logger.Info("user became member", zap.Int("userId", userID))

	return s.updatedProfile(ctx, userID)
}

// BecomeAdmin upgrades the user to admin status when the passcode matches.
// Admin implies member, so the membership status is set as well even if the
// user never entered the member passcode.
func (s *membershipService) BecomeAdmin(ctx context.Context, userID int, passcode string) (*models.ProfileResponse, error) {
	if !passcodeMatches(passcode, s.adminPasscode) {
		return nil, ErrWrongPasscode
	}

	if err := s.userRepo.SetAdmin(ctx, userID); err != nil {
		return nil, err
	}

	s.logger.Info("user became admin", zap.Int("userId", userID))

	return s.updatedProfile(ctx, userID)
}

// updatedProfile re-reads the user after a status change
func (s *membershipService) updatedProfile(ctx context.Context, userID int) (*models.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated profile: %w", err)
	}

	return models.NewProfileResponse(user), nil
}

// passcodeMatches compares a submitted passcode in constant time
func passcodeMatches(submitted, configured string) bool {
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(configured)) == 1
}
