package models

// MembershipStatus marks whether a user has unlocked full message visibility
type MembershipStatus string

// AdminStatus marks whether a user has unlocked delete rights
type AdminStatus string

// Status constants, stored as-is in the database
const (
	NotMember MembershipStatus = "NOT_MEMBER"
	Member    MembershipStatus = "MEMBER"

	NotAdmin AdminStatus = "NOT_ADMIN"
	Admin    AdminStatus = "ADMIN"
)

// Level is the capability level carried in the access token payload
type Level int

// Capability levels: every authenticated user is at least LevelUser
const (
	LevelUser   Level = 1
	LevelMember Level = 2
	LevelAdmin  Level = 3
)

// User represents a user in the system
type User struct {
	ID               int              `json:"id"`
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	Email            string           `json:"email"`
	PasswordHash     string           `json:"-"` // Never serialize password hash
	MembershipStatus MembershipStatus `json:"membershipStatus"`
	AdminStatus      AdminStatus      `json:"adminStatus"`
}

// Level computes the capability level from the stored role flags
func (u *User) Level() Level {
	return LevelFor(u.MembershipStatus, u.AdminStatus)
}

// LevelFor maps role flags onto a capability level.
// ADMIN implies MEMBER, so the admin check comes first.
func LevelFor(membership MembershipStatus, admin AdminStatus) Level {
	if admin == Admin {
		return LevelAdmin
	}
	if membership == Member {
		return LevelMember
	}
	return LevelUser
}

// SignUpRequest represents a sign-up request
type SignUpRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasscodeRequest carries the secret passcode for a membership or admin upgrade
type PasscodeRequest struct {
	Passcode string `json:"passcode"`
}

// ProfileResponse is the user profile returned to the client (password excluded)
type ProfileResponse struct {
	ID               int              `json:"id"`
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	Email            string           `json:"email"`
	MembershipStatus MembershipStatus `json:"membershipStatus"`
	AdminStatus      AdminStatus      `json:"adminStatus"`
}

// NewProfileResponse builds a profile response from a user record
func NewProfileResponse(user *User) *ProfileResponse {
	return &ProfileResponse{
		ID:               user.ID,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Email:            user.Email,
		MembershipStatus: user.MembershipStatus,
		AdminStatus:      user.AdminStatus,
	}
}
