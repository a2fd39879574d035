package models

import "time"

// Message represents a message stored on the board
type Message struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	AuthorID  int       `json:"authorId"`
}

// MessagePreview is the restricted message shape visible to everyone.
// It never carries the author or the timestamp.
type MessagePreview struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// MessageAuthor is the author projection embedded in the full message shape
type MessageAuthor struct {
	ID               int              `json:"id"`
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	MembershipStatus MembershipStatus `json:"membershipStatus"`
	AdminStatus      AdminStatus      `json:"adminStatus"`
}

// MessageResponse is the full message shape visible to members
type MessageResponse struct {
	ID        int           `json:"id"`
	Title     string        `json:"title"`
	Text      string        `json:"text"`
	CreatedAt time.Time     `json:"createdAt"`
	Author    MessageAuthor `json:"author"`
}

// NewMessageRequest represents a request to post a new message
type NewMessageRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}
