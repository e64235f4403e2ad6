package entity

import (
	"time"
)

// Conversation holds exactly two participants. The invariant is enforced
// before persistence by the chat usecase.
type Conversation struct {
	ID           string   `json:"id" firestore:"id"`
	Participants []string `json:"participants" firestore:"participants"`

	LastMessage  string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastActivity time.Time `json:"last_activity" firestore:"lastActivity"`

	// Per-participant state keyed by user ID.
	UnreadCount map[string]int  `json:"unread_count" firestore:"unreadCount"`
	Archived    map[string]bool `json:"archived,omitempty" firestore:"archived,omitempty"`
	Blocked     map[string]bool `json:"blocked,omitempty" firestore:"blocked,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the counterparty of userID, or "" if userID is
// not a participant.
func (c *Conversation) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}
