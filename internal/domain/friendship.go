package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

// Friendship is a pending-or-accepted relation between two users, stored with
// the pair in canonical order. At most one row exists per unordered pair and
// the pending → accepted transition is one-way.
type Friendship struct {
	ID          uuid.UUID  `json:"id"`
	User1ID     uuid.UUID  `json:"user1_id"`
	User2ID     uuid.UUID  `json:"user2_id"`
	RequestedBy uuid.UUID  `json:"requested_by"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	// Joined fields
	RequesterUsername    string `json:"requester_username,omitempty"`
	RequesterDisplayName string `json:"requester_display_name,omitempty"`
}

// Receiver returns the user the request is addressed to.
func (f *Friendship) Receiver() uuid.UUID {
	if f.RequestedBy == f.User1ID {
		return f.User2ID
	}
	return f.User1ID
}
