package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParticipantDetails is a denormalized snapshot of a participant's profile,
// stored inline on the conversation for display. It may drift from the users
// table and is never used for translation routing.
type ParticipantDetails struct {
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	AvatarURL   *string  `json:"avatar_url,omitempty"`
	Language    Language `json:"language"`
}

// Conversation is the persistent 1:1 channel between two users. The
// participant pair is immutable after creation.
type Conversation struct {
	ID            string                        `json:"id"`
	User1ID       uuid.UUID                     `json:"user1_id"`
	User2ID       uuid.UUID                     `json:"user2_id"`
	Details       map[string]ParticipantDetails `json:"details"`
	LastMessage   string                        `json:"last_message"`
	LastMessageAt time.Time                     `json:"last_message_at"`
	User1Unread   int                           `json:"user1_unread"`
	User2Unread   int                           `json:"user2_unread"`
	User1Archived bool                          `json:"user1_archived"`
	User2Archived bool                          `json:"user2_archived"`
	CreatedAt     time.Time                     `json:"created_at"`
	UpdatedAt     time.Time                     `json:"updated_at"`
}

// ConversationID derives the deterministic conversation identity from a
// participant pair. Commutative: ConversationID(a, b) == ConversationID(b, a).
func ConversationID(a, b uuid.UUID) string {
	ids := []string{a.String(), b.String()}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

// SortParticipants returns the pair in canonical order (user1 < user2).
func SortParticipants(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

// OtherParticipant returns the participant that is not userID, or uuid.Nil
// when userID is not part of the pair.
func (c *Conversation) OtherParticipant(userID uuid.UUID) uuid.UUID {
	switch userID {
	case c.User1ID:
		return c.User2ID
	case c.User2ID:
		return c.User1ID
	default:
		return uuid.Nil
	}
}

// UnreadFor returns the unread counter for one participant.
func (c *Conversation) UnreadFor(userID uuid.UUID) int {
	if userID == c.User1ID {
		return c.User1Unread
	}
	return c.User2Unread
}

// ArchivedFor returns the archived flag for one participant.
func (c *Conversation) ArchivedFor(userID uuid.UUID) bool {
	if userID == c.User1ID {
		return c.User1Archived
	}
	return c.User2Archived
}
