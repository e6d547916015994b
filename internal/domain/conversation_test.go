package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestConversationIDCommutative(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	id1 := ConversationID(a, b)
	id2 := ConversationID(b, a)

	assert.Equal(t, id1, id2)

	parts := strings.Split(id1, "_")
	assert.Len(t, parts, 2)
	assert.True(t, parts[0] < parts[1])
}

func TestSortParticipantsMatchesConversationID(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	u1, u2 := SortParticipants(a, b)
	assert.Equal(t, u1.String()+"_"+u2.String(), ConversationID(a, b))

	r1, r2 := SortParticipants(b, a)
	assert.Equal(t, u1, r1)
	assert.Equal(t, u2, r2)
}

func TestOtherParticipant(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	u1, u2 := SortParticipants(a, b)
	conv := Conversation{ID: ConversationID(a, b), User1ID: u1, User2ID: u2}

	assert.Equal(t, b, conv.OtherParticipant(a))
	assert.Equal(t, a, conv.OtherParticipant(b))
	assert.Equal(t, uuid.Nil, conv.OtherParticipant(uuid.New()))
}

func TestUnreadAndArchivedPerParticipant(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	u1, u2 := SortParticipants(a, b)
	conv := Conversation{
		User1ID:       u1,
		User2ID:       u2,
		User1Unread:   3,
		User2Archived: true,
	}

	assert.Equal(t, 3, conv.UnreadFor(u1))
	assert.Equal(t, 0, conv.UnreadFor(u2))
	assert.False(t, conv.ArchivedFor(u1))
	assert.True(t, conv.ArchivedFor(u2))
}
