package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vperic/linguachat/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	SearchByUsernamePrefix(ctx context.Context, prefix string, limit int) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type FriendshipRepository interface {
	Create(ctx context.Context, f *domain.Friendship) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Friendship, error)
	GetByUsers(ctx context.Context, user1ID, user2ID uuid.UUID) (*domain.Friendship, error)
	Accept(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPending(ctx context.Context, userID uuid.UUID) ([]domain.Friendship, error)
	ListFriends(ctx context.Context, userID uuid.UUID) ([]domain.User, error)
}

type ConversationRepository interface {
	// Upsert creates the conversation, or refreshes the participant details
	// snapshot of an existing one without touching counters or flags.
	Upsert(ctx context.Context, conv *domain.Conversation) error
	GetByID(ctx context.Context, id string) (*domain.Conversation, error)
	ListForUser(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]domain.Conversation, error)
	// RecordActivity sets the last-message preview and timestamp and, when
	// incrementUnreadFor is non-nil, atomically increments that participant's
	// unread counter in the same statement.
	RecordActivity(ctx context.Context, id string, preview string, incrementUnreadFor *uuid.UUID) error
	SetUnread(ctx context.Context, id string, userID uuid.UUID, count int) error
	SetArchived(ctx context.Context, id string, userID uuid.UUID, archived bool) error
	Delete(ctx context.Context, id string) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	ListByConversation(ctx context.Context, conversationID string, before *uuid.UUID, limit int) ([]domain.Message, error)
	Update(ctx context.Context, msg *domain.Message) error
	Delete(ctx context.Context, id uuid.UUID) error
	MarkRead(ctx context.Context, conversationID string, readerID uuid.UUID) error
}
