package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vperic/linguachat/internal/domain"
	"github.com/vperic/linguachat/internal/repository"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("you are not a participant of this conversation")
	ErrCannotChatSelf       = errors.New("cannot start a conversation with yourself")
)

type ConversationService struct {
	convRepo repository.ConversationRepository
	userRepo repository.UserRepository
}

func NewConversationService(convRepo repository.ConversationRepository, userRepo repository.UserRepository) *ConversationService {
	return &ConversationService{
		convRepo: convRepo,
		userRepo: userRepo,
	}
}

// GetOrCreate finds or creates the conversation between two users. The
// identity is derived from the sorted pair, so calling this twice (in either
// argument order) lands on the same row. An existing row only gets its
// participant details refreshed; unread counters and archive flags survive.
func (s *ConversationService) GetOrCreate(ctx context.Context, userID, otherUserID uuid.UUID) (*domain.Conversation, error) {
	if userID == otherUserID {
		return nil, ErrCannotChatSelf
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	other, err := s.userRepo.GetByID(ctx, otherUserID)
	if err != nil {
		return nil, err
	}
	if user == nil || other == nil {
		return nil, ErrUserNotFound
	}

	u1, u2 := domain.SortParticipants(userID, otherUserID)
	conv := &domain.Conversation{
		ID:      domain.ConversationID(userID, otherUserID),
		User1ID: u1,
		User2ID: u2,
		Details: map[string]domain.ParticipantDetails{
			user.ID.String():  snapshotOf(user),
			other.ID.String(): snapshotOf(other),
		},
	}

	if err := s.convRepo.Upsert(ctx, conv); err != nil {
		return nil, fmt.Errorf("upserting conversation: %w", err)
	}

	// Read back: an existing row keeps its preview, counters and flags.
	full, err := s.convRepo.GetByID(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	if full == nil {
		return nil, ErrConversationNotFound
	}
	return full, nil
}

func (s *ConversationService) Get(ctx context.Context, userID uuid.UUID, conversationID string) (*domain.Conversation, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	if conv.OtherParticipant(userID) == uuid.Nil {
		return nil, ErrNotParticipant
	}
	return conv, nil
}

// List returns the user's conversations, most recent activity first.
func (s *ConversationService) List(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]domain.Conversation, error) {
	convs, err := s.convRepo.ListForUser(ctx, userID, includeArchived)
	if err != nil {
		return nil, err
	}
	if convs == nil {
		convs = []domain.Conversation{}
	}
	return convs, nil
}

func (s *ConversationService) SetArchived(ctx context.Context, userID uuid.UUID, conversationID string, archived bool) error {
	if _, err := s.Get(ctx, userID, conversationID); err != nil {
		return err
	}
	return s.convRepo.SetArchived(ctx, conversationID, userID, archived)
}

// Delete removes the conversation and, with it, every message it owns.
func (s *ConversationService) Delete(ctx context.Context, userID uuid.UUID, conversationID string) error {
	if _, err := s.Get(ctx, userID, conversationID); err != nil {
		return err
	}
	return s.convRepo.Delete(ctx, conversationID)
}

func snapshotOf(u *domain.User) domain.ParticipantDetails {
	language := u.Language
	if !language.Valid() {
		language = domain.DefaultLanguage
	}
	return domain.ParticipantDetails{
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Language:    language,
	}
}
