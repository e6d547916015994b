package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/vperic/linguachat/internal/domain"
	"github.com/vperic/linguachat/internal/repository"
	"github.com/vperic/linguachat/internal/translate"
)

var (
	ErrMessageNotFound          = errors.New("message not found")
	ErrNotMessageOwner          = errors.New("only the message sender can perform this action")
	ErrEmptyMessage             = errors.New("message must have text or attachments")
	ErrInvalidConversationState = errors.New("conversation has no resolvable second participant")
)

// Notifier broadcasts real-time events to connected clients.
type Notifier interface {
	NotifyNewMessage(msg *domain.Message)
	NotifyEditedMessage(msg *domain.Message)
	NotifyDeletedMessage(conversationID string, messageID uuid.UUID)
	NotifyConversationUpdated(conversationID string, userIDs ...uuid.UUID)
}

// MessageService is the send/edit/delete pipeline. For every outgoing
// message it resolves both participants' current languages, translates when
// they differ, persists the message, then updates the conversation aggregate.
type MessageService struct {
	messageRepo repository.MessageRepository
	convRepo    repository.ConversationRepository
	resolver    *LanguageResolver
	translator  translate.Translator
	notifier    Notifier

	// translateTimeout bounds a single translation call. When it elapses the
	// message is delivered untranslated.
	translateTimeout time.Duration
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	convRepo repository.ConversationRepository,
	resolver *LanguageResolver,
	translator translate.Translator,
	translateTimeout time.Duration,
) *MessageService {
	if translateTimeout <= 0 {
		translateTimeout = 10 * time.Second
	}
	return &MessageService{
		messageRepo:      messageRepo,
		convRepo:         convRepo,
		resolver:         resolver,
		translator:       translator,
		translateTimeout: translateTimeout,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *MessageService) SetNotifier(n Notifier) {
	s.notifier = n
}

type SendMessageInput struct {
	Text        string              `json:"text"`
	Attachments []domain.Attachment `json:"attachments,omitempty"`
	LinkPreview *domain.LinkPreview `json:"link_preview,omitempty"`
}

type MessageListResponse struct {
	Messages []domain.Message `json:"messages"`
	HasMore  bool             `json:"has_more"`
}

func (s *MessageService) Send(ctx context.Context, senderID uuid.UUID, conversationID string, input SendMessageInput) (*domain.Message, error) {
	if input.Text == "" && len(input.Attachments) == 0 && input.LinkPreview == nil {
		return nil, ErrEmptyMessage
	}

	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	// A sender outside the pair is an authorization failure, not a broken
	// conversation.
	receiverID := conv.OtherParticipant(senderID)
	if receiverID == uuid.Nil {
		return nil, ErrNotParticipant
	}

	// Live reads: the snapshot on the conversation row goes stale when a
	// participant changes their preference after the conversation was made.
	senderLang, err := s.resolver.Resolve(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("resolving sender language: %w", err)
	}
	receiverLang, err := s.resolver.Resolve(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("resolving receiver language: %w", err)
	}

	msg := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           input.Text,
		SenderLanguage: senderLang,
		Attachments:    input.Attachments,
		LinkPreview:    input.LinkPreview,
	}

	if translated, ok := s.tryTranslate(ctx, input.Text, senderLang, receiverLang); ok {
		msg.TranslatedText = &translated
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	// The message row is the durable source of truth; the conversation
	// fields are a derived cache. A failed update here leaves a stale
	// preview, so retry before giving up, but never unsend the message.
	preview := previewFor(msg)
	if err := s.recordActivity(ctx, conversationID, preview, receiverID); err != nil {
		log.Printf("ERROR updating conversation %s after message %s: %v", conversationID, msg.ID, err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(msg)
		s.notifier.NotifyConversationUpdated(conversationID, conv.User1ID, conv.User2ID)
	}

	return msg, nil
}

// tryTranslate returns a translation of text into the receiver's language,
// or ok=false when none is needed or available. Translation is an optional
// enhancement: any gateway failure degrades to an untranslated message.
func (s *MessageService) tryTranslate(ctx context.Context, text string, source, target domain.Language) (string, bool) {
	if text == "" || source == target {
		return "", false
	}

	tctx, cancel := context.WithTimeout(ctx, s.translateTimeout)
	defer cancel()

	translated, err := s.translator.Translate(tctx, text, source, target)
	if err != nil {
		log.Printf("translation failed (%s -> %s), sending untranslated: %v", source, target, err)
		return "", false
	}
	return translated, true
}

func (s *MessageService) recordActivity(ctx context.Context, conversationID, preview string, receiverID uuid.UUID) error {
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		if err = s.convRepo.RecordActivity(ctx, conversationID, preview, &receiverID); err == nil {
			return nil
		}
		if attempt == 2 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 100 * time.Millisecond):
		}
	}
	return err
}

func (s *MessageService) List(ctx context.Context, userID uuid.UUID, conversationID string, before *uuid.UUID, limit int) (*MessageListResponse, error) {
	if err := s.checkParticipant(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	messages, err := s.messageRepo.ListByConversation(ctx, conversationID, before, limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(messages) > limit
	if hasMore {
		messages = messages[len(messages)-limit:]
	}

	if messages == nil {
		messages = []domain.Message{}
	}

	return &MessageListResponse{
		Messages: messages,
		HasMore:  hasMore,
	}, nil
}

// Edit replaces the text of a message the caller sent. The translation is
// recomputed against the receiver's language at edit time, not the language
// recorded at the original send.
func (s *MessageService) Edit(ctx context.Context, userID, messageID uuid.UUID, newText string) (*domain.Message, error) {
	if newText == "" {
		return nil, ErrEmptyMessage
	}

	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	if msg.SenderID != userID {
		return nil, ErrNotMessageOwner
	}

	conv, err := s.convRepo.GetByID(ctx, msg.ConversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	receiverID := conv.OtherParticipant(userID)
	if receiverID == uuid.Nil {
		return nil, ErrInvalidConversationState
	}

	receiverLang, err := s.resolver.Resolve(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("resolving receiver language: %w", err)
	}

	msg.Text = newText
	msg.TranslatedText = nil
	if translated, ok := s.tryTranslate(ctx, newText, msg.SenderLanguage, receiverLang); ok {
		msg.TranslatedText = &translated
	}

	if err := s.messageRepo.Update(ctx, msg); err != nil {
		return nil, fmt.Errorf("updating message: %w", err)
	}

	updated, err := s.messageRepo.GetByID(ctx, msg.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && updated != nil {
		s.notifier.NotifyEditedMessage(updated)
	}

	return updated, nil
}

// Delete removes a message the caller sent. The conversation's last-message
// preview is intentionally left as-is even when the deleted message was the
// most recent one.
func (s *MessageService) Delete(ctx context.Context, userID, messageID uuid.UUID) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg == nil {
		return ErrMessageNotFound
	}
	if msg.SenderID != userID {
		return ErrNotMessageOwner
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.NotifyDeletedMessage(msg.ConversationID, messageID)
	}

	return nil
}

// MarkRead zeroes the caller's unread counter and flags the other side's
// messages as read.
func (s *MessageService) MarkRead(ctx context.Context, userID uuid.UUID, conversationID string) error {
	if err := s.checkParticipant(ctx, userID, conversationID); err != nil {
		return err
	}

	if err := s.messageRepo.MarkRead(ctx, conversationID, userID); err != nil {
		return err
	}
	return s.convRepo.SetUnread(ctx, conversationID, userID, 0)
}

func (s *MessageService) checkParticipant(ctx context.Context, userID uuid.UUID, conversationID string) error {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if conv == nil {
		return ErrConversationNotFound
	}
	if conv.OtherParticipant(userID) == uuid.Nil {
		return ErrNotParticipant
	}
	return nil
}

func previewFor(msg *domain.Message) string {
	if msg.Text != "" {
		return msg.Text
	}
	if len(msg.Attachments) > 0 {
		return "Attachment"
	}
	if msg.LinkPreview != nil {
		return "Link"
	}
	return ""
}
