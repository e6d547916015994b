package ws

import (
	"log"

	"github.com/google/uuid"
	"github.com/vperic/linguachat/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyNewMessage(msg *domain.Message) {
	evt, err := NewEvent(EventTypeMessageNew, msg.ConversationID, MessagePayload{Message: *msg})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToConversation(msg.ConversationID, evt, nil)
}

func (n *HubNotifier) NotifyEditedMessage(msg *domain.Message) {
	evt, err := NewEvent(EventTypeMessageEdited, msg.ConversationID, MessagePayload{Message: *msg})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToConversation(msg.ConversationID, evt, nil)
}

func (n *HubNotifier) NotifyDeletedMessage(conversationID string, messageID uuid.UUID) {
	evt, err := NewEvent(EventTypeMessageDeleted, conversationID, MessageDeletedPayload{ID: messageID})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToConversation(conversationID, evt, nil)
}

// NotifyConversationUpdated pokes both participants directly so sidebars
// refresh even when neither has the conversation open.
func (n *HubNotifier) NotifyConversationUpdated(conversationID string, userIDs ...uuid.UUID) {
	evt, err := NewEvent(EventTypeConversationUpdated, conversationID, ConversationUpdatedPayload{ConversationID: conversationID})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	for _, userID := range userIDs {
		n.hub.SendToUser(userID, evt)
	}
}
