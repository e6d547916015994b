package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/vperic/linguachat/internal/service"
	"github.com/vperic/linguachat/internal/transport/http/middleware"
)

type ConversationHandler struct {
	convService    *service.ConversationService
	messageService *service.MessageService
}

func NewConversationHandler(convService *service.ConversationService, messageService *service.MessageService) *ConversationHandler {
	return &ConversationHandler{
		convService:    convService,
		messageService: messageService,
	}
}

func (h *ConversationHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input struct {
		UserID uuid.UUID `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.UserID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "MISSING_USER_ID", "user_id is required")
		return
	}

	conv, err := h.convService.GetOrCreate(r.Context(), userID, input.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCannotChatSelf):
			writeError(w, http.StatusBadRequest, "CANNOT_CHAT_SELF", "Cannot start a conversation with yourself")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			log.Printf("ERROR get or create conversation: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	includeArchived := r.URL.Query().Get("archived") == "true"

	convs, err := h.convService.List(r.Context(), userID, includeArchived)
	if err != nil {
		log.Printf("ERROR list conversations: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, convs)
}

func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	convID := r.PathValue("id")

	conv, err := h.convService.Get(r.Context(), userID, convID)
	if err != nil {
		writeConversationError(w, err, "get conversation")
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

func (h *ConversationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	convID := r.PathValue("id")

	if err := h.convService.Delete(r.Context(), userID, convID); err != nil {
		writeConversationError(w, err, "delete conversation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ConversationHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true)
}

func (h *ConversationHandler) Unarchive(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false)
}

func (h *ConversationHandler) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	userID := middleware.GetUserID(r.Context())
	convID := r.PathValue("id")

	if err := h.convService.SetArchived(r.Context(), userID, convID, archived); err != nil {
		writeConversationError(w, err, "set archived")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ConversationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	convID := r.PathValue("id")

	if err := h.messageService.MarkRead(r.Context(), userID, convID); err != nil {
		writeConversationError(w, err, "mark read")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeConversationError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, service.ErrConversationNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Conversation not found")
	case errors.Is(err, service.ErrNotParticipant):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a participant of this conversation")
	default:
		log.Printf("ERROR %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
