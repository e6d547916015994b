package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vperic/linguachat/internal/domain"
	"github.com/vperic/linguachat/internal/service"
)

type CompanionHandler struct {
	companionService *service.CompanionService
}

func NewCompanionHandler(companionService *service.CompanionService) *CompanionHandler {
	return &CompanionHandler{companionService: companionService}
}

func (h *CompanionHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Message  string          `json:"message"`
		Language domain.Language `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.Message == "" {
		writeError(w, http.StatusBadRequest, "MISSING_MESSAGE", "message is required")
		return
	}

	response, err := h.companionService.Chat(r.Context(), input.Message, input.Language)
	if err != nil {
		if errors.Is(err, service.ErrCompanionUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "COMPANION_UNAVAILABLE", "Lingua is unavailable right now, try again shortly")
		} else {
			log.Printf("ERROR companion chat: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}
