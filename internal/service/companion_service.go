package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vperic/linguachat/internal/domain"
)

var ErrCompanionUnavailable = errors.New("companion is unavailable right now")

// CompanionModel is the hosted-model call behind the scripted companion.
type CompanionModel interface {
	Respond(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// CompanionService runs "Lingua", the built-in language tutor. The tutor
// deliberately answers in the opposite language of the user's preference so
// every exchange is practice. Conversations are not persisted.
type CompanionService struct {
	model   CompanionModel
	timeout time.Duration
}

func NewCompanionService(model CompanionModel, timeout time.Duration) *CompanionService {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &CompanionService{model: model, timeout: timeout}
}

func (s *CompanionService) Chat(ctx context.Context, userMessage string, userLanguage domain.Language) (string, error) {
	if !userLanguage.Valid() {
		userLanguage = domain.DefaultLanguage
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.model.Respond(cctx, companionSystemPrompt(userLanguage), userMessage)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompanionUnavailable, err)
	}
	return response, nil
}

func companionSystemPrompt(userLanguage domain.Language) string {
	return fmt.Sprintf(
		"You are Lingua, a friendly language tutor. Respond in %s. Be warm and conversational. Keep responses SHORT (2-3 sentences). Gently correct mistakes. Ask follow-up questions. Use emojis occasionally 😊",
		userLanguage.Other().Name(),
	)
}
