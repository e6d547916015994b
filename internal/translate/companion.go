package translate

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
)

// Respond sends one free-form user message under a system prompt. Used by
// the companion chat, which shares the translation gateway's backing model.
func (a *Anthropic) Respond(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 300,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMessage)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("companion api call: %w", err)
	}

	if len(msg.Content) == 0 {
		return "", ErrEmptyResponse
	}

	response := strings.TrimSpace(msg.Content[0].Text)
	if response == "" {
		return "", ErrEmptyResponse
	}
	return response, nil
}
