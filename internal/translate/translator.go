// Package translate wraps the hosted language model behind a stable
// translation interface. The gateway is stateless and performs no retries;
// timeout and failure policy belong to the caller.
package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/vperic/linguachat/internal/domain"
)

var (
	ErrEmptyText     = errors.New("text to translate is empty")
	ErrSameLanguage  = errors.New("source and target language must differ")
	ErrEmptyResponse = errors.New("model returned an empty translation")
)

// Translator produces a rendering of text in the target language. No
// guarantee is made about semantic fidelity; the model is a black box.
type Translator interface {
	Translate(ctx context.Context, text string, source, target domain.Language) (string, error)
}

// Anthropic is the production Translator backed by the Anthropic API.
type Anthropic struct {
	client anthropic.Client
	model  string
}

func NewAnthropic(apiKey, model string) *Anthropic {
	return &Anthropic{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (a *Anthropic) Translate(ctx context.Context, text string, source, target domain.Language) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	if source == target {
		return "", ErrSameLanguage
	}

	prompt := fmt.Sprintf(
		"You are a translation expert. Translate the given text from %s to %s. Output ONLY the translated text, nothing else.\n\nText: %s",
		source.Name(), target.Name(), text,
	)

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("translation api call: %w", err)
	}

	if len(msg.Content) == 0 {
		return "", ErrEmptyResponse
	}

	translated := strings.TrimSpace(msg.Content[0].Text)
	if translated == "" {
		return "", ErrEmptyResponse
	}

	return translated, nil
}
