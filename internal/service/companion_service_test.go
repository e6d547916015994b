package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vperic/linguachat/internal/domain"
)

type fakeCompanionModel struct {
	lastSystem string
	reply      string
	err        error
}

func (m *fakeCompanionModel) Respond(_ context.Context, systemPrompt, _ string) (string, error) {
	m.lastSystem = systemPrompt
	return m.reply, m.err
}

func TestCompanionRespondsInOppositeLanguage(t *testing.T) {
	model := &fakeCompanionModel{reply: "¡Hola! ¿Cómo estás?"}
	svc := NewCompanionService(model, time.Second)

	reply, err := svc.Chat(context.Background(), "Hi Lingua", domain.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "¡Hola! ¿Cómo estás?", reply)
	assert.True(t, strings.Contains(model.lastSystem, "Respond in Spanish"))

	_, err = svc.Chat(context.Background(), "Hola Lingua", domain.LanguageSpanish)
	require.NoError(t, err)
	assert.True(t, strings.Contains(model.lastSystem, "Respond in English"))
}

func TestCompanionModelFailure(t *testing.T) {
	model := &fakeCompanionModel{err: errors.New("overloaded")}
	svc := NewCompanionService(model, time.Second)

	_, err := svc.Chat(context.Background(), "hello", domain.LanguageEnglish)
	assert.ErrorIs(t, err, ErrCompanionUnavailable)
}
