package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSelectDisplayContent(t *testing.T) {
	sender := uuid.New()
	receiver := uuid.New()
	translated := "Hola"

	msg := &Message{
		SenderID:       sender,
		Text:           "Hello",
		TranslatedText: &translated,
	}

	senderView := SelectDisplayContent(msg, sender)
	assert.Equal(t, "Hello", senderView.PrimaryText)
	assert.Equal(t, "Hola", senderView.AlternateText)
	assert.Equal(t, "Translated", senderView.AlternateLabel)
	assert.True(t, senderView.IsAlternateTranslation)

	receiverView := SelectDisplayContent(msg, receiver)
	assert.Equal(t, "Hola", receiverView.PrimaryText)
	assert.Equal(t, "Hello", receiverView.AlternateText)
	assert.Equal(t, "Original", receiverView.AlternateLabel)
	assert.False(t, receiverView.IsAlternateTranslation)
}

func TestSelectDisplayContentWithoutTranslation(t *testing.T) {
	sender := uuid.New()
	msg := &Message{SenderID: sender, Text: "Hello"}

	for _, viewer := range []uuid.UUID{sender, uuid.New()} {
		view := SelectDisplayContent(msg, viewer)
		assert.Equal(t, "Hello", view.PrimaryText)
		assert.Empty(t, view.AlternateText)
		assert.Empty(t, view.AlternateLabel)
	}
}

func TestSelectDisplayContentEmptyTranslation(t *testing.T) {
	empty := ""
	msg := &Message{SenderID: uuid.New(), Text: "Hello", TranslatedText: &empty}

	view := SelectDisplayContent(msg, uuid.New())
	assert.Equal(t, "Hello", view.PrimaryText)
	assert.Empty(t, view.AlternateText)
}

func TestLanguageHelpers(t *testing.T) {
	assert.True(t, LanguageEnglish.Valid())
	assert.True(t, LanguageSpanish.Valid())
	assert.False(t, Language("de").Valid())
	assert.False(t, Language("").Valid())

	assert.Equal(t, LanguageSpanish, LanguageEnglish.Other())
	assert.Equal(t, LanguageEnglish, LanguageSpanish.Other())
	assert.Equal(t, "Spanish", LanguageSpanish.Name())
	assert.Equal(t, "English", LanguageEnglish.Name())
}
