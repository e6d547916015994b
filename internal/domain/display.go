package domain

import "github.com/google/uuid"

// DisplayContent is what a viewer should see for one message.
type DisplayContent struct {
	PrimaryText            string `json:"primary_text"`
	AlternateText          string `json:"alternate_text,omitempty"`
	AlternateLabel         string `json:"alternate_label,omitempty"`
	IsAlternateTranslation bool   `json:"is_alternate_translation"`
}

// SelectDisplayContent picks which language variant of a message a given
// viewer sees. Senders always see their original text first; receivers see
// the translated variant first when one exists. Pure function of persisted
// data.
func SelectDisplayContent(msg *Message, viewerID uuid.UUID) DisplayContent {
	if msg.TranslatedText == nil || *msg.TranslatedText == "" {
		return DisplayContent{PrimaryText: msg.Text}
	}

	if viewerID == msg.SenderID {
		return DisplayContent{
			PrimaryText:            msg.Text,
			AlternateText:          *msg.TranslatedText,
			AlternateLabel:         "Translated",
			IsAlternateTranslation: true,
		}
	}

	return DisplayContent{
		PrimaryText:    *msg.TranslatedText,
		AlternateText:  msg.Text,
		AlternateLabel: "Original",
	}
}
