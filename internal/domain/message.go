package domain

import (
	"time"

	"github.com/google/uuid"
)

type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentVideo AttachmentType = "video"
	AttachmentFile  AttachmentType = "file"
)

type Attachment struct {
	Type AttachmentType `json:"type"`
	URL  string         `json:"url"`
	Name string         `json:"name"`
	Size int64          `json:"size"`
}

type LinkPreview struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	SiteName    string `json:"site_name,omitempty"`
}

// Message is one unit of communication within a conversation.
// SenderLanguage is fixed at creation. TranslatedText, when present, was
// computed at send (or edit) time against the receiver's language at that
// moment and is not recomputed when preferences later change.
type Message struct {
	ID             uuid.UUID    `json:"id"`
	ConversationID string       `json:"conversation_id"`
	SenderID       uuid.UUID    `json:"sender_id"`
	Text           string       `json:"text"`
	TranslatedText *string      `json:"translated_text,omitempty"`
	SenderLanguage Language     `json:"sender_language"`
	Attachments    []Attachment `json:"attachments,omitempty"`
	LinkPreview    *LinkPreview `json:"link_preview,omitempty"`
	Read           bool         `json:"read"`
	Edited         bool         `json:"edited"`
	EditedAt       *time.Time   `json:"edited_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}
