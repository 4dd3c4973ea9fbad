package models

import (
	"time"

	"github.com/google/uuid"
)

// TitleLimit is the rune budget for titles derived from the first message.
const TitleLimit = 30

// Placeholder titles used when the first message carries no text.
const (
	TitleImageChat = "Image Chat"
	TitleNewChat   = "New Chat"
)

// ChatSession is one conversation thread: an ordered, append-only message
// transcript with a title derived once from the first user message.
type ChatSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewChatSession creates a session seeded with its first message. The title
// is derived from the message text and never recomputed afterward.
func NewChatSession(first Message) ChatSession {
	return ChatSession{
		ID:        uuid.NewString(),
		Title:     DeriveTitle(first.Content, first.Image != ""),
		Messages:  []Message{first},
		UpdatedAt: time.Now(),
	}
}

// Append adds a message to the transcript and refreshes the recency stamp.
func (s *ChatSession) Append(msg Message) {
	s.Messages = append(s.Messages, msg)
	s.UpdatedAt = time.Now()
}

// DeriveTitle produces a session title from the first message text: the
// first TitleLimit runes ellipsized, or a fixed placeholder when the text
// is empty. Truncation is rune-based with no word-boundary awareness.
func DeriveTitle(text string, hasImage bool) string {
	if text == "" {
		if hasImage {
			return TitleImageChat
		}
		return TitleNewChat
	}
	runes := []rune(text)
	if len(runes) > TitleLimit {
		return string(runes[:TitleLimit]) + "..."
	}
	return text
}
