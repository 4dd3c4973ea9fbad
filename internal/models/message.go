// Package models contains the data types shared by the Celora client:
// users, messages, chat sessions and the constants that describe them.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn in a conversation transcript. Messages are immutable
// once created and belong to exactly one session.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	// Image is an inline data URI (data:image/...;base64,...), set only
	// on user messages that attached a picture.
	Image string `json:"image,omitempty"`
}

// NewUserMessage creates a user-authored message. Content may be empty when
// only an image is supplied.
func NewUserMessage(content, image string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
		Image:     image,
	}
}

// NewModelMessage creates a model-authored reply.
func NewModelMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleModel,
		Content:   content,
		Timestamp: time.Now(),
	}
}
