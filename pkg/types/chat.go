package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// Conversation groups the messages exchanged with the assistant. Only one
// conversation per user is active at a time.
type Conversation struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Active    bool      `json:"active"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessage is a single turn of a conversation.
type ChatMessage struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	Role           ChatRole  `json:"role"`
	Body           string    `json:"body"`
	SentAt         time.Time `json:"sent_at"`
}

// ChatTranscript is a conversation with its ordered messages.
type ChatTranscript struct {
	Conversation Conversation  `json:"conversation"`
	Messages     []ChatMessage `json:"messages"`
}

// ChatRepository persists conversations.
type ChatRepository interface {
	ActiveConversation(ctx context.Context, userID uuid.UUID) (*Conversation, error)
	AppendExchange(ctx context.Context, userID uuid.UUID, messages []ChatMessage) (*ChatTranscript, error)
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]ChatMessage, error)
	CloseActive(ctx context.Context, userID uuid.UUID) error
}

// ChatPrompt is handed to a Responder to produce the assistant reply.
type ChatPrompt struct {
	UserID  uuid.UUID
	Message string
	History []ChatMessage
	Profile *Profile
}

// Responder produces assistant replies.
type Responder interface {
	Respond(ctx context.Context, prompt ChatPrompt) (string, error)
}
