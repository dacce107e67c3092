package chat

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ConversationRecord models the chat_conversations row.
type ConversationRecord struct {
	bun.BaseModel `bun:"table:chat_conversations,alias:cc"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	UserID    uuid.UUID `bun:"user_id,type:uuid"`
	Active    bool      `bun:"active"`
	StartedAt time.Time `bun:"started_at"`
	UpdatedAt time.Time `bun:"updated_at"`
}

// MessageRecord models the chat_messages row. Seq orders messages sent within
// the same instant.
type MessageRecord struct {
	bun.BaseModel `bun:"table:chat_messages,alias:cm"`

	ID             uuid.UUID `bun:"id,pk,type:uuid"`
	ConversationID uuid.UUID `bun:"conversation_id,type:uuid"`
	Role           string    `bun:"role"`
	Body           string    `bun:"body"`
	SentAt         time.Time `bun:"sent_at"`
	Seq            int       `bun:"seq"`
}
