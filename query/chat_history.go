package query

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/pkg/types"
)

// ChatHistoryInput selects whose conversation to load.
type ChatHistoryInput struct {
	UserID uuid.UUID
	Actor  types.ActorRef
}

// Type implements gocommand.Message.
func (ChatHistoryInput) Type() string {
	return "query.chat.history"
}

// ChatHistoryQuery returns the active conversation transcript. Users without
// an active conversation get an empty transcript.
type ChatHistoryQuery struct {
	repo  types.ChatRepository
	guard access.Guard
}

// NewChatHistoryQuery constructs the helper.
func NewChatHistoryQuery(repo types.ChatRepository, guard access.Guard) *ChatHistoryQuery {
	return &ChatHistoryQuery{repo: repo, guard: safeGuard(guard)}
}

var _ gocommand.Querier[ChatHistoryInput, types.ChatTranscript] = (*ChatHistoryQuery)(nil)

// Query returns the transcript.
func (q *ChatHistoryQuery) Query(ctx context.Context, input ChatHistoryInput) (types.ChatTranscript, error) {
	if q.repo == nil {
		return types.ChatTranscript{}, types.ErrMissingChatRepository
	}
	userID, err := q.guard.Enforce(ctx, input.Actor, types.PolicyActionChatRead, input.UserID)
	if err != nil {
		return types.ChatTranscript{}, err
	}
	conv, err := q.repo.ActiveConversation(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrConversationNotFound) {
			return types.ChatTranscript{Messages: []types.ChatMessage{}}, nil
		}
		return types.ChatTranscript{}, err
	}
	messages, err := q.repo.ListMessages(ctx, conv.ID)
	if err != nil {
		return types.ChatTranscript{}, err
	}
	if messages == nil {
		messages = []types.ChatMessage{}
	}
	return types.ChatTranscript{Conversation: *conv, Messages: messages}, nil
}
