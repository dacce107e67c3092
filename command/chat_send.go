package command

import (
	"context"
	"errors"
	"strings"

	gocommand "github.com/goliatone/go-command"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/activity"
	"github.com/macromate/go-macromate/pkg/types"
)

// ChatCommandConfig wires dependencies for the assistant chat.
type ChatCommandConfig struct {
	Repository  types.ChatRepository
	Profiles    types.ProfileRepository
	Responder   types.Responder
	FeatureGate featuregate.FeatureGate
	Activity    types.ActivitySink
	Hooks       types.Hooks
	Clock       types.Clock
	Logger      types.Logger
	Guard       access.Guard
}

// ChatSendInput carries a user message for the assistant.
type ChatSendInput struct {
	UserID  uuid.UUID
	Message string
	Actor   types.ActorRef
	Result  *types.ChatTranscript
}

// Type implements gocommand.Message.
func (ChatSendInput) Type() string {
	return "command.chat.send"
}

// Validate implements gocommand.Message.
func (input ChatSendInput) Validate() error {
	if input.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	if strings.TrimSpace(input.Message) == "" {
		return ErrMessageRequired
	}
	return nil
}

// ChatSendCommand stores the user message together with the assistant reply
// in the active conversation.
type ChatSendCommand struct {
	repo      types.ChatRepository
	profiles  types.ProfileRepository
	responder types.Responder
	gate      featuregate.FeatureGate
	sink      types.ActivitySink
	hooks     types.Hooks
	clock     types.Clock
	logger    types.Logger
	guard     access.Guard
}

// NewChatSendCommand constructs the handler.
func NewChatSendCommand(cfg ChatCommandConfig) *ChatSendCommand {
	return &ChatSendCommand{
		repo:      cfg.Repository,
		profiles:  cfg.Profiles,
		responder: cfg.Responder,
		gate:      cfg.FeatureGate,
		sink:      safeActivitySink(cfg.Activity),
		hooks:     safeHooks(cfg.Hooks),
		clock:     safeClock(cfg.Clock),
		logger:    safeLogger(cfg.Logger),
		guard:     safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[ChatSendInput] = (*ChatSendCommand)(nil)

// Execute sends the message.
func (c *ChatSendCommand) Execute(ctx context.Context, input ChatSendInput) error {
	if c.repo == nil {
		return types.ErrMissingChatRepository
	}
	if c.responder == nil {
		return ErrMissingResponder
	}
	if err := input.Validate(); err != nil {
		return err
	}
	userID, err := c.guard.Enforce(ctx, input.Actor, types.PolicyActionChatWrite, input.UserID)
	if err != nil {
		return err
	}
	enabled, err := featureEnabled(ctx, c.gate, FeatureChat, userID)
	if err != nil {
		return err
	}
	if !enabled {
		return ErrChatDisabled
	}

	message := strings.TrimSpace(input.Message)
	history, err := c.history(ctx, userID)
	if err != nil {
		return err
	}
	prompt := types.ChatPrompt{
		UserID:  userID,
		Message: message,
		History: history,
	}
	if c.profiles != nil {
		if profile, err := c.profiles.GetProfileByUser(ctx, userID); err == nil {
			prompt.Profile = profile
		}
	}
	reply, err := c.responder.Respond(ctx, prompt)
	if err != nil {
		c.logger.Error("chat responder failed", err, "user_id", userID)
		return err
	}

	sentAt := now(c.clock)
	transcript, err := c.repo.AppendExchange(ctx, userID, []types.ChatMessage{
		{Role: types.ChatRoleUser, Body: message, SentAt: sentAt},
		{Role: types.ChatRoleAssistant, Body: reply, SentAt: sentAt},
	})
	if err != nil {
		return err
	}
	if input.Result != nil {
		*input.Result = *transcript
	}

	record(ctx, c.sink, c.hooks, types.ActivityRecord{
		UserID:     userID,
		ActorID:    input.Actor.ID,
		Verb:       activity.VerbChatMessageSent,
		ObjectType: "conversation",
		ObjectID:   transcript.Conversation.ID.String(),
		Channel:    activity.ChannelChat,
		Data: map[string]any{
			"messages": len(transcript.Messages),
		},
		OccurredAt: sentAt,
	})
	return nil
}

func (c *ChatSendCommand) history(ctx context.Context, userID uuid.UUID) ([]types.ChatMessage, error) {
	conv, err := c.repo.ActiveConversation(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrConversationNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c.repo.ListMessages(ctx, conv.ID)
}

// ChatResetInput closes the user's active conversation.
type ChatResetInput struct {
	UserID uuid.UUID
	Actor  types.ActorRef
}

// Type implements gocommand.Message.
func (ChatResetInput) Type() string {
	return "command.chat.reset"
}

// Validate implements gocommand.Message.
func (input ChatResetInput) Validate() error {
	if input.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	return nil
}

// ChatResetCommand starts a fresh conversation on the next message.
type ChatResetCommand struct {
	repo  types.ChatRepository
	sink  types.ActivitySink
	hooks types.Hooks
	clock types.Clock
	guard access.Guard
}

// NewChatResetCommand constructs the handler.
func NewChatResetCommand(cfg ChatCommandConfig) *ChatResetCommand {
	return &ChatResetCommand{
		repo:  cfg.Repository,
		sink:  safeActivitySink(cfg.Activity),
		hooks: safeHooks(cfg.Hooks),
		clock: safeClock(cfg.Clock),
		guard: safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[ChatResetInput] = (*ChatResetCommand)(nil)

// Execute closes the active conversation. Resetting without one is a no-op.
func (c *ChatResetCommand) Execute(ctx context.Context, input ChatResetInput) error {
	if c.repo == nil {
		return types.ErrMissingChatRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	userID, err := c.guard.Enforce(ctx, input.Actor, types.PolicyActionChatWrite, input.UserID)
	if err != nil {
		return err
	}
	if err := c.repo.CloseActive(ctx, userID); err != nil {
		return err
	}
	record(ctx, c.sink, c.hooks, types.ActivityRecord{
		UserID:     userID,
		ActorID:    input.Actor.ID,
		Verb:       activity.VerbChatReset,
		ObjectType: "conversation",
		Channel:    activity.ChannelChat,
		OccurredAt: now(c.clock),
	})
	return nil
}
