package chat

import (
	"context"
	"strings"

	"github.com/macromate/go-macromate/pkg/types"
)

// EchoResponder acknowledges the user's message without contacting any model.
type EchoResponder struct{}

var _ types.Responder = EchoResponder{}

// Respond implements types.Responder.
func (EchoResponder) Respond(_ context.Context, prompt types.ChatPrompt) (string, error) {
	message := strings.TrimSpace(prompt.Message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	return "Response generated for: " + message, nil
}
