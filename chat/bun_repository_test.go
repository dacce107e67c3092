package chat

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestRepository_ExchangeReusesActiveConversation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	userID := uuid.New()

	_, err := repo.ActiveConversation(ctx, userID)
	require.ErrorIs(t, err, types.ErrConversationNotFound)

	first, err := repo.AppendExchange(ctx, userID, []types.ChatMessage{
		{Role: types.ChatRoleUser, Body: "how much protein?"},
		{Role: types.ChatRoleAssistant, Body: "Response generated for: how much protein?"},
	})
	require.NoError(t, err)
	require.Len(t, first.Messages, 2)
	require.True(t, first.Conversation.Active)

	second, err := repo.AppendExchange(ctx, userID, []types.ChatMessage{
		{Role: types.ChatRoleUser, Body: "and carbs?"},
		{Role: types.ChatRoleAssistant, Body: "Response generated for: and carbs?"},
	})
	require.NoError(t, err)
	require.Equal(t, first.Conversation.ID, second.Conversation.ID)
	require.Len(t, second.Messages, 4)
	require.Equal(t, "how much protein?", second.Messages[0].Body)
	require.Equal(t, types.ChatRoleAssistant, second.Messages[3].Role)

	active, err := repo.ActiveConversation(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, first.Conversation.ID, active.ID)
}

func TestRepository_CloseActiveOpensNewConversation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	userID := uuid.New()

	first, err := repo.AppendExchange(ctx, userID, []types.ChatMessage{{Body: "hello"}})
	require.NoError(t, err)
	require.Equal(t, types.ChatRoleUser, first.Messages[0].Role)

	require.NoError(t, repo.CloseActive(ctx, userID))
	require.NoError(t, repo.CloseActive(ctx, userID))

	_, err = repo.ActiveConversation(ctx, userID)
	require.ErrorIs(t, err, types.ErrConversationNotFound)

	second, err := repo.AppendExchange(ctx, userID, []types.ChatMessage{{Body: "again"}})
	require.NoError(t, err)
	require.NotEqual(t, first.Conversation.ID, second.Conversation.ID)
	require.Len(t, second.Messages, 1)

	old, err := repo.ListMessages(ctx, first.Conversation.ID)
	require.NoError(t, err)
	require.Len(t, old, 1)
	require.Equal(t, "hello", old[0].Body)
}

func TestRepository_RejectsEmptyMessages(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.AppendExchange(context.Background(), uuid.New(), []types.ChatMessage{{Body: "   "}})
	require.ErrorIs(t, err, ErrEmptyMessage)
}

func TestEchoResponder(t *testing.T) {
	reply, err := EchoResponder{}.Respond(context.Background(), types.ChatPrompt{Message: " hola "})
	require.NoError(t, err)
	require.Equal(t, "Response generated for: hola", reply)

	_, err = EchoResponder{}.Respond(context.Background(), types.ChatPrompt{})
	require.ErrorIs(t, err, ErrEmptyMessage)
}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
	})

	content, err := os.ReadFile("../data/sql/migrations/sqlite/00005_chat.up.sql")
	require.NoError(t, err)
	for _, stmt := range strings.Split(string(content), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	repo, err := NewRepository(RepositoryConfig{
		DB:    db,
		Clock: fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	return repo
}
