package chat

import (
	"context"
	"errors"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/uptrace/bun"
)

// ErrEmptyMessage indicates a blank chat message.
var ErrEmptyMessage = errors.New("chat: message body required")

// RepositoryConfig wires the Bun-backed conversation store.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*ConversationRecord]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

type conversationStore interface {
	repository.Repository[*ConversationRecord]
}

// Repository implements types.ChatRepository.
type Repository struct {
	conversationStore
	db    *bun.DB
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the chat repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.DB == nil {
		return nil, errors.New("chat: db required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*ConversationRecord]{
			NewRecord: func() *ConversationRecord { return &ConversationRecord{} },
			GetID: func(rec *ConversationRecord) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *ConversationRecord, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
				}
			},
		})
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	return &Repository{
		conversationStore: repo,
		db:                cfg.DB,
		clock:             clock,
		idGen:             idGen,
	}, nil
}

var (
	_ repository.Repository[*ConversationRecord] = (*Repository)(nil)
	_ types.ChatRepository                       = (*Repository)(nil)
)

// ActiveConversation returns the user's open conversation or
// types.ErrConversationNotFound.
func (r *Repository) ActiveConversation(ctx context.Context, userID uuid.UUID) (*types.Conversation, error) {
	if userID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	rec, err := r.Get(ctx,
		repository.SelectBy("user_id", "=", userID.String()),
		func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("active = ?", true)
		},
	)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.ErrConversationNotFound
		}
		return nil, err
	}
	out := conversationToDomain(rec)
	return &out, nil
}

// AppendExchange appends messages to the active conversation, opening one when
// none exists, and returns the full transcript.
func (r *Repository) AppendExchange(ctx context.Context, userID uuid.UUID, messages []types.ChatMessage) (*types.ChatTranscript, error) {
	if userID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	for _, msg := range messages {
		if strings.TrimSpace(msg.Body) == "" {
			return nil, ErrEmptyMessage
		}
	}
	now := r.clock.Now()

	var transcript *types.ChatTranscript
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().
			Model(&ConversationRecord{
				ID:        r.idGen.UUID(),
				UserID:    userID,
				Active:    true,
				StartedAt: now,
				UpdatedAt: now,
			}).
			On("CONFLICT DO NOTHING").
			Exec(ctx); err != nil {
			return err
		}
		conv := &ConversationRecord{}
		if err := tx.NewSelect().
			Model(conv).
			Where("user_id = ?", userID).
			Where("active = ?", true).
			Limit(1).
			Scan(ctx); err != nil {
			return err
		}

		var seq int
		if err := tx.NewSelect().
			Model((*MessageRecord)(nil)).
			ColumnExpr("COALESCE(MAX(seq), 0)").
			Where("conversation_id = ?", conv.ID).
			Scan(ctx, &seq); err != nil {
			return err
		}
		if len(messages) > 0 {
			rows := make([]*MessageRecord, 0, len(messages))
			for _, msg := range messages {
				seq++
				role := msg.Role
				if role == "" {
					role = types.ChatRoleUser
				}
				sentAt := msg.SentAt
				if sentAt.IsZero() {
					sentAt = now
				}
				rows = append(rows, &MessageRecord{
					ID:             r.idGen.UUID(),
					ConversationID: conv.ID,
					Role:           string(role),
					Body:           strings.TrimSpace(msg.Body),
					SentAt:         sentAt,
					Seq:            seq,
				})
			}
			if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
				return err
			}
			conv.UpdatedAt = now
			if _, err := tx.NewUpdate().
				Model(conv).
				Column("updated_at").
				WherePK().
				Exec(ctx); err != nil {
				return err
			}
		}

		msgs, err := listMessages(ctx, tx, conv.ID)
		if err != nil {
			return err
		}
		transcript = &types.ChatTranscript{
			Conversation: conversationToDomain(conv),
			Messages:     msgs,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transcript, nil
}

// ListMessages returns the conversation's messages in send order.
func (r *Repository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]types.ChatMessage, error) {
	if conversationID == uuid.Nil {
		return nil, types.ErrConversationNotFound
	}
	return listMessages(ctx, r.db, conversationID)
}

// CloseActive deactivates the user's open conversation. Closing when none is
// open is a no-op.
func (r *Repository) CloseActive(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return types.ErrUserIDRequired
	}
	_, err := r.db.NewUpdate().
		Model((*ConversationRecord)(nil)).
		Set("active = ?", false).
		Set("updated_at = ?", r.clock.Now()).
		Where("user_id = ?", userID).
		Where("active = ?", true).
		Exec(ctx)
	return err
}

func listMessages(ctx context.Context, db bun.IDB, conversationID uuid.UUID) ([]types.ChatMessage, error) {
	var rows []*MessageRecord
	if err := db.NewSelect().
		Model(&rows).
		Where("conversation_id = ?", conversationID).
		Order("seq ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]types.ChatMessage, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.ChatMessage{
			ID:             row.ID,
			ConversationID: row.ConversationID,
			Role:           types.ChatRole(row.Role),
			Body:           row.Body,
			SentAt:         row.SentAt,
		})
	}
	return out, nil
}

func conversationToDomain(rec *ConversationRecord) types.Conversation {
	return types.Conversation{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Active:    rec.Active,
		StartedAt: rec.StartedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
