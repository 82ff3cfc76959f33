// Package conversation implements the Conversation repository using PostgreSQL.
//
// A conversation is stored across three tables: the conversation row, its
// ordered participant rows and its append-only message rows. Writes are sent
// as a single pgx batch, which PostgreSQL executes as one implicit transaction
// when no explicit transaction is active.
package conversation

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	postgres "github.com/heartmarshall/messenger-backend/internal/adapter/postgres"
	"github.com/heartmarshall/messenger-backend/internal/domain"
)

const (
	conversationsTable = "conversations"
	participantsTable  = "conversation_participants"
	messagesTable      = "messages"
)

var messageColumns = []string{"id", "conversation_id", "sender_id", "seq", "content", "created_at"}

// Repo provides conversation persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new conversation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new conversation with its participants and any messages.
func (r *Repo) Create(ctx context.Context, state domain.ConversationState) error {
	b := &pgx.Batch{}

	insert := postgres.Builder.
		Insert(conversationsTable).
		Columns("id", "owner_id", "created_at", "updated_at").
		Values(state.ID, state.OwnerID, state.CreatedAt, state.CreatedAt)
	if err := postgres.Queue(b, insert); err != nil {
		return fmt.Errorf("build insert conversation: %w", err)
	}

	if err := queueParticipants(b, state.ID, state.ParticipantIDs); err != nil {
		return err
	}
	if err := queueMessages(b, state.Messages); err != nil {
		return err
	}

	return r.sendBatch(ctx, b, state.ID)
}

// Save writes the current membership and appends messages not yet stored.
// Participant rows are rewritten in order; stored messages are never touched.
// Returns domain.ErrNotFound when the conversation does not exist.
func (r *Repo) Save(ctx context.Context, state domain.ConversationState) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	lastSeq, err := r.lastSeq(ctx, q, state.ID)
	if err != nil {
		return err
	}
	pending := lo.Filter(state.Messages, func(m domain.Message, _ int) bool {
		return m.Seq > lastSeq
	})

	b := &pgx.Batch{}

	touch := postgres.Builder.
		Update(conversationsTable).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": state.ID})
	if err := postgres.Queue(b, touch); err != nil {
		return fmt.Errorf("build update conversation: %w", err)
	}

	reset := postgres.Builder.
		Delete(participantsTable).
		Where(sq.Eq{"conversation_id": state.ID})
	if err := postgres.Queue(b, reset); err != nil {
		return fmt.Errorf("build delete participants: %w", err)
	}

	if err := queueParticipants(b, state.ID, state.ParticipantIDs); err != nil {
		return err
	}
	if err := queueMessages(b, pending); err != nil {
		return err
	}

	return r.sendBatch(ctx, b, state.ID)
}

// sendBatch executes b and expects the first statement to affect exactly one
// conversation row.
func (r *Repo) sendBatch(ctx context.Context, b *pgx.Batch, id uuid.UUID) error {
	br := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, b)

	tag, err := br.Exec()
	if err != nil {
		_ = br.Close()
		return postgres.MapError(err, "conversation", id)
	}
	if tag.RowsAffected() == 0 {
		_ = br.Close()
		return fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
	}

	for i := 1; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return postgres.MapError(err, "conversation", id)
		}
	}

	if err := br.Close(); err != nil {
		return postgres.MapError(err, "conversation", id)
	}
	return nil
}

func (r *Repo) lastSeq(ctx context.Context, q postgres.Querier, id uuid.UUID) (int, error) {
	stmt := postgres.Builder.
		Select("COALESCE(MAX(seq), 0)").
		From(messagesTable).
		Where(sq.Eq{"conversation_id": id})

	row, err := postgres.QueryRow(ctx, q, stmt)
	if err != nil {
		return 0, fmt.Errorf("build select last seq: %w", err)
	}

	var seq int
	if err := row.Scan(&seq); err != nil {
		return 0, postgres.MapError(err, "conversation", id)
	}
	return seq, nil
}

func queueParticipants(b *pgx.Batch, conversationID uuid.UUID, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}

	insert := postgres.Builder.
		Insert(participantsTable).
		Columns("conversation_id", "user_id", "position")
	for i, userID := range userIDs {
		insert = insert.Values(conversationID, userID, i)
	}

	if err := postgres.Queue(b, insert); err != nil {
		return fmt.Errorf("build insert participants: %w", err)
	}
	return nil
}

func queueMessages(b *pgx.Batch, msgs []domain.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	insert := postgres.Builder.
		Insert(messagesTable).
		Columns(messageColumns...)
	for _, m := range msgs {
		insert = insert.Values(m.ID, m.ConversationID, m.SenderID, m.Seq, m.Content, m.CreatedAt)
	}

	if err := postgres.Queue(b, insert); err != nil {
		return fmt.Errorf("build insert messages: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID loads a conversation with its participants and full history.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.ConversationState, error) {
	return r.load(ctx, id, false)
}

// GetByIDForUpdate is GetByID with a row lock on the conversation. It must be
// called inside RunInTx; the lock is held until the transaction ends.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.ConversationState, error) {
	if !postgres.InTx(ctx) {
		return domain.ConversationState{}, fmt.Errorf("conversation %s: row lock requires a transaction", id)
	}
	return r.load(ctx, id, true)
}

func (r *Repo) load(ctx context.Context, id uuid.UUID, forUpdate bool) (domain.ConversationState, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	stmt := postgres.Builder.
		Select("id", "owner_id", "created_at").
		From(conversationsTable).
		Where(sq.Eq{"id": id})
	if forUpdate {
		stmt = stmt.Suffix("FOR UPDATE")
	}

	row, err := postgres.QueryRow(ctx, q, stmt)
	if err != nil {
		return domain.ConversationState{}, fmt.Errorf("build select conversation: %w", err)
	}

	var state domain.ConversationState
	if err := row.Scan(&state.ID, &state.OwnerID, &state.CreatedAt); err != nil {
		return domain.ConversationState{}, postgres.MapError(err, "conversation", id)
	}

	participants, err := r.participantsFor(ctx, q, []uuid.UUID{id})
	if err != nil {
		return domain.ConversationState{}, err
	}
	messages, err := r.messagesFor(ctx, q, []uuid.UUID{id})
	if err != nil {
		return domain.ConversationState{}, err
	}

	state.ParticipantIDs = participants[id]
	state.Messages = messages[id]
	return state, nil
}

// ListForUser returns every conversation the user owns or participates in,
// oldest first.
func (r *Repo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.ConversationState, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	stmt := postgres.Builder.
		Select("id", "owner_id", "created_at").
		From(conversationsTable).
		Where(sq.Or{
			sq.Eq{"owner_id": userID},
			sq.Expr("id IN (SELECT conversation_id FROM "+participantsTable+" WHERE user_id = ?)", userID),
		}).
		OrderBy("created_at", "id")

	rows, err := postgres.Query(ctx, q, stmt)
	if err != nil {
		return nil, fmt.Errorf("list conversations for user %s: %w", userID, err)
	}

	states, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ConversationState, error) {
		var s domain.ConversationState
		err := row.Scan(&s.ID, &s.OwnerID, &s.CreatedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("list conversations for user %s: %w", userID, err)
	}
	if len(states) == 0 {
		return []domain.ConversationState{}, nil
	}

	ids := lo.Map(states, func(s domain.ConversationState, _ int) uuid.UUID { return s.ID })

	participants, err := r.participantsFor(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	messages, err := r.messagesFor(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	for i := range states {
		states[i].ParticipantIDs = participants[states[i].ID]
		states[i].Messages = messages[states[i].ID]
	}
	return states, nil
}

type participantRow struct {
	ConversationID uuid.UUID
	UserID         uuid.UUID
}

func (r *Repo) participantsFor(ctx context.Context, q postgres.Querier, ids []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	stmt := postgres.Builder.
		Select("conversation_id", "user_id").
		From(participantsTable).
		Where(sq.Eq{"conversation_id": ids}).
		OrderBy("conversation_id", "position")

	rows, err := postgres.Query(ctx, q, stmt)
	if err != nil {
		return nil, fmt.Errorf("select participants: %w", err)
	}

	list, err := pgx.CollectRows(rows, pgx.RowToStructByPos[participantRow])
	if err != nil {
		return nil, fmt.Errorf("select participants: %w", err)
	}

	grouped := lo.GroupBy(list, func(p participantRow) uuid.UUID { return p.ConversationID })
	return lo.MapValues(grouped, func(ps []participantRow, _ uuid.UUID) []uuid.UUID {
		return lo.Map(ps, func(p participantRow, _ int) uuid.UUID { return p.UserID })
	}), nil
}

func (r *Repo) messagesFor(ctx context.Context, q postgres.Querier, ids []uuid.UUID) (map[uuid.UUID][]domain.Message, error) {
	stmt := postgres.Builder.
		Select(messageColumns...).
		From(messagesTable).
		Where(sq.Eq{"conversation_id": ids}).
		OrderBy("conversation_id", "seq")

	rows, err := postgres.Query(ctx, q, stmt)
	if err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}

	list, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Message])
	if err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}

	return lo.GroupBy(list, func(m domain.Message) uuid.UUID { return m.ConversationID }), nil
}
