// Package audit implements the Audit repository using PostgreSQL.
// It provides append-only operations for audit log records.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/messenger-backend/internal/adapter/postgres"
	"github.com/heartmarshall/messenger-backend/internal/domain"
)

const table = "audit_log"

var columns = []string{"id", "user_id", "entity_type", "entity_id", "action", "changes", "created_at"}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new audit record and returns the persisted domain.AuditRecord.
func (r *Repo) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	changes := record.Changes
	if changes == nil {
		changes = map[string]any{}
	}
	changesJSON, err := json.Marshal(changes)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record marshal changes: %w", err)
	}

	stmt := postgres.Builder.
		Insert(table).
		Columns(columns...).
		Values(record.ID, record.UserID, string(record.EntityType), uuidPtrToPgUUID(record.EntityID),
			string(record.Action), changesJSON, record.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	row, err := postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), stmt)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("build insert audit_record: %w", err)
	}

	created, err := scanRecord(row)
	if err != nil {
		return domain.AuditRecord{}, postgres.MapError(err, "audit_record", record.ID)
	}
	return created, nil
}

// Log creates an audit record without returning it (fire-and-forget).
// Satisfies the messenger service's audit dependency.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	_, err := r.Create(ctx, record)
	return err
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByEntity returns the change history for a specific entity, newest first,
// limited to `limit` records. A non-positive limit returns the full history.
func (r *Repo) GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	stmt := postgres.Builder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"entity_type": string(entityType), "entity_id": entityID}).
		OrderBy("created_at DESC", "id")
	if limit > 0 {
		stmt = stmt.Limit(uint64(limit))
	}

	rows, err := postgres.Query(ctx, postgres.QuerierFromCtx(ctx, r.pool), stmt)
	if err != nil {
		return nil, fmt.Errorf("get audit_records by entity: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AuditRecord, error) {
		return scanRecord(row)
	})
	if err != nil {
		return nil, fmt.Errorf("get audit_records by entity: %w", err)
	}
	return records, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanRecord(row pgx.Row) (domain.AuditRecord, error) {
	var (
		record             domain.AuditRecord
		entityType, action string
		entityID           pgtype.UUID
		changesJSON        []byte
	)
	if err := row.Scan(&record.ID, &record.UserID, &entityType, &entityID, &action, &changesJSON, &record.CreatedAt); err != nil {
		return domain.AuditRecord{}, err
	}

	record.EntityType = domain.EntityType(entityType)
	record.Action = domain.AuditAction(action)

	if entityID.Valid {
		id := uuid.UUID(entityID.Bytes)
		record.EntityID = &id
	}

	if len(changesJSON) > 0 {
		changes := make(map[string]any)
		if err := json.Unmarshal(changesJSON, &changes); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("audit_record %s unmarshal changes: %w", record.ID, err)
		}
		record.Changes = changes
	}

	return record, nil
}

// uuidPtrToPgUUID converts a *uuid.UUID to pgtype.UUID (nil -> NULL).
func uuidPtrToPgUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}
