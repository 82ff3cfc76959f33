// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	postgres "github.com/heartmarshall/messenger-backend/internal/adapter/postgres"
	"github.com/heartmarshall/messenger-backend/internal/domain"
)

const table = "users"

var columns = []string{"id", "email", "address_street", "address_city", "address_country", "created_at"}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new user and returns the persisted domain.User.
// A duplicate email maps to domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	street, city, country := addressToPgText(u.Address)

	stmt := postgres.Builder.
		Insert(table).
		Columns(columns...).
		Values(u.ID, u.Email, street, city, country, u.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	row, err := postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), stmt)
	if err != nil {
		return nil, fmt.Errorf("build insert user: %w", err)
	}

	created, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}
	return &created, nil
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, id)
}

// GetByEmail returns a user by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, sq.Eq{"email": email}, email)
}

// GetByIDs returns the users with the given ids in the order requested.
// Unknown ids are skipped; duplicates in ids yield duplicates in the result.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	stmt := postgres.Builder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": lo.Uniq(ids)})

	rows, err := postgres.Query(ctx, postgres.QuerierFromCtx(ctx, r.pool), stmt)
	if err != nil {
		return nil, fmt.Errorf("get users by ids: %w", err)
	}

	found, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.User, error) {
		return scanUser(row)
	})
	if err != nil {
		return nil, fmt.Errorf("get users by ids: %w", err)
	}

	byID := lo.KeyBy(found, domain.User.Key)
	return lo.FilterMap(ids, func(id uuid.UUID, _ int) (domain.User, bool) {
		u, ok := byID[id]
		return u, ok
	}), nil
}

func (r *Repo) getOne(ctx context.Context, where sq.Eq, key any) (*domain.User, error) {
	stmt := postgres.Builder.
		Select(columns...).
		From(table).
		Where(where)

	row, err := postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), stmt)
	if err != nil {
		return nil, fmt.Errorf("build select user: %w", err)
	}

	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", key)
	}
	return &u, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u                     domain.User
		street, city, country pgtype.Text
	)
	if err := row.Scan(&u.ID, &u.Email, &street, &city, &country, &u.CreatedAt); err != nil {
		return domain.User{}, err
	}
	u.Address = addressFromPgText(street, city, country)
	return u, nil
}

// addressToPgText stores a nil address as three NULL columns.
func addressToPgText(a *domain.Address) (street, city, country pgtype.Text) {
	if a == nil {
		return
	}
	return pgtype.Text{String: a.Street, Valid: true},
		pgtype.Text{String: a.City, Valid: true},
		pgtype.Text{String: a.Country, Valid: true}
}

// addressFromPgText returns nil when every address column is NULL.
func addressFromPgText(street, city, country pgtype.Text) *domain.Address {
	if !street.Valid && !city.Valid && !country.Valid {
		return nil
	}
	return &domain.Address{
		Street:  street.String,
		City:    city.String,
		Country: country.String,
	}
}
