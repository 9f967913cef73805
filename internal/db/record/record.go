package record

import (
	"context"
	c "credstore/internal/core/domain/common"
	"credstore/internal/core/domain/credential"
	e "credstore/internal/core/domain/errors"
	"credstore/internal/core/domain/record"
	"credstore/internal/db"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"

const (
	CredentialsTable    = "auth_credentials"
	PasswordActionTable = "auth_password_action"
)

// PgxStore keeps records of type T as JSONB documents in a table with the
// columns (id text, jsonb jsonb).
type PgxStore[T any] struct {
	db    db.DBTX
	table string

	findOneSQL     string
	findOneByIDSQL string
	saveSQL        string
	deleteSQL      string
	deleteByIDSQL  string
}

func NewPgxStore[T any](db db.DBTX, table string) *PgxStore[T] {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	ident := pgx.Identifier{table}.Sanitize()
	return &PgxStore[T]{
		db:             db,
		table:          table,
		findOneSQL:     fmt.Sprintf("SELECT jsonb FROM %s WHERE jsonb->>($1::text) = $2 LIMIT 1", ident),
		findOneByIDSQL: fmt.Sprintf("SELECT jsonb FROM %s WHERE id = $1", ident),
		saveSQL:        fmt.Sprintf("INSERT INTO %s (id, jsonb) VALUES ($1, $2) RETURNING id", ident),
		deleteSQL:      fmt.Sprintf("DELETE FROM %s WHERE jsonb->>($1::text) = $2", ident),
		deleteByIDSQL:  fmt.Sprintf("DELETE FROM %s WHERE id = $1", ident),
	}
}

// findOneQuery filters on the primary key column for record.FieldID so that
// lookups by id use its index. Save keeps the column equal to the id.
func (s *PgxStore[T]) findOneQuery(field record.Field, value string) (string, []interface{}) {
	if field == record.FieldID {
		return s.findOneByIDSQL, []interface{}{value}
	}
	return s.findOneSQL, []interface{}{string(field), value}
}

func (s *PgxStore[T]) deleteQuery(field record.Field, value string) (string, []interface{}) {
	if field == record.FieldID {
		return s.deleteByIDSQL, []interface{}{value}
	}
	return s.deleteSQL, []interface{}{string(field), value}
}

func NewPgxCredentialStore(db db.DBTX) *PgxStore[credential.Credential] {
	return NewPgxStore[credential.Credential](db, CredentialsTable)
}

func NewPgxResetTokenStore(db db.DBTX) *PgxStore[credential.ResetToken] {
	return NewPgxStore[credential.ResetToken](db, PasswordActionTable)
}

func (s *PgxStore[T]) FindOne(ctx context.Context, field record.Field, value string) (c.Optional[T], error) {
	var raw pgtype.JSONB
	query, args := s.findOneQuery(field, value)
	err := s.db.QueryRow(ctx, query, args...).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return c.None[T](), nil
	}
	if err != nil {
		return c.None[T](), record.NewStorageError(s.table, record.OpFindOne, err)
	}

	var v T
	if err := raw.AssignTo(&v); err != nil {
		return c.None[T](), record.NewStorageError(s.table, record.OpFindOne, err)
	}
	return c.Some(v), nil
}

func (s *PgxStore[T]) Save(ctx context.Context, id string, value T) (string, error) {
	var raw pgtype.JSONB
	if err := raw.Set(value); err != nil {
		return "", record.NewStorageError(s.table, record.OpSave, err)
	}

	var savedID string
	err := s.db.QueryRow(ctx, s.saveSQL, id, raw).Scan(&savedID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE {
		return "", record.NewStorageError(
			s.table,
			record.OpSave,
			fmt.Errorf("%w: %s", record.ErrDuplicateID, pgErr.ConstraintName),
		)
	}
	if err != nil {
		return "", record.NewStorageError(s.table, record.OpSave, err)
	}
	return savedID, nil
}

func (s *PgxStore[T]) Delete(ctx context.Context, field record.Field, value string) (int64, error) {
	query, args := s.deleteQuery(field, value)
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, record.NewStorageError(s.table, record.OpDelete, err)
	}
	return tag.RowsAffected(), nil
}
