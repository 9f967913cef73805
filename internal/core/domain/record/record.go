package record

import (
	"context"
	c "credstore/internal/core/domain/common"
)

// Field names a JSON property of a stored record used as an equality filter.
type Field string

const (
	FieldID     Field = "id"
	FieldUserID Field = "userId"
)

// Store is a named collection of records of type T.
//
// FindOne returns an empty Optional when nothing matches. Delete reports the
// number of removed records; zero is not an error and callers must check it.
type Store[T any] interface {
	FindOne(ctx context.Context, field Field, value string) (c.Optional[T], error)
	Save(ctx context.Context, id string, value T) (string, error)
	Delete(ctx context.Context, field Field, value string) (int64, error)
}
