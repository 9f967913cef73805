package record

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateID = errors.New("record with the same id already exists")
	ErrIDMismatch  = errors.New("saved record id does not match the requested id")
)

const (
	OpBegin    = "begin"
	OpCommit   = "commit"
	OpRollback = "rollback"
	OpFindOne  = "find one"
	OpSave     = "save"
	OpDelete   = "delete"
)

// StorageError is a connectivity, serialization or constraint failure of the
// persistence layer.
type StorageError struct {
	Collection string
	Op         string
	Err        error
}

func NewStorageError(collection string, op string, err error) *StorageError {
	return &StorageError{Collection: collection, Op: op, Err: err}
}

func (e *StorageError) Error() string {
	if e.Collection == "" {
		return fmt.Sprintf("storage error on %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage error on %s in %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsStorageError(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}
