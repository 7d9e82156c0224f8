// Package memory keeps repository state in process. It backs tests and the
// memory database driver; uniqueness rules mirror the PostgreSQL schema.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func dateKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

type txKey struct{}

// Transactor serialises units of work. Nested calls reuse the outer unit.
type Transactor struct {
	mu sync.Mutex
}

func NewTransactor() database.Transactor {
	return &Transactor{}
}

// WithinTransaction implements database.Transactor. Writes made by fn are not
// rolled back on error, so callers mutate only after every check has passed.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}
