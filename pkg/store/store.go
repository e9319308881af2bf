// Package store persists drawings.
//
// Batch runs and the API server save every finished drawing so it can be
// fetched later by id. Two backends implement [Store]:
//   - [MemoryStore]: process-local, for tests and one-shot CLI runs
//   - [MongoStore]: MongoDB, for servers and shared batch results
//
// Usage:
//
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{URI: "mongodb://localhost:27017"})
//	if err != nil {
//	    return err
//	}
//	defer st.Close(ctx)
//
//	id, err := st.Save(ctx, drawing)
//	d, err := st.Get(ctx, id)
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gridraw/pkg/graph"
)

// ErrNotFound is returned when no drawing has the requested id.
var ErrNotFound = errors.New("drawing not found")

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 100

// Store is the interface for drawing storage backends.
type Store interface {
	// Save stores d and returns its id. An empty d.ID is replaced by a new
	// UUID, and a zero CreatedAt by the current time.
	Save(ctx context.Context, d graph.Drawing) (string, error)

	// Get retrieves a drawing by id. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (graph.Drawing, error)

	// List returns drawings matching opts, newest first.
	List(ctx context.Context, opts ListOptions) ([]graph.Drawing, error)

	// Delete removes a drawing. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	Close(ctx context.Context) error
}

// ListOptions filters List. Zero fields match everything.
type ListOptions struct {
	Name      string
	Algorithm string
	Limit     int
}

func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultListLimit
	}
	return o.Limit
}

func (o ListOptions) match(d graph.Drawing) bool {
	return (o.Name == "" || d.Name == o.Name) && (o.Algorithm == "" || d.Algorithm == o.Algorithm)
}

// prepare assigns an id and creation time.
func prepare(d graph.Drawing, now time.Time) graph.Drawing {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now.UTC().Truncate(time.Millisecond)
	}
	return d
}
