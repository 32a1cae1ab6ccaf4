// Package storage defines the Storage interface that every backend holding
// the patient mapping satisfies, and Guard, the single point through which
// handlers reach it.
//
// A backend only knows how to read and replace the whole mapping. There
// are no per-record operations: every request loads everything, works on
// it in memory, and (for mutations) writes everything back.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aanand-mishra/patients-api/internal/types"
)

// ErrUnavailable is matched (errors.Is) by every error a backend returns
// when the durable mapping cannot be read, parsed, or written.
var ErrUnavailable = errors.New("storage unavailable")

// Storage is the record store contract.
type Storage interface {
	// Load reads the entire mapping.
	Load(ctx context.Context) (*types.Records, error)

	// Save replaces the entire mapping. A subsequent Load sees either the
	// previous mapping or the new one, never a mix.
	Save(ctx context.Context, records *types.Records) error

	// Close releases the backend's resources.
	Close() error
}

// UnavailableError wraps a backend failure with the operation that hit it.
type UnavailableError struct {
	Op  string
	Err error
}

// Unavailable builds an UnavailableError for op.
func Unavailable(op string, err error) error {
	return &UnavailableError{Op: op, Err: err}
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrUnavailable, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

// ─────────────────────────────────────────────────────────────────────────────
// Guard serialises access to a Storage within this process.
//
// Update holds the write lock across the whole load → modify → save
// cycle, so two concurrent mutations cannot both start from the same
// snapshot and silently drop one another's change. View takes the read
// lock, so readers never observe a cycle in progress.
//
// Separate processes sharing the same backing file are not coordinated.
// ─────────────────────────────────────────────────────────────────────────────
type Guard struct {
	mu    sync.RWMutex
	store Storage
}

// NewGuard wraps store.
func NewGuard(store Storage) *Guard {
	return &Guard{store: store}
}

// View loads the mapping and hands it to fn. Changes fn makes are discarded.
func (g *Guard) View(ctx context.Context, fn func(*types.Records) error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	records, err := g.store.Load(ctx)
	if err != nil {
		return err
	}
	return fn(records)
}

// Update loads the mapping, lets fn modify it, and saves the result. If fn
// returns an error nothing is saved and the error is returned unchanged.
func (g *Guard) Update(ctx context.Context, fn func(*types.Records) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	records, err := g.store.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(records); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return g.store.Save(ctx, records)
}
