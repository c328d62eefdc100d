package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"admin/internal/domain"
)

var (
	ErrBusy         = errors.New("update in progress")
	ErrNotConfirmed = errors.New("deletion not confirmed")
	ErrClosed       = errors.New("screen closed")
)

// BlockedError refuses a delete while other entities still reference the target.
type BlockedError struct {
	Name       string
	Dependents int
	Label      string
}

func (e BlockedError) Error() string {
	return fmt.Sprintf("Ne možete obrisati \"%s\" jer ima %d %s.", e.Name, e.Dependents, e.Label)
}

func IsBlocked(err error) bool {
	var target BlockedError
	return errors.As(err, &target)
}

// DeleteRequest describes a destructive action awaiting confirmation.
type DeleteRequest struct {
	Confirmed       bool
	Name            string
	Dependents      int
	DependentsLabel string
}

type DetailState[D any] struct {
	Entity   D
	Loaded   bool
	Loading  bool
	Busy     bool
	NotFound bool
	Err      error
}

// Detail holds one entity being viewed or edited. At most one mutation runs
// at a time, and an entity is only ever replaced by what the server returned.
type Detail[D any] struct {
	mu     sync.Mutex
	loadFn func(ctx context.Context) (D, error)
	state  DetailState[D]
	gen    uint64
	closed bool
}

func NewDetail[D any](load func(ctx context.Context) (D, error)) *Detail[D] {
	return &Detail[D]{loadFn: load}
}

func (d *Detail[D]) State() DetailState[D] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Load (re)fetches the entity. A not-found answer flips NotFound; other
// failures keep whatever was loaded before.
func (d *Detail[D]) Load(ctx context.Context) DetailState[D] {
	d.mu.Lock()
	if d.closed {
		st := d.state
		d.mu.Unlock()
		return st
	}
	d.gen++
	gen := d.gen
	d.state.Loading = true
	d.mu.Unlock()

	entity, err := d.loadFn(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || gen != d.gen {
		return d.state
	}
	d.state.Loading = false
	switch {
	case domain.IsNotFound(err):
		var zero D
		d.state.Entity = zero
		d.state.Loaded = false
		d.state.NotFound = true
		d.state.Err = err
	case err != nil:
		d.state.Err = err
	default:
		d.state.Entity = entity
		d.state.Loaded = true
		d.state.NotFound = false
		d.state.Err = nil
	}
	return d.state
}

// Mutate runs fn unless another mutation is in flight. On success the entity
// is replaced by fn's result; on failure the previous entity stays and the
// error is recorded.
func (d *Detail[D]) Mutate(ctx context.Context, fn func(ctx context.Context) (D, error)) (DetailState[D], error) {
	if err := d.acquire(); err != nil {
		return d.State(), err
	}

	entity, err := fn(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Busy = false
	if d.closed {
		return d.state, ErrClosed
	}
	if err != nil {
		d.state.Err = err
		return d.state, err
	}
	// Outdate any load that started before this mutation.
	d.gen++
	d.state.Entity = entity
	d.state.Loaded = true
	d.state.Loading = false
	d.state.NotFound = false
	d.state.Err = nil
	return d.state, nil
}

// Delete removes the entity after confirmation. Entities with dependents are
// refused without contacting the server. A successful delete closes the screen.
func (d *Detail[D]) Delete(ctx context.Context, req DeleteRequest, remove func(ctx context.Context) error) error {
	if req.Dependents > 0 {
		return BlockedError{Name: req.Name, Dependents: req.Dependents, Label: req.DependentsLabel}
	}
	if !req.Confirmed {
		return ErrNotConfirmed
	}
	if err := d.acquire(); err != nil {
		return err
	}

	err := remove(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Busy = false
	if err != nil {
		d.state.Err = err
		return err
	}
	d.closed = true
	return nil
}

// SetError records a failure that happened outside Mutate, such as a local
// validation error on a form.
func (d *Detail[D]) SetError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Err = err
}

func (d *Detail[D]) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func (d *Detail[D]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}

func (d *Detail[D]) acquire() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if d.state.Busy {
		return ErrBusy
	}
	d.state.Busy = true
	return nil
}
