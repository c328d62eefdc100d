package screen

import (
	"context"
	"strings"
	"sync"
	"time"

	"admin/internal/domain"
)

// Query is what a list screen asks its fetcher for.
type Query struct {
	Page   int
	Search string
	Filter string
}

// Fetcher loads one page of a collection.
type Fetcher[T any] func(ctx context.Context, q Query) (domain.Paginated[T], error)

// ListState is a snapshot of a list screen.
type ListState[T any] struct {
	Items       []T
	Loading     bool
	SearchTerm  string
	FilterValue string
	Page        int
	TotalPages  int
	Err         error
}

// Empty reports whether the "no data" placeholder should be shown.
func (s ListState[T]) Empty() bool {
	return !s.Loading && s.Err == nil && len(s.Items) == 0
}

func (s ListState[T]) ShowPagination() bool { return s.TotalPages > 1 }
func (s ListState[T]) CanPrev() bool        { return s.Page > 1 }
func (s ListState[T]) CanNext() bool        { return s.Page < s.TotalPages }

// List is a paginated, searchable, filterable view over a remote collection.
// Only the newest fetch may write state; older responses are dropped.
type List[T any] struct {
	mu       sync.Mutex
	fetch    Fetcher[T]
	state    ListState[T]
	gen      uint64
	debounce *Debouncer

	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	// live search bookkeeping
	keystroke  uint64
	lastServed uint64
	waiter     chan struct{}
}

// NewList creates a list screen. parent supplies request-scoped values (the
// session) for debounced fetches; its cancellation is not inherited.
func NewList[T any](parent context.Context, fetch Fetcher[T], debounce time.Duration) *List[T] {
	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	return &List[T]{
		fetch:    fetch,
		state:    ListState[T]{Page: 1, TotalPages: 1},
		debounce: NewDebouncer(debounce),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// State returns the current snapshot.
func (l *List[T]) State() ListState[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Apply fetches with the given criteria. A change of search or filter always
// lands on page 1, whatever page was asked for.
func (l *List[T]) Apply(ctx context.Context, search, filter string, page int) ListState[T] {
	search = strings.TrimSpace(search)
	filter = strings.TrimSpace(filter)

	l.mu.Lock()
	if search != l.state.SearchTerm || filter != l.state.FilterValue {
		page = 1
	}
	if page < 1 {
		page = 1
	}
	l.releaseLocked()
	l.mu.Unlock()

	// An explicit submit supersedes a pending debounced search.
	l.debounce.Cancel()
	return l.load(ctx, Query{Page: page, Search: search, Filter: filter})
}

func (l *List[T]) SetFilter(ctx context.Context, value string) ListState[T] {
	st := l.State()
	return l.Apply(ctx, st.SearchTerm, value, 1)
}

func (l *List[T]) GoToPage(ctx context.Context, page int) ListState[T] {
	st := l.State()
	return l.Apply(ctx, st.SearchTerm, st.FilterValue, page)
}

func (l *List[T]) Next(ctx context.Context) ListState[T] {
	st := l.State()
	if !st.CanNext() {
		return st
	}
	return l.GoToPage(ctx, st.Page+1)
}

func (l *List[T]) Prev(ctx context.Context) ListState[T] {
	st := l.State()
	if !st.CanPrev() {
		return st
	}
	return l.GoToPage(ctx, st.Page-1)
}

// Seed restores search and filter from the URL on a screen that has not
// fetched yet, so a reloaded page keeps its criteria and page number.
func (l *List[T]) Seed(search, filter string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen != 0 {
		return
	}
	l.state.SearchTerm = strings.TrimSpace(search)
	l.state.FilterValue = strings.TrimSpace(filter)
}

// SetSearch records a keystroke. The fetch happens once typing pauses.
func (l *List[T]) SetSearch(term string) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	k := l.keystrokeLocked()
	l.mu.Unlock()
	l.schedule(strings.TrimSpace(term), k)
}

// Type is SetSearch for a caller that wants the result: it blocks until the
// debounced fetch finished. ok is false when a later keystroke superseded
// this one, the search was cancelled, or ctx ended first.
func (l *List[T]) Type(ctx context.Context, term string) (ListState[T], bool) {
	l.mu.Lock()
	if l.closed {
		st := l.state
		l.mu.Unlock()
		return st, false
	}
	k := l.keystrokeLocked()
	done := make(chan struct{})
	l.waiter = done
	l.mu.Unlock()

	l.schedule(strings.TrimSpace(term), k)

	select {
	case <-done:
	case <-ctx.Done():
		return l.State(), false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state, !l.closed && l.lastServed == k
}

// Close stops the debouncer and cancels in-flight debounced fetches. Results
// that arrive afterwards are discarded.
func (l *List[T]) Close() {
	l.mu.Lock()
	l.closed = true
	l.releaseLocked()
	l.mu.Unlock()
	l.debounce.Stop()
	l.cancel()
}

func (l *List[T]) keystrokeLocked() uint64 {
	l.keystroke++
	l.releaseLocked()
	return l.keystroke
}

func (l *List[T]) releaseLocked() {
	if l.waiter != nil {
		close(l.waiter)
		l.waiter = nil
	}
}

func (l *List[T]) schedule(term string, k uint64) {
	l.debounce.Trigger(func() {
		l.mu.Lock()
		filter := l.state.FilterValue
		l.mu.Unlock()

		l.load(l.ctx, Query{Page: 1, Search: term, Filter: filter})

		l.mu.Lock()
		if k == l.keystroke {
			l.lastServed = k
			l.releaseLocked()
		}
		l.mu.Unlock()
	})
}

func (l *List[T]) load(ctx context.Context, q Query) ListState[T] {
	l.mu.Lock()
	if l.closed {
		st := l.state
		l.mu.Unlock()
		return st
	}
	l.gen++
	gen := l.gen
	l.state.Loading = true
	l.state.SearchTerm = q.Search
	l.state.FilterValue = q.Filter
	l.state.Page = q.Page
	l.mu.Unlock()

	page, err := l.fetch(ctx, q)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || gen != l.gen {
		return l.state
	}
	l.state.Loading = false
	if err != nil {
		l.state.Err = err
		return l.state
	}
	l.state.Err = nil
	l.state.Items = page.Items
	if l.state.Items == nil {
		l.state.Items = []T{}
	}
	l.state.Page = page.Page
	if l.state.Page < 1 {
		l.state.Page = q.Page
	}
	l.state.TotalPages = page.TotalPages
	if l.state.TotalPages < 1 {
		l.state.TotalPages = 1
	}
	return l.state
}
