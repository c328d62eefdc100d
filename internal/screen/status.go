package screen

import (
	"context"
	"errors"
	"slices"

	"admin/internal/domain"
)

// ErrNoChange is returned when the requested value is already current. No
// request is made.
var ErrNoChange = errors.New("nothing to change")

// StatusOption is one button of a status control.
type StatusOption struct {
	Value    domain.Status
	Label    string
	Current  bool
	Disabled bool
}

// StatusControl is the closed set of states an entity family can move between.
type StatusControl struct {
	options []domain.Status
	labels  map[domain.Status]string
}

func NewStatusControl(options []domain.Status, labels map[domain.Status]string) StatusControl {
	return StatusControl{options: options, labels: labels}
}

func (c StatusControl) Label(s domain.Status) string {
	if l, ok := c.labels[s]; ok {
		return l
	}
	return string(s)
}

func (c StatusControl) Known(s domain.Status) bool {
	return slices.Contains(c.options, s)
}

// Buttons renders every option. The current status is never clickable and
// nothing is while a change is in flight.
func (c StatusControl) Buttons(current domain.Status, busy bool) []StatusOption {
	out := make([]StatusOption, 0, len(c.options))
	for _, s := range c.options {
		out = append(out, StatusOption{
			Value:    s,
			Label:    c.Label(s),
			Current:  s == current,
			Disabled: busy || s == current,
		})
	}
	return out
}

// Check validates a transition without performing it.
func (c StatusControl) Check(current, target domain.Status) error {
	if !c.Known(target) {
		return domain.ValidationError{Field: "status", Msg: "nepoznat status"}
	}
	if target == current {
		return ErrNoChange
	}
	return nil
}

// Transition moves the entity held by d to target through update. Same-status
// and unknown targets return before any request is made.
func Transition[D any](ctx context.Context, c StatusControl, d *Detail[D], current func(D) domain.Status, target domain.Status, update func(ctx context.Context, target domain.Status) (D, error)) (DetailState[D], error) {
	st := d.State()
	if err := c.Check(current(st.Entity), target); err != nil {
		return st, err
	}
	return d.Mutate(ctx, func(ctx context.Context) (D, error) {
		return update(ctx, target)
	})
}

// Toggle sets one boolean flag of the entity held by d to target. Asking for
// the value the entity already has returns ErrNoChange, so a repeated submit
// cannot flip the flag back.
func Toggle[D any](ctx context.Context, d *Detail[D], current func(D) bool, target bool, update func(ctx context.Context, target bool) (D, error)) (DetailState[D], error) {
	st := d.State()
	if current(st.Entity) == target {
		return st, ErrNoChange
	}
	return d.Mutate(ctx, func(ctx context.Context) (D, error) {
		return update(ctx, target)
	})
}
