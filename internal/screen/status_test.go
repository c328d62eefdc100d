package screen

import (
	"context"
	"errors"
	"testing"

	"admin/internal/domain"
	"admin/internal/domain/models"
)

func TestSameStatusTransitionIssuesNoRequest(t *testing.T) {
	control := NewStatusControl(models.VideoOrderStatuses, models.VideoOrderStatusLabels)
	d := NewDetail(func(ctx context.Context) (order, error) {
		return order{ID: "o1", Status: models.OrderApproved}, nil
	})
	ctx := context.Background()
	d.Load(ctx)

	calls := 0
	update := func(ctx context.Context, target domain.Status) (order, error) {
		calls++
		return order{ID: "o1", Status: target}, nil
	}
	current := func(o order) domain.Status { return o.Status }

	if _, err := Transition(ctx, control, d, current, models.OrderApproved, update); !errors.Is(err, ErrNoChange) {
		t.Fatalf("expected ErrNoChange, got %v", err)
	}
	if _, err := Transition(ctx, control, d, current, "shipped", update); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no request, got %d", calls)
	}

	st, err := Transition(ctx, control, d, current, models.OrderCompleted, update)
	if err != nil || calls != 1 || st.Entity.Status != models.OrderCompleted {
		t.Fatalf("expected one successful transition, got %v calls=%d state=%+v", err, calls, st.Entity)
	}
}

func TestButtonsDisableCurrentAndBusy(t *testing.T) {
	control := NewStatusControl(models.MerchOrderStatuses, models.MerchOrderStatusLabels)

	buttons := control.Buttons(models.MerchShipped, false)
	if len(buttons) != len(models.MerchOrderStatuses) {
		t.Fatalf("expected one button per status, got %d", len(buttons))
	}
	for _, b := range buttons {
		if b.Disabled != (b.Value == models.MerchShipped) {
			t.Fatalf("unexpected disabled flag for %s: %v", b.Value, b.Disabled)
		}
	}
	if buttons[2].Label != "Poslato" || !buttons[2].Current {
		t.Fatalf("unexpected shipped button: %+v", buttons[2])
	}
	for _, b := range control.Buttons(models.MerchShipped, true) {
		if !b.Disabled {
			t.Fatalf("all buttons must be disabled while busy")
		}
	}
}

func TestToggleSendsRequestedValueOnce(t *testing.T) {
	type product struct{ Active bool }
	d := NewDetail(func(ctx context.Context) (product, error) { return product{Active: true}, nil })
	ctx := context.Background()
	d.Load(ctx)

	var sent []bool
	update := func(ctx context.Context, target bool) (product, error) {
		sent = append(sent, target)
		return product{Active: target}, nil
	}
	active := func(p product) bool { return p.Active }

	for range 2 {
		_, err := Toggle(ctx, d, active, false, update)
		if err != nil && !errors.Is(err, ErrNoChange) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(sent) != 1 || sent[0] {
		t.Fatalf("expected a single request for false, got %v", sent)
	}
	if d.State().Entity.Active {
		t.Fatalf("product must stay inactive")
	}
}
