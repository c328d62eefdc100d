package handlers

import (
	"context"
	"strconv"

	"admin/internal/domain"
	"admin/internal/domain/models"
	"admin/internal/screen"
	"admin/internal/utils"

	"github.com/gin-gonic/gin"
)

// badgeKind colours a status pill.
func badgeKind(s domain.Status) string {
	switch s {
	case "pending":
		return "warn"
	case "approved", "confirmed", "shipped":
		return "info"
	case "completed", "delivered":
		return "ok"
	case "rejected", "cancelled":
		return "bad"
	case models.RoleAdmin:
		return "bad"
	case models.RoleStar:
		return "info"
	}
	return ""
}

func statusCell(s domain.Status, labels map[domain.Status]string) Cell {
	label, ok := labels[s]
	if !ok {
		label = string(s)
	}
	return Cell{Text: label, BadgeKind: badgeKind(s)}
}

func flagCell(on bool, yes, no string) Cell {
	if on {
		return Cell{Text: yes, BadgeKind: "ok"}
	}
	return Cell{Text: no, BadgeKind: "muted"}
}

func image(url *string, name string) string {
	if url != nil && *url != "" {
		return *url
	}
	return utils.PlaceholderImage(name, 64)
}

func yesNo(v bool) string {
	if v {
		return "Da"
	}
	return "Ne"
}

func count(n int) string {
	return utils.FormatCount(n)
}

// statusActions turns a status control into buttons posting "status".
func statusActions(ctrl screen.StatusControl, current domain.Status, busy bool) []Action {
	buttons := ctrl.Buttons(current, busy)
	out := make([]Action, 0, len(buttons))
	for _, b := range buttons {
		out = append(out, Action{Label: b.Label, Value: string(b.Value), Current: b.Current, Disabled: b.Disabled})
	}
	return out
}

// staticOptions builds a filter select for a closed set of values.
func staticOptions(all string, values []domain.Status, labels map[domain.Status]string) func(context.Context) ([]Option, error) {
	opts := make([]Option, 0, len(values)+1)
	opts = append(opts, Option{Value: "", Label: all})
	for _, v := range values {
		opts = append(opts, Option{Value: string(v), Label: labels[v]})
	}
	return func(context.Context) ([]Option, error) { return opts, nil }
}

// categoryOptions builds a filter select from a taxonomy.
func categoryOptions(all func(ctx context.Context) ([]models.Category, error)) func(context.Context) ([]Option, error) {
	return func(ctx context.Context) ([]Option, error) {
		opts := []Option{{Value: "", Label: "Sve kategorije"}}
		cats, err := all(ctx)
		if err != nil {
			return opts, err
		}
		for _, cat := range cats {
			opts = append(opts, Option{Value: cat.ID, Label: cat.Icon + " " + cat.Name})
		}
		return opts, nil
	}
}

// toggleAction is a button that posts field=<the opposite of on>.
func toggleAction(field string, on bool, enable, disable string, busy bool) Action {
	label := enable
	if on {
		label = disable
	}
	return Action{Label: label, Name: field, Value: strconv.FormatBool(!on), Disabled: busy}
}

// flagTarget reads which toggle was pressed and the value it asks for.
func flagTarget(c *gin.Context, fields ...string) (string, bool, error) {
	for _, f := range fields {
		raw, ok := c.GetPostForm(f)
		if !ok {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, false, domain.ValidationError{Field: f, Msg: "neispravna vrednost", Err: err}
		}
		return f, v, nil
	}
	return "", false, domain.ValidationError{Field: "field", Msg: "nepoznato polje"}
}
