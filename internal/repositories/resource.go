package repositories

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"admin/internal/apiclient"
	"admin/internal/domain"
)

// Resource is the CRUD surface shared by every admin resource family.
// L is the list row shape and D the detail shape.
type Resource[L, D any] struct {
	client *apiclient.Client
	path   string
	name   string
}

func NewResource[L, D any](client *apiclient.Client, path, name string) Resource[L, D] {
	return Resource[L, D]{client: client, path: strings.TrimRight(path, "/"), name: name}
}

// Name is the display name used in not-found messages.
func (r Resource[L, D]) Name() string { return r.name }

func (r Resource[L, D]) itemPath(id domain.ID) string {
	return r.path + "/" + url.PathEscape(id)
}

// List fetches one page. The "page" param, when set, is echoed back if the
// server omits pagination meta.
func (r Resource[L, D]) List(ctx context.Context, q apiclient.Params) (domain.Paginated[L], error) {
	env, err := apiclient.Get[[]L](ctx, r.client, r.path, q)
	if err != nil {
		return domain.Paginated[L]{}, err
	}
	page, _ := q["page"].(int)
	return domain.PageFrom(env, page), nil
}

func (r Resource[L, D]) Get(ctx context.Context, id domain.ID) (D, error) {
	var zero D
	if err := requireID(id); err != nil {
		return zero, err
	}
	env, err := apiclient.Get[D](ctx, r.client, r.itemPath(id), nil)
	if err != nil {
		return zero, r.wrap(err, id)
	}
	return env.Data, nil
}

// Update sends a partial update. Only the fields set on patch are sent; a
// patch with nothing set is rejected without a request.
func (r Resource[L, D]) Update(ctx context.Context, id domain.ID, patch any) (D, error) {
	var zero D
	if err := requireID(id); err != nil {
		return zero, err
	}
	empty, err := emptyPatch(patch)
	if err != nil {
		return zero, err
	}
	if empty {
		return zero, domain.ValidationError{Field: "patch", Msg: "nema izmena"}
	}
	env, err := apiclient.Patch[D](ctx, r.client, r.itemPath(id), patch)
	if err != nil {
		return zero, r.wrap(err, id)
	}
	return env.Data, nil
}

func (r Resource[L, D]) Remove(ctx context.Context, id domain.ID) error {
	if err := requireID(id); err != nil {
		return err
	}
	if _, err := apiclient.Delete[json.RawMessage](ctx, r.client, r.itemPath(id)); err != nil {
		return r.wrap(err, id)
	}
	return nil
}

func (r Resource[L, D]) Create(ctx context.Context, payload any) (D, error) {
	var zero D
	env, err := apiclient.Post[D](ctx, r.client, r.path, payload)
	if err != nil {
		return zero, err
	}
	return env.Data, nil
}

func (r Resource[L, D]) wrap(err error, id domain.ID) error {
	if domain.IsNotFound(err) {
		return domain.NotFoundError{Resource: r.name, ID: id, Err: err}
	}
	return err
}

func requireID(id domain.ID) error {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationError{Field: "id", Msg: "obavezan identifikator"}
	}
	return nil
}

// emptyPatch reports whether patch serialises to an object without keys.
func emptyPatch(patch any) (bool, error) {
	if patch == nil {
		return true, nil
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return false, domain.InternalError{Msg: "encode patch", Err: err}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false, domain.InternalError{Msg: "patch must be an object", Err: err}
	}
	return len(fields) == 0, nil
}

// listParams builds the common page/pageSize/search triple.
func listParams(page, pageSize int, search string) apiclient.Params {
	return apiclient.Params{
		"page":     page,
		"pageSize": pageSize,
		"search":   search,
	}
}
