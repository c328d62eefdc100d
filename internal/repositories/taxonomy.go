package repositories

import (
	"context"
	"strings"

	"admin/internal/apiclient"
	"admin/internal/domain"
	"admin/internal/domain/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Taxonomy is a small unpaginated category list (celebrity, merch product or
// digital product categories).
type Taxonomy struct {
	res Resource[models.Category, models.Category]
	// dependentsLabel names what a category's dependents are, e.g. "zvezda".
	dependentsLabel string
}

func NewTaxonomy(client *apiclient.Client, path, name, dependentsLabel string) Taxonomy {
	return Taxonomy{
		res:             NewResource[models.Category, models.Category](client, path, name),
		dependentsLabel: dependentsLabel,
	}
}

func (t Taxonomy) Name() string            { return t.res.Name() }
func (t Taxonomy) DependentsLabel() string { return t.dependentsLabel }

// All returns every category in server order.
func (t Taxonomy) All(ctx context.Context) ([]models.Category, error) {
	page, err := t.res.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// Page wraps All as a single page so taxonomies fit the list screen.
func (t Taxonomy) Page(ctx context.Context) (domain.Paginated[models.Category], error) {
	items, err := t.All(ctx)
	if err != nil {
		return domain.Paginated[models.Category]{}, err
	}
	return domain.Paginated[models.Category]{Items: items, Page: 1, TotalPages: 1}, nil
}

// Get resolves a category by scanning the list; there is no per-id endpoint.
func (t Taxonomy) Get(ctx context.Context, id domain.ID) (models.Category, error) {
	if err := requireID(id); err != nil {
		return models.Category{}, err
	}
	items, err := t.All(ctx)
	if err != nil {
		return models.Category{}, err
	}
	for _, c := range items {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, domain.NotFoundError{Resource: t.res.Name(), ID: id}
}

func (t Taxonomy) Create(ctx context.Context, in models.CategoryInput) (models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Icon = strings.TrimSpace(in.Icon)
	if err := validate.Var(in.Name, "required"); err != nil {
		return models.Category{}, domain.ValidationError{Field: "name", Msg: "naziv je obavezan", Err: err}
	}
	if err := validate.Var(in.Icon, "required"); err != nil {
		return models.Category{}, domain.ValidationError{Field: "icon", Msg: "ikonica je obavezna", Err: err}
	}
	return t.res.Create(ctx, in)
}

func (t Taxonomy) Update(ctx context.Context, id domain.ID, patch models.CategoryPatch) (models.Category, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validate.Var(name, "required"); err != nil {
			return models.Category{}, domain.ValidationError{Field: "name", Msg: "naziv je obavezan", Err: err}
		}
		patch.Name = &name
	}
	if patch.Icon != nil {
		icon := strings.TrimSpace(*patch.Icon)
		if err := validate.Var(icon, "required"); err != nil {
			return models.Category{}, domain.ValidationError{Field: "icon", Msg: "ikonica je obavezna", Err: err}
		}
		patch.Icon = &icon
	}
	return t.res.Update(ctx, id, patch)
}

func (t Taxonomy) Remove(ctx context.Context, id domain.ID) error {
	return t.res.Remove(ctx, id)
}
