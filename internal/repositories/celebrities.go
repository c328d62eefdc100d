package repositories

import (
	"context"

	"admin/internal/apiclient"
	"admin/internal/domain"
	"admin/internal/domain/models"
)

type CelebrityRepository struct {
	Resource[models.CelebrityListItem, models.CelebrityDetail]
}

func NewCelebrityRepository(client *apiclient.Client) CelebrityRepository {
	return CelebrityRepository{NewResource[models.CelebrityListItem, models.CelebrityDetail](client, "/admin/celebrities", "zvezda")}
}

func (r CelebrityRepository) Find(ctx context.Context, f models.CelebrityFilter) (domain.Paginated[models.CelebrityListItem], error) {
	q := listParams(f.Page, f.PageSize, f.Search)
	q["category"] = f.Category
	return r.List(ctx, q)
}

func (r CelebrityRepository) Edit(ctx context.Context, id domain.ID, patch models.CelebrityPatch) (models.CelebrityDetail, error) {
	return r.Update(ctx, id, patch)
}
