package repositories

import (
	"context"

	"admin/internal/apiclient"
	"admin/internal/domain"
	"admin/internal/domain/models"
)

// statusParams is the query of every list filtered by a status tag.
func statusParams(f models.StatusFilter) apiclient.Params {
	q := listParams(f.Page, f.PageSize, f.Search)
	q["status"] = f.Status
	return q
}

type VideoOrderRepository struct {
	Resource[models.VideoOrderListItem, models.VideoOrderDetail]
}

func NewVideoOrderRepository(client *apiclient.Client) VideoOrderRepository {
	return VideoOrderRepository{NewResource[models.VideoOrderListItem, models.VideoOrderDetail](client, "/admin/orders", "narudžbina")}
}

func (r VideoOrderRepository) Find(ctx context.Context, f models.StatusFilter) (domain.Paginated[models.VideoOrderListItem], error) {
	return r.List(ctx, statusParams(f))
}

func (r VideoOrderRepository) UpdateStatus(ctx context.Context, id domain.ID, status domain.Status) (models.VideoOrderDetail, error) {
	return r.Update(ctx, id, models.StatusPatch{Status: &status})
}
