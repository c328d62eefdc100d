package repositories

import (
	"context"

	"admin/internal/apiclient"
	"admin/internal/domain"
	"admin/internal/domain/models"
)

type DigitalProductRepository struct {
	Resource[models.DigitalProductListItem, models.DigitalProductDetail]
}

func NewDigitalProductRepository(client *apiclient.Client) DigitalProductRepository {
	return DigitalProductRepository{NewResource[models.DigitalProductListItem, models.DigitalProductDetail](client, "/admin/digital-products", "digitalni proizvod")}
}

func (r DigitalProductRepository) Find(ctx context.Context, f models.DigitalProductFilter) (domain.Paginated[models.DigitalProductListItem], error) {
	q := listParams(f.Page, f.PageSize, f.Search)
	q["category"] = f.Category
	return r.List(ctx, q)
}

func (r DigitalProductRepository) SetFlags(ctx context.Context, id domain.ID, patch models.ProductPatch) (models.DigitalProductDetail, error) {
	return r.Update(ctx, id, patch)
}

type DigitalOrderRepository struct {
	Resource[models.DigitalOrderListItem, models.DigitalOrderDetail]
}

func NewDigitalOrderRepository(client *apiclient.Client) DigitalOrderRepository {
	return DigitalOrderRepository{NewResource[models.DigitalOrderListItem, models.DigitalOrderDetail](client, "/admin/digital-orders", "digitalna narudžbina")}
}

func (r DigitalOrderRepository) Find(ctx context.Context, f models.StatusFilter) (domain.Paginated[models.DigitalOrderListItem], error) {
	return r.List(ctx, statusParams(f))
}

func (r DigitalOrderRepository) UpdateStatus(ctx context.Context, id domain.ID, status domain.Status) (models.DigitalOrderDetail, error) {
	return r.Update(ctx, id, models.StatusPatch{Status: &status})
}
