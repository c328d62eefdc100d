package repositories

import (
	"context"
	"strings"

	"admin/internal/apiclient"
	"admin/internal/domain"
	"admin/internal/domain/models"
)

type ProductRepository struct {
	Resource[models.ProductListItem, models.ProductDetail]
}

func NewProductRepository(client *apiclient.Client) ProductRepository {
	return ProductRepository{NewResource[models.ProductListItem, models.ProductDetail](client, "/admin/products", "proizvod")}
}

func (r ProductRepository) Find(ctx context.Context, f models.ProductFilter) (domain.Paginated[models.ProductListItem], error) {
	q := listParams(f.Page, f.PageSize, f.Search)
	q["category"] = f.Category
	return r.List(ctx, q)
}

func (r ProductRepository) SetFlags(ctx context.Context, id domain.ID, patch models.ProductPatch) (models.ProductDetail, error) {
	return r.Update(ctx, id, patch)
}

type MerchOrderRepository struct {
	Resource[models.MerchOrderListItem, models.MerchOrderDetail]
}

func NewMerchOrderRepository(client *apiclient.Client) MerchOrderRepository {
	return MerchOrderRepository{NewResource[models.MerchOrderListItem, models.MerchOrderDetail](client, "/admin/merch-orders", "merch narudžbina")}
}

func (r MerchOrderRepository) Find(ctx context.Context, f models.StatusFilter) (domain.Paginated[models.MerchOrderListItem], error) {
	return r.List(ctx, statusParams(f))
}

// UpdateStatus moves a merch order. The tracking number is only sent with the
// shipped transition and only when one was entered.
func (r MerchOrderRepository) UpdateStatus(ctx context.Context, id domain.ID, status domain.Status, tracking string) (models.MerchOrderDetail, error) {
	patch := models.MerchStatusPatch{Status: &status}
	if tracking = strings.TrimSpace(tracking); status == models.MerchShipped && tracking != "" {
		patch.TrackingNumber = &tracking
	}
	return r.Update(ctx, id, patch)
}
