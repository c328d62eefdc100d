package repositories

import (
	"context"
	"slices"

	"admin/internal/apiclient"
	"admin/internal/domain"
	"admin/internal/domain/models"
)

type ApplicationRepository struct {
	Resource[models.ApplicationListItem, models.ApplicationDetail]
}

func NewApplicationRepository(client *apiclient.Client) ApplicationRepository {
	return ApplicationRepository{NewResource[models.ApplicationListItem, models.ApplicationDetail](client, "/admin/applications", "prijava")}
}

func (r ApplicationRepository) Find(ctx context.Context, f models.StatusFilter) (domain.Paginated[models.ApplicationListItem], error) {
	return r.List(ctx, statusParams(f))
}

// Decide approves or rejects an application. Any other target is refused locally.
func (r ApplicationRepository) Decide(ctx context.Context, id domain.ID, status domain.Status) (models.ApplicationDetail, error) {
	if !slices.Contains(models.ApplicationDecisions, status) {
		return models.ApplicationDetail{}, domain.ValidationError{Field: "status", Msg: "dozvoljeno je samo odobravanje ili odbijanje"}
	}
	return r.Update(ctx, id, models.StatusPatch{Status: &status})
}
