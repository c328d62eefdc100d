package repositories

import (
	"context"

	"admin/internal/apiclient"
	"admin/internal/domain/models"
)

type StatsRepository struct {
	client *apiclient.Client
}

func NewStatsRepository(client *apiclient.Client) StatsRepository {
	return StatsRepository{client: client}
}

func (r StatsRepository) Get(ctx context.Context) (models.DashboardStats, error) {
	env, err := apiclient.Get[models.DashboardStats](ctx, r.client, "/admin/stats", nil)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return env.Data, nil
}
