package repositories

import (
	"context"
	"strings"

	"admin/internal/apiclient"
	"admin/internal/domain"
	"admin/internal/domain/models"
)

type UserRepository struct {
	Resource[models.UserListItem, models.UserDetail]
}

func NewUserRepository(client *apiclient.Client) UserRepository {
	return UserRepository{NewResource[models.UserListItem, models.UserDetail](client, "/admin/users", "korisnik")}
}

func (r UserRepository) Find(ctx context.Context, f models.UserFilter) (domain.Paginated[models.UserListItem], error) {
	q := listParams(f.Page, f.PageSize, f.Search)
	q["role"] = f.Role
	return r.List(ctx, q)
}

// UpdateRole changes the role of a user. Unknown roles never reach the API.
func (r UserRepository) UpdateRole(ctx context.Context, id domain.ID, role string) (models.UserDetail, error) {
	role = strings.TrimSpace(role)
	if _, ok := models.UserRoleLabels[domain.Status(role)]; !ok {
		return models.UserDetail{}, domain.ValidationError{Field: "role", Msg: "nepoznata uloga"}
	}
	return r.Update(ctx, id, models.UserPatch{Role: &role})
}
