package repositories

import (
	"context"
	"encoding/json"
	"strings"

	"admin/internal/apiclient"
	"admin/internal/domain"
	"admin/internal/domain/models"
)

type AuthRepository struct {
	client *apiclient.Client
}

func NewAuthRepository(client *apiclient.Client) AuthRepository {
	return AuthRepository{client: client}
}

// Login exchanges credentials for an identity and token pair. Role checks are
// the caller's job.
func (r AuthRepository) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := validate.Var(creds.Email, "required"); err != nil {
		return models.AuthResponse{}, domain.ValidationError{Field: "email", Msg: "email je obavezan", Err: err}
	}
	if err := validate.Var(creds.Password, "required"); err != nil {
		return models.AuthResponse{}, domain.ValidationError{Field: "password", Msg: "lozinka je obavezna", Err: err}
	}
	env, err := apiclient.Post[models.AuthResponse](ctx, r.client, "/auth/login", creds)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if env.Data.Session.AccessToken == "" {
		return models.AuthResponse{}, domain.InternalError{Msg: "login response without access token"}
	}
	return env.Data, nil
}

// Logout revokes the token attached to ctx on the server.
func (r AuthRepository) Logout(ctx context.Context) error {
	_, err := apiclient.Post[json.RawMessage](ctx, r.client, "/auth/logout", nil)
	return err
}
