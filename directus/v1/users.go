package v1

import (
	"context"

	"teamop.dk/bosted/model"
)

type UserEndpoint struct {
	client *DirectusClient
}

func (this *UserEndpoint) List(ctx context.Context) ([]model.User, error) {
	return fetchItems[model.User](ctx, this.client, "user", nil)
}

func (this *UserEndpoint) FindByEmail(ctx context.Context, email string) ([]model.User, error) {
	return fetchItems[model.User](ctx, this.client, "user", filterEq("email", email))
}
