package v1

import (
	"context"

	"teamop.dk/bosted/model"
)

type SubLocationEndpoint struct {
	client *DirectusClient
}

func (this *SubLocationEndpoint) List(ctx context.Context) ([]model.SubLocation, error) {
	return fetchItems[model.SubLocation](ctx, this.client, "subLocation", nil)
}
