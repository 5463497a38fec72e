package v1

import (
	"context"

	"teamop.dk/bosted/model"
)

type ScheduleEndpoint struct {
	client *DirectusClient
}

// List returns every taskSchedule row, shifts and other task types alike.
func (this *ScheduleEndpoint) List(ctx context.Context) ([]model.Shift, error) {
	return fetchItems[model.Shift](ctx, this.client, "taskSchedule", nil)
}
