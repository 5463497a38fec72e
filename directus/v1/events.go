package v1

import (
	"context"
	"fmt"

	"teamop.dk/bosted/model"
)

type EventEndpoint struct {
	client *DirectusClient
}

func (this *EventEndpoint) List(ctx context.Context) ([]model.Activity, error) {
	return fetchItems[model.Activity](ctx, this.client, "event", nil)
}

// Register would sign a user up for, or off, an activity. The backend
// exposes no registration collection yet.
func (this *EventEndpoint) Register(ctx context.Context, activityID int, userID string, register bool) error {
	action := "unregister"
	if register {
		action = "register"
	}
	return fmt.Errorf("%s user %s for activity %d: %w", action, userID, activityID, ErrNotImplemented)
}
