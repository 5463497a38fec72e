package core

import (
	"context"

	directus "teamop.dk/bosted/directus/v1"
	"teamop.dk/bosted/model"
)

// Backend is the set of flat collection reads the enrichment pipeline joins.
type Backend interface {
	Users(ctx context.Context) ([]model.User, error)
	UsersByEmail(ctx context.Context, email string) ([]model.User, error)
	SubLocations(ctx context.Context) ([]model.SubLocation, error)
	Schedules(ctx context.Context) ([]model.Shift, error)
	Events(ctx context.Context) ([]model.Activity, error)
	UserLocationUsers(ctx context.Context, userID string) ([]model.UserLocationUser, error)
	UserLocationLocations(ctx context.Context, userLocationID int) ([]model.UserLocationLocation, error)
	ScheduleSubLocations(ctx context.Context) ([]model.ScheduleSubLocation, error)
	ScheduleUsers(ctx context.Context) ([]model.ScheduleUser, error)
	EventSubLocations(ctx context.Context) ([]model.EventSubLocation, error)
}

// DirectusBackend serves Backend from the Directus items API.
type DirectusBackend struct {
	client *directus.DirectusClient
}

func NewDirectusBackend(client *directus.DirectusClient) *DirectusBackend {
	return &DirectusBackend{client: client}
}

func (b *DirectusBackend) Users(ctx context.Context) ([]model.User, error) {
	return b.client.Users.List(ctx)
}

func (b *DirectusBackend) UsersByEmail(ctx context.Context, email string) ([]model.User, error) {
	return b.client.Users.FindByEmail(ctx, email)
}

func (b *DirectusBackend) SubLocations(ctx context.Context) ([]model.SubLocation, error) {
	return b.client.SubLocations.List(ctx)
}

func (b *DirectusBackend) Schedules(ctx context.Context) ([]model.Shift, error) {
	return b.client.Schedules.List(ctx)
}

func (b *DirectusBackend) Events(ctx context.Context) ([]model.Activity, error) {
	return b.client.Events.List(ctx)
}

func (b *DirectusBackend) UserLocationUsers(ctx context.Context, userID string) ([]model.UserLocationUser, error) {
	return b.client.Junctions.UserLocationUsers(ctx, userID)
}

func (b *DirectusBackend) UserLocationLocations(ctx context.Context, userLocationID int) ([]model.UserLocationLocation, error) {
	return b.client.Junctions.UserLocationLocations(ctx, userLocationID)
}

func (b *DirectusBackend) ScheduleSubLocations(ctx context.Context) ([]model.ScheduleSubLocation, error) {
	return b.client.Junctions.ScheduleSubLocations(ctx)
}

func (b *DirectusBackend) ScheduleUsers(ctx context.Context) ([]model.ScheduleUser, error) {
	return b.client.Junctions.ScheduleUsers(ctx)
}

func (b *DirectusBackend) EventSubLocations(ctx context.Context) ([]model.EventSubLocation, error) {
	return b.client.Junctions.EventSubLocations(ctx)
}
