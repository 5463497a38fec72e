package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	directus "teamop.dk/bosted/directus/v1"
)

// Directus returns integer primary keys for the location tables.
var numericCollections = map[string]string{
	"user":                     `{"data":[{"id":"u1","firstName":"Anna","lastName":"Jensen","email":"staff@example.dk"},{"id":"u2","firstName":"Bo","email":"bo@example.dk"}]}`,
	"subLocation":              `{"data":[{"id":5,"name":"Afdeling A","location":2},{"id":6,"name":"Afdeling B","location":3}]}`,
	"taskSchedule":             `{"data":[{"id":1,"startDateTime":"2026-10-15T07:00:00","endDateTime":"2026-10-15T15:00:00","taskType":"shift"},{"id":2,"startDateTime":"2026-10-15T07:00:00","endDateTime":"2026-10-15T15:00:00","taskType":"shift"},{"id":3,"startDateTime":"2026-10-15T15:00:00","endDateTime":"2026-10-15T23:00:00","taskType":"shift"}]}`,
	"taskSchedule_subLocation": `{"data":[{"id":1,"taskSchedule_id":1,"subLocation_id":5},{"id":2,"taskSchedule_id":2,"subLocation_id":6}]}`,
	"taskSchedule_user":        `{"data":[{"id":1,"taskSchedule_id":1,"user_id":"u1"}]}`,
	"event":                    `{"data":[{"id":1,"title":"Gåtur","startDateTime":"2026-10-15T10:00:00","endDateTime":"2026-10-15T11:00:00"},{"id":2,"title":"Banko","startDateTime":"2026-10-15T14:00:00","endDateTime":"2026-10-15T15:00:00"}]}`,
	"event_subLocation":        `{"data":[{"id":1,"event_id":1,"subLocation_id":5},{"id":2,"event_id":2,"subLocation_id":6}]}`,
	"userLocation_user":        `{"data":[{"id":1,"userLocation_id":10,"user_id":"u1"}]}`,
	"userLocation_location":    `{"data":[{"id":1,"userLocation_id":10,"location_id":2}]}`,
}

func newDirectusBackend(t *testing.T) *DirectusBackend {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"access_token":"access-1","refresh_token":"refresh-1","expires":900000}}`))
	})
	mux.HandleFunc("/items/", func(w http.ResponseWriter, r *http.Request) {
		body, ok := numericCollections[strings.TrimPrefix(r.URL.Path, "/items/")]
		if !ok {
			body = `{"data":[]}`
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := directus.NewDirectusClient(directus.Options{
		BaseURL:  server.URL,
		Identity: directus.ServiceIdentity{Email: "svc@team-op.dk", Password: "secret"},
	})
	_, err := client.Login(context.Background())
	require.NoError(t, err)
	return NewDirectusBackend(client)
}

func TestGetShiftsWithNumericLocationIDs(t *testing.T) {
	enricher := NewEnricher(newDirectusBackend(t))

	shifts, err := enricher.GetShifts(context.Background(), "staff@example.dk")
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, shiftIDs(shifts))
	require.NotNil(t, shifts[0].SubLocationName)
	assert.Equal(t, "Afdeling A", *shifts[0].SubLocationName)
	require.Len(t, shifts[0].AssignedUsers, 1)
	assert.Equal(t, "Anna Jensen", shifts[0].AssignedUsers[0].DisplayName())
	assert.Nil(t, shifts[1].SubLocationName)
}

func TestGetActivitiesWithNumericLocationIDs(t *testing.T) {
	enricher := NewEnricher(newDirectusBackend(t))

	activities, err := enricher.GetActivities(context.Background(), "staff@example.dk")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, activityIDs(activities))

	activities, err = enricher.GetActivities(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, activityIDs(activities))
}
