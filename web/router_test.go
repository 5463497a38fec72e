package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"teamop.dk/bosted/auth"
	"teamop.dk/bosted/core"
	directus "teamop.dk/bosted/directus/v1"
	"teamop.dk/bosted/model"
	"teamop.dk/bosted/notification"
	"teamop.dk/bosted/store"
	"teamop.dk/bosted/utils"
)

var jwtSecret = []byte("0123456789abcdef0123")

type fakeAuth struct{}

func (fakeAuth) Login(ctx context.Context, email, password string) (*model.User, error) {
	if email != "anna@team-op.dk" {
		return nil, auth.ErrUserNotFound
	}
	return &model.User{ID: "u1", FirstName: utils.Ptr("Anna"), LastName: utils.Ptr("Jensen"), Email: email}, nil
}

type fakeSchedule struct {
	email    string
	today    bool
	upcoming bool
	limit    int
	err      error
}

func (f *fakeSchedule) Shifts(ctx context.Context, userEmail string, todayOnly bool) ([]model.Shift, error) {
	f.email, f.today = userEmail, todayOnly
	if f.err != nil {
		return nil, f.err
	}
	return []model.Shift{{
		ID:              1,
		TaskType:        model.TaskTypeShift,
		StartDateTime:   "2026-10-15T07:00:00",
		EndDateTime:     "2026-10-15T15:00:00",
		SubLocationName: utils.Ptr("Afdeling A"),
		AssignedUsers:   []model.User{{ID: "u1", FirstName: utils.Ptr("Anna"), Email: "anna@team-op.dk"}},
	}}, nil
}

func (f *fakeSchedule) StaffOnShift(ctx context.Context, userEmail string) ([]model.User, error) {
	return []model.User{{ID: "u2", Email: "bo@team-op.dk"}}, nil
}

func (f *fakeSchedule) Activities(ctx context.Context, userEmail string, upcomingOnly bool, limit int) ([]model.Activity, error) {
	f.upcoming, f.limit = upcomingOnly, limit
	return []model.Activity{{ID: 7, Title: "Gåtur"}}, nil
}

type notImplementedRegistrar struct{}

func (notImplementedRegistrar) Register(ctx context.Context, activityID int, userID string, register bool) error {
	return directus.ErrNotImplemented
}

type testServer struct {
	router   *gin.Engine
	schedule *fakeSchedule
	token    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	st := store.New(db)
	require.NoError(t, st.Migrate(context.Background()))

	registry := prometheus.NewRegistry()
	directus.NewMetrics(registry)

	schedule := &fakeSchedule{}
	s := &testServer{
		schedule: schedule,
		router: setupRouter(Dependencies{
			Auth:           fakeAuth{},
			Schedule:       schedule,
			Registrar:      notImplementedRegistrar{},
			Reminders:      core.NewReminderService(st, notification.NewDailyScheduler(notification.LogNotifier{})),
			JWTSecret:      jwtSecret,
			TokenTTL:       time.Hour,
			ToothbrushCode: "mirror-42",
			Gatherer:       registry,
		}),
	}

	w := s.do(http.MethodPost, "/api/login", `{"email":"anna@team-op.dk","password":"x"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Data struct {
			Token string `json:"token"`
			Name  string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, "Anna Jensen", res.Data.Name)
	s.token = res.Data.Token
	return s
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestPingAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())

	w = s.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	s := newTestServer(t)
	s.token = ""

	w := s.do(http.MethodPost, "/api/login", `{"email":"nobody@team-op.dk"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Email ikke fundet i systemet"}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/login", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newTestServer(t)
	s.token = ""

	for _, path := range []string{"/api/shifts", "/api/activities", "/api/medicines", "/api/toothbrush-reminders"} {
		w := s.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestShifts(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/shifts?today=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anna@team-op.dk", s.schedule.email)
	assert.True(t, s.schedule.today)

	var res struct {
		Data []struct {
			ID              int    `json:"id"`
			SubLocationName string `json:"subLocationName"`
			AssignedUsers   []struct {
				Name string `json:"name"`
			} `json:"assignedUsers"`
		} `json:"data"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Afdeling A", res.Data[0].SubLocationName)
	assert.Equal(t, "Anna", res.Data[0].AssignedUsers[0].Name)
	assert.Equal(t, 1, res.Pagination.Total)
}

func TestShiftsBackendFailure(t *testing.T) {
	s := newTestServer(t)
	s.schedule.err = &directus.ServerError{StatusCode: 500, Message: "boom"}

	w := s.do(http.MethodGet, "/api/shifts", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"message":"Kunne ikke hente vagtplan: Serverfejl (500): boom"}`, w.Body.String())
}

func TestShiftExport(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/shifts/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "vagtplan-")
	assert.NotZero(t, w.Body.Len())
}

func TestActivities(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/activities?upcoming=true&limit=3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, s.schedule.upcoming)
	assert.Equal(t, 3, s.schedule.limit)

	w = s.do(http.MethodGet, "/api/activities?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/activities/7/registration", `{"register":true}`)
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	w = s.do(http.MethodPost, "/api/activities/x/registration", `{"register":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToothbrushRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/toothbrush-reminders", `{"hour":7,"minute":0}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data model.ToothbrushReminder `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Tandbørstning 07:00", created.Data.Name)

	w = s.do(http.MethodPost, "/api/toothbrush-reminders", `{"hour":24,"minute":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPatch, "/api/toothbrush-reminders/"+created.Data.ID, `{"isEnabled":false}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/toothbrush-reminders/verify", `{"code":"mirror-42"}`)
	assert.JSONEq(t, `{"data":{"verified":true}}`, w.Body.String())

	w = s.do(http.MethodDelete, "/api/toothbrush-reminders/"+created.Data.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, "/api/toothbrush-reminders/"+created.Data.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMedicineRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/medicines", `{
		"name": "Panodil",
		"totalDailyDoses": 1,
		"reminderType": "TIME_ONLY",
		"snoozeType": "SNOOZE_6_MIN",
		"reminders": [{"hour": 8, "minute": 0, "dosage": 2}]
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data model.Medicine `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Len(t, created.Data.Reminders, 1)
	assert.Equal(t, model.DefaultDoseUnit, created.Data.Reminders[0].Unit)
	assert.True(t, created.Data.Reminders[0].IsEnabled)

	w = s.do(http.MethodPost, "/api/medicines", `{"name":"X","reminderType":"SOMETIMES","snoozeType":"SINGLE"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	id := created.Data.ID
	path := "/api/medicines/" + strconv.Itoa(id)

	w = s.do(http.MethodPut, path+"/snooze", `{"snoozeType":"SINGLE"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPut, path+"/reminders", `[{"hour":9,"minute":15},{"hour":21,"minute":0,"isEnabled":false}]`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/medicines", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []model.Medicine `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, model.SnoozeSingle, list.Data[0].SnoozeType)
	assert.Len(t, list.Data[0].Reminders, 2)

	w = s.do(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPut, path+"/snooze", `{"snoozeType":"SINGLE"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
