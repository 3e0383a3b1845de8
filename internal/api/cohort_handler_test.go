package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/mocks"
	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
	"github.com/phrazzld/cohort-tools-api/internal/service"
	"github.com/phrazzld/cohort-tools-api/internal/store"
	"github.com/phrazzld/cohort-tools-api/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCohortRouter(t *testing.T) (http.Handler, *mocks.MockCohortStore) {
	t.Helper()
	log, _ := logger.NewTestLogger()
	repo := mocks.NewMockCohortStore()
	svc := service.NewRecords[*domain.Cohort]("cohort", repo, nil, log)

	r := chi.NewRouter()
	r.Route("/api/cohorts", NewCohortHandler(svc, log).Routes)
	return r, repo
}

func validCohortPayload() map[string]interface{} {
	return map[string]interface{}{
		"inProgress":     true,
		"cohortSlug":     "wd-berlin-2024-09",
		"cohortName":     "Web Dev Berlin 2024",
		"program":        "Web Dev",
		"campus":         "Berlin",
		"startDate":      "2024-09-02T09:00:00Z",
		"endDate":        "2024-12-06T18:00:00Z",
		"programManager": "Sally Daher",
		"leadTeacher":    "Florian Aube",
		"totalHours":     400,
	}
}

func TestCohortCreateAndGetRoundTrip(t *testing.T) {
	router, _ := newCohortRouter(t)
	payload := validCohortPayload()

	created := doRequest(t, router, http.MethodPost, "/api/cohorts", payload)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	createdBody := decodeObject(t, created)

	id, _ := createdBody["id"].(string)
	require.Len(t, id, 24)
	for field, want := range payload {
		if field == "totalHours" {
			assert.EqualValues(t, want, createdBody[field])
			continue
		}
		assert.Equal(t, want, createdBody[field], field)
	}

	fetched := doRequest(t, router, http.MethodGet, "/api/cohorts/"+id, nil)
	require.Equal(t, http.StatusOK, fetched.Code)
	assert.Equal(t, createdBody, decodeObject(t, fetched))
}

func TestCohortCreateDefaults(t *testing.T) {
	router, _ := newCohortRouter(t)
	payload := validCohortPayload()
	delete(payload, "inProgress")
	delete(payload, "startDate")
	delete(payload, "endDate")
	delete(payload, "totalHours")

	before := time.Now().UTC().Add(-time.Second)
	rec := doRequest(t, router, http.MethodPost, "/api/cohorts", payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeObject(t, rec)

	assert.Equal(t, false, body["inProgress"])
	assert.EqualValues(t, domain.DefaultTotalHours, body["totalHours"])
	assert.Nil(t, body["endDate"])

	start, err := time.Parse(time.RFC3339Nano, body["startDate"].(string))
	require.NoError(t, err)
	assert.True(t, start.After(before), "startDate should default to now")
}

func TestCohortCreateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p map[string]interface{})
		raw    string
	}{
		{name: "missing name", mutate: func(p map[string]interface{}) { delete(p, "cohortName") }},
		{name: "missing slug", mutate: func(p map[string]interface{}) { p["cohortSlug"] = "" }},
		{name: "unknown program", mutate: func(p map[string]interface{}) { p["program"] = "Basket Weaving" }},
		{name: "unknown campus", mutate: func(p map[string]interface{}) { p["campus"] = "Atlantis" }},
		{name: "negative hours", mutate: func(p map[string]interface{}) { p["totalHours"] = -1 }},
		{name: "end before start", mutate: func(p map[string]interface{}) { p["endDate"] = "2024-01-01T00:00:00Z" }},
		{name: "wrong type", mutate: func(p map[string]interface{}) { p["totalHours"] = "many" }},
		{name: "malformed json", raw: `{"cohortSlug":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo := newCohortRouter(t)
			var body interface{} = tt.raw
			if tt.mutate != nil {
				p := validCohortPayload()
				tt.mutate(p)
				body = p
			}

			rec := doRequest(t, router, http.MethodPost, "/api/cohorts", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Invalid input", message(t, rec))
			assert.Equal(t, 0, repo.Len())
		})
	}
}

func TestCohortCreateDuplicateSlug(t *testing.T) {
	router, _ := newCohortRouter(t)
	require.Equal(t, http.StatusCreated, doRequest(t, router, http.MethodPost, "/api/cohorts", validCohortPayload()).Code)

	rec := doRequest(t, router, http.MethodPost, "/api/cohorts", validCohortPayload())

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "cohort already exists", message(t, rec))
}

func TestCohortList(t *testing.T) {
	router, repo := newCohortRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/cohorts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	first, second := storetest.NewCohort(1), storetest.NewCohort(2)
	repo.Seed(first, second)

	rec = doRequest(t, router, http.MethodGet, "/api/cohorts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeArray(t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID.Hex(), list[0]["id"])
	assert.Equal(t, second.ID.Hex(), list[1]["id"])

	repo.ListFn = func(context.Context) ([]*domain.Cohort, error) {
		return nil, store.NewStoreError("cohort", "list", "dial mongodb://admin:pw@db failed", store.ErrUnavailable)
	}
	rec = doRequest(t, router, http.MethodGet, "/api/cohorts", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", message(t, rec))
	assert.NotContains(t, rec.Body.String(), "mongodb")
}

func TestCohortGetNotFound(t *testing.T) {
	router, _ := newCohortRouter(t)
	absent := domain.NewID().Hex()

	tests := []struct {
		name string
		id   string
	}{
		{name: "malformed id", id: "not-an-id"},
		{name: "short hex", id: "abc123"},
		{name: "absent id", id: absent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, "/api/cohorts/"+tt.id, nil)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "No such cohort with id: "+tt.id, message(t, rec))
		})
	}
}

func TestCohortUpdate(t *testing.T) {
	t.Run("full replace resets omitted fields", func(t *testing.T) {
		router, repo := newCohortRouter(t)
		existing := storetest.NewCohort(1)
		existing.TotalHours = 500
		repo.Seed(existing)

		payload := validCohortPayload()
		payload["cohortName"] = "Renamed"
		delete(payload, "totalHours")

		rec := doRequest(t, router, http.MethodPut, "/api/cohorts/"+existing.ID.Hex(), payload)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decodeObject(t, rec)
		assert.Equal(t, existing.ID.Hex(), body["id"])
		assert.Equal(t, "Renamed", body["cohortName"])
		assert.EqualValues(t, domain.DefaultTotalHours, body["totalHours"])

		stored, err := repo.GetByID(context.Background(), existing.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", stored.CohortName)
	})

	tests := []struct {
		name       string
		id         func(existing *domain.Cohort) string
		body       interface{}
		wantStatus int
		wantMsg    func(id string) string
	}{
		{
			name:       "malformed id",
			id:         func(*domain.Cohort) string { return "xyz" },
			body:       validCohortPayload(),
			wantStatus: http.StatusNotFound,
			wantMsg:    func(id string) string { return "No such cohort with id: " + id },
		},
		{
			name:       "absent id with invalid body",
			id:         func(*domain.Cohort) string { return domain.NewID().Hex() },
			body:       map[string]interface{}{"program": "nope"},
			wantStatus: http.StatusNotFound,
			wantMsg:    func(id string) string { return "No such cohort with id: " + id },
		},
		{
			name:       "absent id with malformed body",
			id:         func(*domain.Cohort) string { return domain.NewID().Hex() },
			body:       `{"cohortName":`,
			wantStatus: http.StatusNotFound,
			wantMsg:    func(id string) string { return "No such cohort with id: " + id },
		},
		{
			name:       "existing id with invalid body",
			id:         func(c *domain.Cohort) string { return c.ID.Hex() },
			body:       map[string]interface{}{"cohortName": "missing the rest"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    func(string) string { return "Invalid input" },
		},
		{
			name:       "existing id with malformed body",
			id:         func(c *domain.Cohort) string { return c.ID.Hex() },
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    func(string) string { return "Invalid input" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo := newCohortRouter(t)
			existing := storetest.NewCohort(1)
			repo.Seed(existing)
			id := tt.id(existing)

			rec := doRequest(t, router, http.MethodPut, "/api/cohorts/"+id, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg(id), message(t, rec))
		})
	}
}

func TestCohortDelete(t *testing.T) {
	router, repo := newCohortRouter(t)
	keep, drop := storetest.NewCohort(1), storetest.NewCohort(2)
	repo.Seed(keep, drop)

	rec := doRequest(t, router, http.MethodDelete, "/api/cohorts/"+drop.ID.Hex(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doRequest(t, router, http.MethodDelete, "/api/cohorts/"+drop.ID.Hex(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code, "deleting again still succeeds")
	assert.Equal(t, 1, repo.Len())

	rec = doRequest(t, router, http.MethodDelete, "/api/cohorts/bogus", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No such cohort with id: bogus", message(t, rec))

	repo.DeleteFn = func(context.Context, domain.ID) error { return store.ErrUnavailable }
	rec = doRequest(t, router, http.MethodDelete, "/api/cohorts/"+keep.ID.Hex(), nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code, "store failures are surfaced")
}

func TestCohortLifecycle(t *testing.T) {
	router, _ := newCohortRouter(t)

	created := doRequest(t, router, http.MethodPost, "/api/cohorts", validCohortPayload())
	require.Equal(t, http.StatusCreated, created.Code)
	id := decodeObject(t, created)["id"].(string)

	assert.Equal(t, http.StatusOK, doRequest(t, router, http.MethodGet, "/api/cohorts/"+id, nil).Code)
	assert.Equal(t, http.StatusNoContent, doRequest(t, router, http.MethodDelete, "/api/cohorts/"+id, nil).Code)

	rec := doRequest(t, router, http.MethodGet, "/api/cohorts/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No such cohort with id: "+id, message(t, rec))
}
