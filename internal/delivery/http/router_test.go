package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lineupplanner/internal/delivery/http/controllers"
	"lineupplanner/internal/delivery/http/middleware"
	"lineupplanner/internal/domain"
	"lineupplanner/internal/repository/memory"
	"lineupplanner/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopNotifier struct{}

func (nopNotifier) SendLineup(context.Context, *domain.Lineup) (int, error) { return 0, nil }

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewLineupService(context.Background(), logger, memory.NewStateRepository(), services.LineupOptions{
		Roster: []domain.Artist{{ID: "dj-nova", Name: "DJ Nova", Genre: "House"}},
	})
	t.Cleanup(func() { _ = svc.Close() })

	mux := NewRouter(Controllers{
		Lineup:  controllers.NewLineupController(logger, svc),
		Events:  controllers.NewEventController(logger, svc),
		Slots:   controllers.NewSlotController(logger, svc),
		Exports: controllers.NewExportController(logger, svc, nopNotifier{}, time.UTC),
	})
	return middleware.Roles(domain.RoleArtist, mux)
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Healthz(t *testing.T) {
	rec := do(t, newTestHandler(t), http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RoleGating(t *testing.T) {
	const createBody = `{"title":"Warehouse Night","date":"2025-07-04","stages":["Main"],"hours":{"start":"22:00","end":"02:00"}}`
	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
	}{
		{name: "default artist role cannot edit", wantStatus: http.StatusForbidden},
		{name: "promoter", headers: map[string]string{middleware.RoleHeader: "promoter"}, wantStatus: http.StatusCreated},
		{name: "booker case-insensitive", headers: map[string]string{middleware.RoleHeader: "Booker"}, wantStatus: http.StatusCreated},
		{name: "unknown role", headers: map[string]string{middleware.RoleHeader: "admin"}, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestHandler(t), http.MethodPost, "/events", createBody, tt.headers)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRouter_BookingFlow(t *testing.T) {
	h := newTestHandler(t)
	promoter := map[string]string{middleware.RoleHeader: "promoter"}

	rec := do(t, h, http.MethodPost, "/events", `{"title":"Warehouse Night","date":"2025-07-04","stages":["Main"],"hours":{"start":"22:00","end":"02:00"}}`, promoter)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Data domain.Event `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	eventID := created.Data.ID

	rec = do(t, h, http.MethodPost, "/events/"+eventID+"/slots", `{"stage":"Main","artistId":"dj-nova","startTime":"01:30"}`, promoter)
	require.Equal(t, http.StatusCreated, rec.Code)
	var assigned struct {
		Data domain.Slot `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&assigned))
	assert.Equal(t, "02:00", assigned.Data.EndTime)
	slotID := assigned.Data.ID

	// An artist without an ID is turned away before the service sees the request.
	rec = do(t, h, http.MethodPost, "/slots/"+slotID+"/response", `{"status":"accepted"}`, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodPost, "/slots/"+slotID+"/response", `{"status":"declined"}`,
		map[string]string{middleware.ArtistHeader: "dj-nova"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/artists/dj-nova/bookings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bookings struct {
		Data []domain.Booking `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&bookings))
	require.Len(t, bookings.Data, 1)
	assert.Equal(t, domain.SlotStatusDeclined, bookings.Data[0].Slot.Status)

	rec = do(t, h, http.MethodPost, "/events/"+eventID+"/lock", "", promoter)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodDelete, "/slots/"+slotID, "", promoter)
	assert.Equal(t, http.StatusLocked, rec.Code)

	rec = do(t, h, http.MethodGet, "/events/"+eventID+"/export.csv", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"DJ Nova"`)
}
