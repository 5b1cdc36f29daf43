package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"tour-planner-service/internal/adapters/distance"
	"tour-planner-service/internal/adapters/repositories"
	"tour-planner-service/internal/adapters/sessions"
	"tour-planner-service/internal/api/dto"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExporter struct {
	got domain.Itinerary
}

func (e *stubExporter) Export(ctx context.Context, it domain.Itinerary) ([]byte, string, error) {
	e.got = it
	return []byte("%PDF-1.3 stub"), "itinerary_20260101.pdf", nil
}

type testServer struct {
	mux      *http.ServeMux
	exporter *stubExporter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cities, err := repositories.NewStaticCityRepository([]domain.City{
		{Name: "Mumbai", Coords: domain.Coordinates{Lat: 19.076, Lon: 72.877}},
		{Name: "Pune", Coords: domain.Coordinates{Lat: 18.520, Lon: 73.856}},
		{Name: "Nashik", Coords: domain.Coordinates{Lat: 19.9975, Lon: 73.7898}},
	})
	require.NoError(t, err)

	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: "Mumbai", To: "Pune", Km: 120, Hours: 2.4},
		{From: "Pune", To: "Nashik", Km: 164, Hours: 3.3},
	})
	now := func() time.Time { return time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC) }

	planner, err := services.NewTourPlanner(cities, provider, sessions.NewMemorySessionStore(time.Hour), now)
	require.NoError(t, err)

	exp := &stubExporter{}
	h := &SessionHandler{Planner: planner, Exporter: exp, Validate: NewValidator()}
	ch := &CityHandler{Cities: cities, DefaultStart: "Mumbai"}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /cities", ch.List)
	mux.HandleFunc("POST /sessions", h.Create)
	mux.HandleFunc("GET /sessions/{id}", h.Get)
	mux.HandleFunc("DELETE /sessions/{id}", h.Delete)
	mux.HandleFunc("POST /sessions/{id}/start", h.Start)
	mux.HandleFunc("POST /sessions/{id}/stops", h.AddStop)
	mux.HandleFunc("GET /sessions/{id}/candidates", h.Candidates)
	mux.HandleFunc("POST /sessions/{id}/reset", h.Reset)
	mux.HandleFunc("POST /sessions/{id}/venues", h.AddVenue)
	mux.HandleFunc("DELETE /sessions/{id}/venues/{venueID}", h.RemoveVenue)
	mux.HandleFunc("GET /sessions/{id}/map", h.Map)
	mux.HandleFunc("GET /sessions/{id}/itinerary.pdf", h.Export)

	return &testServer{mux: mux, exporter: exp}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) newSession(t *testing.T) string {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var res dto.CreateSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.SessionID)
	return res.SessionID
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) dto.TourView {
	t.Helper()

	var view dto.TourView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func TestSessionHandlerBuildsRoute(t *testing.T) {
	s := newTestServer(t)
	id := s.newSession(t)

	rec := s.do(t, http.MethodPost, "/sessions/"+id+"/start", `{"city":"Mumbai"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	view := decodeView(t, rec)
	assert.True(t, view.Started)
	assert.Equal(t, []string{"Nashik", "Pune"}, view.Candidates)

	rec = s.do(t, http.MethodPost, "/sessions/"+id+"/stops", `{"city":"Pune"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(t, http.MethodPost, "/sessions/"+id+"/stops", `{"city":"Nashik"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	view = decodeView(t, rec)
	require.Len(t, view.Stops, 3)
	assert.Nil(t, view.Stops[0].Leg)
	assert.Equal(t, "2026-01-01", view.Stops[0].Date)
	assert.Equal(t, 164, view.Stops[2].Leg.DistanceKm)
	assert.Equal(t, 284, view.TotalDistanceKm)
	assert.Equal(t, 5.7, view.TotalDurationHours)
	assert.Empty(t, view.Candidates)
	assert.Equal(t, "en", view.Labels.Lang)
}

func TestSessionHandlerRejections(t *testing.T) {
	s := newTestServer(t)
	id := s.newSession(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"add before start", http.MethodPost, "/sessions/" + id + "/stops", `{"city":"Pune"}`, http.StatusConflict},
		{"unknown city", http.MethodPost, "/sessions/" + id + "/start", `{"city":"Atlantis"}`, http.StatusBadRequest},
		{"missing city", http.MethodPost, "/sessions/" + id + "/start", `{}`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/sessions/" + id + "/start", `{"town":"Pune"}`, http.StatusBadRequest},
		{"two objects", http.MethodPost, "/sessions/" + id + "/start", `{"city":"Pune"}{"city":"Pune"}`, http.StatusBadRequest},
		{"unknown session", http.MethodGet, "/sessions/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestSessionHandlerDuplicateStopLeavesTourUnchanged(t *testing.T) {
	s := newTestServer(t)
	id := s.newSession(t)

	s.do(t, http.MethodPost, "/sessions/"+id+"/start", `{"city":"Mumbai"}`)
	s.do(t, http.MethodPost, "/sessions/"+id+"/stops", `{"city":"Pune"}`)

	rec := s.do(t, http.MethodPost, "/sessions/"+id+"/stops", `{"city":"Pune"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	view := decodeView(t, s.do(t, http.MethodGet, "/sessions/"+id, ""))
	assert.Len(t, view.Stops, 2)
	assert.Equal(t, 120, view.TotalDistanceKm)
}

func TestSessionHandlerLocalizedLabels(t *testing.T) {
	s := newTestServer(t)
	id := s.newSession(t)
	s.do(t, http.MethodPost, "/sessions/"+id+"/start", `{"city":"Mumbai"}`)

	view := decodeView(t, s.do(t, http.MethodGet, "/sessions/"+id+"?lang=ko", ""))
	assert.Equal(t, "ko", view.Labels.Lang)
	assert.NotEqual(t, view.Stops[0].Date, view.Stops[0].DateText)

	view = decodeView(t, s.do(t, http.MethodGet, "/sessions/"+id+"?lang=xx", ""))
	assert.Equal(t, "en", view.Labels.Lang)
}

func TestSessionHandlerResetAndDelete(t *testing.T) {
	s := newTestServer(t)
	id := s.newSession(t)
	s.do(t, http.MethodPost, "/sessions/"+id+"/start", `{"city":"Mumbai"}`)

	rec := s.do(t, http.MethodPost, "/sessions/"+id+"/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeView(t, rec)
	assert.False(t, view.Started)
	assert.Empty(t, view.Stops)
	assert.Len(t, view.Candidates, 3)

	rec = s.do(t, http.MethodDelete, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionHandlerCandidates(t *testing.T) {
	s := newTestServer(t)
	id := s.newSession(t)
	s.do(t, http.MethodPost, "/sessions/"+id+"/start", `{"city":"Pune"}`)

	rec := s.do(t, http.MethodGet, "/sessions/"+id+"/candidates", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ListCandidatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Candidates, 2)
	assert.Equal(t, "Mumbai", res.Candidates[0].Name)
	assert.Equal(t, "Nashik", res.Candidates[1].Name)
}

func TestSessionHandlerVenues(t *testing.T) {
	s := newTestServer(t)
	id := s.newSession(t)
	s.do(t, http.MethodPost, "/sessions/"+id+"/start", `{"city":"Mumbai"}`)

	rec := s.do(t, http.MethodPost, "/sessions/"+id+"/venues",
		`{"city":"Mumbai","name":"  Grace Hall ","seats":300,"map_link":"https://maps.google.com/?q=grace"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var added dto.AddVenueResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.Equal(t, "Grace Hall", added.Venue.Name)
	require.Len(t, added.Tour.Stops[0].Venues, 1)

	rec = s.do(t, http.MethodPost, "/sessions/"+id+"/venues", `{"city":"Mumbai","name":"Hall","map_link":"not a url"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/sessions/"+id+"/venues", `{"city":"Pune","name":"Hall"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodDelete, "/sessions/"+id+"/venues/"+added.Venue.ID, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/sessions/"+id+"/venues/"+added.Venue.ID+"?city=Mumbai", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeView(t, rec).Stops[0].Venues)

	rec = s.do(t, http.MethodDelete, "/sessions/"+id+"/venues/"+added.Venue.ID+"?city=Mumbai", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionHandlerMap(t *testing.T) {
	s := newTestServer(t)
	id := s.newSession(t)
	s.do(t, http.MethodPost, "/sessions/"+id+"/start", `{"city":"Mumbai"}`)
	s.do(t, http.MethodPost, "/sessions/"+id+"/stops", `{"city":"Pune"}`)

	rec := s.do(t, http.MethodGet, "/sessions/"+id+"/map", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view dto.MapView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, [2]float64{19.076, 72.877}, view.Center)
	require.Len(t, view.GeoJSON.Features, 3)
	assert.Equal(t, "LineString", view.GeoJSON.Features[0].Geometry.Type)
}

func TestSessionHandlerExport(t *testing.T) {
	s := newTestServer(t)
	id := s.newSession(t)
	s.do(t, http.MethodPost, "/sessions/"+id+"/start", `{"city":"Mumbai"}`)

	rec := s.do(t, http.MethodGet, "/sessions/"+id+"/itinerary.pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "itinerary_20260101.pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
	require.Len(t, s.exporter.got.Stops, 1)
	assert.Equal(t, "Mumbai", s.exporter.got.Stops[0].City.Name)
}

func TestCityHandlerList(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/cities", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ListCitiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Mumbai", res.DefaultStart)
	require.Len(t, res.Cities, 3)
	assert.Equal(t, "Mumbai", res.Cities[0].Name)
}
