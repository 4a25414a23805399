package board

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beevik/etree"

	"trafikinfo/internal/config"
	"trafikinfo/internal/realtime"
	"trafikinfo/pkg/trafikverket"
)

// fakeAPI answers Trafikverket queries with canned XML per object type.
// Station lookups echo the requested name back so both endpoints of a trip
// resolve distinctly.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(body); err != nil {
			t.Errorf("unparseable request: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		query := doc.FindElement("/REQUEST/QUERY")
		switch query.SelectAttrValue("objecttype", "") {
		case "TrainStation":
			name := doc.FindElement("/REQUEST/QUERY/FILTER/EQ[@name='AdvertisedLocationName']").SelectAttrValue("value", "")
			fmt.Fprintf(w, `<RESPONSE><RESULT><TrainStation>
				<AdvertisedLocationName>%s</AdvertisedLocationName>
				<LocationSignature>%s</LocationSignature>
				<Advertised>true</Advertised>
			</TrainStation></RESULT></RESPONSE>`, name, name[:1])
		case "TrainAnnouncement":
			fmt.Fprint(w, `<RESPONSE><RESULT>
				<TrainAnnouncement>
					<ActivityId>a1</ActivityId>
					<Canceled>false</Canceled>
					<AdvertisedTimeAtLocation>2024-05-01T11:00:00.000+02:00</AdvertisedTimeAtLocation>
					<EstimatedTimeAtLocation>2024-05-01T11:05:00.000+02:00</EstimatedTimeAtLocation>
				</TrainAnnouncement>
			</RESULT></RESPONSE>`)
		case "WeatherMeasurepoint":
			fmt.Fprint(w, `<RESPONSE><RESULT><WeatherMeasurepoint>
				<Id>1205</Id>
				<Name>Nöbbele</Name>
				<Observation><Air><Temperature><Value>6.2</Value></Temperature></Air></Observation>
			</WeatherMeasurepoint></RESULT></RESPONSE>`)
		default:
			fmt.Fprint(w, `<RESPONSE><RESULT></RESULT></RESPONSE>`)
		}
	}))
}

func testHandler(t *testing.T) *Handler {
	t.Helper()
	srv := fakeAPI(t)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tv := trafikverket.NewClientWithHTTP("test-key", srv.URL, srv.Client(), logger)
	cfg := &config.Config{CacheTTL: time.Minute}
	h := New(tv, nil, realtime.NewStore(), cfg, logger)
	t.Cleanup(h.Close)
	return h
}

func TestDepartures(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest("GET", "/api/departures?from=Stockholm&to=Göteborg&count=3", nil)
	rec := httptest.NewRecorder()
	h.Departures(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}

	var resp DeparturesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.From == nil || resp.From.Name != "Stockholm" {
		t.Errorf("From = %+v", resp.From)
	}
	if resp.To == nil || resp.To.Name != "Göteborg" {
		t.Errorf("To = %+v", resp.To)
	}
	if len(resp.Departures) != 1 {
		t.Fatalf("departures = %d, want 1", len(resp.Departures))
	}
	dep := resp.Departures[0]
	if dep.ID != "a1" {
		t.Errorf("ID = %q", dep.ID)
	}
	if dep.State != trafikverket.TrainDelayed {
		t.Errorf("State = %q, want delayed", dep.State)
	}
	if dep.DelayMinutes == nil || *dep.DelayMinutes != 5 {
		t.Errorf("DelayMinutes = %v, want 5", dep.DelayMinutes)
	}
}

func TestDepartures_MissingParams(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest("GET", "/api/departures?from=Stockholm", nil)
	rec := httptest.NewRecorder()
	h.Departures(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDepartures_CachesResponses(t *testing.T) {
	h := testHandler(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/api/departures?from=Stockholm&to=Göteborg", nil)
		rec := httptest.NewRecorder()
		h.Departures(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}

	if _, ok := h.cache.Get(Key("departures", "Stockholm", "Göteborg", 5, "", false)); !ok {
		t.Error("expected cached departures entry")
	}
}

func TestWeather(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest("GET", "/api/weather?station=Nöbbele", nil)
	rec := httptest.NewRecorder()
	h.Weather(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var info trafikverket.WeatherStationInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if info.StationID != "1205" {
		t.Errorf("StationID = %q", info.StationID)
	}
	if info.AirTemp == nil || *info.AirTemp != 6.2 {
		t.Errorf("AirTemp = %v", info.AirTemp)
	}
}

func TestDeviation_NotFound(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest("GET", "/api/deviation?id=TRV-0", nil)
	rec := httptest.NewRecorder()
	h.Deviation(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestAlerts(t *testing.T) {
	h := testHandler(t)
	h.rt.SetAlerts([]realtime.Alert{
		{ID: "a1", HeaderText: "Färjan är ur drift", RouteIDs: []string{"ferry-21"}},
	})

	req := httptest.NewRequest("GET", "/api/alerts", nil)
	rec := httptest.NewRecorder()
	h.Alerts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp AlertsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Alerts) != 1 || resp.Alerts[0].ID != "a1" {
		t.Errorf("Alerts = %v", resp.Alerts)
	}
	if resp.UpdatedAt == nil {
		t.Error("UpdatedAt should be set after SetAlerts")
	}

	filtered := httptest.NewRequest("GET", "/api/alerts?route=nope", nil)
	rec = httptest.NewRecorder()
	h.Alerts(rec, filtered)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Alerts) != 0 {
		t.Errorf("filtered alerts = %v, want none", resp.Alerts)
	}
}

func TestHealth(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var status map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if status["status"] != "ok" {
		t.Errorf("status = %q", status["status"])
	}
}
