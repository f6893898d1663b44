package planner

import (
	"encoding/json"
	"fmt"
	logger "log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/pkg/errors"

	"github.com/maharmandeeep/Danjo-trip-planner/business/route"
)

func testLogger() *logger.Logger {
	return logger.New(os.Stdout, "TEST : ", logger.LstdFlags)
}

//stubGeocoder resolves a fixed set of place names
type stubGeocoder struct {
	results map[string]*route.GeocodeResult
	err     error
}

func (s *stubGeocoder) Geocode(query string) (*route.GeocodeResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	result, present := s.results[query]
	if !present {
		return nil, errors.Wrapf(route.ErrNotFound, "geocoding %q", query)
	}
	return result, nil
}

//stubRouter returns a canned two-leg route
type stubRouter struct {
	fullRoute *route.FullRoute
	err       error
}

func (s *stubRouter) FullRoute(current, pickup, dropoff route.Coordinate) (*route.FullRoute, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.fullRoute, nil
}

func workingGeocoder() *stubGeocoder {
	return &stubGeocoder{results: map[string]*route.GeocodeResult{
		"Chicago, IL":      {Lat: 41.8781, Lng: -87.6298, DisplayName: "Chicago, Cook County, Illinois"},
		"Indianapolis, IN": {Lat: 39.7684, Lng: -86.1581, DisplayName: "Indianapolis, Marion County, Indiana"},
		"Atlanta, GA":      {Lat: 33.7490, Lng: -84.3880, DisplayName: "Atlanta, Fulton County, Georgia"},
	}}
}

func workingRouter() *stubRouter {
	return &stubRouter{fullRoute: &route.FullRoute{
		Legs: []route.Leg{
			{DistanceMiles: 100, DurationHours: 1.54},
			{DistanceMiles: 80, DurationHours: 1.23},
		},
		TotalMiles: 180.0,
		TotalHours: 2.77,
		Geometry:   [][2]float64{{41.8781, -87.6298}, {39.7684, -86.1581}, {33.7490, -84.3880}},
	}}
}

func testHandler(geocoder Geocoder, router Router) *planTripHandler {
	log := testLogger()
	return makePlanTripHandler(log, geocoder, router, MakeTripPublisher(log, nil, false))
}

func planRequest(body string) *httptest.ResponseRecorder {
	return planRequestWith(testHandler(workingGeocoder(), workingRouter()), body)
}

func planRequestWith(handler *planTripHandler, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, "/api/trip/plan", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

const validRequestBody = `{
	"current_location": "Chicago, IL",
	"pickup_location": "Indianapolis, IN",
	"dropoff_location": "Atlanta, GA",
	"current_cycle_hours": 10
}`

func Test_planTripHandler(t *testing.T) {
	is := is.New(t)
	recorder := planRequest(validRequestBody)

	is.Equal(http.StatusOK, recorder.Code)
	is.Equal("application/json", recorder.Header().Get("Content-Type"))

	var response planTripResponse
	is.NoErr(json.Unmarshal(recorder.Body.Bytes(), &response))

	if response.TripId == "" {
		t.Error("trip_id is empty")
	}
	is.Equal(180.0, response.TotalMiles)
	is.Equal(1, response.TotalDays)
	is.Equal(3, len(response.RouteGeometry))
	is.Equal(10.0, response.CycleSummary.CycleBefore)
	if len(response.Stops) < 3 {
		t.Errorf("got %d stops, want at least start, pickup and dropoff", len(response.Stops))
	}
	if len(response.DailyLogs) != response.TotalDays {
		t.Errorf("daily_logs holds %d days, total_days says %d", len(response.DailyLogs), response.TotalDays)
	}

	//each response gets a fresh trip id
	var again planTripResponse
	recorder = planRequest(validRequestBody)
	is.NoErr(json.Unmarshal(recorder.Body.Bytes(), &again))
	if response.TripId == again.TripId {
		t.Error("two plans share a trip_id")
	}
}

func Test_planTripHandler_rejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "not json",
			body: `planning a trip`,
		},
		{
			name: "missing dropoff",
			body: `{"current_location": "Chicago, IL", "pickup_location": "Indianapolis, IN", "current_cycle_hours": 0}`,
		},
		{
			name: "blank pickup",
			body: `{"current_location": "Chicago, IL", "pickup_location": "   ", "dropoff_location": "Atlanta, GA"}`,
		},
		{
			name: "cycle hours above limit",
			body: `{"current_location": "Chicago, IL", "pickup_location": "Indianapolis, IN", "dropoff_location": "Atlanta, GA", "current_cycle_hours": 70.5}`,
		},
		{
			name: "negative cycle hours",
			body: `{"current_location": "Chicago, IL", "pickup_location": "Indianapolis, IN", "dropoff_location": "Atlanta, GA", "current_cycle_hours": -1}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			recorder := planRequest(tt.body)
			is.Equal(http.StatusBadRequest, recorder.Code)

			var response errorResponse
			is.NoErr(json.Unmarshal(recorder.Body.Bytes(), &response))
			if response.Error == "" {
				t.Error("error body is empty")
			}
		})
	}
}

func Test_planTripHandler_unknownLocationIsBadRequest(t *testing.T) {
	is := is.New(t)
	handler := testHandler(workingGeocoder(), workingRouter())
	body := `{"current_location": "Nowhereville, ZZ", "pickup_location": "Indianapolis, IN", "dropoff_location": "Atlanta, GA"}`

	recorder := planRequestWith(handler, body)
	is.Equal(http.StatusBadRequest, recorder.Code)
}

func Test_planTripHandler_geocoderOutageIsBadGateway(t *testing.T) {
	is := is.New(t)
	handler := testHandler(&stubGeocoder{err: fmt.Errorf("connection refused")}, workingRouter())

	recorder := planRequestWith(handler, validRequestBody)
	is.Equal(http.StatusBadGateway, recorder.Code)
}

func Test_planTripHandler_routerOutageIsBadGateway(t *testing.T) {
	is := is.New(t)
	handler := testHandler(workingGeocoder(), &stubRouter{err: fmt.Errorf("connection refused")})

	recorder := planRequestWith(handler, validRequestBody)
	is.Equal(http.StatusBadGateway, recorder.Code)
}

func Test_defaultHttpHandler(t *testing.T) {
	is := is.New(t)
	recorder := httptest.NewRecorder()
	handler := defaultHttpHandler{}
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	is.Equal("OK", recorder.Header().Get("Application-Status"))
}
