// Package planner serves the trip planning API. A plan request is geocoded,
// routed, run through the HOS engine and returned as one JSON document with
// the stops, daily log sheets, cycle accounting and route geometry.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	logger "log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/maharmandeeep/Danjo-trip-planner/business/hos"
	"github.com/maharmandeeep/Danjo-trip-planner/business/route"
)

//Geocoder resolves a place name to coordinates, satisfied by route.Geocoder
type Geocoder interface {
	Geocode(query string) (*route.GeocodeResult, error)
}

//Router computes the two-leg trip route, satisfied by route.Directions
type Router interface {
	FullRoute(current, pickup, dropoff route.Coordinate) (*route.FullRoute, error)
}

//defaultHttpHandler simple default http handler for default route
type defaultHttpHandler struct {
}

//ServeHTTP implements defaultHttpHandler http.Handler interface
func (h *defaultHttpHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Add("Application-Status", "OK")
}

//planTripHandler holds the collaborators needed to answer plan requests
type planTripHandler struct {
	log       *logger.Logger
	geocoder  Geocoder
	router    Router
	publisher *TripPublisher
	holidays  *facilityHolidayCalendar
}

//planTripHandler factory
func makePlanTripHandler(log *logger.Logger,
	geocoder Geocoder,
	router Router,
	publisher *TripPublisher) *planTripHandler {
	return &planTripHandler{
		log:       log,
		geocoder:  geocoder,
		router:    router,
		publisher: publisher,
		holidays:  makeFacilityHolidayCalendar(),
	}
}

//planTripRequest is the JSON body of a plan request
type planTripRequest struct {
	CurrentLocation   string  `json:"current_location"`
	PickupLocation    string  `json:"pickup_location"`
	DropoffLocation   string  `json:"dropoff_location"`
	CurrentCycleHours float64 `json:"current_cycle_hours"`
}

//planTripResponse wraps the engine result with the routed geometry and the
//identifiers and warnings the planner adds on top
type planTripResponse struct {
	TripId            string           `json:"trip_id"`
	TotalMiles        float64          `json:"total_miles"`
	TotalDrivingHours float64          `json:"total_driving_hours"`
	TotalDays         int              `json:"total_days"`
	RouteGeometry     [][2]float64     `json:"route_geometry"`
	Stops             []hos.Stop       `json:"stops"`
	DailyLogs         []hos.DailyLog   `json:"daily_logs"`
	CycleSummary      hos.CycleSummary `json:"cycle_summary"`
	Warnings          []string         `json:"warnings,omitempty"`
}

//errorResponse is the JSON body of every non-2xx response
type errorResponse struct {
	Error string `json:"error"`
}

//ServeHTTP implements planTripHandler's http.Handler interface
func (p *planTripHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request planTripRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		p.writeError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	request.CurrentLocation = strings.TrimSpace(request.CurrentLocation)
	request.PickupLocation = strings.TrimSpace(request.PickupLocation)
	request.DropoffLocation = strings.TrimSpace(request.DropoffLocation)

	if request.CurrentLocation == "" || request.PickupLocation == "" || request.DropoffLocation == "" {
		p.writeError(w, http.StatusBadRequest,
			"all location fields are required (current_location, pickup_location, dropoff_location)")
		return
	}
	if request.CurrentCycleHours < 0 || request.CurrentCycleHours > hos.MaxCycleHours {
		p.writeError(w, http.StatusBadRequest, "current_cycle_hours must be between 0 and 70")
		return
	}

	p.log.Printf("plan request: from %q pickup %q dropoff %q cycle %v",
		request.CurrentLocation, request.PickupLocation, request.DropoffLocation, request.CurrentCycleHours)

	currentGeo, pickupGeo, dropoffGeo, err := p.geocodeLocations(&request)
	if err != nil {
		if errors.Is(err, route.ErrNotFound) {
			p.writeError(w, http.StatusBadRequest, "geocoding failed: "+err.Error())
			return
		}
		p.log.Printf("geocoding error: %v", err)
		p.writeError(w, http.StatusBadGateway, "failed to geocode locations, check the location names and try again")
		return
	}

	fullRoute, err := p.router.FullRoute(
		route.Coordinate{Lat: currentGeo.Lat, Lng: currentGeo.Lng},
		route.Coordinate{Lat: pickupGeo.Lat, Lng: pickupGeo.Lng},
		route.Coordinate{Lat: dropoffGeo.Lat, Lng: dropoffGeo.Lng})
	if err != nil {
		p.log.Printf("routing error: %v", err)
		p.writeError(w, http.StatusBadGateway, "failed to calculate a driving route between the locations")
		return
	}

	legs := make([]hos.RouteLeg, 0, len(fullRoute.Legs))
	for _, leg := range fullRoute.Legs {
		legs = append(legs, hos.RouteLeg{DistanceMiles: leg.DistanceMiles, DurationHours: leg.DurationHours})
	}
	locations := hos.TripLocations{
		Current: hos.Location{Name: request.CurrentLocation, Lat: currentGeo.Lat, Lng: currentGeo.Lng},
		Pickup:  hos.Location{Name: request.PickupLocation, Lat: pickupGeo.Lat, Lng: pickupGeo.Lng},
		Dropoff: hos.Location{Name: request.DropoffLocation, Lat: dropoffGeo.Lat, Lng: dropoffGeo.Lng},
	}

	result, err := hos.Plan(legs, request.CurrentCycleHours, locations, time.Time{})
	if err != nil {
		if errors.Is(err, hos.ErrInvalidInput) {
			p.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		p.log.Printf("hos engine error: %v", err)
		p.writeError(w, http.StatusInternalServerError, "trip calculation failed")
		return
	}

	response := planTripResponse{
		TripId:            uuid.NewString(),
		TotalMiles:        result.TotalMiles,
		TotalDrivingHours: result.TotalDrivingHours,
		TotalDays:         result.TotalDays,
		RouteGeometry:     fullRoute.Geometry,
		Stops:             result.Stops,
		DailyLogs:         result.DailyLogs,
		CycleSummary:      result.CycleSummary,
		Warnings:          p.facilityWarnings(result),
	}

	p.publisher.Publish(&PlannedTrip{
		TripId:            response.TripId,
		CurrentLocation:   request.CurrentLocation,
		PickupLocation:    request.PickupLocation,
		DropoffLocation:   request.DropoffLocation,
		TotalMiles:        result.TotalMiles,
		TotalDrivingHours: result.TotalDrivingHours,
		TotalDays:         result.TotalDays,
		CycleAfter:        result.CycleSummary.CycleAfter,
	})

	w.Header().Set("Content-Type", "application/json")
	jsonData, err := json.Marshal(response)
	if err != nil {
		p.log.Printf("error marshaling plan response: %v", err)
		http.Error(w, "Error serving request", http.StatusInternalServerError)
		return
	}
	byteCount, err := w.Write(jsonData)
	if err != nil {
		p.log.Printf("error writing json response: %v", err)
		return
	}
	p.log.Printf("planned trip %s: %d days, %v miles, wrote %d bytes",
		response.TripId, response.TotalDays, response.TotalMiles, byteCount)
}

//geocodeLocations resolves the three trip locations in request order
func (p *planTripHandler) geocodeLocations(request *planTripRequest) (current, pickup, dropoff *route.GeocodeResult, err error) {
	if current, err = p.geocoder.Geocode(request.CurrentLocation); err != nil {
		return nil, nil, nil, err
	}
	if pickup, err = p.geocoder.Geocode(request.PickupLocation); err != nil {
		return nil, nil, nil, err
	}
	if dropoff, err = p.geocoder.Geocode(request.DropoffLocation); err != nil {
		return nil, nil, nil, err
	}
	return current, pickup, dropoff, nil
}

//facilityWarnings reports pickup or dropoff days that land on a federal
//holiday, when the facility is likely closed
func (p *planTripHandler) facilityWarnings(result *hos.TripResult) []string {
	var warnings []string
	for _, stop := range result.Stops {
		if stop.Type != hos.StopPickup && stop.Type != hos.StopDropoff {
			continue
		}
		if stop.Day < 1 || stop.Day > len(result.DailyLogs) {
			continue
		}
		date, err := time.Parse("2006-01-02", result.DailyLogs[stop.Day-1].Date)
		if err != nil {
			continue
		}
		if p.holidays.isHoliday(date) {
			warnings = append(warnings,
				stop.Location+" "+string(stop.Type)+" on "+result.DailyLogs[stop.Day-1].Date+
					" falls on a federal holiday, the facility may be closed")
		}
	}
	return warnings
}

//writeError sends a JSON error body with the given status
func (p *planTripHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: message}); err != nil {
		p.log.Printf("error writing error response: %v", err)
	}
}

//createServer creates configured http.Server for responding to trip plan requests
func createServer(log *logger.Logger,
	geocoder Geocoder,
	router Router,
	publisher *TripPublisher,
	httpPort int) *http.Server {

	planTripService := makePlanTripHandler(log, geocoder, router, publisher)

	r := mux.NewRouter()
	r.Handle("/", &defaultHttpHandler{})
	r.Handle("/api/trip/plan", planTripService).Methods(http.MethodPost)
	srv := &http.Server{
		Addr: strings.Join([]string{"0.0.0.0", strconv.Itoa(httpPort)}, ":"),
		// Good practice to set timeouts to avoid Slowloris attacks.
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      r,
	}
	return srv
}

//RunWebService starts up the trip planning web service, and terminates on
//shutdown signal
func RunWebService(log *logger.Logger,
	geocoder Geocoder,
	router Router,
	publisher *TripPublisher,
	httpPort int,
	shutdownSignal chan os.Signal) error {

	srv := createServer(log, geocoder, router, publisher, httpPort)
	log.Printf("Starting server on port %d", httpPort)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Printf("server ListenAndServe ended. %s", err)
		}
	}()

	<-shutdownSignal
	log.Printf("ending webservice on shutdown signal")

	shutdownCtx, serverCancelFunc := context.WithTimeout(context.Background(), time.Duration(5)*time.Second)
	defer serverCancelFunc()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
