package route

import (
	"fmt"
	"log"
	"math"
	"net/url"

	"github.com/pkg/errors"

	"github.com/maharmandeeep/Danjo-trip-planner/foundation/httpclient"
)

// DefaultDirectionsURL is the OpenRouteService directions endpoint for the
// heavy-goods-vehicle profile.
const DefaultDirectionsURL = "https://api.openrouteservice.org/v2/directions/driving-hgv"

const metersPerMile = 1609.34

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Leg is one routed segment between two coordinates. Geometry points are
// [lat, lng] pairs ready for map rendering.
type Leg struct {
	DistanceMiles float64      `json:"distance_miles"`
	DurationHours float64      `json:"duration_hours"`
	Geometry      [][2]float64 `json:"geometry"`
}

// Directions computes truck driving routes through OpenRouteService.
type Directions struct {
	log           *log.Logger
	client        *httpclient.Client
	directionsURL string
	apiKey        string
}

// NewDirections creates a Directions client. apiKey is required by
// OpenRouteService.
func NewDirections(log *log.Logger, client *httpclient.Client, directionsURL string, apiKey string) *Directions {
	return &Directions{
		log:           log,
		client:        client,
		directionsURL: directionsURL,
		apiKey:        apiKey,
	}
}

//orsResponse is the subset of the OpenRouteService GeoJSON response the
//planner consumes
type orsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Route returns the driving leg from start to end.
func (d *Directions) Route(start Coordinate, end Coordinate) (*Leg, error) {
	if d.apiKey == "" {
		return nil, errors.New("directions api key is not configured")
	}

	params := url.Values{}
	params.Set("api_key", d.apiKey)
	//the service expects lng,lat ordering
	params.Set("start", fmt.Sprintf("%v,%v", start.Lng, start.Lat))
	params.Set("end", fmt.Sprintf("%v,%v", end.Lng, end.Lat))

	var response orsResponse
	if err := d.client.GetJSON(d.directionsURL, params, &response); err != nil {
		return nil, errors.Wrap(err, "requesting route")
	}

	if len(response.Features) == 0 {
		return nil, errors.New("no route found between the given coordinates")
	}
	feature := response.Features[0]

	leg := Leg{
		DistanceMiles: math.Round(feature.Properties.Summary.Distance/metersPerMile*10) / 10,
		DurationHours: math.Round(feature.Properties.Summary.Duration/3600*100) / 100,
		Geometry:      make([][2]float64, 0, len(feature.Geometry.Coordinates)),
	}
	//convert from the service's [lng, lat] to [lat, lng] for map rendering
	for _, coord := range feature.Geometry.Coordinates {
		if len(coord) < 2 {
			return nil, errors.Errorf("malformed geometry point %v", coord)
		}
		leg.Geometry = append(leg.Geometry, [2]float64{coord[1], coord[0]})
	}

	d.log.Printf("routed %v miles, %v hours, %d geometry points",
		leg.DistanceMiles, leg.DurationHours, len(leg.Geometry))
	return &leg, nil
}
