// Package route talks to the external providers the trip planner depends on:
// Nominatim for geocoding place names and OpenRouteService for truck driving
// routes. The HOS engine itself never calls out, it only consumes the legs
// produced here.
package route

import (
	"log"
	"net/url"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/maharmandeeep/Danjo-trip-planner/business/data/geocache"
	"github.com/maharmandeeep/Danjo-trip-planner/foundation/httpclient"
)

// DefaultNominatimURL is the public OpenStreetMap Nominatim search endpoint.
// No API key is needed but requests are limited to about one per second.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"

//nominatimPace is how long to wait after each remote lookup to stay inside
//the public rate limit
const nominatimPace = 1100 * time.Millisecond

// ErrNotFound reports a query the geocoder returned no results for.
var ErrNotFound = errors.New("location not found")

// GeocodeResult is a resolved place name.
type GeocodeResult struct {
	Lat         float64
	Lng         float64
	DisplayName string
}

// Geocoder resolves place names through Nominatim, with an optional database
// read-through cache in front of the remote service.
type Geocoder struct {
	log       *log.Logger
	client    *httpclient.Client
	searchURL string
	//db enables the geocache when non-nil
	db   *sqlx.DB
	pace time.Duration
}

// NewGeocoder creates a Geocoder against searchURL. A nil db disables the
// cache.
func NewGeocoder(log *log.Logger, client *httpclient.Client, searchURL string, db *sqlx.DB) *Geocoder {
	return &Geocoder{
		log:       log,
		client:    client,
		searchURL: searchURL,
		db:        db,
		pace:      nominatimPace,
	}
}

//nominatimResult is one row of a Nominatim search response. Coordinates are
//returned as strings by the service.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a place name like "Los Angeles, CA" to coordinates.
func (g *Geocoder) Geocode(query string) (*GeocodeResult, error) {
	if g.db != nil {
		cached, err := geocache.GetEntry(query, g.db)
		if err != nil {
			//a cache failure should not fail the lookup
			g.log.Printf("geocache read failed for %q, continuing to remote lookup. error: %v", query, err)
		} else if cached != nil {
			return &GeocodeResult{Lat: cached.Lat, Lng: cached.Lng, DisplayName: cached.DisplayName}, nil
		}
	}

	result, err := g.remoteLookup(query)
	if err != nil {
		return nil, err
	}

	if g.db != nil {
		err = geocache.RecordEntry(&geocache.Entry{
			Query:       query,
			Lat:         result.Lat,
			Lng:         result.Lng,
			DisplayName: result.DisplayName,
		}, g.db)
		if err != nil {
			g.log.Printf("geocache write failed for %q. error: %v", query, err)
		}
	}
	return result, nil
}

//remoteLookup performs the Nominatim search and paces afterwards to respect
//the rate limit
func (g *Geocoder) remoteLookup(query string) (*GeocodeResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	var results []nominatimResult
	if err := g.client.GetJSON(g.searchURL, params, &results); err != nil {
		return nil, errors.Wrapf(err, "geocoding %q", query)
	}
	time.Sleep(g.pace)

	if len(results) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "geocoding %q", query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing latitude %q for %q", results[0].Lat, query)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing longitude %q for %q", results[0].Lon, query)
	}

	displayName := results[0].DisplayName
	if displayName == "" {
		displayName = query
	}
	g.log.Printf("geocoded %q to lat=%v lng=%v (%s)", query, lat, lng, displayName)

	return &GeocodeResult{Lat: lat, Lng: lng, DisplayName: displayName}, nil
}
