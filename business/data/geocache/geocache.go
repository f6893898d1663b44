// Package geocache stores completed geocoding lookups in the database.
// Nominatim allows roughly one request per second, so queries the service has
// already answered should never leave the process again.
package geocache

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

//Entry is one cached geocoding lookup, keyed by the normalized query string
type Entry struct {
	Query       string    `db:"query"`
	Lat         float64   `db:"lat"`
	Lng         float64   `db:"lng"`
	DisplayName string    `db:"display_name"`
	CreatedAt   time.Time `db:"created_at"`
}

// GetEntry retrieves the cached lookup for query, or nil if the query has not
// been seen before.
func GetEntry(query string, db *sqlx.DB) (*Entry, error) {
	statementString := "select query, lat, lng, display_name, created_at " +
		"from geocode_cache where query = $1"
	var entry Entry
	err := db.Get(&entry, statementString, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// RecordEntry saves a completed lookup, replacing any previous result for the
// same query.
func RecordEntry(entry *Entry, db *sqlx.DB) error {
	entry.CreatedAt = time.Now()

	statementString := "insert into geocode_cache " +
		"(query, " +
		"lat, " +
		"lng, " +
		"display_name, " +
		"created_at) " +
		"values " +
		"(:query, " +
		":lat, " +
		":lng, " +
		":display_name, " +
		":created_at) " +
		"on conflict (query) do update set " +
		"lat = excluded.lat, " +
		"lng = excluded.lng, " +
		"display_name = excluded.display_name, " +
		"created_at = excluded.created_at"
	statementString = db.Rebind(statementString)
	_, err := db.NamedExec(statementString, entry)
	return err
}
