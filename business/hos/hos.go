// Package hos simulates a property-carrying truck trip under FMCSA
// Hours-of-Service rules. Given pre-routed legs and the hours already used in
// the driver's 70-hour cycle it produces duty-status segments for each
// calendar day of the trip, the map stops along the way, and the cycle
// accounting after the trip.
//
// Rules applied:
//  1. 70-Hour/8-Day Cycle     - max 70 on-duty hours, reset by 34-hour restart
//  2. 14-Hour Window          - no driving past 14 hours from shift start
//  3. 11-Hour Driving Limit   - max 11 hours driving per shift
//  4. 30-Min Break            - required after 8 hours cumulative driving
//  5. 10-Hour Off-Duty        - between shifts, resets the 11 and 14 hour limits
//  6. Fuel every 1,000 miles  - 30-minute on-duty fuel stop
package hos

// Regulatory and planning constants, in hours and miles.
const (
	MaxDrivingPerShift = 11.0
	MaxDutyWindow      = 14.0
	DrivingBeforeBreak = 8.0
	BreakDuration      = 0.5
	RestDuration       = 10.0
	MaxCycleHours      = 70.0
	RestartDuration    = 34.0
	FuelIntervalMiles  = 1000.0
	FuelStopDuration   = 0.5
	PickupDropoffHours = 1.0
	PretripInspection  = 0.5
	ShiftStartHour     = 6.0
	AvgSpeedMph        = 65.0
)

// epsilon below which a remaining allowance is treated as exhausted (36 seconds)
const epsilon = 0.01

// maxPlanIterations bounds the driving loop, any plan needing more is reported
// as an error rather than spinning
const maxPlanIterations = 10000

// DutyStatus is one of the four ELD duty statuses.
type DutyStatus string

const (
	StatusOffDuty DutyStatus = "off_duty"
	StatusSleeper DutyStatus = "sleeper"
	StatusDriving DutyStatus = "driving"
	StatusOnDuty  DutyStatus = "on_duty"
)

// StopType classifies a map marker produced by the simulation.
type StopType string

const (
	StopStart   StopType = "start"
	StopPickup  StopType = "pickup"
	StopDropoff StopType = "dropoff"
	StopFuel    StopType = "fuel"
	StopRest    StopType = "rest"
)

// RouteLeg is one pre-routed leg of the trip as supplied by the routing
// provider. The engine never computes distances or durations itself.
type RouteLeg struct {
	DistanceMiles float64 `json:"distance_miles"`
	DurationHours float64 `json:"duration_hours"`
}

// Location is an already-geocoded named place.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// TripLocations holds the three places involved in a trip.
type TripLocations struct {
	Current Location `json:"current"`
	Pickup  Location `json:"pickup"`
	Dropoff Location `json:"dropoff"`
}

// Segment is one duty-status interval on one day. Start and End are hours
// since midnight, rounded to two decimals, with Start <= End <= 24.
type Segment struct {
	Status DutyStatus `json:"status"`
	Start  float64    `json:"start"`
	End    float64    `json:"end"`
	Note   string     `json:"note"`
}

// HoursSummary totals a day's hours by duty status, rounded to one decimal.
type HoursSummary struct {
	OffDuty float64 `json:"off_duty"`
	Sleeper float64 `json:"sleeper"`
	Driving float64 `json:"driving"`
	OnDuty  float64 `json:"on_duty"`
}

// DailyLog is one completed calendar day of the trip, the contents of one ELD
// log sheet. Segments are contiguous and cover [0, 24].
type DailyLog struct {
	Day          int          `json:"day"`
	Date         string       `json:"date"`
	TotalMiles   float64      `json:"total_miles"`
	Segments     []Segment    `json:"segments"`
	HoursSummary HoursSummary `json:"hours_summary"`
}

// Stop is a map-significant event along the trip. Fuel and en-route rest
// stops carry zero coordinates, callers interpolate them from route geometry
// when they need a position.
type Stop struct {
	Type        StopType `json:"type"`
	Location    string   `json:"location"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Time        string   `json:"time"`
	Day         int      `json:"day"`
	DurationHrs float64  `json:"duration_hrs,omitempty"`
}

// CycleSummary accounts for the 70-hour cycle across the trip.
type CycleSummary struct {
	CycleBefore    float64 `json:"cycle_before"`
	OnDutyThisTrip float64 `json:"on_duty_this_trip"`
	CycleAfter     float64 `json:"cycle_after"`
	Remaining      float64 `json:"remaining"`
	Limit          float64 `json:"limit"`
}

// TripResult is the full output of a Plan call.
type TripResult struct {
	TotalMiles        float64      `json:"total_miles"`
	TotalDrivingHours float64      `json:"total_driving_hours"`
	TotalDays         int          `json:"total_days"`
	Stops             []Stop       `json:"stops"`
	DailyLogs         []DailyLog   `json:"daily_logs"`
	CycleSummary      CycleSummary `json:"cycle_summary"`
}
