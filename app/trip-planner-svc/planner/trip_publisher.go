package planner

import (
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

//PlannedTrip is the summary sent to downstream consumers after each
//successful plan
type PlannedTrip struct {
	TripId            string    `json:"trip_id"`
	CurrentLocation   string    `json:"current_location"`
	PickupLocation    string    `json:"pickup_location"`
	DropoffLocation   string    `json:"dropoff_location"`
	TotalMiles        float64   `json:"total_miles"`
	TotalDrivingHours float64   `json:"total_driving_hours"`
	TotalDays         int       `json:"total_days"`
	CycleAfter        float64   `json:"cycle_after"`
	PlannedAt         time.Time `json:"planned_at"`
}

//TripPublisher sends planned trip summaries over NATS according to
//publishOverNats
type TripPublisher struct {
	log             *log.Logger
	natsConnection  *nats.Conn
	publishOverNats bool
}

//MakeTripPublisher creates TripPublisher
func MakeTripPublisher(log *log.Logger, natsConnection *nats.Conn, publishOverNats bool) *TripPublisher {
	return &TripPublisher{
		log:             log,
		natsConnection:  natsConnection,
		publishOverNats: publishOverNats,
	}
}

//Publish sends trip over NATS when publishing is enabled. Failures are
//logged, a plan response never fails because the event could not be sent.
func (p *TripPublisher) Publish(trip *PlannedTrip) {
	if !p.publishOverNats {
		return
	}
	trip.PlannedAt = time.Now()

	jsonData, err := json.Marshal(trip)
	if err != nil {
		p.log.Printf("failed to marshal PlannedTrip in TripPublisher.Publish, error:%v", err)
		return
	}
	err = p.natsConnection.Publish("trip-planned", jsonData)
	if err != nil {
		p.log.Printf("failed to send PlannedTrip in TripPublisher.Publish, error:%v", err)
	}
}
