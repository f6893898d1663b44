package route

import "math"

// FullRoute is the complete two-leg driving route of a trip, origin to pickup
// to dropoff, with the combined polyline for map display.
type FullRoute struct {
	Legs       []Leg        `json:"legs"`
	TotalMiles float64      `json:"total_miles"`
	TotalHours float64      `json:"total_hours"`
	Geometry   [][2]float64 `json:"geometry"`
}

// FullRoute routes both legs of a trip and combines their geometry. The first
// point of the second leg duplicates the pickup point and is dropped.
func (d *Directions) FullRoute(current, pickup, dropoff Coordinate) (*FullRoute, error) {
	leg1, err := d.Route(current, pickup)
	if err != nil {
		return nil, err
	}
	leg2, err := d.Route(pickup, dropoff)
	if err != nil {
		return nil, err
	}

	combined := make([][2]float64, 0, len(leg1.Geometry)+len(leg2.Geometry))
	combined = append(combined, leg1.Geometry...)
	if len(leg2.Geometry) > 1 {
		combined = append(combined, leg2.Geometry[1:]...)
	}

	return &FullRoute{
		Legs:       []Leg{*leg1, *leg2},
		TotalMiles: math.Round((leg1.DistanceMiles+leg2.DistanceMiles)*10) / 10,
		TotalHours: math.Round((leg1.DurationHours+leg2.DurationHours)*100) / 100,
		Geometry:   combined,
	}, nil
}
