package hos

import (
	"fmt"
	"math"
	"time"
)

// Plan simulates the full trip under the HOS rules. legs must hold exactly
// two pre-routed legs, origin to pickup and pickup to dropoff. cycleUsed is
// the number of on-duty hours already consumed in the driver's 70-hour cycle.
// A zero startDate means today. Plan is a pure function, identical inputs
// produce identical results.
func Plan(legs []RouteLeg, cycleUsed float64, locations TripLocations, startDate time.Time) (*TripResult, error) {
	if err := validatePlanInput(legs, cycleUsed, locations); err != nil {
		return nil, err
	}
	if startDate.IsZero() {
		startDate = time.Now()
	}

	s := newTripState(cycleUsed, startDate)

	//off duty from midnight until the 6am shift start
	s.addSegment(StatusOffDuty, ShiftStartHour, "Off Duty")

	s.addStop(StopStart, locations.Current.Name, locations.Current.Lat, locations.Current.Lng, 0)

	//shift begins with the pre-trip inspection
	s.shiftStarted = true
	if err := s.addOnDuty(PretripInspection, "Pre-trip inspection, "+locations.Current.Name); err != nil {
		return nil, err
	}

	legStops := []struct {
		stopType StopType
		label    string
		loc      Location
	}{
		{StopPickup, "Pickup", locations.Pickup},
		{StopDropoff, "Dropoff", locations.Dropoff},
	}

	for i, leg := range legs {
		dest := legStops[i]

		if err := s.driveLeg(leg.DistanceMiles, leg.DurationHours, dest.loc.Name); err != nil {
			return nil, err
		}

		s.addStop(dest.stopType, dest.loc.Name, dest.loc.Lat, dest.loc.Lng, PickupDropoffHours)

		//an hour of dock work follows arrival, rest first if the window or
		//cycle cannot absorb it
		if err := s.ensureCanWork(PickupDropoffHours); err != nil {
			return nil, err
		}
		if err := s.addOnDuty(PickupDropoffHours, dest.label+", "+dest.loc.Name); err != nil {
			return nil, err
		}
	}

	if remaining := 24.0 - s.currentTime; remaining > 0 {
		s.addSegment(StatusOffDuty, remaining, "Off Duty - Trip Complete")
	}
	if err := s.saveDay(); err != nil {
		return nil, err
	}

	cycleAfter := round1(s.cycleHours)
	return &TripResult{
		TotalMiles:        round1(s.totalMilesDriven),
		TotalDrivingHours: round1(s.totalDrivingHours),
		TotalDays:         len(s.dailyLogs),
		Stops:             s.stops,
		DailyLogs:         s.dailyLogs,
		CycleSummary: CycleSummary{
			CycleBefore:    cycleUsed,
			OnDutyThisTrip: round1(s.cycleHours - cycleUsed),
			CycleAfter:     cycleAfter,
			Remaining:      round1(MaxCycleHours - cycleAfter),
			Limit:          MaxCycleHours,
		},
	}, nil
}

//driveLeg drives one leg, weaving driving segments against the limit
//evaluator and inserting breaks, fuel stops, rests and restarts as they
//become binding. Distance is apportioned to each segment in proportion to
//the hours driven.
func (s *tripState) driveLeg(legMiles, legHours float64, destination string) error {
	remainingMiles := legMiles
	remainingHours := legHours
	lastInterruption := ""

	for remainingHours > epsilon {
		s.iterations++
		if s.iterations > maxPlanIterations {
			return fmt.Errorf("drive loop passed %d iterations: %w", maxPlanIterations, ErrIterationBudget)
		}

		maxDrive, limits := s.driveAllowance(remainingHours)

		if maxDrive <= epsilon {
			var action string
			var err error
			switch {
			case limits.byCycle <= epsilon:
				action, err = "restart", s.takeRestart()
			case limits.byDriving <= epsilon || limits.byWindow <= epsilon:
				action, err = "rest", s.takeRest(destination)
			case limits.byBreak <= epsilon:
				action, err = "break", s.takeBreak()
			case limits.byFuel <= epsilon:
				action, err = "fuel", s.takeFuelStop(destination)
			case limits.untilMidnight <= epsilon:
				action = "midnight"
				if err = s.saveDay(); err == nil {
					s.startNewDay()
				}
			default:
				return fmt.Errorf("no drive allowance and no binding rule on day %d at %.2f: %w",
					s.currentDay, s.currentTime, ErrInternalInconsistency)
			}
			if err != nil {
				return err
			}
			//every interruption restores its own allowance, the same one
			//binding twice in a row means the trip can never progress
			if action == lastInterruption {
				return fmt.Errorf("%s interruption restored no drive allowance: %w", action, ErrInfeasibleTrip)
			}
			lastInterruption = action
			continue
		}
		lastInterruption = ""

		driveMiles := round1(remainingMiles * (maxDrive / remainingHours))

		s.addSegment(StatusDriving, maxDrive, "Driving to "+destination)

		s.shiftDriving += maxDrive
		s.shiftDuty += maxDrive
		s.drivingSinceBreak += maxDrive
		s.cycleHours += maxDrive
		s.totalDrivingHours += maxDrive
		s.milesSinceFuel += driveMiles
		s.totalMilesDriven += driveMiles

		remainingHours -= maxDrive
		remainingMiles -= driveMiles

		if err := s.checkShiftBounds(); err != nil {
			return err
		}

		//refuel as soon as the mark is reached so the next driving segment
		//always starts under the 1000-mile fuel interval
		if s.milesSinceFuel >= FuelIntervalMiles-0.1 && remainingHours > epsilon {
			if err := s.takeFuelStop(destination); err != nil {
				return err
			}
		}
	}
	return nil
}

//validatePlanInput rejects arguments outside the documented ranges before the
//simulation starts
func validatePlanInput(legs []RouteLeg, cycleUsed float64, locations TripLocations) error {
	if len(legs) != 2 {
		return fmt.Errorf("expected 2 route legs, got %d: %w", len(legs), ErrInvalidInput)
	}
	for i, leg := range legs {
		if !validNonNegative(leg.DistanceMiles) {
			return fmt.Errorf("leg %d distance %v: %w", i, leg.DistanceMiles, ErrInvalidInput)
		}
		if !validNonNegative(leg.DurationHours) {
			return fmt.Errorf("leg %d duration %v: %w", i, leg.DurationHours, ErrInvalidInput)
		}
	}
	if math.IsNaN(cycleUsed) || cycleUsed < 0 || cycleUsed > MaxCycleHours {
		return fmt.Errorf("cycle hours used %v outside [0, %.0f]: %w", cycleUsed, MaxCycleHours, ErrInvalidInput)
	}
	for _, loc := range []struct {
		key string
		loc Location
	}{
		{"current", locations.Current},
		{"pickup", locations.Pickup},
		{"dropoff", locations.Dropoff},
	} {
		if loc.loc.Name == "" {
			return fmt.Errorf("%s location has no name: %w", loc.key, ErrInvalidInput)
		}
	}
	return nil
}

func validNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
