package hos

import "math"

//driveLimits holds, for one driving step, how many hours each rule still
//permits. The binding rule is consulted when the overall allowance is gone.
type driveLimits struct {
	byDriving     float64
	byWindow      float64
	byBreak       float64
	byCycle       float64
	byFuel        float64
	untilMidnight float64
}

//driveAllowance computes how many hours of driving are currently permissible
//against remainingHours still to drive on the leg. The allowance is the
//minimum over every rule, clamped to the time left before midnight so a
//segment never spills past the current log sheet.
func (s *tripState) driveAllowance(remainingHours float64) (float64, driveLimits) {
	limits := driveLimits{
		byDriving:     MaxDrivingPerShift - s.shiftDriving,
		byWindow:      MaxDutyWindow - s.shiftDuty,
		byBreak:       DrivingBeforeBreak - s.drivingSinceBreak,
		byCycle:       MaxCycleHours - s.cycleHours,
		untilMidnight: 24.0 - s.currentTime,
	}

	if s.milesSinceFuel < FuelIntervalMiles {
		limits.byFuel = (FuelIntervalMiles - s.milesSinceFuel) / AvgSpeedMph
	} else {
		limits.byFuel = 0
	}

	maxDrive := math.Min(limits.byDriving, limits.byWindow)
	maxDrive = math.Min(maxDrive, limits.byBreak)
	maxDrive = math.Min(maxDrive, limits.byCycle)
	maxDrive = math.Min(maxDrive, limits.byFuel)
	maxDrive = math.Min(maxDrive, remainingHours)

	//clamp whenever midnight is the nearer boundary, including exactly at
	//24:00, so the day rollover is always taken through the binding rules
	if limits.untilMidnight < maxDrive {
		maxDrive = limits.untilMidnight
	}
	return maxDrive, limits
}
