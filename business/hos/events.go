package hos

//takeBreak records the 30-minute off-duty break required after 8 hours of
//cumulative driving. The break consumes the 14-hour window but is never
//charged against the 70-hour cycle.
func (s *tripState) takeBreak() error {
	if err := s.record(StatusOffDuty, BreakDuration, "30-min break"); err != nil {
		return err
	}
	s.drivingSinceBreak = 0.0
	s.shiftDuty += BreakDuration
	return nil
}

//takeFuelStop records a 30-minute on-duty fuel stop and resets the fuel
//clock. Fuel stops carry zero coordinates, callers interpolate a position
//from route geometry.
func (s *tripState) takeFuelStop(nearLocation string) error {
	note := "Fuel stop"
	location := "En route"
	if nearLocation != "" {
		note = "Fuel stop near " + nearLocation
		location = nearLocation
	}

	s.addStop(StopFuel, location, 0, 0, FuelStopDuration)

	if err := s.addOnDuty(FuelStopDuration, note); err != nil {
		return err
	}
	s.milesSinceFuel = 0.0
	return nil
}

//takeRest records the 10-hour consolidated sleeper-berth rest that ends a
//shift, then begins the next shift with a pre-trip inspection. A stop marker
//is only emitted when the rest happens en route to a named destination.
func (s *tripState) takeRest(nearLocation string) error {
	if nearLocation != "" {
		s.addStop(StopRest, nearLocation, 0, 0, RestDuration)
	}

	note := "Sleeper Berth"
	if nearLocation != "" {
		note += ", " + nearLocation
	}
	if err := s.record(StatusSleeper, RestDuration, note); err != nil {
		return err
	}

	s.shiftDriving = 0.0
	s.shiftDuty = 0.0
	s.drivingSinceBreak = 0.0

	return s.addOnDuty(PretripInspection, "Pre-trip inspection")
}

//takeRestart records the 34-hour off-duty restart that zeroes the 70-hour
//cycle, then begins the next shift with a pre-trip inspection
func (s *tripState) takeRestart() error {
	s.addStop(StopRest, "En route (34hr restart)", 0, 0, RestartDuration)

	if err := s.record(StatusSleeper, RestartDuration, "34-hour restart"); err != nil {
		return err
	}

	s.shiftDriving = 0.0
	s.shiftDuty = 0.0
	s.drivingSinceBreak = 0.0
	s.cycleHours = 0.0

	return s.addOnDuty(PretripInspection, "Pre-trip inspection")
}

//ensureCanWork takes the corrective rest required before duration hours of
//on-duty work. At most one action is taken, an exhausted cycle wins over an
//exhausted window.
func (s *tripState) ensureCanWork(duration float64) error {
	availableCycle := MaxCycleHours - s.cycleHours
	availableWindow := MaxDutyWindow - s.shiftDuty

	if availableCycle < duration {
		return s.takeRestart()
	}
	if availableWindow < duration {
		return s.takeRest("")
	}
	return nil
}
