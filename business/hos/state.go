package hos

import (
	"fmt"
	"math"
	"time"
)

//tripState is the single owned value every simulation routine mutates.
//It lives for exactly one Plan call and is never shared.
type tripState struct {
	//currentTime is hours since midnight of the current day, in [0, 24]
	currentTime float64
	//currentDay is 1-based, day 1 is startDate
	currentDay int

	//shiftDriving is driving hours since the last 10-hour rest (max 11)
	shiftDriving float64
	//shiftDuty is elapsed duty hours since shift start, break included (max 14)
	shiftDuty float64
	//drivingSinceBreak is consecutive driving hours since the last qualifying break (max 8)
	drivingSinceBreak float64
	//cycleHours is on-duty hours charged against the 70-hour cycle
	cycleHours float64

	milesSinceFuel    float64
	totalMilesDriven  float64
	totalDrivingHours float64

	//segments buffers the current day until saveDay freezes it
	segments  []Segment
	dailyLogs []DailyLog
	stops     []Stop

	startDate    time.Time
	shiftStarted bool
	iterations   int
}

func newTripState(cycleUsed float64, startDate time.Time) *tripState {
	return &tripState{
		currentDay: 1,
		cycleHours: cycleUsed,
		startDate:  startDate,
		segments:   []Segment{},
		dailyLogs:  []DailyLog{},
		stops:      []Stop{},
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

//addSegment appends one duty-status interval to the current day and advances
//the clock. The duration must already fit on the current day, the end is
//clamped to 24.0.
func (s *tripState) addSegment(status DutyStatus, duration float64, note string) {
	start := round2(s.currentTime)
	end := round2(start + duration)
	if end > 24.0 {
		end = 24.0
	}
	s.segments = append(s.segments, Segment{
		Status: status,
		Start:  start,
		End:    end,
		Note:   note,
	})
	s.currentTime = end
}

//record writes duration hours of status, splitting across midnight as needed.
//Every interruption and on-duty adder shares this loop, a chunk is written up
//to 24:00, the day is saved, a new day starts at 00:00 and the remainder
//continues under the same status and note.
func (s *tripState) record(status DutyStatus, duration float64, note string) error {
	remaining := duration
	for remaining > epsilon {
		untilMidnight := 24.0 - s.currentTime
		chunk := math.Min(remaining, untilMidnight)

		if chunk <= epsilon {
			if err := s.saveDay(); err != nil {
				return err
			}
			s.startNewDay()
			continue
		}

		s.addSegment(status, chunk, note)
		remaining -= chunk

		if s.currentTime >= 24.0-epsilon && remaining > epsilon {
			if err := s.saveDay(); err != nil {
				return err
			}
			s.startNewDay()
		}
	}
	return nil
}

//addOnDuty records on-duty (not driving) time. On-duty time consumes both the
//14-hour window and the 70-hour cycle.
func (s *tripState) addOnDuty(duration float64, note string) error {
	if err := s.record(StatusOnDuty, duration, note); err != nil {
		return err
	}
	s.shiftDuty += duration
	s.cycleHours += duration
	return nil
}

//addStop appends a map marker at the current clock and day
func (s *tripState) addStop(stopType StopType, location string, lat, lng, durationHrs float64) {
	s.stops = append(s.stops, Stop{
		Type:        stopType,
		Location:    location,
		Lat:         lat,
		Lng:         lng,
		Time:        FormatClock(s.currentTime),
		Day:         s.currentDay,
		DurationHrs: durationHrs,
	})
}

//saveDay freezes the current day into dailyLogs. The day must be fully
//covered, segments contiguous from 0.0 to 24.0.
func (s *tripState) saveDay() error {
	if err := s.checkDayCoverage(); err != nil {
		return err
	}

	var hours HoursSummary
	totalDayMiles := 0.0
	for _, seg := range s.segments {
		dur := round2(seg.End - seg.Start)
		switch seg.Status {
		case StatusOffDuty:
			hours.OffDuty += dur
		case StatusSleeper:
			hours.Sleeper += dur
		case StatusDriving:
			hours.Driving += dur
			totalDayMiles += dur * AvgSpeedMph
		case StatusOnDuty:
			hours.OnDuty += dur
		}
	}
	hours.OffDuty = round1(hours.OffDuty)
	hours.Sleeper = round1(hours.Sleeper)
	hours.Driving = round1(hours.Driving)
	hours.OnDuty = round1(hours.OnDuty)

	s.dailyLogs = append(s.dailyLogs, DailyLog{
		Day:          s.currentDay,
		Date:         s.startDate.AddDate(0, 0, s.currentDay-1).Format("2006-01-02"),
		TotalMiles:   round1(totalDayMiles),
		Segments:     s.segments,
		HoursSummary: hours,
	})
	return nil
}

//startNewDay rolls the day counter forward with an empty segment buffer.
//saveDay must always precede it.
func (s *tripState) startNewDay() {
	s.currentDay++
	s.currentTime = 0.0
	s.segments = []Segment{}
}

//checkDayCoverage verifies the day being saved has contiguous segments
//covering [0, 24] within tolerance
func (s *tripState) checkDayCoverage() error {
	if len(s.segments) == 0 {
		return fmt.Errorf("day %d has no segments: %w", s.currentDay, ErrInternalInconsistency)
	}
	if s.segments[0].Start != 0.0 {
		return fmt.Errorf("day %d starts at %.2f not 0.00: %w",
			s.currentDay, s.segments[0].Start, ErrInternalInconsistency)
	}
	last := s.segments[len(s.segments)-1]
	if math.Abs(last.End-24.0) > epsilon {
		return fmt.Errorf("day %d ends at %.2f not 24.00: %w",
			s.currentDay, last.End, ErrInternalInconsistency)
	}
	for i := 1; i < len(s.segments); i++ {
		if s.segments[i].Start != s.segments[i-1].End {
			return fmt.Errorf("day %d has a gap between %.2f and %.2f: %w",
				s.currentDay, s.segments[i-1].End, s.segments[i].Start, ErrInternalInconsistency)
		}
	}
	return nil
}

//checkShiftBounds verifies no driving step pushed a counter past its limit
func (s *tripState) checkShiftBounds() error {
	if s.shiftDriving > MaxDrivingPerShift+epsilon {
		return fmt.Errorf("shift driving %.2f exceeds %.0f: %w",
			s.shiftDriving, MaxDrivingPerShift, ErrInternalInconsistency)
	}
	if s.shiftDuty > MaxDutyWindow+epsilon {
		return fmt.Errorf("duty window %.2f exceeds %.0f: %w",
			s.shiftDuty, MaxDutyWindow, ErrInternalInconsistency)
	}
	if s.drivingSinceBreak > DrivingBeforeBreak+epsilon {
		return fmt.Errorf("driving since break %.2f exceeds %.0f: %w",
			s.drivingSinceBreak, DrivingBeforeBreak, ErrInternalInconsistency)
	}
	if s.cycleHours > MaxCycleHours+epsilon {
		return fmt.Errorf("cycle hours %.2f exceed %.0f: %w",
			s.cycleHours, MaxCycleHours, ErrInternalInconsistency)
	}
	return nil
}
