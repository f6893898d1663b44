package hos

import (
	"math"
	"testing"
)

func Test_driveAllowance(t *testing.T) {
	tests := []struct {
		name         string
		seed         func(s *tripState)
		remaining    float64
		wantMaxDrive float64
	}{
		{
			name:         "fresh shift is limited only by the leg",
			seed:         func(s *tripState) { s.currentTime = 6.5 },
			remaining:    5.0,
			wantMaxDrive: 5.0,
		},
		{
			name: "11-hour driving limit binds",
			seed: func(s *tripState) {
				s.currentTime = 6.5
				s.shiftDriving = 10.5
			},
			remaining:    5.0,
			wantMaxDrive: 0.5,
		},
		{
			name: "14-hour window binds",
			seed: func(s *tripState) {
				s.currentTime = 6.5
				s.shiftDuty = 13.0
			},
			remaining:    5.0,
			wantMaxDrive: 1.0,
		},
		{
			name: "8-hour break rule binds",
			seed: func(s *tripState) {
				s.currentTime = 6.5
				s.drivingSinceBreak = 7.75
			},
			remaining:    5.0,
			wantMaxDrive: 0.25,
		},
		{
			name: "70-hour cycle binds",
			seed: func(s *tripState) {
				s.currentTime = 6.5
				s.cycleHours = 69.5
			},
			remaining:    5.0,
			wantMaxDrive: 0.5,
		},
		{
			name: "fuel interval converts miles to hours",
			seed: func(s *tripState) {
				s.currentTime = 6.5
				s.milesSinceFuel = FuelIntervalMiles - 65.0
			},
			remaining:    5.0,
			wantMaxDrive: 1.0,
		},
		{
			name: "fuel exhausted means zero allowance",
			seed: func(s *tripState) {
				s.currentTime = 6.5
				s.milesSinceFuel = FuelIntervalMiles
			},
			remaining:    5.0,
			wantMaxDrive: 0.0,
		},
		{
			name:         "midnight clamps a longer allowance",
			seed:         func(s *tripState) { s.currentTime = 23.0 },
			remaining:    5.0,
			wantMaxDrive: 1.0,
		},
		{
			name:         "exactly at midnight allows nothing",
			seed:         func(s *tripState) { s.currentTime = 24.0 },
			remaining:    5.0,
			wantMaxDrive: 0.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTripState(0, testStartDate())
			tt.seed(s)
			got, _ := s.driveAllowance(tt.remaining)
			if math.Abs(got-tt.wantMaxDrive) > 1e-9 {
				t.Errorf("driveAllowance() = %v, want %v", got, tt.wantMaxDrive)
			}
		})
	}
}

func Test_driveAllowance_reportsBindingLimits(t *testing.T) {
	s := newTripState(0, testStartDate())
	s.currentTime = 6.5
	s.shiftDriving = MaxDrivingPerShift
	s.cycleHours = MaxCycleHours

	maxDrive, limits := s.driveAllowance(5.0)
	if maxDrive > epsilon {
		t.Fatalf("expected exhausted allowance, got %v", maxDrive)
	}
	if limits.byDriving > epsilon {
		t.Errorf("byDriving = %v, want <= epsilon", limits.byDriving)
	}
	if limits.byCycle > epsilon {
		t.Errorf("byCycle = %v, want <= epsilon", limits.byCycle)
	}
	if limits.byBreak <= epsilon {
		t.Errorf("byBreak = %v should not be binding", limits.byBreak)
	}
}
