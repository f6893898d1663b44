package planner

import (
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/maharmandeeep/Danjo-trip-planner/business/hos"
)

func Test_facilityHolidayCalendar(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{
			name: "independence day",
			date: time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "christmas",
			date: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "juneteenth",
			date: time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "ordinary weekday",
			date: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			want: false,
		},
	}
	calendar := makeFacilityHolidayCalendar()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calendar.isHoliday(tt.date); got != tt.want {
				t.Errorf("isHoliday(%v) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func Test_facilityWarnings(t *testing.T) {
	is := is.New(t)
	handler := testHandler(workingGeocoder(), workingRouter())

	result := &hos.TripResult{
		Stops: []hos.Stop{
			{Type: hos.StopStart, Location: "Chicago, IL", Day: 1},
			{Type: hos.StopPickup, Location: "Indianapolis, IN", Day: 1},
			{Type: hos.StopDropoff, Location: "Atlanta, GA", Day: 2},
		},
		DailyLogs: []hos.DailyLog{
			{Day: 1, Date: "2025-07-03"},
			{Day: 2, Date: "2025-07-04"},
		},
	}

	warnings := handler.facilityWarnings(result)
	is.Equal(1, len(warnings))

	//only the dropoff lands on the fourth, the start never warns
	if !strings.Contains(warnings[0], "Atlanta, GA") || !strings.Contains(warnings[0], "2025-07-04") {
		t.Errorf("warning %q should name the dropoff and its date", warnings[0])
	}
}

func Test_facilityWarnings_noHolidays(t *testing.T) {
	is := is.New(t)
	handler := testHandler(workingGeocoder(), workingRouter())

	result := &hos.TripResult{
		Stops: []hos.Stop{
			{Type: hos.StopPickup, Location: "Indianapolis, IN", Day: 1},
			{Type: hos.StopDropoff, Location: "Atlanta, GA", Day: 1},
		},
		DailyLogs: []hos.DailyLog{
			{Day: 1, Date: "2025-03-12"},
		},
	}

	is.Equal(0, len(handler.facilityWarnings(result)))
}
