package planner

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

//facilityHolidayCalendar holds the federal holidays used to warn that a
//pickup or dropoff facility is likely closed
type facilityHolidayCalendar struct {
	calendar *cal.BusinessCalendar
}

//makeFacilityHolidayCalendar builds facilityHolidayCalendar
func makeFacilityHolidayCalendar() *facilityHolidayCalendar {
	calendar := cal.NewBusinessCalendar()
	calendar.AddHoliday(
		us.NewYear,
		us.MlkDay,
		us.MemorialDay,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
		us.Juneteenth,
	)
	return &facilityHolidayCalendar{calendar: calendar}
}

//isHoliday returns true if at is on an observed federal holiday
func (f *facilityHolidayCalendar) isHoliday(at time.Time) bool {
	_, observed, _ := f.calendar.IsHoliday(at)
	return observed
}
