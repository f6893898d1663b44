package hos

import "fmt"

// FormatClock renders hours since midnight as a 12-hour clock string, for
// example 13.5 becomes "1:30 PM". Hours 0 and 12 render as "12".
func FormatClock(hoursSinceMidnight float64) string {
	h := int(hoursSinceMidnight) % 24
	m := int((hoursSinceMidnight - float64(int(hoursSinceMidnight))) * 60)

	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	displayH := h % 12
	if displayH == 0 {
		displayH = 12
	}
	return fmt.Sprintf("%d:%02d %s", displayH, m, period)
}
