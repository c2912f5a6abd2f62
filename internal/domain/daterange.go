package domain

import "time"

// Overlaps reports whether the half-open ranges [s1,e1) and [s2,e2)
// intersect. Adjacent ranges (e1 == s2) do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

func ValidRange(start, end time.Time) bool {
	return start.Before(end)
}

// Day truncates t to its calendar date in UTC. All range math in this
// package assumes dates normalized this way.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CoversRange reports whether the union of the non-blocked availability
// ranges covers every night in [start, end).
func CoversRange(avs []Availability, start, end time.Time) bool {
	if !ValidRange(start, end) {
		return false
	}
	cursor := start
	for cursor.Before(end) {
		advanced := false
		for _, av := range avs {
			if av.Blocked {
				continue
			}
			if !av.StartDate.After(cursor) && av.EndDate.After(cursor) {
				if av.EndDate.After(end) {
					cursor = end
				} else {
					cursor = av.EndDate
				}
				advanced = true
			}
		}
		if !advanced {
			return false
		}
	}
	return true
}

// NightlyPrice returns the rate for the night starting at day: the
// override of a covering availability range when one is set, otherwise
// the room's base price.
func NightlyPrice(base float64, avs []Availability, day time.Time) float64 {
	for _, av := range avs {
		if av.PriceOverride == nil {
			continue
		}
		if !av.StartDate.After(day) && av.EndDate.After(day) {
			return *av.PriceOverride
		}
	}
	return base
}

// TotalPrice sums NightlyPrice over every night in [start, end).
func TotalPrice(base float64, avs []Availability, start, end time.Time) float64 {
	total := 0.0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		total += NightlyPrice(base, avs, d)
	}
	return total
}
