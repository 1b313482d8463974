package enrich

import "time"

// RecentSnapshot keeps, per location, every row whose date equals that
// location's maximum date. Date ties are retained on purpose: the snapshot
// is "all rows at the latest date", not "one row per location". Input order
// is preserved.
func RecentSnapshot(records []Record) []Record {
	maxDate := make(map[string]time.Time)
	for _, r := range records {
		if current, ok := maxDate[r.Key]; !ok || r.Date.After(current) {
			maxDate[r.Key] = r.Date
		}
	}

	snapshot := make([]Record, 0, len(maxDate))
	for _, r := range records {
		if r.Date.Equal(maxDate[r.Key]) {
			snapshot = append(snapshot, r)
		}
	}
	return snapshot
}
