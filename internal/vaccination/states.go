package vaccination

import "strings"

// stateNames are the 50 U.S. state names as they appear in the vaccination
// dataset. Federal entities (Dept of Defense, Veterans Health, ...) and
// territories are intentionally absent; the pipeline analyzes states only.
var stateNames = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California",
	"Colorado", "Connecticut", "Delaware", "Florida", "Georgia",
	"Hawaii", "Idaho", "Illinois", "Indiana", "Iowa",
	"Kansas", "Kentucky", "Louisiana", "Maine", "Maryland",
	"Massachusetts", "Michigan", "Minnesota", "Mississippi", "Missouri",
	"Montana", "Nebraska", "Nevada", "New Hampshire", "New Jersey",
	"New Mexico", "New York", "North Carolina", "North Dakota", "Ohio",
	"Oklahoma", "Oregon", "Pennsylvania", "Rhode Island", "South Carolina",
	"South Dakota", "Tennessee", "Texas", "Utah", "Vermont",
	"Virginia", "Washington", "West Virginia", "Wisconsin", "Wyoming",
}

// aliases maps dataset location variants onto canonical state names. The
// vaccination dataset reports New York as "New York State".
var aliases = map[string]string{
	"NEW YORK STATE": "NEW YORK",
}

// allowedLocations holds the uppercase forms of every accepted location:
// the 50 states plus the known alias variants.
var allowedLocations = func() map[string]struct{} {
	m := make(map[string]struct{}, len(stateNames)+len(aliases))
	for _, name := range stateNames {
		m[strings.ToUpper(name)] = struct{}{}
	}
	for alias := range aliases {
		m[alias] = struct{}{}
	}
	return m
}()

// IsState reports whether a dataset location is one of the 50 states or a
// known alias of one.
func IsState(location string) bool {
	_, ok := allowedLocations[strings.ToUpper(strings.TrimSpace(location))]
	return ok
}

// NormalizeKey converts a dataset location into the canonical uppercase
// join key, resolving aliases: "New York State" -> "NEW YORK".
func NormalizeKey(location string) string {
	key := strings.ToUpper(strings.TrimSpace(location))
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return key
}

// StateCount is the number of states the normalized dataset may cover.
const StateCount = 50
