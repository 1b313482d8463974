package vaccination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statevax/statevax-go/internal/dataset"
)

func vax(location string, date string) dataset.VaccinationRecord {
	d, _ := time.Parse("2006-01-02", date)
	return dataset.VaccinationRecord{Location: location, Date: d}
}

func TestNormalizeKeepsStatesOnly(t *testing.T) {
	t.Parallel()

	records := []dataset.VaccinationRecord{
		vax("California", "2021-05-15"),
		vax("Dept of Defense", "2021-05-15"),
		vax("Puerto Rico", "2021-05-15"),
		vax("New York State", "2021-05-15"),
		vax("Veterans Health", "2021-05-15"),
		vax("Wyoming", "2021-05-15"),
	}

	states, err := Normalize(records)
	require.NoError(t, err)

	var locations []string
	for _, r := range states {
		locations = append(locations, r.Location)
	}
	assert.Equal(t, []string{"California", "New York State", "Wyoming"}, locations)
}

func TestNormalizeErrorsOnNoStates(t *testing.T) {
	t.Parallel()

	_, err := Normalize([]dataset.VaccinationRecord{
		vax("Dept of Defense", "2021-05-15"),
	})
	require.Error(t, err)
}

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"New York State", "NEW YORK"},
		{"NEW YORK STATE", "NEW YORK"},
		{"New York", "NEW YORK"},
		{"California", "CALIFORNIA"},
		{" vermont ", "VERMONT"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.in), "NormalizeKey(%q)", tt.in)
	}
}

func TestIsState(t *testing.T) {
	t.Parallel()

	assert.True(t, IsState("California"))
	assert.True(t, IsState("New York State"))
	assert.False(t, IsState("Puerto Rico"))
	assert.False(t, IsState("Dept of Defense"))
	assert.False(t, IsState("Marshall Islands"))
}

func TestStateListComplete(t *testing.T) {
	t.Parallel()

	assert.Len(t, stateNames, StateCount)

	seen := make(map[string]struct{}, len(stateNames))
	for _, name := range stateNames {
		_, dup := seen[name]
		assert.False(t, dup, "duplicate state %q", name)
		seen[name] = struct{}{}
	}
}
