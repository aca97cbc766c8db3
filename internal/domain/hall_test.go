package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveHall_ExactMatch(t *testing.T) {
	hall, ok := ResolveHall("Shippee")
	require.True(t, ok)
	assert.Equal(t, HallShippee, hall)
}

func TestResolveHall_CaseInsensitive(t *testing.T) {
	// Resolution must be independent of case for every display name.
	for _, hall := range AllHalls() {
		name := hall.DisplayName()

		upper, ok := ResolveHall(strings.ToUpper(name))
		require.True(t, ok, "upper-cased %q should resolve", name)
		assert.Equal(t, hall, upper)

		lower, ok := ResolveHall(strings.ToLower(name))
		require.True(t, ok, "lower-cased %q should resolve", name)
		assert.Equal(t, hall, lower)
	}
}

func TestResolveHall_NoFuzzyMatching(t *testing.T) {
	tests := []string{
		"Random Hall",
		"Shippee Hall", // partial match is not a match
		"Shipp",
		"",
		"Charter Oak", // must match the full suite variant name
	}

	for _, label := range tests {
		t.Run(label, func(t *testing.T) {
			_, ok := ResolveHall(label)
			assert.False(t, ok)
		})
	}
}

func TestResolveHall_CompoundNames(t *testing.T) {
	hall, ok := ResolveHall("charter oak - 4 person/4 bedroom")
	require.True(t, ok)
	assert.Equal(t, HallCharterOak4P4B, hall)

	hall, ok = ResolveHall("off-campus apartments")
	require.True(t, ok)
	assert.Equal(t, HallOffCampusApartments, hall)
}

func TestAllHalls_CompleteAndOrdered(t *testing.T) {
	halls := AllHalls()
	assert.Len(t, halls, 25)

	// Enumeration order is fixed and starts/ends with the known bounds.
	assert.Equal(t, HallAlumni, halls[0])
	assert.Equal(t, HallOffCampusApartments, halls[len(halls)-1])

	seen := make(map[Hall]bool)
	for _, h := range halls {
		assert.True(t, h.Valid())
		assert.False(t, seen[h], "duplicate hall %s", h)
		seen[h] = true
	}
}

func TestHall_Valid(t *testing.T) {
	assert.True(t, HallTowers.Valid())
	assert.False(t, Hall("RANDOM_HALL").Valid())
	assert.False(t, Hall("").Valid())
}

func TestHall_DisplayName_Unknown(t *testing.T) {
	assert.Equal(t, "BOGUS", Hall("BOGUS").DisplayName())
}
