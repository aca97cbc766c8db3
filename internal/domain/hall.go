// Package domain defines the core types for the dormdex catalog: halls,
// submissions, media assets, and attribution.
package domain

import "strings"

// Hall identifies one residence hall in the closed catalog enumeration.
// The set is fixed; flair text that matches no hall is treated as
// unclassified upstream drift, never as a new hall.
type Hall string

// The full hall enumeration. Display names are the exact flair strings
// used by the source forum.
const (
	HallAlumni              Hall = "ALUMNI"
	HallBuckley             Hall = "BUCKLEY"
	HallHilltopHalls        Hall = "HILLTOP_HALLS"
	HallMcMahon             Hall = "MCMAHON"
	HallNorthCampus         Hall = "NORTH_CAMPUS"
	HallNorthwestCampus     Hall = "NORTHWEST_CAMPUS"
	HallShippee             Hall = "SHIPPEE"
	HallEastCampus          Hall = "EAST_CAMPUS"
	HallTowers              Hall = "TOWERS"
	HallWerth               Hall = "WERTH"
	HallWestCampus          Hall = "WEST_CAMPUS"
	HallBusbySuites         Hall = "BUSBY_SUITES"
	HallGarrigusSuites      Hall = "GARRIGUS_SUITES"
	HallSouthCampus         Hall = "SOUTH_CAMPUS"
	HallMansfieldApartments Hall = "MANSFIELD_APARTMENTS"
	HallHuskyVillage        Hall = "HUSKY_VILLAGE"
	HallCharterOak4P4B      Hall = "CHARTER_OAK_4P_4B"
	HallCharterOak4P2B      Hall = "CHARTER_OAK_4P_2B"
	HallCharterOak2P2B      Hall = "CHARTER_OAK_2P_2B"
	HallHilltopApts4P4B     Hall = "HILLTOP_APTS_4P_4B"
	HallHilltopApts2P2B     Hall = "HILLTOP_APTS_2P_2B"
	HallHilltopAptsDouble   Hall = "HILLTOP_APTS_DOUBLE"
	HallNorthwoodApts       Hall = "NORTHWOOD_APTS"
	HallStamford            Hall = "STAMFORD"
	HallOffCampusApartments Hall = "OFF_CAMPUS_APARTMENTS"
)

// hallOrder fixes the enumeration order used for deterministic catalog output.
var hallOrder = []Hall{
	HallAlumni,
	HallBuckley,
	HallHilltopHalls,
	HallMcMahon,
	HallNorthCampus,
	HallNorthwestCampus,
	HallShippee,
	HallEastCampus,
	HallTowers,
	HallWerth,
	HallWestCampus,
	HallBusbySuites,
	HallGarrigusSuites,
	HallSouthCampus,
	HallMansfieldApartments,
	HallHuskyVillage,
	HallCharterOak4P4B,
	HallCharterOak4P2B,
	HallCharterOak2P2B,
	HallHilltopApts4P4B,
	HallHilltopApts2P2B,
	HallHilltopAptsDouble,
	HallNorthwoodApts,
	HallStamford,
	HallOffCampusApartments,
}

// hallNames maps each hall to its display name (the exact source flair).
var hallNames = map[Hall]string{
	HallAlumni:              "Alumni",
	HallBuckley:             "Buckley",
	HallHilltopHalls:        "Hilltop Halls",
	HallMcMahon:             "McMahon",
	HallNorthCampus:         "North Campus",
	HallNorthwestCampus:     "Northwest Campus",
	HallShippee:             "Shippee",
	HallEastCampus:          "East Campus",
	HallTowers:              "Towers",
	HallWerth:               "Werth",
	HallWestCampus:          "West Campus",
	HallBusbySuites:         "Busby Suites",
	HallGarrigusSuites:      "Garrigus Suites",
	HallSouthCampus:         "South Campus",
	HallMansfieldApartments: "Mansfield Apartments",
	HallHuskyVillage:        "Husky Village",
	HallCharterOak4P4B:      "Charter Oak - 4 Person/4 Bedroom",
	HallCharterOak4P2B:      "Charter Oak - 4 Person/2 Bedroom",
	HallCharterOak2P2B:      "Charter Oak - 2 Person/2 Bedroom",
	HallHilltopApts4P4B:     "Hilltop Apts - 4 Person/4 Bedroom",
	HallHilltopApts2P2B:     "Hilltop Apts - 2 Person/2 Bedroom",
	HallHilltopAptsDouble:   "Hilltop Apts - Double Efficiency",
	HallNorthwoodApts:       "Northwood Apts",
	HallStamford:            "Stamford",
	HallOffCampusApartments: "Off-Campus Apartments",
}

// hallsByName is the case-insensitive resolution table, keyed by
// lowercased display name.
var hallsByName = func() map[string]Hall {
	m := make(map[string]Hall, len(hallNames))
	for hall, name := range hallNames {
		m[strings.ToLower(name)] = hall
	}
	return m
}()

// ResolveHall maps free-text flair to a hall, case-insensitively.
// Exact match only: no fuzzy or partial matching. The second return is
// false when the label matches no hall.
func ResolveHall(label string) (Hall, bool) {
	hall, ok := hallsByName[strings.ToLower(label)]
	return hall, ok
}

// DisplayName returns the hall's display name, or the raw key for an
// unknown hall value.
func (h Hall) DisplayName() string {
	if name, ok := hallNames[h]; ok {
		return name
	}
	return string(h)
}

// Valid reports whether h is one of the enumerated halls.
func (h Hall) Valid() bool {
	_, ok := hallNames[h]
	return ok
}

// AllHalls returns the full enumeration in fixed catalog order.
func AllHalls() []Hall {
	out := make([]Hall, len(hallOrder))
	copy(out, hallOrder)
	return out
}
