package site

import "strings"

// stateNames lists every lower-cased directory entry: 50 states, DC,
// the territories and "national".
var stateNames = map[string]struct{}{
	"alabama": {}, "alaska": {}, "american samoa": {}, "arizona": {}, "arkansas": {},
	"california": {}, "colorado": {}, "connecticut": {}, "delaware": {},
	"district of columbia": {}, "florida": {}, "georgia": {}, "guam": {}, "hawaii": {},
	"idaho": {}, "illinois": {}, "indiana": {}, "iowa": {}, "kansas": {}, "kentucky": {},
	"louisiana": {}, "maine": {}, "maryland": {}, "massachusetts": {}, "michigan": {},
	"minnesota": {}, "mississippi": {}, "missouri": {}, "montana": {}, "national": {},
	"nebraska": {}, "nevada": {}, "new hampshire": {}, "new jersey": {}, "new mexico": {},
	"new york": {}, "north carolina": {}, "north dakota": {}, "northern mariana islands": {},
	"ohio": {}, "oklahoma": {}, "oregon": {}, "pennsylvania": {}, "puerto rico": {},
	"rhode island": {}, "south carolina": {}, "south dakota": {}, "tennessee": {},
	"texas": {}, "utah": {}, "vermont": {}, "virgin islands": {}, "virginia": {},
	"washington": {}, "west virginia": {}, "wisconsin": {}, "wyoming": {},
}

// NormalizeState trims and lower-cases user input for lookup.
func NormalizeState(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// IsState reports whether name, already normalized, is a recognized entry.
func IsState(name string) bool {
	_, ok := stateNames[name]
	return ok
}

// StateCount returns the size of the recognized set.
func StateCount() int {
	return len(stateNames)
}
