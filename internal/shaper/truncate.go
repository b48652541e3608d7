package shaper

import "unicode/utf8"

// Marker terminates every truncated string.
const Marker = "...[truncated]"

var markerLen = utf8.RuneCountInString(Marker)

// Truncate cuts s so that, marker included, it holds at most ceiling runes.
// Strings within the ceiling are returned unchanged and false.
//
// A ceiling shorter than the marker yields the marker alone.
func Truncate(s string, ceiling int) (string, bool) {
	if ceiling <= 0 || utf8.RuneCountInString(s) <= ceiling {
		return s, false
	}
	keep := ceiling - markerLen
	if keep <= 0 {
		return Marker, true
	}
	r := []rune(s)
	return string(r[:keep]) + Marker, true
}
