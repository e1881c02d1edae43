package entities

// Category is the integer tag the upstream feed attaches to each hospital
// entry. It drives both the announcement section prefix and the map marker
// color. The upstream data uses single-digit codes (7/8/9) where the prefix
// applies and ten-scaled codes (70/80/90) where the marker color applies;
// both scales arrive on the same field and are kept as-is here.
type Category int

const (
	CategoryNamedFacilityA Category = 7
	CategoryNamedFacilityB Category = 8
	CategoryRemoteIsland   Category = 9

	CategoryMarkerOrange Category = 70
	CategoryMarkerGreen  Category = 80
	CategoryMarkerBlue   Category = 90
)

// SpeechPrefix returns the announcement section prefix for this category.
// medical is the entry's department label. Categories without a prefix
// return the empty string.
func (c Category) SpeechPrefix(medical string) string {
	switch c {
	case CategoryNamedFacilityA, CategoryNamedFacilityB:
		return medical + "の診察は"
	case CategoryRemoteIsland:
		return "島しょ部の診察は"
	default:
		return ""
	}
}

// MarkerColor returns the map marker color for this category.
func (c Category) MarkerColor() string {
	switch c {
	case CategoryMarkerOrange:
		return "orange"
	case CategoryMarkerGreen:
		return "green"
	case CategoryMarkerBlue:
		return "blue"
	default:
		return "red"
	}
}
