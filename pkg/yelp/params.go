package yelp

import (
	"maps"
	"strconv"
	"strings"
)

// Params maps query parameter names to already formatted values. Keys are
// unique by construction; the client never mutates a caller's Params.
type Params map[string]string

// Documented search parameters. Any other name the API accepts can be used as
// a plain string key.
const (
	ParamTerm           = "term"
	ParamLimit          = "limit"
	ParamOffset         = "offset"
	ParamSort           = "sort"
	ParamCategoryFilter = "category_filter"
	ParamRadiusFilter   = "radius_filter"
	ParamDealsFilter    = "deals_filter"
	ParamCountryCode    = "cc"
	ParamLanguage       = "lang"
	ParamLanguageFilter = "lang_filter"
	ParamActionLinks    = "actionlinks"

	paramLocation       = "location"
	paramCurrentLatLong = "cll"
	paramBounds         = "bounds"
	paramLatLong        = "ll"
	paramPhone          = "phone"
)

func (p Params) clone() Params {
	out := make(Params, len(p)+2)
	maps.Copy(out, p)
	return out
}

// keys returns the parameter names, unsorted.
func (p Params) keys() []string {
	out := make([]string, 0, len(p))
	for k := range p {
		out = append(out, k)
	}
	return out
}

// LatLong is a plain geographic point.
type LatLong struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// BoundingBox is a search area given by its south-west and north-east corners.
type BoundingBox struct {
	SouthWest LatLong
	NorthEast LatLong
}

// Coordinate is a point with an optional accuracy chain. The chain is read in
// order Accuracy, Altitude, AltitudeAccuracy and ends at the first nil field.
type Coordinate struct {
	Latitude         float64
	Longitude        float64
	Accuracy         *float64
	Altitude         *float64
	AltitudeAccuracy *float64
}

// Float64 returns a pointer to v, for filling Coordinate's optional fields.
func Float64(v float64) *float64 { return &v }

// FormatLatLong renders "lat,long".
func FormatLatLong(lat, long float64) string {
	return formatFloat(lat) + "," + formatFloat(long)
}

// FormatBounds renders "sw_lat,sw_long|ne_lat,ne_long".
func FormatBounds(box BoundingBox) string {
	return FormatLatLong(box.SouthWest.Latitude, box.SouthWest.Longitude) +
		"|" +
		FormatLatLong(box.NorthEast.Latitude, box.NorthEast.Longitude)
}

// FormatCoordinates renders "lat,long" followed by the optional fields up to
// the first one that is unset.
func FormatCoordinates(c Coordinate) string {
	var b strings.Builder
	b.WriteString(FormatLatLong(c.Latitude, c.Longitude))
	for _, field := range []*float64{c.Accuracy, c.Altitude, c.AltitudeAccuracy} {
		if field == nil {
			break
		}
		b.WriteByte(',')
		b.WriteString(formatFloat(*field))
	}
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
