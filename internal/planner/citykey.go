package planner

import (
	"strings"

	"github.com/atlasborder/site/internal/atlas"
)

const (
	variousCity     = "various"
	multiCityMarker = " / "
)

// RequiresHost reports whether a match city is ambiguous and the wizard has
// to ask which host city the visitor is travelling to. "New York/New Jersey"
// is one venue; "Dallas / Atlanta" is two.
func RequiresHost(matchCity string) bool {
	c := strings.ToLower(strings.TrimSpace(matchCity))
	return c == variousCity || strings.Contains(c, multiCityMarker)
}

var hostCityKeys = map[string]atlas.CityKey{
	"dallas":  atlas.CityDallas,
	"atlanta": atlas.CityAtlanta,
	"tor":     atlas.CityTOR,
	"mx":      atlas.CityMX,
	"ny":      atlas.CityNY,
}

// Checked in order; the first hit wins.
var citySubstrings = []struct {
	needle string
	key    atlas.CityKey
}{
	{"dallas", atlas.CityDallas},
	{"atlanta", atlas.CityAtlanta},
	{"toronto", atlas.CityTOR},
	{"mexico", atlas.CityMX},
	{"new york", atlas.CityNY},
	{"new jersey", atlas.CityNY},
}

// DefaultCityKey is used when neither the host city nor the match city names a
// known city.
const DefaultCityKey = atlas.CityNY

// NormalizeCityKey maps a match city and optional host city id onto the closed
// key set. The host city wins when both are present.
func NormalizeCityKey(matchCity, hostCityID string) atlas.CityKey {
	if hostCityID != "" {
		if k, ok := hostCityKeys[strings.ToLower(hostCityID)]; ok {
			return k
		}
	}

	c := strings.ToLower(matchCity)
	for _, s := range citySubstrings {
		if strings.Contains(c, s.needle) {
			return s.key
		}
	}
	return DefaultCityKey
}
