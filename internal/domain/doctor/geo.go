package doctor

import (
	"math"
	"strconv"

	"github.com/tricare/tricare/internal/platform/registry"
)

type zipRange struct {
	lo, hi int
	state  string
}

// ZIP prefix ranges per USPS allocation. Coarse but covers the country.
var zipStateRanges = []zipRange{
	{0, 6, "PR"},
	{7, 9, "NJ"},
	{10, 14, "NY"},
	{15, 19, "PA"},
	{20, 20, "DC"},
	{21, 21, "MD"},
	{22, 24, "VA"},
	{25, 27, "NC"},
	{28, 29, "SC"},
	{30, 31, "GA"},
	{32, 34, "FL"},
	{35, 36, "AL"},
	{37, 38, "TN"},
	{39, 39, "MS"},
	{40, 42, "KY"},
	{43, 45, "OH"},
	{46, 47, "IN"},
	{48, 49, "MI"},
	{50, 51, "IA"},
	{52, 52, "SD"},
	{53, 54, "WI"},
	{55, 56, "MN"},
	{57, 57, "SD"},
	{58, 59, "ND"},
	{60, 62, "IL"},
	{63, 64, "MO"},
	{65, 65, "MT"},
	{66, 67, "KS"},
	{68, 69, "NE"},
	{70, 71, "LA"},
	{72, 74, "AR"},
	{75, 79, "TX"},
	{80, 81, "CO"},
	{82, 82, "WY"},
	{83, 83, "ID"},
	{84, 84, "UT"},
	{85, 86, "AZ"},
	{87, 88, "NM"},
	{89, 89, "NV"},
	{90, 96, "CA"},
	{97, 97, "OR"},
	{98, 99, "WA"},
}

// guessStateFromZIP maps a ZIP code to a state abbreviation by its two
// digit prefix. Unknown or malformed codes default to CA.
func guessStateFromZIP(zip string) string {
	if len(zip) < 2 {
		return "CA"
	}
	prefix, err := strconv.Atoi(zip[:2])
	if err != nil {
		return "CA"
	}
	for _, r := range zipStateRanges {
		if prefix >= r.lo && prefix <= r.hi {
			return r.state
		}
	}
	return "CA"
}

type coords struct {
	lat, lon float64
}

// Approximate centroids for two digit ZIP prefixes. The registry does not
// publish coordinates, so every provider in a prefix shares its centroid.
var zipCoords = map[string]coords{
	// Northeast
	"10": {40.7128, -74.0060},
	"11": {40.6782, -73.9442},
	"12": {42.6526, -73.7562},
	"01": {42.3601, -71.0589},
	"02": {42.3601, -71.0589},
	"03": {43.2081, -71.5376},
	"04": {43.6591, -70.2568},
	"06": {41.7658, -72.6734},
	"07": {40.7282, -74.0776},
	"08": {40.2206, -74.7597},
	"19": {39.9526, -75.1652},

	// Southeast
	"20": {38.9072, -77.0369},
	"21": {39.2904, -76.6122},
	"22": {38.8048, -77.0469},
	"23": {37.5407, -77.4360},
	"27": {35.7796, -78.6382},
	"28": {35.2271, -80.8431},
	"29": {32.7765, -79.9311},
	"30": {33.7490, -84.3880},
	"32": {30.3322, -81.6557},
	"33": {25.7617, -80.1918},
	"34": {28.5383, -81.3792},

	// Midwest
	"43": {39.9612, -82.9988},
	"44": {41.4993, -81.6944},
	"45": {39.1031, -84.5120},
	"46": {39.7684, -86.1581},
	"47": {41.5868, -87.3468},
	"48": {42.3314, -83.0458},
	"49": {42.9634, -85.6681},
	"50": {41.5868, -93.6250},
	"51": {41.5868, -93.6250},
	"52": {43.5460, -96.7313},
	"53": {43.0389, -87.9065},
	"54": {44.5192, -88.0198},
	"55": {44.9778, -93.2650},
	"56": {44.9778, -93.2650},
	"57": {44.3683, -100.3362},
	"58": {46.8772, -100.7844},
	"59": {47.5515, -101.0020},
	"60": {41.8781, -87.6298},
	"61": {41.5236, -90.5776},
	"62": {38.6270, -90.1994},
	"63": {38.6270, -90.1994},
	"64": {39.0997, -94.5786},
	"65": {46.5891, -112.0391},
	"66": {37.6872, -97.3301},
	"67": {39.1141, -94.6275},
	"68": {41.2565, -95.9345},
	"69": {40.8136, -96.7026},
	"70": {29.9511, -90.0715},
	"71": {32.5252, -92.0819},

	// Southwest
	"73": {35.4676, -97.5164},
	"75": {32.7767, -96.7970},
	"77": {29.7604, -95.3698},
	"78": {29.4241, -98.4936},
	"79": {33.0198, -96.6989},
	"85": {33.4484, -112.0740},
	"86": {35.1983, -111.6513},
	"87": {35.0844, -106.6504},
	"88": {31.7619, -106.4850},
	"89": {39.5296, -119.8138},

	// West
	"80": {39.7392, -104.9903},
	"83": {43.6150, -116.2023},
	"84": {40.7608, -111.8910},
	"90": {34.0522, -118.2437},
	"91": {34.0522, -118.2437},
	"92": {32.7157, -117.1611},
	"93": {36.7783, -119.4179},
	"94": {37.7749, -122.4194},
	"95": {38.5816, -121.4944},
	"96": {35.3733, -119.0187},
	"97": {45.5152, -122.6784},
	"98": {47.6062, -122.3321},
	"99": {47.6588, -117.4260},
}

// Geographic center of the contiguous US, used when a prefix is unknown.
var centerUS = coords{39.8283, -98.5795}

// estimateCoordinates maps a ZIP code (5 digit or ZIP+4) to the centroid of
// its two digit prefix region.
func estimateCoordinates(postalCode string) (float64, float64) {
	zip := registry.CleanZIP(postalCode)
	if len(zip) < 2 {
		return centerUS.lat, centerUS.lon
	}
	if c, ok := zipCoords[zip[:2]]; ok {
		return c.lat, c.lon
	}
	return centerUS.lat, centerUS.lon
}

const earthRadiusKM = 6371.0

// haversine returns the great-circle distance between two points in km.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKM * 2 * math.Asin(math.Sqrt(a))
}
