package doctor

import (
	"math"
	"testing"
)

func TestGuessStateFromZIP(t *testing.T) {
	tests := []struct {
		zip  string
		want string
	}{
		{"10001", "NY"},
		{"19103", "PA"},
		{"20001", "DC"},
		{"30301", "GA"},
		{"33101", "FL"},
		{"60601", "IL"},
		{"75201", "TX"},
		{"85001", "AZ"},
		{"90001", "CA"},
		{"98101", "WA"},
		{"00901", "PR"},
		{"7", "CA"},   // too short
		{"", "CA"},    // empty
		{"ab123", "CA"}, // non-numeric prefix
	}
	for _, tt := range tests {
		if got := guessStateFromZIP(tt.zip); got != tt.want {
			t.Errorf("guessStateFromZIP(%q) = %q, want %q", tt.zip, got, tt.want)
		}
	}
}

func TestEstimateCoordinates(t *testing.T) {
	lat, lon := estimateCoordinates("90210")
	if lat != 34.0522 || lon != -118.2437 {
		t.Errorf("estimateCoordinates(90210) = (%v, %v), want Los Angeles centroid", lat, lon)
	}

	// ZIP+4 uses the same prefix region.
	lat4, lon4 := estimateCoordinates("90210-1234")
	if lat4 != lat || lon4 != lon {
		t.Errorf("ZIP+4 coordinates differ from plain ZIP: (%v, %v)", lat4, lon4)
	}

	// Unmapped prefix falls back to the US center.
	lat, lon = estimateCoordinates("05001")
	if lat != centerUS.lat || lon != centerUS.lon {
		t.Errorf("estimateCoordinates(05001) = (%v, %v), want US center", lat, lon)
	}
}

func TestHaversine(t *testing.T) {
	// New York to Los Angeles is roughly 3936 km.
	d := haversine(40.7128, -74.0060, 34.0522, -118.2437)
	if math.Abs(d-3936) > 50 {
		t.Errorf("haversine(NYC, LA) = %v km, want ~3936", d)
	}

	if d := haversine(40.7128, -74.0060, 40.7128, -74.0060); d != 0 {
		t.Errorf("haversine of identical points = %v, want 0", d)
	}
}

func TestMapToTaxonomy(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"Cardiologist", "Cardiovascular Disease"},
		{"Pediatric Cardiologist", "Cardiovascular Disease"},
		{"Pulmonologist", "Pulmonary"},
		{"General Physician", "General Practice"},
		{"ENT Specialist", "Otolaryngology"},
		{"Homeopath", ""},
	}
	for _, tt := range tests {
		if got := mapToTaxonomy(tt.spec); got != tt.want {
			t.Errorf("mapToTaxonomy(%q) = %q, want %q", tt.spec, got, tt.want)
		}
	}
}
