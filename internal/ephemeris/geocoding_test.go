package ephemeris

import "testing"

func TestGetCityInfoUnknownCityFallsBackToDefault(t *testing.T) {
	svc, err := NewGeocodingService()
	if err != nil {
		t.Fatalf("NewGeocodingService: %v", err)
	}
	defer svc.Close()

	loc, err := svc.GetCityInfo("Nowhereville Atlantis Nonexistent")
	if err != nil {
		t.Fatalf("GetCityInfo: %v", err)
	}
	if loc.Timezone != "America/New_York" {
		t.Fatalf("expected the New York fallback location, got %+v", loc)
	}
}

func TestParseGeoNamesLineRejectsShortLines(t *testing.T) {
	svc := &GeocodingService{}
	if _, err := svc.parseGeoNamesLine("too\tfew\tfields"); err == nil {
		t.Fatal("expected an error for a line with fewer than 19 fields")
	}
}
