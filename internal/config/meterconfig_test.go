package config

import (
	"os"
	"path/filepath"
	"testing"

	"astrometers/internal/calibration"
	"astrometers/internal/domain"
)

func TestLoadMetersReturnsAllEighteen(t *testing.T) {
	configs, err := LoadMeters("")
	if err != nil {
		t.Fatalf("LoadMeters: %v", err)
	}
	if len(configs) != len(domain.AllMeterIDs()) {
		t.Fatalf("expected %d meter configs, got %d", len(domain.AllMeterIDs()), len(configs))
	}
	for _, mc := range configs {
		if mc.Group != mc.ID.Group() {
			t.Fatalf("meter %v loaded with mismatched group %v", mc.ID, mc.Group)
		}
		if len(mc.DTISamples) == 0 || len(mc.HQSSamples) == 0 {
			t.Fatalf("meter %v loaded with empty percentile tables", mc.ID)
		}
		for i := 1; i < len(mc.DTISamples); i++ {
			if mc.DTISamples[i] < mc.DTISamples[i-1] {
				t.Fatalf("meter %v DTI samples not sorted ascending", mc.ID)
			}
		}
	}
}

func TestLoadMetersOverrideDirTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	override := `{
		"id": "clarity",
		"group": "mind",
		"filter": {"natal_bodies": ["mercury"], "transit_bodies": [], "aspect_kinds": []},
		"ballast": 99,
		"dti_samples": [1, 2, 3],
		"hqs_samples": [-1, 0, 1]
	}`
	if err := os.WriteFile(filepath.Join(dir, "clarity.json"), []byte(override), 0o644); err != nil {
		t.Fatalf("writing override: %v", err)
	}

	configs, err := LoadMeters(dir)
	if err != nil {
		t.Fatalf("LoadMeters: %v", err)
	}
	for _, mc := range configs {
		if mc.ID == domain.MeterClarity {
			if mc.Ballast != 99 {
				t.Fatalf("expected override ballast 99, got %v", mc.Ballast)
			}
			return
		}
	}
	t.Fatal("clarity meter not found in loaded configs")
}

func TestLoadMetersRejectsGroupMismatch(t *testing.T) {
	dir := t.TempDir()
	override := `{
		"id": "clarity",
		"group": "body",
		"filter": {"natal_bodies": [], "transit_bodies": [], "aspect_kinds": []},
		"ballast": 1,
		"dti_samples": [1, 2],
		"hqs_samples": [-1, 1]
	}`
	if err := os.WriteFile(filepath.Join(dir, "clarity.json"), []byte(override), 0o644); err != nil {
		t.Fatalf("writing override: %v", err)
	}
	if _, err := LoadMeters(dir); err == nil {
		t.Fatal("expected an error for a meter file declaring the wrong group")
	}
}

func TestLoadMetersFailsClosedOnEmptySamples(t *testing.T) {
	dir := t.TempDir()
	override := `{
		"id": "clarity",
		"group": "mind",
		"filter": {"natal_bodies": [], "transit_bodies": [], "aspect_kinds": []},
		"ballast": 1,
		"dti_samples": [],
		"hqs_samples": []
	}`
	if err := os.WriteFile(filepath.Join(dir, "clarity.json"), []byte(override), 0o644); err != nil {
		t.Fatalf("writing override: %v", err)
	}
	if _, err := LoadMeters(dir); err == nil {
		t.Fatal("expected a CalibrationMissing error for empty percentile samples")
	}
}

func TestLoadMeterTablesOverlaysStoredPercentiles(t *testing.T) {
	configs, err := LoadMeters("")
	if err != nil {
		t.Fatalf("LoadMeters: %v", err)
	}

	store, err := calibration.NewStore(filepath.Join(t.TempDir(), "cal.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	if err := store.ReplacePercentiles("clarity", "dti", []float64{100, 200, 300}); err != nil {
		t.Fatalf("ReplacePercentiles: %v", err)
	}

	if err := LoadMeterTables(store, configs); err != nil {
		t.Fatalf("LoadMeterTables: %v", err)
	}

	for _, mc := range configs {
		if mc.ID == domain.MeterClarity {
			if len(mc.DTISamples) != 3 || mc.DTISamples[0] != 100 {
				t.Fatalf("expected overlaid DTI samples [100 200 300], got %v", mc.DTISamples)
			}
		} else {
			if len(mc.DTISamples) == 0 {
				t.Fatalf("meter %v lost its defaults when the store had no rows for it", mc.ID)
			}
		}
	}
}

func TestLoadConstants(t *testing.T) {
	c, err := LoadConstants("")
	if err != nil {
		t.Fatalf("LoadConstants: %v", err)
	}
	if c.SigmaDivisor <= 0 {
		t.Fatalf("expected a positive sigma divisor, got %v", c.SigmaDivisor)
	}
}
