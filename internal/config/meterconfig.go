package config

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"astrometers/internal/calibration"
	"astrometers/internal/domain"
	"astrometers/pkg/errors"
)

//go:embed data/meters/*.json
var embeddedMeterFiles embed.FS

//go:embed data/constants.json
var embeddedConstantsFile embed.FS

// meterFileFilter is the on-disk shape of a meter's filter, per spec.md §6
// ("lists of natal planets, transit planets, aspect kinds, with '*' meaning
// wildcard"). An absent or empty list is the wildcard; callers may also
// write the literal string "*" as the sole element for readability.
type meterFileFilter struct {
	NatalBodies   []string `json:"natal_bodies"`
	TransitBodies []string `json:"transit_bodies"`
	AspectKinds   []string `json:"aspect_kinds"`
}

type meterFile struct {
	ID         string          `json:"id"`
	Group      string          `json:"group"`
	Filter     meterFileFilter `json:"filter"`
	Ballast    float64         `json:"ballast"`
	DTISamples []float64       `json:"dti_samples"`
	HQSSamples []float64       `json:"hqs_samples"`
}

// Constants carries the tunable numeric knobs shipped in the single
// constants file named by spec.md §6. The dignity/tier/aspect-modifier
// tables themselves stay as Go maps in internal/engine, reused directly
// from the natal-chart sign tables; only the scalar knobs an operator
// might plausibly retune without a code change live here.
type Constants struct {
	Sensitivity      float64 `json:"sensitivity"`
	SigmaDivisor     float64 `json:"sigma_divisor"`
	SpeedFloorDegDay float64 `json:"speed_floor_deg_day"`
	ChartRulerBonus  float64 `json:"chart_ruler_bonus"`
}

func parseFilter(f meterFileFilter) (domain.MeterFilter, error) {
	natal, err := parseBodies(f.NatalBodies)
	if err != nil {
		return domain.MeterFilter{}, err
	}
	transit, err := parseBodies(f.TransitBodies)
	if err != nil {
		return domain.MeterFilter{}, err
	}
	kinds, err := parseKinds(f.AspectKinds)
	if err != nil {
		return domain.MeterFilter{}, err
	}
	return domain.MeterFilter{NatalBodies: natal, TransitBodies: transit, AspectKinds: kinds}, nil
}

func parseBodies(names []string) ([]domain.BodyID, error) {
	if len(names) == 0 || (len(names) == 1 && names[0] == "*") {
		return nil, nil
	}
	out := make([]domain.BodyID, 0, len(names))
	for _, n := range names {
		id, err := domain.ParseBodyID(n)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func parseKinds(names []string) ([]domain.AspectKind, error) {
	if len(names) == 0 || (len(names) == 1 && names[0] == "*") {
		return nil, nil
	}
	out := make([]domain.AspectKind, 0, len(names))
	for _, n := range names {
		k, err := domain.ParseAspectKind(n)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

// LoadMeters loads the 18 per-meter configs, one per entry in
// domain.AllMeterIDs(), starting from the embedded defaults and applying
// any same-named JSON file found in overrideDir. A meter whose percentile
// tables are empty after loading is a CalibrationMissing error (spec.md §7:
// "fatal at startup, fail-closed").
func LoadMeters(overrideDir string) ([]*domain.MeterConfig, error) {
	configs := make([]*domain.MeterConfig, 0, len(domain.AllMeterIDs()))

	for _, id := range domain.AllMeterIDs() {
		raw, err := embeddedMeterFiles.ReadFile(fmt.Sprintf("data/meters/%s.json", id.String()))
		if err != nil {
			return nil, fmt.Errorf("config: missing embedded meter file for %s: %w", id, err)
		}

		if overrideDir != "" {
			overridePath := filepath.Join(overrideDir, id.String()+".json")
			if b, err := os.ReadFile(overridePath); err == nil {
				raw = b
			} else if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: reading override for %s: %w", id, err)
			}
		}

		var mf meterFile
		if err := json.Unmarshal(raw, &mf); err != nil {
			return nil, fmt.Errorf("config: parsing meter file for %s: %w", id, err)
		}

		group, err := domain.ParseGroupID(mf.Group)
		if err != nil {
			return nil, err
		}
		if group != id.Group() {
			return nil, fmt.Errorf("config: meter %s declares group %s, expected %s", id, group, id.Group())
		}

		filter, err := parseFilter(mf.Filter)
		if err != nil {
			return nil, err
		}

		if len(mf.DTISamples) == 0 || len(mf.HQSSamples) == 0 {
			return nil, errors.ErrCalibrationMissing(id.String())
		}

		dti := append(domain.PercentileTable{}, mf.DTISamples...)
		hqs := append(domain.PercentileTable{}, mf.HQSSamples...)
		sort.Float64s(dti)
		sort.Float64s(hqs)

		configs = append(configs, &domain.MeterConfig{
			ID:         id,
			Group:      group,
			Filter:     filter,
			Ballast:    mf.Ballast,
			DTISamples: dti,
			HQSSamples: hqs,
		})
	}

	return configs, nil
}

// LoadMeterTables overlays the percentile tables stored in the Calibration
// Harness's sqlite store onto an already-loaded meter registry, in place.
// A meter with no rows yet in the store (the harness has never run against
// it) keeps its embedded/override defaults rather than being zeroed out,
// since a fresh deployment must still serve requests before the harness has
// ever run against production chart traffic.
func LoadMeterTables(store *calibration.Store, configs []*domain.MeterConfig) error {
	for _, mc := range configs {
		dti, err := store.LoadPercentiles(mc.ID.String(), "dti")
		if err != nil {
			return fmt.Errorf("config: loading dti percentiles for %s: %w", mc.ID, err)
		}
		hqs, err := store.LoadPercentiles(mc.ID.String(), "hqs")
		if err != nil {
			return fmt.Errorf("config: loading hqs percentiles for %s: %w", mc.ID, err)
		}

		if len(dti) > 0 {
			mc.DTISamples = dti
		}
		if len(hqs) > 0 {
			mc.HQSSamples = hqs
		}
	}
	return nil
}

// LoadConstants loads the engine's tunable scalar constants, preferring an
// override file named constants.json in overrideDir if present.
func LoadConstants(overrideDir string) (Constants, error) {
	raw, err := embeddedConstantsFile.ReadFile("data/constants.json")
	if err != nil {
		return Constants{}, fmt.Errorf("config: missing embedded constants file: %w", err)
	}

	if overrideDir != "" {
		overridePath := filepath.Join(overrideDir, "constants.json")
		if b, err := os.ReadFile(overridePath); err == nil {
			raw = b
		} else if !os.IsNotExist(err) {
			return Constants{}, fmt.Errorf("config: reading constants override: %w", err)
		}
	}

	var c Constants
	if err := json.Unmarshal(raw, &c); err != nil {
		return Constants{}, fmt.Errorf("config: parsing constants file: %w", err)
	}
	return c, nil
}
