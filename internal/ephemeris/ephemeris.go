// Package ephemeris wraps Swiss Ephemeris (swephgo) and exposes the
// astrometers engine's Ephemeris Adapter: building a domain.NatalChart from
// birth data, and listing transit-to-natal aspects for a given instant.
package ephemeris

import (
	"fmt"
	"math"

	"astrometers/internal/domain"
	"astrometers/internal/logging"
	astroerrors "astrometers/pkg/errors"

	"github.com/mshafiee/swephgo"
)

// Ephemeris provides a wrapper around Swiss Ephemeris (swephgo)
type Ephemeris struct {
	logger      *logging.Logger
	initialized bool
}

// Planet constants for swephgo
const (
	SE_SUN       = 0
	SE_MOON      = 1
	SE_MERCURY   = 2
	SE_VENUS     = 3
	SE_MARS      = 4
	SE_JUPITER   = 5
	SE_SATURN    = 6
	SE_URANUS    = 7
	SE_NEPTUNE   = 8
	SE_PLUTO     = 9
	SE_MEAN_NODE = 10
	SE_TRUE_NODE = 11
)

// NewEphemeris creates a new Ephemeris instance
func NewEphemeris(logger *logging.Logger) (*Ephemeris, error) {
	eph := &Ephemeris{
		logger: logger,
	}

	if err := eph.initialize(); err != nil {
		return nil, err
	}

	return eph, nil
}

// initialize initializes the Swiss Ephemeris
func (e *Ephemeris) initialize() error {
	swephgo.SetEphePath([]byte("")) // Use built-in ephemeris data

	e.logger.Info().Msg("🔮 Initializing Swiss Ephemeris")

	testJD := swephgo.Julday(2000, 1, 1, 12.0, 1)
	xx := make([]float64, 6)
	serr := make([]byte, 256)
	result := swephgo.Calc(testJD, 0, 0, xx, serr)

	if result < 0 {
		e.logger.Error().
			Int("result_code", int(result)).
			Str("error", string(serr)).
			Msg("Swiss Ephemeris test calculation failed")
		return fmt.Errorf("Swiss Ephemeris initialization failed: %s", string(serr))
	}

	e.logger.Info().
		Float64("test_sun_longitude", xx[0]).
		Msg("✅ Swiss Ephemeris initialized successfully")

	e.initialized = true
	return nil
}

// CalculatePlanetPosition calculates the position of a planet for a given Julian Day
func (e *Ephemeris) CalculatePlanetPosition(julianDay float64, planetID int) (*PlanetPosition, error) {
	if !e.initialized {
		return nil, astroerrors.ErrEphemerisNotInitialized
	}

	xx := make([]float64, 6)
	serr := make([]byte, 256)
	result := swephgo.Calc(julianDay, planetID, 0, xx, serr)

	if result < 0 {
		return nil, fmt.Errorf("failed to calculate position for planet %d: %s", planetID, string(serr))
	}

	return &PlanetPosition{
		PlanetID:  planetID,
		Longitude: xx[0],
		Latitude:  xx[1],
		Distance:  xx[2],
		LongSpeed: xx[3],
		LatSpeed:  xx[4],
		DistSpeed: xx[5],
	}, nil
}

// bodyPlanetIDs maps the engine's BodyID to swephgo's planet constants, for
// the 11 natal bodies proper (angles are derived from house cusps, not
// ephemeris bodies).
var bodyPlanetIDs = map[domain.BodyID]int{
	domain.BodySun:       SE_SUN,
	domain.BodyMoon:       SE_MOON,
	domain.BodyMercury:   SE_MERCURY,
	domain.BodyVenus:     SE_VENUS,
	domain.BodyMars:      SE_MARS,
	domain.BodyJupiter:   SE_JUPITER,
	domain.BodySaturn:    SE_SATURN,
	domain.BodyUranus:    SE_URANUS,
	domain.BodyNeptune:   SE_NEPTUNE,
	domain.BodyPluto:     SE_PLUTO,
	domain.BodyNorthNode: SE_MEAN_NODE,
}

// CalculateAllBodies calculates positions for the 11 natal bodies proper.
func (e *Ephemeris) CalculateAllBodies(julianDay float64) (map[domain.BodyID]PlanetPosition, error) {
	if !e.initialized {
		return nil, astroerrors.ErrEphemerisNotInitialized
	}

	positions := make(map[domain.BodyID]PlanetPosition, len(bodyPlanetIDs))
	for body, id := range bodyPlanetIDs {
		pos, err := e.CalculatePlanetPosition(julianDay, id)
		if err != nil {
			e.logger.Warn().Err(err).Str("body", body.String()).Msg("Failed to calculate body position, skipping")
			continue
		}
		positions[body] = *pos
	}

	return positions, nil
}

// CalculateHouses calculates house cusps using Swiss Ephemeris
func (e *Ephemeris) CalculateHouses(julianDay, latitude, longitude float64, houseSystem rune) (*HousesData, error) {
	if !e.initialized {
		return nil, astroerrors.ErrEphemerisNotInitialized
	}

	cusps := make([]float64, 13) // 0-12, where 1-12 are the house cusps
	ascmc := make([]float64, 10)
	result := swephgo.Houses(julianDay, latitude, longitude, int(houseSystem), cusps, ascmc)

	if result < 0 {
		return nil, fmt.Errorf("failed to calculate houses: house system not supported or invalid parameters")
	}

	return &HousesData{
		Cusps:      cusps[1:13],
		Ascendant:  cusps[1],
		Midheaven:  cusps[10],
		IC:         cusps[4],
		Descendant: cusps[7],
	}, nil
}

// GetJulianDay converts a date/time to Julian Day Number
func (e *Ephemeris) GetJulianDay(timeInfo *domain.TimeInfo) float64 {
	utc := timeInfo.UTCTime
	hour := float64(utc.Hour()) + float64(utc.Minute())/60.0 + float64(utc.Second())/3600.0
	return swephgo.Julday(utc.Year(), int(utc.Month()), utc.Day(), hour, 1)
}

// GetHouseSystemCode converts house system name to swephgo code
func (e *Ephemeris) GetHouseSystemCode(system string) rune {
	const (
		SE_HOUSE_PLACIDUS      = 'P'
		SE_HOUSE_KOCH          = 'K'
		SE_HOUSE_PORPHYRIUS    = 'O'
		SE_HOUSE_REGIOMONTANUS = 'R'
		SE_HOUSE_CAMPANUS      = 'C'
		SE_HOUSE_EQUAL         = 'E'
		SE_HOUSE_WHOLE_SIGN    = 'W'
	)

	switch system {
	case "Koch":
		return SE_HOUSE_KOCH
	case "Porphyrius":
		return SE_HOUSE_PORPHYRIUS
	case "Regiomontanus":
		return SE_HOUSE_REGIOMONTANUS
	case "Campanus":
		return SE_HOUSE_CAMPANUS
	case "Equal":
		return SE_HOUSE_EQUAL
	case "Whole Sign":
		return SE_HOUSE_WHOLE_SIGN
	default:
		return SE_HOUSE_PLACIDUS
	}
}

// PlanetPosition holds calculated planet position data
type PlanetPosition struct {
	PlanetID  int
	Longitude float64
	Latitude  float64
	Distance  float64
	LongSpeed float64
	LatSpeed  float64
	DistSpeed float64
}

// HousesData holds calculated house data
type HousesData struct {
	Cusps      []float64
	Ascendant  float64
	Midheaven  float64
	IC         float64
	Descendant float64
}

// IsRetrograde returns true if the planet is moving retrograde
func (p PlanetPosition) IsRetrograde() bool {
	return p.LongSpeed < 0
}

// GetSign returns the zodiac sign for this position
func (p PlanetPosition) GetSign() string {
	return domain.GetZodiacSign(p.Longitude)
}

// GetDegreeInSign returns the degree within the zodiac sign
func (p PlanetPosition) GetDegreeInSign() float64 {
	return math.Mod(p.Longitude, 30.0)
}

// ToDomainPlanet converts ephemeris data to a display domain.Planet, keyed
// by its legacy string name, for the chart-display API surface.
func (p PlanetPosition) ToDomainPlanet(name string, houseNumber int) domain.Planet {
	return domain.NewPlanet(name, p.Longitude, p.Latitude, p.LongSpeed, houseNumber)
}
