package ephemeris

import (
	"astrometers/internal/domain"
	"astrometers/internal/logging"
	astroerrors "astrometers/pkg/errors"
)

// SwissEphemerisAdapter is the engine's Ephemeris Adapter (spec.md §3):
// it turns birth data into a domain.NatalChart, and a (chart, instant) pair
// into the list of transit-to-natal aspects the scoring pipeline consumes.
type SwissEphemerisAdapter struct {
	eph       *Ephemeris
	houses    *HouseCalculator
	geocoding *GeocodingService
	logger    *logging.Logger
}

// NewSwissEphemerisAdapter wires a fresh Swiss Ephemeris instance and the
// embedded city geocoder behind the adapter interface.
func NewSwissEphemerisAdapter(logger *logging.Logger) (*SwissEphemerisAdapter, error) {
	eph, err := NewEphemeris(logger)
	if err != nil {
		return nil, err
	}

	geo, err := NewGeocodingService()
	if err != nil {
		return nil, err
	}

	return &SwissEphemerisAdapter{
		eph:       eph,
		houses:    NewHouseCalculator(eph),
		geocoding: geo,
		logger:    logger,
	}, nil
}

// Geocoding exposes the adapter's embedded city lookup, for callers that
// need a Location without going through BuildNatalChart (the chart-display
// service needs the timezone-resolved Location before it calls the house
// and planet calculators directly).
func (a *SwissEphemerisAdapter) Geocoding() *GeocodingService {
	return a.geocoding
}

// Ephemeris exposes the adapter's underlying Swiss Ephemeris wrapper, for
// callers building display-oriented data (house/planet calculators) that
// sit alongside, rather than inside, the Ephemeris Adapter contract.
func (a *SwissEphemerisAdapter) Ephemeris() *Ephemeris {
	return a.eph
}

// BirthData describes a subject's birth for natal chart construction.
type BirthData struct {
	Year, Month, Day int
	LocalTime        string // HH:MM:SS
	City             string
	HouseSystem      domain.HouseSystem
}

// BuildNatalChart resolves birth data to a domain.NatalChart: the engine's
// dense BodyID-keyed natal positions, plus the 4 angles derived from house
// cusps. An unknown city is not an error: the geocoder falls back to a
// default New York location (the teacher's geocoding behavior). Returns
// astroerrors.ErrEphemerisUnavailable if Swiss Ephemeris itself cannot
// produce positions.
func (a *SwissEphemerisAdapter) BuildNatalChart(birth BirthData) (*domain.NatalChart, error) {
	location, err := a.geocoding.GetCityInfo(birth.City)
	if err != nil {
		return nil, err
	}

	timeInfo, err := domain.ParseTime(birth.Year, birth.Month, birth.Day, birth.LocalTime, location.Timezone)
	if err != nil {
		return nil, astroerrors.ErrInvalidTime
	}

	houseSystem := birth.HouseSystem
	if houseSystem == "" {
		houseSystem = GetDefaultHouseSystem()
	}

	julianDay := a.eph.GetJulianDay(timeInfo)
	_, housesData, err := a.houses.CalculateHouses(timeInfo, location, houseSystem)
	if err != nil {
		return nil, astroerrors.ErrEphemerisUnavailable
	}

	positions, err := a.eph.CalculateAllBodies(julianDay)
	if err != nil {
		return nil, astroerrors.ErrEphemerisUnavailable
	}

	chart := domain.NewNatalChart()
	for body, pos := range positions {
		houseNumber := a.houses.DetermineHouseForPlanet(pos.Longitude, housesData.Cusps)
		chart.Set(body, pos.Longitude, houseNumber)
	}

	// Angles sit in their own cardinal houses by astrological convention;
	// the house field on an angle itself is not otherwise meaningful.
	chart.Set(domain.BodyAsc, housesData.Ascendant, 1)
	chart.Set(domain.BodyIC, housesData.IC, 4)
	chart.Set(domain.BodyDsc, housesData.Descendant, 7)
	chart.Set(domain.BodyMC, housesData.Midheaven, 10)

	if missing := chart.Validate(); len(missing) > 0 {
		return nil, astroerrors.ErrInvalidChart(missing[0].String() + " position unavailable")
	}

	return chart, nil
}

// TransitInstant describes the moment to score transiting bodies against a
// natal chart.
type TransitInstant struct {
	TimeInfo *domain.TimeInfo
}

// transitBodyIDs are the moving bodies scored as transits; angles are
// excluded since natal angles don't transit themselves. The Moon is
// included: its Trigger tier (W_days=1, TierWeight=0.15) exists precisely
// to score its fast-moving transits, per spec.md §4.2.
var transitBodyIDs = []domain.BodyID{
	domain.BodyMoon, domain.BodySun, domain.BodyMercury, domain.BodyVenus, domain.BodyMars,
	domain.BodyJupiter, domain.BodySaturn, domain.BodyUranus, domain.BodyNeptune,
	domain.BodyPluto, domain.BodyNorthNode,
}

// TransitAspects lists every transiting-body-to-natal-body aspect in orb at
// the given instant, per spec.md §4.1: for each transit body and each natal
// body (including the 4 angles), compute the angular separation and keep it
// if it falls within that aspect kind's orb.
func (a *SwissEphemerisAdapter) TransitAspects(chart *domain.NatalChart, instant TransitInstant) ([]domain.TransitAspect, error) {
	julianDay := a.eph.GetJulianDay(instant.TimeInfo)

	positions, err := a.eph.CalculateAllBodies(julianDay)
	if err != nil {
		return nil, astroerrors.ErrEphemerisUnavailable
	}

	var aspects []domain.TransitAspect
	for _, transitBody := range transitBodyIDs {
		pos, ok := positions[transitBody]
		if !ok {
			continue
		}

		for natalBody, natalPos := range chart.Bodies {
			sep := domain.AngularDistance(pos.Longitude, natalPos.Longitude)

			for _, kind := range domain.AllAspectKinds() {
				orb := sep - domain.AspectAngles[kind]
				if orb < 0 {
					orb = -orb
				}
				if orb > domain.AspectOrbs[kind] {
					continue
				}

				aspects = append(aspects, domain.TransitAspect{
					TransitBody: transitBody,
					NatalBody:   natalBody,
					Kind:        kind,
					OrbDeg:      orb,
					SpeedDegDay: pos.LongSpeed,
					Retrograde:  pos.IsRetrograde(),
				})
			}
		}
	}

	return aspects, nil
}
