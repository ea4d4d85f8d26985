package service

import (
	"fmt"

	"astrometers/internal/domain"
	"astrometers/internal/ephemeris"
	"astrometers/internal/logging"
)

// ChartService builds natal charts for display and for the scoring engine.
type ChartService struct {
	adapter *ephemeris.SwissEphemerisAdapter
	planets *ephemeris.PlanetCalculator
	houses  *ephemeris.HouseCalculator
	logger  *logging.Logger
}

// NewChartService wires a ChartService around a shared ephemeris adapter.
func NewChartService(adapter *ephemeris.SwissEphemerisAdapter, logger *logging.Logger) *ChartService {
	eph := adapter.Ephemeris()
	return &ChartService{
		adapter: adapter,
		planets: ephemeris.NewPlanetCalculator(eph),
		houses:  ephemeris.NewHouseCalculator(eph),
		logger:  logger,
	}
}

// ChartRequest describes a request for natal chart display data.
type ChartRequest struct {
	Day         int    `json:"day" binding:"required,min=1,max=31"`
	Month       int    `json:"month" binding:"required,min=1,max=12"`
	Year        int    `json:"year" binding:"required"`
	LocalTime   string `json:"local_time" binding:"required"`
	City        string `json:"city" binding:"required"`
	HouseSystem string `json:"house_system,omitempty"`
}

// ChartResult is the full display response: the chart plus traditional
// planetary dignities, keyed by planet name.
type ChartResult struct {
	Chart     *domain.Chart                         `json:"chart"`
	Dignities map[string]ephemeris.PlanetaryDignity `json:"dignities"`
}

// CalculateChart builds a full display domain.Chart: planets, houses,
// aspects, and angles, plus each planet's traditional dignity. This is the
// display-oriented sibling of BuildEngineChart, which produces the dense
// domain.NatalChart the scoring engine consumes for the same birth data.
func (cs *ChartService) CalculateChart(req *ChartRequest) (*ChartResult, error) {
	cs.logger.CalculationLogger().
		Str("city", req.City).
		Int("year", req.Year).
		Int("month", req.Month).
		Int("day", req.Day).
		Str("house_system", req.HouseSystem).
		Msg("🔮 Starting natal chart calculation")

	houseSystem := req.HouseSystem
	if houseSystem == "" {
		houseSystem = string(ephemeris.GetDefaultHouseSystem())
	}
	if !ephemeris.IsValidHouseSystem(houseSystem) {
		return nil, fmt.Errorf("invalid house system: %s", houseSystem)
	}

	location, err := cs.adapter.Geocoding().GetCityInfo(req.City)
	if err != nil {
		return nil, fmt.Errorf("failed to get location for %s: %w", req.City, err)
	}

	timeInfo, err := domain.ParseTime(req.Year, req.Month, req.Day, req.LocalTime, location.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to parse time: %w", err)
	}

	birthInfo := domain.BirthInfo{
		Date:     timeInfo.FormatDateForDisplay(),
		Time:     timeInfo.FormatTimeOnly(),
		Location: *location,
	}

	natalChart := domain.NewChart(domain.ChartTypeNatal, req.City, birthInfo)
	natalChart.HouseSystem = houseSystem
	natalChart.Timezone = location.Timezone
	natalChart.UTCTime = timeInfo.UTCTime

	houses, housesData, err := cs.houses.CalculateHouses(timeInfo, location, domain.HouseSystem(houseSystem))
	if err != nil {
		return nil, fmt.Errorf("failed to calculate houses: %w", err)
	}
	for _, house := range houses {
		natalChart.AddHouse(house)
	}

	var houseCusps []float64
	for _, house := range houses {
		houseCusps = append(houseCusps, house.CuspValue)
	}

	planets, err := cs.planets.CalculateAllPlanets(timeInfo, houseCusps)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate planets: %w", err)
	}
	for _, planet := range planets {
		natalChart.AddPlanet(planet)
	}

	for _, aspect := range domain.CalculateChartAspects(planets) {
		natalChart.AddAspect(aspect)
	}

	natalChart.SetAngles(housesData.Ascendant, housesData.Midheaven)

	dignities := cs.planets.CalculatePlanetaryDignities(planets)

	cs.logger.Info().
		Str("endpoint", "chart").
		Int("planets_calculated", len(natalChart.Planets)).
		Int("houses_calculated", len(natalChart.Houses)).
		Int("aspects_found", len(natalChart.Aspects)).
		Msg("✨ Natal chart calculation completed successfully")

	return &ChartResult{Chart: natalChart, Dignities: dignities}, nil
}

// BuildEngineChart resolves the same birth data into the dense
// domain.NatalChart the scoring engine consumes.
func (cs *ChartService) BuildEngineChart(req *ChartRequest) (*domain.NatalChart, error) {
	houseSystem := domain.HouseSystem(req.HouseSystem)
	return cs.adapter.BuildNatalChart(ephemeris.BirthData{
		Year:        req.Year,
		Month:       req.Month,
		Day:         req.Day,
		LocalTime:   req.LocalTime,
		City:        req.City,
		HouseSystem: houseSystem,
	})
}

// GetSupportedHouseSystems returns available house systems.
func (cs *ChartService) GetSupportedHouseSystems() []string {
	systems := ephemeris.GetAvailableHouseSystems()
	names := make([]string, 0, len(systems))
	for _, s := range systems {
		names = append(names, string(s))
	}
	return names
}
