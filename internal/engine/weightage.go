package engine

import "astrometers/internal/domain"

// dignitySigns give the domicile/exaltation/detriment/fall sign for each
// planet under modern rulership, grounded directly on the sign maps the
// natal-chart package already carries for narrative display
// (domain.Planet.IsInDetriment/IsInExaltation/IsInFall), reindexed by
// BodyID for the engine's dense lookups.
type dignitySigns struct {
	exaltation string
	fall       string
	detriment  []string
}

var dignityTable = map[domain.BodyID]dignitySigns{
	domain.BodySun:     {exaltation: "Aries", fall: "Libra", detriment: []string{"Aquarius"}},
	domain.BodyMoon:    {exaltation: "Taurus", fall: "Scorpio", detriment: []string{"Capricorn"}},
	domain.BodyMercury: {exaltation: "Virgo", fall: "Pisces", detriment: []string{"Sagittarius", "Pisces"}},
	domain.BodyVenus:   {exaltation: "Pisces", fall: "Virgo", detriment: []string{"Aries", "Scorpio"}},
	domain.BodyMars:    {exaltation: "Capricorn", fall: "Cancer", detriment: []string{"Libra", "Taurus"}},
	domain.BodyJupiter: {exaltation: "Cancer", fall: "Capricorn", detriment: []string{"Gemini", "Virgo"}},
	domain.BodySaturn:  {exaltation: "Libra", fall: "Aries", detriment: []string{"Cancer", "Leo"}},
	domain.BodyUranus:  {exaltation: "Scorpio", fall: "Taurus", detriment: []string{"Leo"}},
	domain.BodyNeptune: {exaltation: "Aquarius", fall: "Leo", detriment: []string{"Virgo"}},
	domain.BodyPluto:   {exaltation: "Aries", fall: "Libra", detriment: []string{"Taurus"}},
}

// DignityBonus is DIGNITY_BONUS[b][s] from spec.md §4.3: +2 domicile or
// exaltation, -2 fall or detriment, 0 otherwise. Angles and the node carry
// no dignity.
func DignityBonus(b domain.BodyID, sign string) float64 {
	if RulesSign(b, sign) {
		return 2
	}
	d, ok := dignityTable[b]
	if !ok {
		return 0
	}
	if d.exaltation == sign {
		return 2
	}
	if d.fall == sign {
		return -2
	}
	for _, det := range d.detriment {
		if det == sign {
			return -2
		}
	}
	return 0
}

// Weightage computes the natal-side Weightage Factor W for an aspect
// touching natal body b, per spec.md §4.3.
func Weightage(natalBody domain.BodyID, natalChart *domain.NatalChart) float64 {
	placement, ok := natalChart.Get(natalBody)
	if !ok {
		return 0
	}

	base := PlanetBase[natalBody]
	dignity := DignityBonus(natalBody, placement.Sign)

	ruler := 0.0
	if asc, ok := natalChart.Get(domain.BodyAsc); ok && RulesSign(natalBody, asc.Sign) {
		ruler = ChartRulerBonus
	}

	houseMult := HouseMultiplier(placement.House)

	return (base + dignity + ruler) * houseMult * Sensitivity
}
