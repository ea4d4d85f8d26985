package domain

// TransitAspect is one transit-to-natal aspect as enumerated by the
// Ephemeris Adapter (spec.md §4.1). Unlike the broader natal-to-natal
// Aspect type used for chart display, this is what the scoring engine
// actually consumes.
type TransitAspect struct {
	TransitBody BodyID
	NatalBody   BodyID
	Kind        AspectKind
	OrbDeg      float64 // non-negative, actual minus exact
	SpeedDegDay float64 // absolute instantaneous angular speed of TransitBody
	Retrograde  bool
}

// DriverAspect describes the single highest-|W·P·Q| aspect behind a
// meter's reading, named by spec.md §3 ("driver_aspect") and fully
// specified here per SPEC_FULL.md §7.
type DriverAspect struct {
	TransitBody  BodyID
	NatalBody    BodyID
	Kind         AspectKind
	OrbDeg       float64
	Contribution float64 // signed W*P*Q of the selected aspect
}
