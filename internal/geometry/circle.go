package geometry

import "math"

const (
	KeyRadius        = "radius"
	KeyDiameter      = "diameter"
	KeyCircumference = "circumference"
)

// Params holds the measurements that were actually supplied.
type Params map[string]float64

// Rule derives the radius from one alternative measurement.
type Rule struct {
	Key        string
	ToRadius   func(v float64) float64
	FromRadius func(r float64) float64
}

// CircleRules is consulted in order when radius is absent; the first
// supplied key wins, so diameter takes precedence over circumference.
var CircleRules = []Rule{
	{
		Key:        KeyDiameter,
		ToRadius:   func(d float64) float64 { return d / 2 },
		FromRadius: Diameter,
	},
	{
		Key:        KeyCircumference,
		ToRadius:   func(c float64) float64 { return c / (2 * math.Pi) },
		FromRadius: Circumference,
	},
}

// Filter drops absent (nil) measurements.
func Filter(raw map[string]*float64) Params {
	p := make(Params, len(raw))
	for k, v := range raw {
		if v != nil {
			p[k] = *v
		}
	}
	return p
}

// NormalizeCircle returns the supplied measurements with a radius key added
// when it can be derived. Values are not validated here; see Params.Radius.
func NormalizeCircle(raw map[string]*float64) Params {
	p := Filter(raw)
	if _, ok := p[KeyRadius]; ok {
		return p
	}
	for _, rule := range CircleRules {
		if v, ok := p[rule.Key]; ok {
			p[KeyRadius] = rule.ToRadius(v)
			return p
		}
	}
	return p
}

// Radius returns the normalized radius, rejecting absent, non-finite and
// non-positive values.
func (p Params) Radius() (float64, error) {
	r, ok := p[KeyRadius]
	if !ok {
		return 0, newValidationError(ErrorMissingParameter, KeyRadius, "one of radius, diameter or circumference is required")
	}
	if err := CheckRadius(r); err != nil {
		return 0, err
	}
	return r, nil
}

// MaxRadius is the largest radius whose derived measurements and drawing
// bounds stay finite.
var MaxRadius = math.Sqrt(math.MaxFloat64/math.Pi) / 2

// CheckRadius reports whether r can be drawn.
func CheckRadius(r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return newValidationError(ErrorInvalidParameter, KeyRadius, "must be a finite number")
	}
	if r <= 0 {
		return newValidationError(ErrorInvalidParameter, KeyRadius, "must be greater than zero")
	}
	if r > MaxRadius {
		return newValidationError(ErrorInvalidParameter, KeyRadius, "is too large")
	}
	return nil
}

// Area returns π·r².
func Area(r float64) float64 { return math.Pi * r * r }

// Circumference returns 2π·r.
func Circumference(r float64) float64 { return 2 * math.Pi * r }

// Diameter returns 2·r.
func Diameter(r float64) float64 { return 2 * r }

// Measurements lists every derived measurement of a circle.
func Measurements(r float64) map[string]float64 {
	return map[string]float64{
		KeyRadius:        r,
		KeyDiameter:      Diameter(r),
		KeyCircumference: Circumference(r),
		"area":           Area(r),
	}
}
