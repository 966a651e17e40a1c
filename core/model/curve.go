package model

// NumHours is the number of hourly slots in a simulated day.
const NumHours = 24

// Curve holds one value per hour of the day. It is an array so copies are
// independent and two curves compare with ==.
type Curve [NumHours]float64

// Peak returns the largest value of the curve.
func (c Curve) Peak() float64 {
	peak := c[0]
	for _, v := range c[1:] {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Slice returns the values as a new slice.
func (c Curve) Slice() []float64 {
	out := make([]float64, NumHours)
	copy(out, c[:])
	return out
}

// CurveFrom builds a Curve from a slice which must hold exactly NumHours values.
func CurveFrom(values []float64) (Curve, error) {
	var c Curve
	if len(values) != NumHours {
		return c, &ValidationError{Field: "curve", Reason: "expected 24 hourly values"}
	}
	copy(c[:], values)
	return c, nil
}

// DefaultPrices is the day-ahead price in cents/kWh for hours 00-23.
var DefaultPrices = Curve{
	8.70, 8.48, 8.52, 8.61, 8.69, 8.69,
	9.56, 11.58, 12.72, 13.07, 15.65, 17.65,
	16.24, 15.55, 15.12, 16.64, 18.60, 21.53,
	22.68, 20.29, 17.09, 14.09, 12.81, 11.63,
}
