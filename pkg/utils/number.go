package utils

import "math"

// SafeRatio divide num por den. Retorna nil quando a razão não é definida (den zero ou resultado não finito).
func SafeRatio(num, den float64) *float64 {
	if den == 0 || math.IsNaN(den) || math.IsNaN(num) {
		return nil
	}

	v := num / den
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}

	return &v
}

// Float retorna um ponteiro para f
func Float(f float64) *float64 {
	return &f
}

// FormatRatio formata uma razão opcional; valores indefinidos viram "-"
func FormatRatio(v *float64, format func(float64) string) string {
	if v == nil {
		return "-"
	}
	return format(*v)
}
