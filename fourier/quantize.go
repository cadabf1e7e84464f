package fourier

import (
	"math"

	"github.com/samber/lo"
)

// Rounding thresholds applied to the fractional part of an inverse-transform
// output when it is written back as an 8-bit sample. They are asymmetric on
// purpose: stego files produced by earlier builds were quantized this way and the
// phase signs they carry depend on it.
const (
	RoundUpThreshold   = 0.444445
	RoundDownThreshold = -0.995
)

// Quantize converts v into a signed 8-bit sample. The fractional part
// frac = v - trunc(v) moves the result one step up when frac >= RoundUpThreshold,
// one step down when frac <= RoundDownThreshold, and otherwise v is truncated
// toward zero. Values outside the int8 range saturate.
func Quantize(v float64) int8 {
	whole := math.Trunc(v)
	frac := v - whole

	switch {
	case frac >= RoundUpThreshold:
		whole++
	case frac <= RoundDownThreshold:
		whole--
	}

	switch {
	case whole > math.MaxInt8:
		return math.MaxInt8
	case whole < math.MinInt8:
		return math.MinInt8
	}
	return int8(whole)
}

// QuantizeAll quantizes the real part of every value.
func QuantizeAll(values []complex128) []int8 {
	return lo.Map(values, func(v complex128, _ int) int8 {
		return Quantize(real(v))
	})
}
