// Package audio handles everything around the phase coder that touches real
// files: loading and saving, describing WAV containers, preparing 8-bit covers
// and measuring distortion.
package audio

import (
	"math"
	"strconv"
)

const (
	// Int8Peak is the peak-to-peak span of signed 8-bit samples.
	Int8Peak = 255.0
	// NormalizedPeak is the peak of samples normalized to [-1, 1].
	NormalizedPeak = 1.0
)

// Sample is a sample representation PSNR can be measured over.
type Sample interface {
	~int8 | ~float64
}

// PSNR returns the peak signal-to-noise ratio of degraded against original in
// dB, for signals whose peak value is peak. Identical signals give +Inf;
// signals of different or zero length give 0.
func PSNR[T Sample](original, degraded []T, peak float64) float64 {
	if len(original) != len(degraded) || len(original) == 0 {
		return 0
	}

	var mse float64
	for i := range original {
		diff := float64(original[i]) - float64(degraded[i])
		mse += diff * diff
	}
	mse /= float64(len(original))
	if mse == 0 {
		return math.Inf(1)
	}
	return 20 * math.Log10(peak/math.Sqrt(mse))
}

// CalculatePSNR compares two runs of signed 8-bit samples.
func CalculatePSNR(original, stego []int8) float64 {
	return PSNR(original, stego, Int8Peak)
}

// CalculatePSNRFloat64 compares two runs of normalized samples.
func CalculatePSNRFloat64(original, converted []float64) float64 {
	return PSNR(original, converted, NormalizedPeak)
}

// ValidatePSNR reports whether psnr meets threshold. Lossless is always valid.
func ValidatePSNR(psnr, threshold float64) bool {
	return math.IsInf(psnr, 1) || psnr >= threshold
}

// FormatPSNR renders a PSNR for display, "inf" for an unchanged signal.
func FormatPSNR(psnr float64) string {
	if math.IsInf(psnr, 1) {
		return "inf"
	}
	return strconv.FormatFloat(psnr, 'f', 2, 64)
}
