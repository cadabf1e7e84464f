package stego

import (
	"math"
	"math/cmplx"

	"phase-steganography/fourier"
)

// Spectrum is a transformed segment with its per-bin magnitude and phase.
type Spectrum struct {
	Bins      []complex128
	Magnitude []float64
	// Phase is in degrees, in (-180, 180].
	Phase []float64
}

// Analyze transforms a segment of raw 8-bit samples.
func Analyze(segment []byte) (*Spectrum, error) {
	bins, err := fourier.Forward(fourier.FromReal(toSamples(segment)))
	if err != nil {
		return nil, err
	}

	s := &Spectrum{
		Bins:      bins,
		Magnitude: make([]float64, len(bins)),
		Phase:     make([]float64, len(bins)),
	}
	for k, v := range bins {
		s.Magnitude[k] = cmplx.Abs(v)
		s.Phase[k] = cmplx.Phase(v) * 180 / math.Pi
	}
	return s, nil
}

// Synthesize rebuilds complex bins from magnitudes and phases in degrees.
func Synthesize(magnitude, phase []float64) []complex128 {
	bins := make([]complex128, len(magnitude))
	for k, m := range magnitude {
		theta := phase[k] * math.Pi / 180
		bins[k] = complex(m*fourier.Cos(theta), m*fourier.Sin(theta))
	}
	return bins
}
