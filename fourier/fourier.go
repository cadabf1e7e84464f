// Package fourier implements the recursive power-of-two Fourier transform used
// by the phase coder.
//
// The forward transform is a plain radix-2 decimation in time: the input is split
// into even and odd halves, each half is transformed recursively, and the halves
// are combined with a twiddle factor W that is accumulated multiplicatively,
//
//	X[k]       = E[k] + W^k · O[k]
//	X[k + N/2] = E[k] - W^k · O[k]     for k = 0 .. N/2-1
//
// Multiplying W step by step lets rounding error leak into the components that
// should be exactly zero (W^(N/4) = -i, for example). Sin and Cos snap tiny values
// to zero and the accumulator is re-snapped onto an axis whenever one of its
// components collapses, so that phase angles of ±90 degrees survive a round trip.
package fourier

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

const (
	// ZeroEpsilon is the magnitude below which Sin and Cos report exactly zero.
	ZeroEpsilon = 1e-4
	// TwiddleSnapEpsilon is the magnitude below which a twiddle component is dropped.
	TwiddleSnapEpsilon = 1e-5
)

var ErrInvalidSegmentLength = errors.New("fourier: segment length must be a power of two")

// Real lists the sample types that can be lifted into the complex plane.
type Real interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int | ~uint8 | ~float32 | ~float64
}

// Sin returns math.Sin(x), or 0 when its magnitude is below ZeroEpsilon.
func Sin(x float64) float64 {
	v := math.Sin(x)
	if math.Abs(v) < ZeroEpsilon {
		return 0
	}
	return v
}

// Cos returns math.Cos(x), or 0 when its magnitude is below ZeroEpsilon.
func Cos(x float64) float64 {
	v := math.Cos(x)
	if math.Abs(v) < ZeroEpsilon {
		return 0
	}
	return v
}

// FromReal converts a real sequence into complex values with zero imaginary parts.
func FromReal[T Real](x []T) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = complex(float64(v), 0)
	}
	return out
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Forward returns the discrete Fourier transform of x. The input is not modified.
func Forward(x []complex128) ([]complex128, error) {
	if !IsPowerOfTwo(len(x)) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSegmentLength, len(x))
	}
	return forward(x), nil
}

func forward(a []complex128) []complex128 {
	n := len(a)
	if n == 1 {
		return []complex128{a[0]}
	}

	half := n / 2
	even := make([]complex128, half)
	odd := make([]complex128, half)
	for i := 0; i < half; i++ {
		even[i] = a[2*i]
		odd[i] = a[2*i+1]
	}
	yEven := forward(even)
	yOdd := forward(odd)

	angle := -2 * math.Pi / float64(n)
	wn := complex(Cos(angle), Sin(angle))
	w := complex(1, 0)

	y := make([]complex128, n)
	for j := 0; j < half; j++ {
		t := w * yOdd[j]
		y[j] = yEven[j] + t
		y[j+half] = yEven[j] - t

		w *= wn
		if math.Abs(real(w)) < TwiddleSnapEpsilon {
			w = complex(0, imag(w))
		} else if math.Abs(imag(w)) < TwiddleSnapEpsilon {
			w = complex(real(w), 0)
		}
	}
	return y
}

// Inverse returns the inverse transform of spectrum.
//
// Reversing every element except the first maps bin k onto bin N-k, which turns
// the forward kernel e^(-2πikn/N) into e^(+2πikn/N); a forward pass over the
// reordered spectrum divided by N is therefore the inverse DFT for any input.
func Inverse(spectrum []complex128) ([]complex128, error) {
	n := len(spectrum)
	if !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSegmentLength, n)
	}

	reordered := slices.Clone(spectrum)
	slices.Reverse(reordered[1:])

	out := forward(reordered)
	scale := complex(float64(n), 0)
	for i := range out {
		out[i] /= scale
	}
	return out, nil
}
