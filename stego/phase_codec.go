package stego

import (
	"fmt"
	"slices"
)

// Phase written for a 0 bit; a 1 bit gets its negation.
const bitPhase = 90.0

// EncodePhase writes one bit per pair of bins mirrored about the middle of the
// spectrum and returns the new phases; the input slice is left alone. For bit j of
// m, bin N/2-m+j gets -90 degrees for a one and +90 for a zero, and bin N/2+m-j
// gets the opposite angle so the spectrum stays that of a real signal.
func EncodePhase(phase []float64, bits []byte) ([]float64, error) {
	n, m := len(phase), len(bits)
	if err := checkCapacity(n, m); err != nil {
		return nil, err
	}

	out := slices.Clone(phase)
	mid := n / 2
	for j, bit := range bits {
		angle := bitPhase
		if bit == 1 {
			angle = -bitPhase
		}
		out[mid-m+j] = angle
		out[mid+m-j] = -angle
	}
	return out, nil
}

// DecodePhase reads messageBits bits from the bins just below the middle of the
// spectrum: a positive angle is a zero, anything else a one.
func DecodePhase(phase []float64, messageBits int) ([]byte, error) {
	n := len(phase)
	if err := checkCapacity(n, messageBits); err != nil {
		return nil, err
	}

	mid := n / 2
	bits := make([]byte, 0, messageBits)
	for _, angle := range phase[mid-messageBits : mid] {
		if angle > 0 {
			bits = append(bits, 0)
		} else {
			bits = append(bits, 1)
		}
	}
	return bits, nil
}

func checkCapacity(segmentSize, messageBits int) error {
	if messageBits < 0 || (messageBits > 0 && messageBits >= segmentSize/2) {
		return fmt.Errorf("%w: %d bits do not fit a segment of %d bins", ErrSegmentOutOfRange, messageBits, segmentSize)
	}
	return nil
}
