package stego

import (
	"fmt"
	"math/bits"

	"phase-steganography/models"
)

const (
	// HeaderSkip is the size of a minimal WAV header; samples are never looked
	// for before it.
	HeaderSkip = 44

	// MaxSizeExponent bounds the segment size a key may ask for.
	MaxSizeExponent = 30
)

// SegmentPlan is the geometry of a buffer cut into segments. Only the first
// segment carries a message; SegmentsCount is informational.
type SegmentPlan struct {
	Start         int
	SegmentSize   int
	SegmentsCount int
	Key           models.StegoKey
}

// LocateAudioStart returns the index of the first non-zero sample at or after
// headerSkip.
func LocateAudioStart(audio []byte, headerSkip int) (int, error) {
	for i := max(headerSkip, 0); i < len(audio); i++ {
		if audio[i] != 0 {
			return i, nil
		}
	}
	return -1, ErrNoUsableAudioData
}

// SizeExponent returns ceil(log2(2*messageBits)) + 1, which leaves room for
// 2*messageBits phase bins mirrored about the middle of the segment. An empty
// message gets the smallest valid segment.
func SizeExponent(messageBits int) int {
	if messageBits <= 0 {
		return 1
	}
	return bits.Len(uint(2*messageBits-1)) + 1
}

// PlanSegments computes the segment geometry for a message of messageBits bits.
func PlanSegments(audio []byte, messageBits, headerSkip int) (SegmentPlan, error) {
	start, err := LocateAudioStart(audio, headerSkip)
	if err != nil {
		return SegmentPlan{}, err
	}

	exponent := SizeExponent(messageBits)
	if exponent > MaxSizeExponent {
		return SegmentPlan{}, fmt.Errorf("%w: message of %d bits needs 2^%d samples", ErrSegmentOutOfRange, messageBits, exponent)
	}

	size := 1 << exponent
	available := len(audio) - start
	if size > available {
		return SegmentPlan{}, fmt.Errorf("%w: segment of %d samples, %d available after offset %d",
			ErrSegmentOutOfRange, size, available, start)
	}

	return SegmentPlan{
		Start:         start,
		SegmentSize:   size,
		SegmentsCount: (available + size - 1) / size,
		Key: models.StegoKey{
			SizeExponent: exponent,
			MessageBits:  messageBits,
		},
	}, nil
}

// Capacity returns the longest message, in bytes, that fits the audio after
// headerSkip. m bits need a segment of 2^e samples with 2m <= 2^(e-1), so the
// largest segment that fits carries 2^(e-2) bits.
func Capacity(audio []byte, headerSkip int) (int, error) {
	start, err := LocateAudioStart(audio, headerSkip)
	if err != nil {
		return 0, err
	}
	exponent := min(bits.Len(uint(len(audio)-start))-1, MaxSizeExponent)
	if exponent < 2 {
		return 0, nil
	}
	return (1 << (exponent - 2)) / 8, nil
}

// ValidateKey checks a key supplied for extraction. A zero MessageBits is the
// key of an empty message and is accepted.
func ValidateKey(key models.StegoKey) error {
	if key.SizeExponent <= 0 || key.SizeExponent > MaxSizeExponent {
		return fmt.Errorf("%w: size exponent %d out of range [1, %d]", ErrInvalidKey, key.SizeExponent, MaxSizeExponent)
	}
	if key.MessageBits < 0 {
		return fmt.Errorf("%w: negative message size %d", ErrInvalidKey, key.MessageBits)
	}
	if key.MessageBits > 0 && key.MessageBits >= key.SegmentSize()/2 {
		return fmt.Errorf("%w: segment of %d samples cannot hold %d bits", ErrInvalidKey, key.SegmentSize(), key.MessageBits)
	}
	return nil
}

// NewOperatorKey builds a key from the two integers reported after embedding.
// Both must be positive: an operator never has to type in the key of an empty
// message.
func NewOperatorKey(sizeExponent, messageBits int) (models.StegoKey, error) {
	if sizeExponent <= 0 || messageBits <= 0 {
		return models.StegoKey{}, fmt.Errorf("%w: both values must be positive, got { %d, %d }", ErrInvalidKey, sizeExponent, messageBits)
	}
	key := models.StegoKey{SizeExponent: sizeExponent, MessageBits: messageBits}
	if err := ValidateKey(key); err != nil {
		return models.StegoKey{}, err
	}
	return key, nil
}
