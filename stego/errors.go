package stego

import "errors"

var (
	// ErrNoUsableAudioData indicates that no non-zero sample follows the header.
	ErrNoUsableAudioData = errors.New("stego: no usable audio data after header")

	// ErrInvalidKey indicates a key with a non-positive field, or one whose
	// segment is too small to hold the mirrored phase writes.
	ErrInvalidKey = errors.New("stego: invalid key")

	// ErrSegmentOutOfRange indicates that the segment does not fit in the buffer,
	// or that the message does not fit in the segment.
	ErrSegmentOutOfRange = errors.New("stego: segment out of range")
)
