// Package models contain needed models
package models

import (
	"fmt"
	"time"
)

// StegoKey is everything needed to reverse an embedding. It cannot be recovered
// from the stego file, so it is handed to the operator after embedding.
type StegoKey struct {
	SizeExponent int `json:"size_exponent"`
	MessageBits  int `json:"message_bits"`
}

// SegmentSize returns 2^SizeExponent.
func (k StegoKey) SegmentSize() int {
	return 1 << k.SizeExponent
}

// MessageBytes returns the number of bytes the message bits group into.
func (k StegoKey) MessageBytes() int {
	return (k.MessageBits + 7) / 8
}

func (k StegoKey) String() string {
	return fmt.Sprintf("{ %d, %d }", k.SizeExponent, k.MessageBits)
}

// EmbedResponse is returned as JSON when embedding fails
type EmbedResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Key     *StegoKey `json:"key,omitempty"`
}

// ExtractResponse represents the response after extraction
type ExtractResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	HiddenMessage string `json:"hidden_message,omitempty"`
}

// InspectResponse describes an uploaded audio container
type InspectResponse struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	Metadata *AudioMetadata `json:"metadata,omitempty"`

	// CapacityBytes is the longest message a WAV cover can carry.
	CapacityBytes *int `json:"capacity_bytes,omitempty"`
}

// AudioMetadata represents metadata about an audio file
type AudioMetadata struct {
	Format     string        `json:"format"`
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"`
	BitDepth   int           `json:"bit_depth"`
	Bitrate    int           `json:"bitrate_kbps,omitempty"` // mean kbit/s of a compressed source
	Duration   time.Duration `json:"duration"`
	TotalBytes int           `json:"total_bytes"`
	Title      string        `json:"title,omitempty"`
	Artist     string        `json:"artist,omitempty"`
}

// StegoConfig represents configuration for phase coding operations
type StegoConfig struct {
	// HeaderSkip is the number of leading container bytes never treated as samples.
	HeaderSkip int
	// Verify re-extracts the message from every stego buffer it produces.
	Verify bool
	// PSNRThreshold is the segment quality, in dB, below which a warning is logged.
	PSNRThreshold float64
}
