// Package stego hides a message in the phase spectrum of an 8-bit waveform.
//
// A message of m bits is written into the first power-of-two segment of samples
// after the container header: the segment is transformed, m pairs of bins mirrored
// about the middle get phases of ±90 degrees, and the segment is transformed back.
// Extraction needs the StegoKey (segment exponent and m) reported by Embed.
package stego

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"phase-steganography/audio"
	"phase-steganography/fourier"
	"phase-steganography/models"
)

// EmbedResult is the outcome of a successful embedding.
type EmbedResult struct {
	Key   models.StegoKey
	Audio []byte
	Plan  SegmentPlan
	// PSNR compares the original and stego segment, in dB.
	PSNR float64
	// Verified is set when the message was read back from Audio unchanged.
	// It stays false when verification is disabled.
	Verified bool
}

type PhaseCoding struct {
	config *models.StegoConfig
	logger *slog.Logger
}

// DefaultConfig returns the configuration matching files written by earlier tools.
func DefaultConfig() *models.StegoConfig {
	return &models.StegoConfig{
		HeaderSkip:    HeaderSkip,
		Verify:        true,
		PSNRThreshold: 30,
	}
}

func NewPhaseCoding(config *models.StegoConfig, logger *slog.Logger) *PhaseCoding {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PhaseCoding{
		config: config,
		logger: logger,
	}
}

// Embed hides message in the first segment of audio. The input slice is never
// modified; the stego buffer is returned in the result.
func (pc *PhaseCoding) Embed(audioData, message []byte) (*EmbedResult, error) {
	bits := bytesToBits(message)

	plan, err := PlanSegments(audioData, len(bits), pc.config.HeaderSkip)
	if err != nil {
		return nil, err
	}

	stegoAudio := slices.Clone(audioData)
	if len(bits) == 0 {
		return &EmbedResult{
			Key:      plan.Key,
			Audio:    stegoAudio,
			Plan:     plan,
			PSNR:     math.Inf(1),
			Verified: pc.config.Verify,
		}, nil
	}

	segment := stegoAudio[plan.Start : plan.Start+plan.SegmentSize]
	spectrum, err := Analyze(segment)
	if err != nil {
		return nil, err
	}

	phase, err := EncodePhase(spectrum.Phase, bits)
	if err != nil {
		return nil, err
	}

	restored, err := fourier.Inverse(Synthesize(spectrum.Magnitude, phase))
	if err != nil {
		return nil, err
	}

	original := toSamples(segment)
	modified := fourier.QuantizeAll(restored)
	for i, s := range modified {
		segment[i] = byte(s)
	}

	result := &EmbedResult{
		Key:   plan.Key,
		Audio: stegoAudio,
		Plan:  plan,
		PSNR:  audio.CalculatePSNR(original, modified),
	}

	pc.logger.Debug("Embedded message.",
		slog.Int("start", plan.Start),
		slog.Int("segment_size", plan.SegmentSize),
		slog.Int("segments", plan.SegmentsCount),
		slog.String("key", plan.Key.String()),
		slog.Float64("psnr", result.PSNR))

	if !audio.ValidatePSNR(result.PSNR, pc.config.PSNRThreshold) {
		pc.logger.Warn("Stego segment is audibly distorted.",
			slog.Float64("psnr", result.PSNR),
			slog.Float64("threshold", pc.config.PSNRThreshold))
	}

	if pc.config.Verify {
		result.Verified = pc.verify(stegoAudio, plan, message)
	}

	return result, nil
}

// verify reads the message back. A mismatch means rounding pushed a phase across
// zero or the first sample of the segment became silent; neither is an error.
func (pc *PhaseCoding) verify(stegoAudio []byte, plan SegmentPlan, message []byte) bool {
	recovered, err := pc.Extract(stegoAudio, plan.Key)
	if err != nil {
		pc.logger.Warn("Could not read back embedded message.", slog.Any("error", err))
		return false
	}
	if !bytes.Equal(recovered, message) {
		pc.logger.Warn("Embedded message does not read back intact.",
			slog.String("key", plan.Key.String()))
		return false
	}
	return true
}

// Capacity returns the longest message, in bytes, Embed fits into audioData.
func (pc *PhaseCoding) Capacity(audioData []byte) (int, error) {
	return Capacity(audioData, pc.config.HeaderSkip)
}

// Extract recovers the message hidden in audio under key.
func (pc *PhaseCoding) Extract(audioData []byte, key models.StegoKey) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if key.MessageBits == 0 {
		return []byte{}, nil
	}

	start, err := LocateAudioStart(audioData, pc.config.HeaderSkip)
	if err != nil {
		return nil, err
	}

	size := key.SegmentSize()
	if start+size > len(audioData) {
		return nil, fmt.Errorf("%w: segment of %d samples, %d available after offset %d",
			ErrSegmentOutOfRange, size, len(audioData)-start, start)
	}

	spectrum, err := Analyze(audioData[start : start+size])
	if err != nil {
		return nil, err
	}

	bits, err := DecodePhase(spectrum.Phase, key.MessageBits)
	if err != nil {
		return nil, err
	}

	return bitsToBytes(bits), nil
}

func toSamples(data []byte) []int8 {
	samples := make([]int8, len(data))
	for i, b := range data {
		samples[i] = int8(b)
	}
	return samples
}
