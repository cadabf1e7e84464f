package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"phase-steganography/models"

	"github.com/bogem/id3v2"
	"github.com/faiface/beep"
	beepwav "github.com/faiface/beep/wav"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
	"github.com/tosone/minimp3"
)

const (
	// CoverBitDepth is the sample width the phase coder works on.
	CoverBitDepth = 8
	// PCMFormat is the WAVE format tag for integer PCM.
	PCMFormat = 1

	cover8BitMidpoint = 128
	cover8BitPeak     = 127
)

// Cover is a source recording converted into an 8-bit mono PCM WAV.
type Cover struct {
	WAV      []byte
	Source   *models.AudioMetadata
	Metadata *models.AudioMetadata
	// PSNR of the 8-bit requantization against the decoded source, in dB.
	PSNR float64
}

// decoded is a source downmixed to mono, normalized to [-1, 1].
type decoded struct {
	samples  []float64
	metadata *models.AudioMetadata
}

type AudioDecoder struct{}

func NewAudioDecoder() *AudioDecoder {
	return &AudioDecoder{}
}

// DescribeWAV reads the format chunk of a WAV container.
func (ad *AudioDecoder) DescribeWAV(wavData []byte) (*models.AudioMetadata, error) {
	decoder := wav.NewDecoder(bytes.NewReader(wavData))
	if !decoder.IsValidFile() {
		return nil, ErrNotWAV
	}
	if err := decoder.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("failed to locate PCM data: %v", err)
	}

	metadata := &models.AudioMetadata{
		Format:     string(FormatWAV),
		SampleRate: int(decoder.SampleRate),
		Channels:   int(decoder.NumChans),
		BitDepth:   int(decoder.BitDepth),
		TotalBytes: len(wavData),
	}

	bytesPerSecond := metadata.SampleRate * metadata.Channels * metadata.BitDepth / 8
	if bytesPerSecond > 0 {
		metadata.Duration = time.Duration(float64(decoder.PCMSize) / float64(bytesPerSecond) * float64(time.Second))
	}

	return metadata, nil
}

// Describe reports the format of any supported container.
func (ad *AudioDecoder) Describe(data []byte, format Format) (*models.AudioMetadata, error) {
	if format == FormatWAV {
		return ad.DescribeWAV(data)
	}
	src, err := ad.decode(data, format)
	if err != nil {
		return nil, err
	}
	return src.metadata, nil
}

// ConvertToCover decodes a WAV, MP3 or FLAC recording and re-encodes it as the
// 8-bit mono PCM WAV the phase coder expects.
func (ad *AudioDecoder) ConvertToCover(data []byte, format Format) (*Cover, error) {
	src, err := ad.decode(data, format)
	if err != nil {
		return nil, err
	}
	if len(src.samples) == 0 {
		return nil, ErrEmptyAudio
	}

	pcm := make([]int, len(src.samples))
	requantized := make([]float64, len(src.samples))
	for i, v := range src.samples {
		pcm[i] = to8Bit(v)
		requantized[i] = float64(pcm[i]-cover8BitMidpoint) / cover8BitPeak
	}

	wavData, err := ad.EncodeCoverWAV(pcm, src.metadata.SampleRate)
	if err != nil {
		return nil, err
	}

	return &Cover{
		WAV:    wavData,
		Source: src.metadata,
		Metadata: &models.AudioMetadata{
			Format:     string(FormatWAV),
			SampleRate: src.metadata.SampleRate,
			Channels:   1,
			BitDepth:   CoverBitDepth,
			Duration:   src.metadata.Duration,
			TotalBytes: len(wavData),
			Title:      src.metadata.Title,
			Artist:     src.metadata.Artist,
		},
		PSNR: CalculatePSNRFloat64(clampAll(src.samples), requantized),
	}, nil
}

// EncodeCoverWAV writes unsigned 8-bit mono samples as a WAV file.
func (ad *AudioDecoder) EncodeCoverWAV(pcm []int, sampleRate int) ([]byte, error) {
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           pcm,
		SourceBitDepth: CoverBitDepth,
	}

	// wav.NewEncoder needs a WriteSeeker to patch the chunk sizes
	tempFile, err := os.CreateTemp("", "cover_*.wav")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	encoder := wav.NewEncoder(tempFile, sampleRate, CoverBitDepth, 1, PCMFormat)

	if err := encoder.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to encode WAV: %v", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to close WAV encoder: %v", err)
	}

	if _, err := tempFile.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind WAV data: %v", err)
	}
	wavData, err := io.ReadAll(tempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV data: %v", err)
	}

	return wavData, nil
}

func (ad *AudioDecoder) decode(data []byte, format Format) (*decoded, error) {
	switch format {
	case FormatWAV:
		return ad.decodeWAV(data)
	case FormatMP3:
		return ad.decodeMP3(data)
	case FormatFLAC:
		return ad.decodeFLAC(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (ad *AudioDecoder) decodeWAV(wavData []byte) (*decoded, error) {
	stream, format, err := beepwav.Decode(bytes.NewReader(wavData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotWAV, err)
	}
	defer stream.Close()

	samples := make([]float64, 0, stream.Len())
	frames := make([][2]float64, 512)
	for {
		n, ok := stream.Stream(frames)
		for _, frame := range frames[:n] {
			if format.NumChannels == 1 {
				samples = append(samples, frame[0])
			} else {
				samples = append(samples, (frame[0]+frame[1])/2)
			}
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("failed to decode WAV: %v", err)
	}

	return &decoded{
		samples: samples,
		metadata: &models.AudioMetadata{
			Format:     string(FormatWAV),
			SampleRate: int(format.SampleRate),
			Channels:   format.NumChannels,
			BitDepth:   format.Precision * 8,
			Duration:   format.SampleRate.D(len(samples)),
			TotalBytes: len(wavData),
		},
	}, nil
}

func (ad *AudioDecoder) decodeMP3(mp3Data []byte) (*decoded, error) {
	decoder, pcm, err := minimp3.DecodeFull(mp3Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3: %v", err)
	}
	defer decoder.Close()

	channels := decoder.Channels
	if channels <= 0 {
		return nil, fmt.Errorf("failed to decode MP3: invalid channel count %d", channels)
	}

	// minimp3 yields interleaved little-endian 16-bit samples
	frameCount := len(pcm) / 2 / channels
	samples := make([]float64, frameCount)
	for i := range frameCount {
		var sum float64
		for ch := range channels {
			offset := (i*channels + ch) * 2
			sum += float64(int16(uint16(pcm[offset])|uint16(pcm[offset+1])<<8)) / 32768
		}
		samples[i] = sum / float64(channels)
	}

	metadata := &models.AudioMetadata{
		Format:     string(FormatMP3),
		SampleRate: decoder.SampleRate,
		Channels:   channels,
		BitDepth:   16,
		Duration:   beep.SampleRate(decoder.SampleRate).D(frameCount),
		TotalBytes: len(mp3Data),
		Bitrate:    scanMP3Frames(mp3Data).bitrate / 1000,
	}

	if tag, err := id3v2.ParseReader(bytes.NewReader(mp3Data), id3v2.Options{Parse: true}); err == nil {
		metadata.Title = tag.Title()
		metadata.Artist = tag.Artist()
	}

	return &decoded{samples: samples, metadata: metadata}, nil
}

func (ad *AudioDecoder) decodeFLAC(flacData []byte) (*decoded, error) {
	stream, err := flac.New(bytes.NewReader(flacData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse FLAC: %v", err)
	}
	defer stream.Close()

	bitsPerSample := int(stream.Info.BitsPerSample)
	scale := float64(int64(1) << (bitsPerSample - 1))

	samples := make([]float64, 0, stream.Info.NSamples)
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to decode FLAC frame: %v", err)
		}

		channels := len(frame.Subframes)
		for i := 0; i < frame.Subframes[0].NSamples; i++ {
			var sum float64
			for _, subframe := range frame.Subframes {
				sum += float64(subframe.Samples[i]) / scale
			}
			samples = append(samples, sum/float64(channels))
		}
	}

	return &decoded{
		samples: samples,
		metadata: &models.AudioMetadata{
			Format:     string(FormatFLAC),
			SampleRate: int(stream.Info.SampleRate),
			Channels:   int(stream.Info.NChannels),
			BitDepth:   bitsPerSample,
			Duration:   beep.SampleRate(stream.Info.SampleRate).D(len(samples)),
			TotalBytes: len(flacData),
		},
	}, nil
}

// to8Bit maps a normalized sample onto unsigned 8-bit PCM, 128 being silence.
func to8Bit(v float64) int {
	return cover8BitMidpoint + int(math.Round(clamp(v)*cover8BitPeak))
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

func clampAll(samples []float64) []float64 {
	out := make([]float64, len(samples))
	for i, v := range samples {
		out[i] = clamp(v)
	}
	return out
}
