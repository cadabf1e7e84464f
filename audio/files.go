package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrFileNotReadable   = errors.New("audio: file not readable")
	ErrUnsupportedFormat = errors.New("audio: unsupported format")
	ErrNotWAV            = errors.New("audio: not a WAV file")
	ErrEmptyAudio        = errors.New("audio: no samples decoded")
)

// Format identifies a source container by its file extension.
type Format string

const (
	FormatWAV  Format = "wav"
	FormatMP3  Format = "mp3"
	FormatFLAC Format = "flac"
)

// FormatFromFilename maps a file name onto a supported Format.
func FormatFromFilename(filename string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".wav", ".wave":
		return FormatWAV, nil
	case ".mp3":
		return FormatMP3, nil
	case ".flac":
		return FormatFLAC, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// LoadFile reads a whole audio file into memory.
func LoadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileNotReadable, err)
	}
	return data, nil
}

// SaveFile writes data to path through a temporary file in the same directory,
// so a failed write never leaves a truncated file behind.
func SaveFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".stego_*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %v", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %v", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output into place: %v", err)
	}
	return nil
}
