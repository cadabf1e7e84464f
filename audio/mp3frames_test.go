package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// MPEG-1 Layer III, 128 kbit/s, 44.1 kHz, no padding: 417-byte frames.
var mp3Header128k = []byte{0xFF, 0xFB, 0x90, 0x64}

func mp3Frames(n int) []byte {
	var out []byte
	for range n {
		frame := make([]byte, 417)
		copy(frame, mp3Header128k)
		out = append(out, frame...)
	}
	return out
}

func TestParseMP3FrameHeader(t *testing.T) {
	frame, ok := parseMP3FrameHeader(mp3Header128k)
	assert.True(t, ok)
	assert.Equal(t, mp3FrameHeader{bitrate: 128000, sampleRate: 44100, length: 417}, frame)

	padded, ok := parseMP3FrameHeader([]byte{0xFF, 0xFB, 0x92, 0x64})
	assert.True(t, ok)
	assert.Equal(t, 418, padded.length)

	for name, header := range map[string][]byte{
		"no sync":     {0x00, 0xFB, 0x90, 0x64},
		"layer II":    {0xFF, 0xFD, 0x90, 0x64},
		"bad bitrate": {0xFF, 0xFB, 0xF0, 0x64},
		"truncated":   {0xFF, 0xFB},
	} {
		_, ok := parseMP3FrameHeader(header)
		assert.False(t, ok, name)
	}
}

func TestScanMP3Frames(t *testing.T) {
	// ID3v2 tag with a 20-byte body, then junk, then frames.
	tag := append([]byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 20}, make([]byte, 20)...)
	data := append(tag, 0x12, 0x34)
	data = append(data, mp3Frames(3)...)

	stream := scanMP3Frames(data)
	assert.Equal(t, 3, stream.frames)
	assert.Equal(t, 128000, stream.bitrate)

	assert.Equal(t, mp3Stream{}, scanMP3Frames([]byte("not an mp3 at all")))
}

func TestSyncSafeToInt(t *testing.T) {
	assert.Equal(t, 0x3FFF, syncSafeToInt([]byte{0, 0, 0x7F, 0x7F}))
	assert.Equal(t, 257, syncSafeToInt([]byte{0, 0, 2, 1}))
}
