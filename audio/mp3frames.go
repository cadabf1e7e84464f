package audio

import "encoding/binary"

// MPEG-1 Layer III lookup tables. Index 0 and 15 are free/bad bitrates.
var (
	mp3Bitrates    = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
	mp3SampleRates = [4]int{44100, 48000, 32000, 0}
)

type mp3FrameHeader struct {
	bitrate    int // bits per second
	sampleRate int
	length     int
}

// mp3Stream summarizes the frames of an MPEG-1 Layer III bitstream.
type mp3Stream struct {
	frames  int
	bitrate int // mean bits per second over all frames
}

func syncSafeToInt(b []byte) int {
	return int(b[0]&0x7F)<<21 |
		int(b[1]&0x7F)<<14 |
		int(b[2]&0x7F)<<7 |
		int(b[3]&0x7F)
}

// parseMP3FrameHeader decodes the 4-byte header at the start of b. It reports
// false for anything that is not an MPEG-1 Layer III frame.
func parseMP3FrameHeader(b []byte) (mp3FrameHeader, bool) {
	if len(b) < 4 {
		return mp3FrameHeader{}, false
	}
	header := binary.BigEndian.Uint32(b)
	if header&0xFFE00000 != 0xFFE00000 {
		return mp3FrameHeader{}, false
	}
	versionID := (header >> 19) & 0x3
	layer := (header >> 17) & 0x3
	if versionID != 0x3 || layer != 0x1 {
		return mp3FrameHeader{}, false
	}

	bitrate := mp3Bitrates[(header>>12)&0xF] * 1000
	sampleRate := mp3SampleRates[(header>>10)&0x3]
	if bitrate == 0 || sampleRate == 0 {
		return mp3FrameHeader{}, false
	}

	length := 144 * bitrate / sampleRate
	if (header>>9)&0x1 == 1 {
		length++
	}
	return mp3FrameHeader{bitrate: bitrate, sampleRate: sampleRate, length: length}, true
}

// scanMP3Frames walks the frames following an optional ID3v2 tag, resyncing a
// byte at a time over garbage.
func scanMP3Frames(data []byte) mp3Stream {
	pos := 0
	if len(data) >= 10 && string(data[:3]) == "ID3" {
		pos = 10 + syncSafeToInt(data[6:10])
	}

	var stream mp3Stream
	var bitrateSum int
	for pos+4 <= len(data) {
		frame, ok := parseMP3FrameHeader(data[pos:])
		if !ok || pos+frame.length > len(data) {
			pos++
			continue
		}
		stream.frames++
		bitrateSum += frame.bitrate
		pos += frame.length
	}

	if stream.frames > 0 {
		stream.bitrate = bitrateSum / stream.frames
	}
	return stream
}
