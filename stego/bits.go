package stego

import "github.com/samber/lo"

// bytesToBits spreads data into one 0/1 value per element, most significant bit first.
func bytesToBits(data []byte) []byte {
	bits := make([]byte, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>i)&1)
		}
	}
	return bits
}

// bitsToBytes packs groups of eight bits, most significant first. A short final
// group still yields a byte, with its missing low bits left at zero.
func bitsToBytes(bits []byte) []byte {
	return lo.Map(lo.Chunk(bits, 8), func(group []byte, _ int) byte {
		var b byte
		for i, bit := range group {
			b |= (bit & 1) << (7 - i)
		}
		return b
	})
}
