package util

import "encoding/binary"

// Uint64AsBytes encodes an unsigned 64 bit integer into a fixed-width,
// little-endian byte slice.
func Uint64AsBytes(i uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, i)
	return b
}

// BytesAsUint64 decodes a little-endian byte slice into an unsigned 64 bit
// integer. Slices shorter than 8 bytes decode as if zero-padded.
func BytesAsUint64(b []byte) uint64 {
	var out uint64
	for i, x := range b {
		out |= uint64(x) << uint64(i*8)
	}
	return out
}
