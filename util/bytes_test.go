package util

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestUint64RoundTrip(t *testing.T) {
	testCases := []uint64{0, 1, 255, 256, 1<<32 - 1, 1 << 32, 1<<64 - 1}

	for _, n := range testCases {
		b := Uint64AsBytes(n)
		assert.Len(t, b, 8, "encoded uint64 must be 8 bytes wide")
		assert.Equal(t, n, BytesAsUint64(b), "round trip must preserve the value")
	}
}

func TestBytesAsUint64ShortSlice(t *testing.T) {
	assert.Equal(t, uint64(0x0201), BytesAsUint64([]byte{0x01, 0x02}))
	assert.Equal(t, uint64(0), BytesAsUint64(nil))
}
