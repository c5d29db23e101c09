package scale_test

import (
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entropy-status-backend/pkg/scale"
)

func TestCompact(t *testing.T) {
	tests := map[string]struct {
		input []byte
		want  uint64
	}{
		"single byte zero": {[]byte{0x00}, 0},
		"single byte one":  {[]byte{0x04}, 1},
		"single byte 42":   {[]byte{0xa8}, 42},
		"two bytes 69":     {[]byte{0x15, 0x01}, 69},
		"four bytes 65535": {[]byte{0xfe, 0xff, 0x03, 0x00}, 65535},
		"big mode u32 max": {[]byte{0x03, 0xff, 0xff, 0xff, 0xff}, math.MaxUint32},
		"big mode u64 max": {[]byte{0x13, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, math.MaxUint64},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := scale.NewDecoder(test.input).Compact()
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestCompactEncodeDecode(t *testing.T) {
	for _, v := range []uint64{0, 63, 64, 16383, 16384, 1<<30 - 1, 1 << 30, 1 << 40, math.MaxUint64} {
		got, err := scale.NewDecoder(scale.AppendCompact(nil, v)).Compact()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestCompactOverflow(t *testing.T) {
	input := append([]byte{0x17}, make([]byte, 9)...)
	input[9] = 1

	_, err := scale.NewDecoder(input).Compact()
	require.ErrorIs(t, err, scale.ErrCompactOverflow)
}

func TestTruncatedInput(t *testing.T) {
	t.Run("compact missing continuation", func(t *testing.T) {
		_, err := scale.NewDecoder([]byte{0x01}).Compact()
		require.ErrorIs(t, err, scale.ErrUnexpectedEOF)
	})

	t.Run("bytes shorter than prefix", func(t *testing.T) {
		_, err := scale.NewDecoder([]byte{0x10, 0xaa}).Bytes()
		require.ErrorIs(t, err, scale.ErrUnexpectedEOF)
	})

	t.Run("u128 short", func(t *testing.T) {
		_, err := scale.NewDecoder(make([]byte, 15)).U128()
		require.ErrorIs(t, err, scale.ErrUnexpectedEOF)
	})

	t.Run("fixed32 short", func(t *testing.T) {
		_, err := scale.NewDecoder(make([]byte, 31)).Fixed32()
		require.ErrorIs(t, err, scale.ErrUnexpectedEOF)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := scale.NewDecoder(nil).U8()
		require.ErrorIs(t, err, scale.ErrUnexpectedEOF)
	})
}

func TestBytes(t *testing.T) {
	payload := []byte("ws://127.0.0.1:3001")
	d := scale.NewDecoder(scale.AppendBytes(nil, payload))

	got, err := d.Bytes()
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Zero(t, d.Remaining())
}

func TestU128(t *testing.T) {
	want := new(uint256.Int).Lsh(uint256.NewInt(1), 127)
	want.AddUint64(want, 12345)

	got, err := scale.NewDecoder(scale.AppendU128(nil, want)).U128()
	require.NoError(t, err)
	assert.Equal(t, want.Dec(), got.Dec())

	small, err := scale.NewDecoder([]byte{7, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}).U128()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), small.Uint64())
}
