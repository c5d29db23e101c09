// Package scale reads and writes the SCALE binary encoding used by Substrate runtimes.
// Only the primitives needed to decode the status records are implemented.
package scale

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

var (
	ErrUnexpectedEOF   = errors.New("unexpected end of input")
	ErrCompactOverflow = errors.New("compact integer overflows uint64")
)

type Decoder struct {
	buf []byte
	off int
}

func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

// Remaining returns the number of bytes not consumed yet.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.off
}

func (d *Decoder) take(n int) ([]byte, error) {
	if n < 0 || d.Remaining() < n {
		return nil, fmt.Errorf("need %d bytes at offset %d, have %d: %w", n, d.off, d.Remaining(), ErrUnexpectedEOF)
	}

	b := d.buf[d.off : d.off+n]
	d.off += n

	return b, nil
}

func (d *Decoder) U8() (uint8, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// U128 decodes a little-endian 128-bit unsigned integer.
func (d *Decoder) U128() (*uint256.Int, error) {
	b, err := d.take(16)
	if err != nil {
		return nil, err
	}

	be := make([]byte, 16)
	for i := range b {
		be[15-i] = b[i]
	}

	return new(uint256.Int).SetBytes(be), nil
}

// Compact decodes a SCALE compact integer. The two low bits of the first byte select the mode:
// single byte, two bytes, four bytes or a big-integer with an explicit byte length.
func (d *Decoder) Compact() (uint64, error) {
	first, err := d.U8()
	if err != nil {
		return 0, err
	}

	switch first & 0b11 {
	case 0b00:
		return uint64(first >> 2), nil
	case 0b01:
		next, err := d.U8()
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint16([]byte{first, next}) >> 2), nil
	case 0b10:
		rest, err := d.take(3)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint32([]byte{first, rest[0], rest[1], rest[2]}) >> 2), nil
	default:
		n := int(first>>2) + 4
		b, err := d.take(n)
		if err != nil {
			return 0, err
		}

		for _, extra := range b[min(n, 8):] {
			if extra != 0 {
				return 0, ErrCompactOverflow
			}
		}

		var v uint64
		for i := min(n, 8) - 1; i >= 0; i-- {
			v = v<<8 | uint64(b[i])
		}
		return v, nil
	}
}

// Len decodes a compact collection length. A length that cannot fit in the rest of the
// input is reported as truncation instead of allocating for it.
func (d *Decoder) Len() (int, error) {
	n, err := d.Compact()
	if err != nil {
		return 0, err
	}

	if n > uint64(d.Remaining()) {
		return 0, fmt.Errorf("collection length %d exceeds %d remaining bytes: %w", n, d.Remaining(), ErrUnexpectedEOF)
	}

	return int(n), nil
}

// Bytes decodes a length-prefixed byte vector. The returned slice is a copy.
func (d *Decoder) Bytes() ([]byte, error) {
	n, err := d.Len()
	if err != nil {
		return nil, err
	}

	return d.Fixed(n)
}

// Fixed reads exactly n bytes. The returned slice is a copy.
func (d *Decoder) Fixed(n int) ([]byte, error) {
	b, err := d.take(n)
	if err != nil {
		return nil, err
	}

	return append([]byte(nil), b...), nil
}

func (d *Decoder) Fixed32() (out [32]byte, err error) {
	b, err := d.take(32)
	if err != nil {
		return
	}

	copy(out[:], b)

	return
}
