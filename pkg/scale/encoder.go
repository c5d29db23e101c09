package scale

import (
	"encoding/binary"

	"github.com/holiman/uint256"
)

// AppendCompact appends v in its shortest compact form.
func AppendCompact(dst []byte, v uint64) []byte {
	switch {
	case v < 1<<6:
		return append(dst, byte(v<<2))
	case v < 1<<14:
		return binary.LittleEndian.AppendUint16(dst, uint16(v<<2|0b01))
	case v < 1<<30:
		return binary.LittleEndian.AppendUint32(dst, uint32(v<<2|0b10))
	}

	var le [8]byte
	binary.LittleEndian.PutUint64(le[:], v)
	n := 8
	for n > 4 && le[n-1] == 0 {
		n--
	}

	dst = append(dst, byte(n-4)<<2|0b11)
	return append(dst, le[:n]...)
}

func AppendBytes(dst, b []byte) []byte {
	dst = AppendCompact(dst, uint64(len(b)))
	return append(dst, b...)
}

func AppendU128(dst []byte, v *uint256.Int) []byte {
	be := v.Bytes32()
	for i := 31; i >= 16; i-- {
		dst = append(dst, be[i])
	}

	return dst
}
