package utils

import (
	"encoding/hex"
	"strings"

	"github.com/dustin/go-humanize"
)

var sizeUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

// FormatSize renders a byte count with binary units and at most two fraction digits.
func FormatSize(size uint64) string {
	if size == 0 {
		return "0"
	}

	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}

	return humanize.FtoaWithDigits(value, 2) + " " + sizeUnits[unit]
}

// TruncateHex shortens long byte strings to their first and last two bytes.
func TruncateHex(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	if len(b) <= 3 {
		return FullHex(b)
	}

	var sb strings.Builder
	sb.WriteString("0x")
	sb.WriteString(hex.EncodeToString(b[:2]))
	sb.WriteString("…")
	sb.WriteString(hex.EncodeToString(b[len(b)-2:]))

	return sb.String()
}

func FullHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}
