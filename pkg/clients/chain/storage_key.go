package chain

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// IdentityLen is the size of the entity identity carried at the tail of every storage key.
const IdentityLen = 32

var ErrShortKey = errors.New("storage key too short to carry an identity")

// StorageKey is a raw key of a storage map entry.
type StorageKey []byte

// Identity returns the final 32 bytes of the key: the account id or content hash the entry
// belongs to. The hasher applied before it is not inspected.
func (k StorageKey) Identity() (id [IdentityLen]byte, err error) {
	if len(k) <= IdentityLen {
		err = fmt.Errorf("key of %d bytes: %w", len(k), ErrShortKey)
		return
	}

	copy(id[:], k[len(k)-IdentityLen:])

	return
}

// Entry is one raw key/value pair observed during a scan.
type Entry struct {
	Key   StorageKey
	Value []byte
}

// StoragePrefix returns the key prefix shared by every entry of a storage map:
// twox128(pallet) ++ twox128(item).
func StoragePrefix(pallet, item string) []byte {
	prefix := make([]byte, 0, 32)
	prefix = append(prefix, twox128(pallet)...)
	return append(prefix, twox128(item)...)
}

func twox128(s string) []byte {
	out := make([]byte, 0, 16)
	for _, seed := range []uint64{0, 1} {
		h := xxhash.NewWithSeed(seed)
		_, _ = h.WriteString(s)
		out = binary.LittleEndian.AppendUint64(out, h.Sum64())
	}

	return out
}
