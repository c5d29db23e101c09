package identity

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// DefaultSS58Prefix is the generic Substrate network prefix.
const DefaultSS58Prefix uint16 = 42

var ss58Context = []byte("SS58PRE")

// SS58 renders a 32-byte account id as an SS58 address for the given network prefix.
// Prefixes above 16383 are not representable and are clamped to the generic prefix.
func SS58(account [32]byte, prefix uint16) string {
	if prefix > 16383 {
		prefix = DefaultSS58Prefix
	}

	var payload []byte
	if prefix < 64 {
		payload = append(payload, byte(prefix))
	} else {
		payload = append(payload,
			byte((prefix&0b1111_1100)>>2)|0b0100_0000,
			byte(prefix>>8)|byte(prefix&0b0000_0011)<<6)
	}
	payload = append(payload, account[:]...)

	checksum := blake2b.Sum512(append(append([]byte(nil), ss58Context...), payload...))

	return base58.Encode(append(payload, checksum[:2]...))
}
