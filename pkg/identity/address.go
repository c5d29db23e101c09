// Package identity derives secondary representations of on-chain identities.
package identity

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// CompressedKeyLen is the size of a compressed secp256k1 point.
const CompressedKeyLen = 33

// CryptoError reports key material that cannot produce an address. Callers treat it as
// "address unavailable".
type CryptoError struct {
	Err error
}

func (e *CryptoError) Error() string {
	return "invalid verifying key: " + e.Err.Error()
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

// EthereumAddress derives the Ethereum address controlled by a compressed secp256k1 key:
// the low 20 bytes of keccak256(X || Y) of the decompressed point.
func EthereumAddress(compressed []byte) (common.Address, error) {
	if len(compressed) != CompressedKeyLen {
		return common.Address{}, &CryptoError{
			Err: fmt.Errorf("got %d bytes, expected %d", len(compressed), CompressedKeyLen),
		}
	}

	if compressed[0] != 0x02 && compressed[0] != 0x03 {
		return common.Address{}, &CryptoError{
			Err: fmt.Errorf("unknown point format 0x%02x", compressed[0]),
		}
	}

	pub, err := crypto.DecompressPubkey(compressed)
	if err != nil {
		return common.Address{}, &CryptoError{Err: err}
	}

	return crypto.PubkeyToAddress(*pub), nil
}
