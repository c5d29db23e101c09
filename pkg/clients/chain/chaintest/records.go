package chaintest

import (
	"github.com/holiman/uint256"

	"entropy-status-backend/pkg/records"
	"entropy-status-backend/pkg/scale"
)

func EncodeProgram(bytecode, configurationInterface []byte, deployer [32]byte, refCounter uint64) []byte {
	out := scale.AppendBytes(nil, bytecode)
	out = scale.AppendBytes(out, configurationInterface)
	out = append(out, deployer[:]...)
	return scale.AppendU128(out, uint256.NewInt(refCounter))
}

type ProgramInstance struct {
	Pointer [32]byte
	Config  []byte
}

func EncodeRegisteredAccount(visibility records.KeyVisibility, verifyingKey []byte, programs []ProgramInstance, modificationAccount [32]byte) []byte {
	out := []byte{byte(visibility)}
	if visibility == records.KeyVisibilityPrivate {
		out = append(out, make([]byte, 32)...)
	}

	out = scale.AppendBytes(out, verifyingKey)
	out = scale.AppendCompact(out, uint64(len(programs)))
	for _, p := range programs {
		out = append(out, p.Pointer[:]...)
		out = scale.AppendBytes(out, p.Config)
	}

	return append(out, modificationAccount[:]...)
}

func EncodeValidator(tssAccount, x25519 [32]byte, endpoint []byte) []byte {
	out := append([]byte(nil), tssAccount[:]...)
	out = append(out, x25519[:]...)
	return scale.AppendBytes(out, endpoint)
}
