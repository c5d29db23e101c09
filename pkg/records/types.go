// Package records decodes the storage entries the status backend reads into typed records.
package records

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// AccountID is a 32-byte on-chain account identifier.
type AccountID [32]byte

type Kind uint8

const (
	KindProgram Kind = iota
	KindRegisteredAccount
	KindValidator
)

func (k Kind) String() string {
	switch k {
	case KindProgram:
		return "program"
	case KindRegisteredAccount:
		return "registered account"
	case KindValidator:
		return "validator"
	}
	return "unknown"
}

// Record is one of Program, RegisteredAccount or Validator.
type Record interface {
	Kind() Kind
	Identity() [32]byte
	isRecord()
}

type Program struct {
	Hash         common.Hash
	Deployer     AccountID
	RefCounter   *uint256.Int
	Size         int
	Configurable bool
}

func (p Program) Kind() Kind         { return KindProgram }
func (p Program) Identity() [32]byte { return p.Hash }
func (Program) isRecord()            {}

type KeyVisibility uint8

const (
	KeyVisibilityPublic KeyVisibility = iota
	KeyVisibilityPermissioned
	KeyVisibilityPrivate
)

func (v KeyVisibility) String() string {
	switch v {
	case KeyVisibilityPublic:
		return "Public"
	case KeyVisibilityPermissioned:
		return "Permissioned"
	case KeyVisibilityPrivate:
		return "Private"
	}
	return "Unknown"
}

type RegisteredAccount struct {
	AccountID                  AccountID
	KeyVisibility              KeyVisibility
	VerifyingKey               []byte
	ProgramPointers            []common.Hash
	ProgramModificationAccount AccountID
}

func (a RegisteredAccount) Kind() Kind         { return KindRegisteredAccount }
func (a RegisteredAccount) Identity() [32]byte { return a.AccountID }
func (RegisteredAccount) isRecord()            {}

type Validator struct {
	StashAccount    AccountID
	TSSAccount      AccountID
	X25519PublicKey [32]byte
	Endpoint        string
}

func (v Validator) Kind() Kind         { return KindValidator }
func (v Validator) Identity() [32]byte { return v.StashAccount }
func (Validator) isRecord()            {}
