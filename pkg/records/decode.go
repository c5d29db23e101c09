package records

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"

	"entropy-status-backend/pkg/clients/chain"
	"entropy-status-backend/pkg/scale"
)

var (
	ErrUnknownLocation = errors.New("no decoder registered for storage location")
	ErrInvalidTag      = errors.New("invalid enum variant")
	ErrInvalidUTF8     = errors.New("invalid utf-8")
)

// Location names a storage map by pallet and item.
type Location struct {
	Pallet string
	Item   string
}

func (l Location) String() string {
	return l.Pallet + "." + l.Item
}

var (
	ProgramsLocation   = Location{Pallet: "Programs", Item: "Programs"}
	RegisteredLocation = Location{Pallet: "Relayer", Item: "Registered"}
	ValidatorsLocation = Location{Pallet: "StakingExtension", Item: "ThresholdServers"}
)

type decodeFunc func(identity [32]byte, d *scale.Decoder) (Record, error)

type decoder struct {
	kind   Kind
	decode decodeFunc
}

var table = map[Location]decoder{
	ProgramsLocation:   {kind: KindProgram, decode: decodeProgram},
	RegisteredLocation: {kind: KindRegisteredAccount, decode: decodeRegisteredAccount},
	ValidatorsLocation: {kind: KindValidator, decode: decodeValidator},
}

// DecodeError is attributable to the single entry identified by Identity.
type DecodeError struct {
	Kind     Kind
	Identity [32]byte
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s record 0x%x: %v", e.Kind, e.Identity, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// KindOf resolves the record kind stored at loc. Unknown locations are configuration errors.
func KindOf(loc Location) (Kind, error) {
	dec, ok := table[loc]
	if !ok {
		return 0, fmt.Errorf("%s: %w", loc, ErrUnknownLocation)
	}

	return dec.kind, nil
}

// Decode decodes one entry of the storage map at loc. The identity is always taken from the
// tail of the key, never from the value.
func Decode(loc Location, entry chain.Entry) (Record, error) {
	dec, ok := table[loc]
	if !ok {
		return nil, fmt.Errorf("%s: %w", loc, ErrUnknownLocation)
	}

	identity, err := entry.Key.Identity()
	if err != nil {
		return nil, &DecodeError{Kind: dec.kind, Err: err}
	}

	record, err := dec.decode(identity, scale.NewDecoder(entry.Value))
	if err != nil {
		return nil, &DecodeError{Kind: dec.kind, Identity: identity, Err: err}
	}

	return record, nil
}

// ProgramInfo: bytecode, configuration_interface, deployer, ref_counter.
func decodeProgram(identity [32]byte, d *scale.Decoder) (Record, error) {
	bytecode, err := d.Bytes()
	if err != nil {
		return nil, fmt.Errorf("bytecode: %w", err)
	}

	configuration, err := d.Bytes()
	if err != nil {
		return nil, fmt.Errorf("configuration interface: %w", err)
	}

	deployer, err := d.Fixed32()
	if err != nil {
		return nil, fmt.Errorf("deployer: %w", err)
	}

	refCounter, err := d.U128()
	if err != nil {
		return nil, fmt.Errorf("ref counter: %w", err)
	}

	return Program{
		Hash:         common.Hash(identity),
		Deployer:     deployer,
		RefCounter:   refCounter,
		Size:         len(bytecode),
		Configurable: len(configuration) > 0,
	}, nil
}

// RegisteredInfo: key_visibility, verifying_key, programs_data, program_modification_account.
func decodeRegisteredAccount(identity [32]byte, d *scale.Decoder) (Record, error) {
	tag, err := d.U8()
	if err != nil {
		return nil, fmt.Errorf("key visibility: %w", err)
	}

	visibility := KeyVisibility(tag)
	switch visibility {
	case KeyVisibilityPublic, KeyVisibilityPermissioned:
	case KeyVisibilityPrivate:
		// x25519 key of the private-mode holder, not displayed.
		if _, err = d.Fixed32(); err != nil {
			return nil, fmt.Errorf("key visibility private key: %w", err)
		}
	default:
		return nil, fmt.Errorf("key visibility tag %d: %w", tag, ErrInvalidTag)
	}

	verifyingKey, err := d.Bytes()
	if err != nil {
		return nil, fmt.Errorf("verifying key: %w", err)
	}

	count, err := d.Len()
	if err != nil {
		return nil, fmt.Errorf("programs data: %w", err)
	}

	pointers := make([]common.Hash, 0, count)
	for i := range count {
		pointer, err := d.Fixed32()
		if err != nil {
			return nil, fmt.Errorf("program %d pointer: %w", i, err)
		}

		if _, err = d.Bytes(); err != nil {
			return nil, fmt.Errorf("program %d config: %w", i, err)
		}

		pointers = append(pointers, pointer)
	}

	modificationAccount, err := d.Fixed32()
	if err != nil {
		return nil, fmt.Errorf("program modification account: %w", err)
	}

	return RegisteredAccount{
		AccountID:                  identity,
		KeyVisibility:              visibility,
		VerifyingKey:               verifyingKey,
		ProgramPointers:            pointers,
		ProgramModificationAccount: modificationAccount,
	}, nil
}

// ServerInfo: tss_account, x25519_public_key, endpoint.
func decodeValidator(identity [32]byte, d *scale.Decoder) (Record, error) {
	tssAccount, err := d.Fixed32()
	if err != nil {
		return nil, fmt.Errorf("tss account: %w", err)
	}

	x25519, err := d.Fixed32()
	if err != nil {
		return nil, fmt.Errorf("x25519 public key: %w", err)
	}

	endpoint, err := d.Bytes()
	if err != nil {
		return nil, fmt.Errorf("endpoint: %w", err)
	}

	if !utf8.Valid(endpoint) {
		return nil, fmt.Errorf("endpoint: %w", ErrInvalidUTF8)
	}

	return Validator{
		StashAccount:    identity,
		TSSAccount:      tssAccount,
		X25519PublicKey: x25519,
		Endpoint:        string(endpoint),
	}, nil
}
