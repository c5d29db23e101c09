package status

import (
	"github.com/ethereum/go-ethereum/common"

	"entropy-status-backend/pkg/clients/metadata"
	"entropy-status-backend/pkg/identity"
	v1 "entropy-status-backend/pkg/models/api/v1"
	"entropy-status-backend/pkg/records"
	"entropy-status-backend/pkg/utils"
)

func hexValue(b []byte) v1.Value {
	return v1.Value{
		Display: utils.TruncateHex(b),
		Full:    utils.FullHex(b),
	}
}

func programView(p records.Program, m *metadata.Package, ss58Prefix uint16) v1.Program {
	view := v1.Program{
		Hash:         hexValue(p.Hash[:]),
		Deployer:     identity.SS58(p.Deployer, ss58Prefix),
		RefCounter:   "0",
		Size:         utils.FormatSize(uint64(p.Size)),
		SizeBytes:    p.Size,
		Configurable: p.Configurable,
	}

	if p.RefCounter != nil {
		view.RefCounter = p.RefCounter.Dec()
	}

	if m != nil {
		view.Metadata = &v1.ProgramMetadata{
			Name:        m.Name,
			Version:     m.Version,
			Description: m.Description,
			License:     m.License,
			Repository:  m.Repository,
		}
		if image, ok := m.DockerImage(); ok {
			view.Metadata.DockerImage = &image
		}
	}

	return view
}

func accountView(a records.RegisteredAccount, ss58Prefix uint16) v1.RegisteredAccount {
	view := v1.RegisteredAccount{
		AccountID:                  identity.SS58(a.AccountID, ss58Prefix),
		KeyVisibility:              a.KeyVisibility.String(),
		VerifyingKey:               hexValue(a.VerifyingKey),
		ProgramPointers:            make([]v1.Value, 0, len(a.ProgramPointers)),
		ProgramModificationAccount: identity.SS58(a.ProgramModificationAccount, ss58Prefix),
	}

	// Keys that do not parse leave the address empty.
	if addr, err := identity.EthereumAddress(a.VerifyingKey); err == nil {
		view.EthereumAddress = addr.Hex()
	}

	for _, pointer := range a.ProgramPointers {
		view.ProgramPointers = append(view.ProgramPointers, hexValue(pointer[:]))
	}

	return view
}

func validatorView(v records.Validator, ss58Prefix uint16) v1.Validator {
	return v1.Validator{
		StashAccount:    identity.SS58(v.StashAccount, ss58Prefix),
		TSSAccount:      identity.SS58(v.TSSAccount, ss58Prefix),
		X25519PublicKey: hexValue(v.X25519PublicKey[:]),
		Endpoint:        v.Endpoint,
	}
}

func programViews(programs []records.Program, meta map[common.Hash]*metadata.Package, ss58Prefix uint16) []v1.Program {
	views := make([]v1.Program, 0, len(programs))
	for _, p := range programs {
		views = append(views, programView(p, meta[p.Hash], ss58Prefix))
	}
	return views
}
