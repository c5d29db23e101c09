package records

import (
	"errors"
	"fmt"
	"log/slog"

	"entropy-status-backend/pkg/clients/chain"
)

// Policy decides what a malformed entry does to the batch it belongs to.
type Policy string

const (
	// PolicyStrict fails the whole batch on the first malformed entry.
	PolicyStrict Policy = "strict"
	// PolicySkip logs and drops malformed entries.
	PolicySkip Policy = "skip"
)

func (p *Policy) UnmarshalText(text []byte) error {
	switch Policy(text) {
	case PolicyStrict, PolicySkip:
		*p = Policy(text)
		return nil
	}

	return fmt.Errorf("unknown decode policy %q", text)
}

// DecodeAll decodes every entry of a scan in order. Unknown locations fail regardless of policy.
func DecodeAll(loc Location, entries []chain.Entry, policy Policy, logger *slog.Logger) ([]Record, error) {
	if _, err := KindOf(loc); err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(entries))
	for _, entry := range entries {
		record, err := Decode(loc, entry)
		if err == nil {
			out = append(out, record)
			continue
		}

		var decodeErr *DecodeError
		if policy != PolicySkip || !errors.As(err, &decodeErr) {
			return nil, err
		}

		logger.Warn("skipping malformed record",
			slog.String("method", "DecodeAll"),
			slog.String("location", loc.String()),
			slog.String("error", err.Error()))
	}

	return out, nil
}
