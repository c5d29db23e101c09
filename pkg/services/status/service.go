package status

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"entropy-status-backend/pkg/clients/chain"
	"entropy-status-backend/pkg/models"
	v1 "entropy-status-backend/pkg/models/api/v1"
	"entropy-status-backend/pkg/records"
	"entropy-status-backend/pkg/services/enrichment"
)

type dialer interface {
	Dial(ctx context.Context) (chain.Client, error)
	Endpoint() string
}

type enricher interface {
	Enrich(ctx context.Context, programs []records.Program) []enrichment.Result
}

type Config struct {
	NetworkName  string
	SS58Prefix   uint16
	DecodePolicy records.Policy
}

type service struct {
	dialer   dialer
	enricher enricher
	config   Config
	logger   *slog.Logger
}

type Status interface {
	Programs(ctx context.Context) ([]v1.Program, error)
	RegisteredAccounts(ctx context.Context) ([]v1.RegisteredAccount, error)
	Validators(ctx context.Context) ([]v1.Validator, error)
	Snapshot(ctx context.Context) v1.Status
	Endpoint() v1.Endpoint
}

func (s *service) Programs(ctx context.Context) (resp []v1.Program, err error) {
	log := s.logger.With(slog.String("method", "Programs"))

	client, err := s.dialer.Dial(ctx)
	if err != nil {
		err = s.fail(log, "programs", err)
		return
	}
	defer client.Close()

	return s.programs(ctx, log, client)
}

func (s *service) RegisteredAccounts(ctx context.Context) (resp []v1.RegisteredAccount, err error) {
	log := s.logger.With(slog.String("method", "RegisteredAccounts"))

	client, err := s.dialer.Dial(ctx)
	if err != nil {
		err = s.fail(log, "registered accounts", err)
		return
	}
	defer client.Close()

	return s.accounts(ctx, log, client)
}

func (s *service) Validators(ctx context.Context) (resp []v1.Validator, err error) {
	log := s.logger.With(slog.String("method", "Validators"))

	client, err := s.dialer.Dial(ctx)
	if err != nil {
		err = s.fail(log, "validators", err)
		return
	}
	defer client.Close()

	return s.validators(ctx, log, client)
}

// Snapshot aggregates all three kinds over one session. A failed kind carries its error
// message and does not hide the others.
func (s *service) Snapshot(ctx context.Context) (resp v1.Status) {
	log := s.logger.With(slog.String("method", "Snapshot"))

	resp.Endpoint = s.Endpoint()

	client, err := s.dialer.Dial(ctx)
	if err != nil {
		msg := s.fail(log, "chain state", err).Error()
		resp.Programs.Error = msg
		resp.Accounts.Error = msg
		resp.Validators.Error = msg
		return
	}
	defer client.Close()

	var g errgroup.Group
	g.Go(func() error {
		items, err := s.programs(ctx, log, client)
		resp.Programs = kindStatus(items, err)
		return nil
	})
	g.Go(func() error {
		items, err := s.accounts(ctx, log, client)
		resp.Accounts = kindStatus(items, err)
		return nil
	})
	g.Go(func() error {
		items, err := s.validators(ctx, log, client)
		resp.Validators = kindStatus(items, err)
		return nil
	})
	_ = g.Wait()

	return
}

func (s *service) Endpoint() v1.Endpoint {
	return v1.Endpoint{
		Endpoint:    s.dialer.Endpoint(),
		NetworkName: s.config.NetworkName,
	}
}

func (s *service) programs(ctx context.Context, log *slog.Logger, client chain.Client) (resp []v1.Program, err error) {
	recs, err := s.load(ctx, client, records.ProgramsLocation)
	if err != nil {
		err = s.fail(log, "programs", err)
		return
	}

	programs := make([]records.Program, 0, len(recs))
	for _, r := range recs {
		programs = append(programs, r.(records.Program))
	}

	meta := enrichment.ByHash(s.enricher.Enrich(ctx, programs))

	return programViews(programs, meta, s.config.SS58Prefix), nil
}

func (s *service) accounts(ctx context.Context, log *slog.Logger, client chain.Client) (resp []v1.RegisteredAccount, err error) {
	recs, err := s.load(ctx, client, records.RegisteredLocation)
	if err != nil {
		err = s.fail(log, "registered accounts", err)
		return
	}

	resp = make([]v1.RegisteredAccount, 0, len(recs))
	for _, r := range recs {
		resp = append(resp, accountView(r.(records.RegisteredAccount), s.config.SS58Prefix))
	}

	return
}

func (s *service) validators(ctx context.Context, log *slog.Logger, client chain.Client) (resp []v1.Validator, err error) {
	recs, err := s.load(ctx, client, records.ValidatorsLocation)
	if err != nil {
		err = s.fail(log, "validators", err)
		return
	}

	resp = make([]v1.Validator, 0, len(recs))
	for _, r := range recs {
		resp = append(resp, validatorView(r.(records.Validator), s.config.SS58Prefix))
	}

	return
}

func (s *service) load(ctx context.Context, client chain.Client, loc records.Location) ([]records.Record, error) {
	it, err := client.Scan(ctx, loc.Pallet, loc.Item)
	if err != nil {
		return nil, err
	}

	entries, err := chain.Collect(ctx, it)
	if err != nil {
		return nil, err
	}

	recs, err := records.DecodeAll(loc, entries, s.config.DecodePolicy, s.logger)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", loc, err)
	}

	return recs, nil
}

// fail logs the cause and converts it into the single error callers see.
func (s *service) fail(log *slog.Logger, subject string, err error) error {
	log.Error("aggregation failed", slog.String("subject", subject), slog.String("error", err.Error()))

	var (
		connErr   *chain.ConnectionError
		scanErr   *chain.ScanError
		decodeErr *records.DecodeError
	)

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return models.NewAppError(models.ServiceUnavailableCode, "request canceled")
	case errors.As(err, &connErr):
		return models.NewAppError(models.BadGatewayErrorCode, "cannot connect to chain endpoint "+connErr.Endpoint)
	case errors.As(err, &scanErr):
		return models.NewAppError(models.BadGatewayErrorCode, "failed to read "+subject+" from chain")
	case errors.As(err, &decodeErr):
		return models.NewAppError(models.BadGatewayErrorCode, "chain returned malformed "+subject)
	}

	return models.NewAppError(models.InternalServerErrorCode, "internal server error")
}

func kindStatus[T any](items []T, err error) v1.KindStatus[T] {
	if err != nil {
		return v1.KindStatus[T]{Items: []T{}, Error: err.Error()}
	}
	return v1.KindStatus[T]{Items: items}
}

func NewService(dialer dialer, enricher enricher, config Config, logger *slog.Logger) Status {
	if config.SS58Prefix == 0 {
		config.SS58Prefix = 42
	}
	if config.DecodePolicy == "" {
		config.DecodePolicy = records.PolicyStrict
	}

	return &service{
		dialer:   dialer,
		enricher: enricher,
		config:   config,
		logger:   logger,
	}
}
