package enrichment

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"entropy-status-backend/pkg/clients/metadata"
	"entropy-status-backend/pkg/records"
)

const (
	DefaultConcurrency = 3
	DefaultTimeout     = 5 * time.Second
)

// Result pairs a program with its metadata. Metadata is nil when the lookup failed.
type Result struct {
	Program  records.Program
	Metadata *metadata.Package
}

type metadataClient interface {
	GetProgram(ctx context.Context, hash common.Hash) (*metadata.Package, error)
}

type service struct {
	metadata    metadataClient
	concurrency int
	timeout     time.Duration
	inFlight    atomic.Int32
	logger      *slog.Logger
}

type Enrichment interface {
	Enrich(ctx context.Context, programs []records.Program) []Result
	InFlight() int
}

// Enrich looks up metadata for every program with at most concurrency lookups running at once.
// Results come back in completion order, one per program. Lookup failures never fail the batch.
func (s *service) Enrich(ctx context.Context, programs []records.Program) []Result {
	log := s.logger.With(
		slog.String("method", "Enrich"),
		slog.Int("programs", len(programs)),
	)

	results := make(chan Result, len(programs))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, p := range programs {
		g.Go(func() error {
			results <- Result{
				Program:  p,
				Metadata: s.lookup(ctx, log, p.Hash),
			}
			return nil
		})
	}
	_ = g.Wait()
	close(results)

	out := make([]Result, 0, len(programs))
	for r := range results {
		out = append(out, r)
	}

	return out
}

func (s *service) lookup(ctx context.Context, log *slog.Logger, hash common.Hash) *metadata.Package {
	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	p, err := s.metadata.GetProgram(ctx, hash)
	if err != nil {
		log.Warn("program metadata unavailable", slog.String("hash", hash.Hex()), slog.String("error", err.Error()))
		return nil
	}

	return p
}

func (s *service) InFlight() int {
	return int(s.inFlight.Load())
}

// ByHash indexes results by program hash.
func ByHash(results []Result) map[common.Hash]*metadata.Package {
	m := make(map[common.Hash]*metadata.Package, len(results))
	for _, r := range results {
		m[r.Program.Hash] = r.Metadata
	}
	return m
}

func NewService(client metadataClient, concurrency int, timeout time.Duration, logger *slog.Logger) Enrichment {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &service{
		metadata:    client,
		concurrency: concurrency,
		timeout:     timeout,
		logger:      logger,
	}
}
