package enrichment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entropy-status-backend/pkg/clients/metadata"
	"entropy-status-backend/pkg/records"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeClient struct {
	fn func(ctx context.Context, hash common.Hash) (*metadata.Package, error)
}

func (f *fakeClient) GetProgram(ctx context.Context, hash common.Hash) (*metadata.Package, error) {
	return f.fn(ctx, hash)
}

func programs(n int) []records.Program {
	out := make([]records.Program, n)
	for i := range out {
		out[i].Hash = common.BytesToHash([]byte{byte(i + 1)})
	}
	return out
}

func TestEnrichPartialFailure(t *testing.T) {
	input := programs(5)
	failing := map[common.Hash]bool{input[1].Hash: true, input[3].Hash: true}

	client := &fakeClient{fn: func(_ context.Context, hash common.Hash) (*metadata.Package, error) {
		if failing[hash] {
			return nil, errors.New("lookup failed")
		}
		return &metadata.Package{Name: hash.Hex(), Version: "1.0.0"}, nil
	}}

	results := NewService(client, 3, time.Second, discard).Enrich(context.Background(), input)
	require.Len(t, results, 5)

	byHash := ByHash(results)
	require.Len(t, byHash, 5)
	for _, p := range input {
		m, ok := byHash[p.Hash]
		require.True(t, ok)
		if failing[p.Hash] {
			assert.Nil(t, m)
		} else {
			require.NotNil(t, m)
			assert.Equal(t, p.Hash.Hex(), m.Name)
		}
	}
}

func TestEnrichServerErrorForOneProgram(t *testing.T) {
	input := programs(5)
	broken := input[2].Hash.Hex()[2:]

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hash := strings.TrimPrefix(r.URL.Path, "/program/")
		if hash == broken {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"name":"p-` + hash[len(hash)-2:] + `","version":"0.1.0"}`))
	}))
	defer srv.Close()

	results := NewService(metadata.NewClient(srv.URL), 3, time.Second, discard).Enrich(context.Background(), input)
	require.Len(t, results, 5)

	byHash := ByHash(results)
	for i, p := range input {
		if i == 2 {
			assert.Nil(t, byHash[p.Hash])
			continue
		}
		require.NotNil(t, byHash[p.Hash], "program %d", i)
		assert.Equal(t, "0.1.0", byHash[p.Hash].Version)
	}
}

func TestEnrichConcurrencyBound(t *testing.T) {
	release := make(chan struct{})
	var running, peak atomic.Int32

	client := &fakeClient{fn: func(_ context.Context, _ common.Hash) (*metadata.Package, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		<-release
		running.Add(-1)
		return &metadata.Package{Name: "n", Version: "v"}, nil
	}}

	svc := NewService(client, 3, time.Minute, discard)

	var wg sync.WaitGroup
	var results []Result
	wg.Add(1)
	go func() {
		defer wg.Done()
		results = svc.Enrich(context.Background(), programs(10))
	}()

	require.Eventually(t, func() bool {
		return svc.InFlight() == 3
	}, time.Second, time.Millisecond)

	// Slots stay saturated while nothing is released.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 3, svc.InFlight())
	assert.Equal(t, int32(3), running.Load())

	close(release)
	wg.Wait()

	assert.Len(t, results, 10)
	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Equal(t, 0, svc.InFlight())
}

func TestEnrichTimeout(t *testing.T) {
	client := &fakeClient{fn: func(ctx context.Context, _ common.Hash) (*metadata.Package, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}

	start := time.Now()
	results := NewService(client, 3, 20*time.Millisecond, discard).Enrich(context.Background(), programs(4))

	require.Len(t, results, 4)
	for _, r := range results {
		assert.Nil(t, r.Metadata)
	}
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestEnrichCanceled(t *testing.T) {
	client := &fakeClient{fn: func(ctx context.Context, _ common.Hash) (*metadata.Package, error) {
		return nil, ctx.Err()
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewService(client, 3, time.Minute, discard).Enrich(ctx, programs(3))
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Nil(t, r.Metadata)
	}
}

func TestEnrichEmpty(t *testing.T) {
	client := &fakeClient{fn: func(context.Context, common.Hash) (*metadata.Package, error) {
		t.Fatal("unexpected lookup")
		return nil, nil
	}}

	results := NewService(client, 0, 0, discard).Enrich(context.Background(), nil)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}
