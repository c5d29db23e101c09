package chain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/prometheus/client_golang/prometheus"
)

const DefaultPageSize = 256

// Caller is the raw remote-procedure handle of a session. *rpc.Client implements it.
type Caller interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
}

type Client interface {
	// Call issues an arbitrary RPC on the session.
	Call(ctx context.Context, result any, method string, args ...any) error
	// BlockHash returns the hash of the current best block.
	BlockHash(ctx context.Context) (common.Hash, error)
	// Scan pins the best block and returns a single-pass iterator over one storage map.
	Scan(ctx context.Context, pallet, item string) (*Iterator, error)
	Close()
}

type client struct {
	rpc      Caller
	closer   func()
	pageSize int
	logger   *slog.Logger
}

func (c *client) Call(ctx context.Context, result any, method string, args ...any) error {
	return c.rpc.CallContext(ctx, result, method, args...)
}

func (c *client) BlockHash(ctx context.Context) (common.Hash, error) {
	var hash *common.Hash
	if err := c.rpc.CallContext(ctx, &hash, "chain_getBlockHash"); err != nil {
		return common.Hash{}, fmt.Errorf("chain_getBlockHash: %w", err)
	}

	if hash == nil {
		return common.Hash{}, ErrNoBlockHash
	}

	return *hash, nil
}

func (c *client) Scan(ctx context.Context, pallet, item string) (*Iterator, error) {
	at, err := c.BlockHash(ctx)
	if err != nil {
		return nil, &ScanError{Pallet: pallet, Item: item, Err: err}
	}

	c.logger.Debug("storage scan pinned",
		slog.String("method", "Scan"),
		slog.String("pallet", pallet),
		slog.String("item", item),
		slog.String("block_hash", at.Hex()))

	return &Iterator{
		client: c,
		pallet: pallet,
		item:   item,
		prefix: StoragePrefix(pallet, item),
		at:     at,
	}, nil
}

func (c *client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

func (c *client) keysPaged(ctx context.Context, prefix []byte, startKey []byte, at common.Hash) ([]hexutil.Bytes, error) {
	var start any
	if startKey != nil {
		start = hexutil.Bytes(startKey)
	}

	var keys []hexutil.Bytes
	if err := c.rpc.CallContext(ctx, &keys, "state_getKeysPaged", hexutil.Bytes(prefix), c.pageSize, start, at); err != nil {
		return nil, fmt.Errorf("state_getKeysPaged: %w", err)
	}

	return keys, nil
}

type storageChangeSet struct {
	Block   common.Hash         `json:"block"`
	Changes [][2]*hexutil.Bytes `json:"changes"`
}

func (c *client) queryStorageAt(ctx context.Context, keys []hexutil.Bytes, at common.Hash) (map[string][]byte, error) {
	var sets []storageChangeSet
	if err := c.rpc.CallContext(ctx, &sets, "state_queryStorageAt", keys, at); err != nil {
		return nil, fmt.Errorf("state_queryStorageAt: %w", err)
	}

	values := make(map[string][]byte, len(keys))
	for _, set := range sets {
		for _, change := range set.Changes {
			if change[0] == nil || change[1] == nil {
				continue
			}
			values[string(*change[0])] = *change[1]
		}
	}

	return values, nil
}

// NewClient wraps an established session. pageSize <= 0 selects DefaultPageSize.
func NewClient(caller Caller, pageSize int, logger *slog.Logger) Client {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &client{
		rpc:      caller,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Dialer opens a fresh session per call. Connections are never retried here.
type Dialer struct {
	endpoint    string
	pageSize    int
	reqCount    *prometheus.CounterVec
	reqDuration *prometheus.HistogramVec
	logger      *slog.Logger
}

func NewDialer(endpoint string, pageSize int, logger *slog.Logger) *Dialer {
	return &Dialer{
		endpoint: endpoint,
		pageSize: pageSize,
		logger:   logger,
	}
}

// WithMetrics instruments every RPC issued by sessions opened after the call.
func (d *Dialer) WithMetrics(reqCount *prometheus.CounterVec, reqDuration *prometheus.HistogramVec) *Dialer {
	d.reqCount = reqCount
	d.reqDuration = reqDuration
	return d
}

func (d *Dialer) Endpoint() string {
	return d.endpoint
}

func (d *Dialer) Dial(ctx context.Context) (Client, error) {
	rpcClient, err := rpc.DialContext(ctx, d.endpoint)
	if err != nil {
		return nil, &ConnectionError{Endpoint: d.endpoint, Err: err}
	}

	var caller Caller = rpcClient
	if d.reqCount != nil && d.reqDuration != nil {
		caller = NewMetrics(d.reqCount, d.reqDuration, caller)
	}

	c := NewClient(caller, d.pageSize, d.logger).(*client)
	c.closer = rpcClient.Close

	// HTTP sessions are lazy, so the handshake is only proven by a first round trip.
	if _, err = c.BlockHash(ctx); err != nil {
		c.Close()
		return nil, &ConnectionError{Endpoint: d.endpoint, Err: err}
	}

	return c, nil
}
