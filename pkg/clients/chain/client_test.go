package chain_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entropy-status-backend/pkg/clients/chain"
	"entropy-status-backend/pkg/clients/chain/chaintest"
)

var nopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func dial(t *testing.T, node *chaintest.Node, pageSize int) chain.Client {
	t.Helper()

	c, err := chain.NewDialer(node.Start(t), pageSize, nopLogger).Dial(context.Background())
	require.NoError(t, err)
	t.Cleanup(c.Close)

	return c
}

func id(b byte) (out [32]byte) {
	for i := range out {
		out[i] = b
	}
	return
}

func TestDialUnreachable(t *testing.T) {
	_, err := chain.NewDialer("ws://127.0.0.1:1", 0, nopLogger).Dial(context.Background())

	var connErr *chain.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "ws://127.0.0.1:1", connErr.Endpoint)
}

func TestDialWithoutBestBlock(t *testing.T) {
	node := chaintest.NewNode()
	node.DropHead()

	_, err := chain.NewDialer(node.Start(t), 0, nopLogger).Dial(context.Background())

	var connErr *chain.ConnectionError
	require.ErrorAs(t, err, &connErr)
	require.ErrorIs(t, err, chain.ErrNoBlockHash)
}

func TestBlockHash(t *testing.T) {
	node := chaintest.NewNode()
	head := common.HexToHash("0xabcdef")
	node.SetHead(head)

	c := dial(t, node, 0)

	got, err := c.BlockHash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, head, got)
}

func TestScanEmptyMap(t *testing.T) {
	node := chaintest.NewNode()
	node.Put("Relayer", "Registered", id(1), []byte{0x00})

	c := dial(t, node, 4)

	it, err := c.Scan(context.Background(), "Programs", "Programs")
	require.NoError(t, err)

	entries, err := chain.Collect(context.Background(), it)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestScanPagesAtPinnedBlock(t *testing.T) {
	node := chaintest.NewNode()
	first := common.HexToHash("0xaa")
	node.SetHead(first)

	want := make(map[[32]byte][]byte)
	for i := byte(1); i <= 7; i++ {
		value := []byte{i, i}
		node.Put("Programs", "Programs", id(i), value)
		want[id(i)] = value
	}
	node.Put("StakingExtension", "ThresholdServers", id(99), []byte{0x01})

	c := dial(t, node, 3)

	ctx := context.Background()
	it, err := c.Scan(ctx, "Programs", "Programs")
	require.NoError(t, err)
	assert.Equal(t, first, it.At())

	got := make(map[[32]byte][]byte)
	for it.Next(ctx) {
		// The head moves while the scan is in progress; pages must stay on the pinned block.
		node.SetHead(common.HexToHash("0xbb"))

		entry := it.Entry()
		identity, err := entry.Key.Identity()
		require.NoError(t, err)
		got[identity] = entry.Value
	}
	require.NoError(t, it.Err())

	assert.Equal(t, want, got)

	pinned := node.PinnedBlocks()
	require.Len(t, pinned, 3)
	for _, at := range pinned {
		assert.Equal(t, first, at)
	}

	assert.False(t, it.Next(ctx), "iterator must not restart once exhausted")
}

func TestScanLargeValues(t *testing.T) {
	node := chaintest.NewNode()

	const programs = 40
	for i := byte(1); i <= programs; i++ {
		value := make([]byte, 1<<20)
		value[0] = i
		node.Put("Programs", "Programs", id(i), value)
	}

	c := dial(t, node, 0)

	it, err := c.Scan(context.Background(), "Programs", "Programs")
	require.NoError(t, err)

	entries, err := chain.Collect(context.Background(), it)
	require.NoError(t, err)
	require.Len(t, entries, programs)

	for _, entry := range entries {
		identity, err := entry.Key.Identity()
		require.NoError(t, err)
		require.Len(t, entry.Value, 1<<20)
		assert.Equal(t, identity[0], entry.Value[0])
	}

	assert.Len(t, node.PinnedBlocks(), 1)
	assert.LessOrEqual(t, node.LargestValueQuery(), 8)
}

func TestScanExactPageBoundary(t *testing.T) {
	node := chaintest.NewNode()
	for i := byte(1); i <= 4; i++ {
		node.Put("Programs", "Programs", id(i), []byte{i})
	}

	c := dial(t, node, 2)

	it, err := c.Scan(context.Background(), "Programs", "Programs")
	require.NoError(t, err)

	entries, err := chain.Collect(context.Background(), it)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
	assert.Len(t, node.PinnedBlocks(), 3)
}

func TestScanFailureDiscardsPartialResults(t *testing.T) {
	node := chaintest.NewNode()
	for i := byte(1); i <= 5; i++ {
		node.Put("Relayer", "Registered", id(i), []byte{i})
	}
	node.FailKeysPagedAfter(1)

	c := dial(t, node, 2)

	ctx := context.Background()
	it, err := c.Scan(ctx, "Relayer", "Registered")
	require.NoError(t, err)

	entries, err := chain.Collect(ctx, it)
	assert.Nil(t, entries)

	var scanErr *chain.ScanError
	require.ErrorAs(t, err, &scanErr)
	assert.Equal(t, "Relayer", scanErr.Pallet)
	assert.Equal(t, "Registered", scanErr.Item)

	assert.False(t, it.Next(ctx))
}

func TestCall(t *testing.T) {
	node := chaintest.NewNode()
	head := common.HexToHash("0x42")
	node.SetHead(head)

	c := dial(t, node, 0)

	var got common.Hash
	require.NoError(t, c.Call(context.Background(), &got, "chain_getBlockHash"))
	assert.Equal(t, head, got)
}
