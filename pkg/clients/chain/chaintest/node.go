// Package chaintest provides an in-process fake of the node RPC surface used by the status backend.
package chaintest

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"entropy-status-backend/pkg/clients/chain"
)

var ErrNodeUnavailable = errors.New("node unavailable")

type Node struct {
	mu      sync.Mutex
	head    common.Hash
	entries map[string][]byte

	noHead             bool
	failKeysPagedAfter int
	keysPagedCalls     int
	largestValueQuery  int
	pinned             []common.Hash
}

func NewNode() *Node {
	return &Node{
		head:               common.HexToHash("0x01"),
		entries:            make(map[string][]byte),
		failKeysPagedAfter: -1,
	}
}

// MapKey builds a Blake2_128Concat key of a storage map: prefix ++ blake2b128(id) ++ id.
func MapKey(pallet, item string, id [32]byte) []byte {
	h, _ := blake2b.New(16, nil)
	h.Write(id[:])

	key := chain.StoragePrefix(pallet, item)
	key = h.Sum(key)
	return append(key, id[:]...)
}

func (n *Node) Put(pallet, item string, id [32]byte, value []byte) {
	n.PutRaw(MapKey(pallet, item, id), value)
}

func (n *Node) PutRaw(key, value []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries[string(key)] = value
}

func (n *Node) SetHead(hash common.Hash) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.head = hash
}

// DropHead makes chain_getBlockHash answer null.
func (n *Node) DropHead() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.noHead = true
}

// FailKeysPagedAfter makes every state_getKeysPaged call after the first pages calls fail.
func (n *Node) FailKeysPagedAfter(pages int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failKeysPagedAfter = pages
}

// PinnedBlocks returns the block hash of every page request in call order.
func (n *Node) PinnedBlocks() []common.Hash {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.pinned)
}

// LargestValueQuery returns the most keys requested by a single state_queryStorageAt call.
func (n *Node) LargestValueQuery() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.largestValueQuery
}

func (n *Node) Server(t testing.TB) *rpc.Server {
	srv := rpc.NewServer()
	require.NoError(t, srv.RegisterName("chain", &chainAPI{n: n}))
	require.NoError(t, srv.RegisterName("state", &stateAPI{n: n}))
	t.Cleanup(srv.Stop)
	return srv
}

// Start serves the node over a websocket and returns its ws:// URL.
func (n *Node) Start(t testing.TB) string {
	srv := httptest.NewServer(n.Server(t).WebsocketHandler([]string{"*"}))
	t.Cleanup(srv.Close)
	return strings.Replace(srv.URL, "http", "ws", 1)
}

type chainAPI struct {
	n *Node
}

func (a *chainAPI) GetBlockHash() (*common.Hash, error) {
	a.n.mu.Lock()
	defer a.n.mu.Unlock()

	if a.n.noHead {
		return nil, nil
	}

	head := a.n.head
	return &head, nil
}

type stateAPI struct {
	n *Node
}

func (a *stateAPI) GetKeysPaged(prefix hexutil.Bytes, count int, startKey *hexutil.Bytes, at *common.Hash) ([]hexutil.Bytes, error) {
	a.n.mu.Lock()
	defer a.n.mu.Unlock()

	if a.n.failKeysPagedAfter >= 0 && a.n.keysPagedCalls >= a.n.failKeysPagedAfter {
		return nil, ErrNodeUnavailable
	}
	a.n.keysPagedCalls++

	if at != nil {
		a.n.pinned = append(a.n.pinned, *at)
	}

	var keys []string
	for key := range a.n.entries {
		if !strings.HasPrefix(key, string(prefix)) {
			continue
		}
		if startKey != nil && key <= string(*startKey) {
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)

	out := make([]hexutil.Bytes, 0, min(count, len(keys)))
	for _, key := range keys[:min(count, len(keys))] {
		out = append(out, hexutil.Bytes(key))
	}

	return out, nil
}

type changeSet struct {
	Block   common.Hash         `json:"block"`
	Changes [][2]*hexutil.Bytes `json:"changes"`
}

func (a *stateAPI) QueryStorageAt(keys []hexutil.Bytes, at *common.Hash) ([]changeSet, error) {
	a.n.mu.Lock()
	defer a.n.mu.Unlock()

	a.n.largestValueQuery = max(a.n.largestValueQuery, len(keys))

	set := changeSet{Block: a.n.head}
	if at != nil {
		set.Block = *at
	}

	for _, key := range keys {
		k := bytes.Clone(key)
		var v *hexutil.Bytes
		if value, ok := a.n.entries[string(key)]; ok {
			vb := hexutil.Bytes(value)
			v = &vb
		}
		set.Changes = append(set.Changes, [2]*hexutil.Bytes{(*hexutil.Bytes)(&k), v})
	}

	return []changeSet{set}, nil
}
