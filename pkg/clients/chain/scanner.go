package chain

import (
	"context"
	"maps"
	"slices"

	"github.com/ethereum/go-ethereum/common"
)

// Values of one page are requested in chunks of this many keys. Program bytecode runs up to
// about 1 MiB (2 MiB as hex), and websocket responses above 32 MiB are refused by the client.
const valuesPerQuery = 8

// Iterator walks one storage map at a pinned block, a page of keys at a time.
// It is single-pass: once exhausted or failed, Next keeps returning false.
type Iterator struct {
	client *client
	pallet string
	item   string
	prefix []byte
	at     common.Hash

	startKey []byte
	page     []Entry
	pos      int
	done     bool

	cur Entry
	err error
}

// At returns the block hash every entry of the scan is read at.
func (it *Iterator) At() common.Hash {
	return it.at
}

func (it *Iterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}

	for it.pos >= len(it.page) {
		if it.done {
			return false
		}

		if err := it.fetch(ctx); err != nil {
			it.err = &ScanError{Pallet: it.pallet, Item: it.item, Err: err}
			it.page = nil
			it.done = true
			return false
		}
	}

	it.cur = it.page[it.pos]
	it.pos++

	return true
}

// Entry returns the entry Next advanced to.
func (it *Iterator) Entry() Entry {
	return it.cur
}

func (it *Iterator) Err() error {
	return it.err
}

func (it *Iterator) fetch(ctx context.Context) error {
	keys, err := it.client.keysPaged(ctx, it.prefix, it.startKey, it.at)
	if err != nil {
		return err
	}

	it.page = it.page[:0]
	it.pos = 0

	if len(keys) < it.client.pageSize {
		it.done = true
	}

	if len(keys) == 0 {
		return nil
	}

	it.startKey = keys[len(keys)-1]

	values := make(map[string][]byte, len(keys))
	for chunk := range slices.Chunk(keys, valuesPerQuery) {
		chunkValues, err := it.client.queryStorageAt(ctx, chunk, it.at)
		if err != nil {
			return err
		}
		maps.Copy(values, chunkValues)
	}

	// Values are re-attached in key order so entries follow the node's iteration order.
	for _, key := range keys {
		value, ok := values[string(key)]
		if !ok {
			continue
		}
		it.page = append(it.page, Entry{Key: StorageKey(key), Value: value})
	}

	return nil
}

// Collect drains the iterator. On failure no partial result is returned.
func Collect(ctx context.Context, it *Iterator) ([]Entry, error) {
	entries := make([]Entry, 0)
	for it.Next(ctx) {
		entries = append(entries, it.Entry())
	}

	if err := it.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
