package storage

import (
	"context"
	"sync"

	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"
	"github.com/tcfw/minechain/pkg/block"
)

var (
	_ Store = (*MemStore)(nil)
)

// MemStore keeps encoded blocks in memory. Every block gets a bloom
// filter over its tx ids so tx lookups only decode blocks that may
// hold the tx.
type MemStore struct {
	mu sync.RWMutex

	hasher  *block.Hasher
	objects map[cid.Cid][]byte
	blooms  map[cid.Cid][]byte
	order   []cid.Cid

	lastBlock cid.Cid
}

func NewMemStore(h *block.Hasher) *MemStore {
	if h == nil {
		h = block.DefaultHasher
	}

	return &MemStore{
		hasher:    h,
		objects:   make(map[cid.Cid][]byte),
		blooms:    make(map[cid.Cid][]byte),
		lastBlock: cid.Undef,
	}
}

func (m *MemStore) UpdateLastApplied(_ context.Context, id cid.Cid) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[id]; !ok {
		return ErrNotFound
	}

	m.lastBlock = id
	return nil
}

func (m *MemStore) GetLastApplied(ctx context.Context) (*block.Block, error) {
	m.mu.RLock()
	last := m.lastBlock
	m.mu.RUnlock()

	if last == cid.Undef {
		return nil, nil
	}

	return m.GetBlock(ctx, last)
}

func (m *MemStore) PutBlock(_ context.Context, b *block.Block) (cid.Cid, error) {
	d, err := b.Marshal()
	if err != nil {
		return cid.Undef, err
	}

	id := cid.NewCidV1(cid.Raw, m.hasher.Sum(d))

	ids := make([]string, 0, len(b.Txs))
	for _, t := range b.Txs {
		if t == nil {
			continue
		}
		ids = append(ids, t.ID)
	}

	bf, err := MakeBloom(ids)
	if err != nil {
		return cid.Undef, errors.Wrap(err, "creating block bloom filter")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[id]; ok {
		return id, nil
	}

	m.objects[id] = d
	m.blooms[id] = bf
	m.order = append(m.order, id)

	return id, nil
}

func (m *MemStore) getObj(id cid.Cid) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.objects[id]
}

func (m *MemStore) GetBlock(_ context.Context, id cid.Cid) (*block.Block, error) {
	d := m.getObj(id)
	if d == nil {
		return nil, ErrNotFound
	}

	b := &block.Block{}
	if err := b.Unmarshal(d); err != nil {
		return nil, errors.Wrap(err, "unmarshalling ")
	}

	return b, nil
}

func (m *MemStore) GetTxBlock(ctx context.Context, txID string) (*block.Block, error) {
	m.mu.RLock()
	order := make([]cid.Cid, len(m.order))
	copy(order, m.order)
	m.mu.RUnlock()

	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]

		m.mu.RLock()
		bf := m.blooms[id]
		m.mu.RUnlock()

		maybe, err := BloomContains(bf, txID)
		if err != nil {
			return nil, errors.Wrap(err, "reading block bloom filter")
		}
		if !maybe {
			continue
		}

		b, err := m.GetBlock(ctx, id)
		if err != nil {
			return nil, err
		}

		for _, t := range b.Txs {
			if t != nil && t.ID == txID {
				return b, nil
			}
		}
	}

	return nil, ErrNotFound
}

func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.order)
}

func (m *MemStore) Stop() error {
	return nil
}
