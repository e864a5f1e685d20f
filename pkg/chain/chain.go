package chain

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tcfw/minechain/pkg/block"
	"github.com/tcfw/minechain/pkg/pow"
	"github.com/tcfw/minechain/pkg/storage"
	"github.com/tcfw/minechain/pkg/tx"
)

// Chain is an append-only sequence of mined blocks starting at a
// genesis block.
type Chain struct {
	mu     sync.RWMutex
	blocks []*block.Block

	prefix    string
	hasher    *block.Hasher
	store     storage.Store
	validator storage.Validator
	logger    *logrus.Entry
	mineOpts  []pow.Option
	genesis   *block.Block
}

// New builds a chain. The genesis block is mined with the chain prefix
// before it becomes the tip, so every block of a chain meets the prefix.
func New(ctx context.Context, opts ...Option) (*Chain, error) {
	c := &Chain{
		prefix: block.DefaultPrefix,
		hasher: block.DefaultHasher,
		logger: logrus.NewEntry(logrus.StandardLogger()),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.store == nil {
		c.store = storage.NewMemStore(c.hasher)
	}
	if c.validator == nil {
		c.validator = storage.NewChainValidator(c.store, c.prefix, c.hasher)
	}

	g := c.genesis
	if g == nil {
		g = block.Genesis()
	}

	if err := c.mine(ctx, g); err != nil {
		return nil, errors.Wrap(err, "mining genesis")
	}

	if err := c.Append(ctx, g); err != nil {
		return nil, errors.Wrap(err, "appending genesis")
	}

	return c, nil
}

func (c *Chain) Prefix() string {
	return c.prefix
}

func (c *Chain) Hasher() *block.Hasher {
	return c.hasher
}

func (c *Chain) mine(ctx context.Context, b *block.Block) error {
	opts := append([]pow.Option{
		pow.WithHasher(c.hasher),
		pow.WithLogger(c.logger),
	}, c.mineOpts...)

	return pow.MineContext(ctx, b, c.prefix, opts...)
}

// Append validates b against the tip and adds a copy of it to the
// chain. Later changes to b do not reach the chain.
func (c *Chain) Append(ctx context.Context, b *block.Block) error {
	b = b.Copy()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.validator.IsBlockValid(ctx, b); err != nil {
		return errors.Wrap(err, "invalid block")
	}

	id, err := c.store.PutBlock(ctx, b)
	if err != nil {
		return errors.Wrap(err, "storing block")
	}

	if err := c.store.UpdateLastApplied(ctx, id); err != nil {
		return errors.Wrap(err, "updating tip")
	}

	c.blocks = append(c.blocks, b)

	c.logger.WithFields(logrus.Fields{
		"block": b.Number,
		"id":    id.String(),
		"txs":   len(b.Txs),
	}).Debug("appended block")

	return nil
}

// MineBlock builds a block of txs on top of the tip, mines it and
// appends it.
func (c *Chain) MineBlock(ctx context.Context, txs []*tx.Tx) (*block.Block, error) {
	b := block.New(txs, c.Tip(), block.WithHasher(c.hasher))

	if err := c.mine(ctx, b); err != nil {
		return nil, err
	}

	if err := c.Append(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (c *Chain) Tip() *block.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.blocks[len(c.blocks)-1].Copy()
}

func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.blocks)
}

// Blocks returns copies of the blocks in chain order.
func (c *Chain) Blocks() []*block.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*block.Block, 0, len(c.blocks))
	for _, b := range c.blocks {
		out = append(out, b.Copy())
	}
	return out
}

// BlockByNumber returns a copy of the first block carrying number n. A
// custom validator may let numbers skip, so the chain is scanned.
func (c *Chain) BlockByNumber(n uint64) (*block.Block, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, b := range c.blocks {
		if b.Number == n {
			return b.Copy(), nil
		}
	}

	return nil, storage.ErrNotFound
}

func (c *Chain) BlockByHash(ctx context.Context, hash string) (*block.Block, error) {
	id, err := c.hasher.IDFromHash(hash)
	if err != nil {
		return nil, err
	}

	return c.store.GetBlock(ctx, id)
}

// FindTx returns the newest tx with the given id and the block
// holding it.
func (c *Chain) FindTx(ctx context.Context, id string) (*tx.Tx, *block.Block, error) {
	b, err := c.store.GetTxBlock(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	for _, t := range b.Txs {
		if t != nil && t.ID == id {
			return t, b, nil
		}
	}

	return nil, nil, storage.ErrNotFound
}

// Verify walks the whole chain checking numbering, hash links and work.
func (c *Chain) Verify() error {
	blocks := c.Blocks()

	for i, b := range blocks {
		if i == 0 {
			if b.Number != block.GenesisNumber || b.PrevHash != block.GenesisPrevHash {
				return errors.Wrapf(storage.ErrBadGenesis, "block %d", b.Number)
			}
		} else {
			prev := blocks[i-1]
			if b.Number != prev.Number+1 {
				return errors.Wrapf(storage.ErrBadNumber, "block %d after %d", b.Number, prev.Number)
			}
			if b.PrevHash != c.hasher.Hash(prev) {
				return errors.Wrapf(storage.ErrBrokenLink, "block %d", b.Number)
			}
		}

		if err := pow.Verify(b, c.prefix, c.hasher); err != nil {
			return err
		}
	}

	return nil
}
