package block

import (
	"time"

	"github.com/pkg/errors"
	"github.com/tcfw/minechain/pkg/tx"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	// DefaultPrefix is the hash prefix a block needs unless a caller asks
	// for another one.
	DefaultPrefix = "00"

	GenesisNumber   uint64 = 1
	GenesisPrevHash        = "0"
	GenesisTxID            = "1"
	GenesisDetails         = "This is a dummy transaction as the genesis block has no transactions"
)

// Block groups txs under a sequence number and links them to the
// previous block's hash. Nonce is the only field that changes once a
// block is built, and only while it is being mined.
type Block struct {
	Number   uint64   `msgpack:"n"`
	Ts       int64    `msgpack:"t"`
	Nonce    uint64   `msgpack:"o"`
	Txs      []*tx.Tx `msgpack:"x"`
	PrevHash string   `msgpack:"p"`
}

type Option func(*options)

type options struct {
	clock  func() time.Time
	hasher *Hasher
}

// WithClock replaces the wall clock used for the block timestamp.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithHasher sets the digest used to link a new block to its parent.
func WithHasher(h *Hasher) Option {
	return func(o *options) {
		o.hasher = h
	}
}

func buildOptions(opts []Option) *options {
	o := &options{clock: time.Now, hasher: DefaultHasher}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Genesis returns the first block of a chain. It is not mined.
func Genesis(opts ...Option) *Block {
	o := buildOptions(opts)

	return &Block{
		Number: GenesisNumber,
		Ts:     o.clock().Unix(),
		Txs: []*tx.Tx{
			tx.New(GenesisTxID, GenesisDetails, tx.WithClock(o.clock)),
		},
		PrevHash: GenesisPrevHash,
	}
}

// New builds an unmined block on top of prev. The hash of prev is taken
// now and never revisited, so prev should already be mined.
func New(txs []*tx.Tx, prev *Block, opts ...Option) *Block {
	o := buildOptions(opts)

	return &Block{
		Number:   prev.Number + 1,
		Ts:       o.clock().Unix(),
		Txs:      txs,
		PrevHash: o.hasher.Hash(prev),
	}
}

// Serialize encodes every field of b, nonce included. A block that
// cannot be encoded is a programming error and panics.
func Serialize(b *Block) []byte {
	d, err := b.Marshal()
	if err != nil {
		panic(err)
	}

	return d
}

func (b *Block) Marshal() ([]byte, error) {
	d, err := msgpack.Marshal(b)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling block")
	}

	return d, nil
}

func (b *Block) Unmarshal(d []byte) error {
	if err := msgpack.Unmarshal(d, b); err != nil {
		return errors.Wrap(err, "unmarshaling block")
	}

	return nil
}

// Copy returns a block sharing the (immutable) txs but with its own
// nonce.
func (b *Block) Copy() *Block {
	c := *b
	if b.Txs != nil {
		c.Txs = make([]*tx.Tx, len(b.Txs))
		copy(c.Txs, b.Txs)
	}
	return &c
}
