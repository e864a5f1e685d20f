package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tcfw/minechain/pkg/block"
	"github.com/tcfw/minechain/pkg/pow"
)

type Validator interface {
	IsBlockValid(context.Context, *block.Block) error
}

// ChainValidator accepts a block only if it extends the last applied
// block of the store and its hash meets the prefix.
type ChainValidator struct {
	s      Store
	prefix string
	hasher *block.Hasher
}

func NewChainValidator(s Store, prefix string, h *block.Hasher) *ChainValidator {
	if h == nil {
		h = block.DefaultHasher
	}

	return &ChainValidator{s, prefix, h}
}

func (v *ChainValidator) IsBlockValid(ctx context.Context, b *block.Block) error {
	tip, err := v.s.GetLastApplied(ctx)
	if err != nil {
		return errors.Wrap(err, "getting tip")
	}

	if tip == nil {
		if err := v.isGenesisValid(b); err != nil {
			return err
		}
	} else if err := v.isLinkValid(b, tip); err != nil {
		return err
	}

	return pow.Verify(b, v.prefix, v.hasher)
}

func (v *ChainValidator) isGenesisValid(b *block.Block) error {
	if b.Number != block.GenesisNumber {
		return errors.Wrapf(ErrBadGenesis, "number %d", b.Number)
	}
	if b.PrevHash != block.GenesisPrevHash {
		return errors.Wrapf(ErrBadGenesis, "previous hash %q", b.PrevHash)
	}

	return nil
}

func (v *ChainValidator) isLinkValid(b, tip *block.Block) error {
	if b.Number != tip.Number+1 {
		return errors.Wrapf(ErrBadNumber, "got %d want %d", b.Number, tip.Number+1)
	}

	if want := v.hasher.Hash(tip); b.PrevHash != want {
		return errors.Wrapf(ErrBrokenLink, "got %s want %s", b.PrevHash, want)
	}

	return nil
}
