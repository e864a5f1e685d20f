package storage

import (
	"context"

	"github.com/ipfs/go-cid"
	"github.com/tcfw/minechain/pkg/block"
)

// Store keeps the blocks of a chain addressed by their content id.
type Store interface {
	PutBlock(context.Context, *block.Block) (cid.Cid, error)
	GetBlock(context.Context, cid.Cid) (*block.Block, error)

	// GetTxBlock returns the newest block holding a tx with the given id
	GetTxBlock(context.Context, string) (*block.Block, error)

	UpdateLastApplied(context.Context, cid.Cid) error
	GetLastApplied(context.Context) (*block.Block, error)

	Stop() error
}
