package storage

import (
	"github.com/pkg/errors"
	"github.com/tcfw/minechain/pkg/pow"
)

var (
	ErrNotFound = errors.New("not found")

	ErrBadNumber        = errors.New("block number does not follow tip")
	ErrBrokenLink       = errors.New("previous hash does not match tip")
	ErrBadGenesis       = errors.New("genesis block is malformed")
	ErrInsufficientWork = pow.ErrInsufficientWork
)
