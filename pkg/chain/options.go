package chain

import (
	"github.com/sirupsen/logrus"
	"github.com/tcfw/minechain/pkg/block"
	"github.com/tcfw/minechain/pkg/pow"
	"github.com/tcfw/minechain/pkg/storage"
)

type Option func(*Chain) error

// WithPrefix sets the hash prefix every block of the chain must meet.
func WithPrefix(p string) Option {
	return func(c *Chain) error {
		c.prefix = p
		return nil
	}
}

func WithHasher(h *block.Hasher) Option {
	return func(c *Chain) error {
		c.hasher = h
		return nil
	}
}

func WithStore(s storage.Store) Option {
	return func(c *Chain) error {
		c.store = s
		return nil
	}
}

func WithValidator(v storage.Validator) Option {
	return func(c *Chain) error {
		c.validator = v
		return nil
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(c *Chain) error {
		c.logger = l
		return nil
	}
}

// WithMiningOptions are passed to every mining call the chain makes.
func WithMiningOptions(opts ...pow.Option) Option {
	return func(c *Chain) error {
		c.mineOpts = append(c.mineOpts, opts...)
		return nil
	}
}

// WithGenesis starts the chain from g instead of a fresh genesis. If g
// does not meet the prefix yet it is mined.
func WithGenesis(g *block.Block) Option {
	return func(c *Chain) error {
		c.genesis = g
		return nil
	}
}
