package cli

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tcfw/minechain/internal/config"
	"github.com/tcfw/minechain/internal/utils/logging"
	"github.com/tcfw/minechain/pkg/chain"
	"github.com/tcfw/minechain/pkg/pow"
)

// newChain builds a chain from the loaded config.
func newChain(ctx context.Context, cfg *config.Config) (*chain.Chain, error) {
	logger := logging.Component("chain")

	mineOpts := append(cfg.Mining().Options(), pow.WithLogger(logger))

	c, err := chain.New(ctx,
		chain.WithPrefix(cfg.Chain().Prefix),
		chain.WithHasher(cfg.Chain().Hasher),
		chain.WithLogger(logger),
		chain.WithMiningOptions(mineOpts...),
	)
	if err != nil {
		return nil, errors.Wrap(err, "initing chain")
	}

	return c, nil
}
