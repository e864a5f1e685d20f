package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tcfw/minechain/internal/config"
	"github.com/tcfw/minechain/internal/utils/logging"
	"github.com/tcfw/minechain/pkg/tx"
)

var (
	mineCmd = &cobra.Command{
		Use:   "mine",
		Short: "Mine blocks carrying the given transactions and print the chain",
		RunE:  runMine,
	}
)

func init() {
	mineCmd.Flags().StringArrayP("tx", "t", []string{}, "transaction in the format ID=details. Can be used multiple times")
	mineCmd.Flags().IntP("per-block", "n", 0, "transactions per block. 0 puts all of them in one block")

	mineCmd.Flags().StringP("prefix", "p", "", "required hash prefix")
	viper.BindPFlag(config.Cfg_chain_prefix, mineCmd.Flags().Lookup("prefix"))
	mineCmd.Flags().String("hash", "", "multihash function name, e.g. sha2-256")
	viper.BindPFlag(config.Cfg_chain_hash, mineCmd.Flags().Lookup("hash"))
	mineCmd.Flags().Uint64("max-attempts", 0, "give up on a block after this many hashes. 0 is unbounded")
	viper.BindPFlag(config.Cfg_mining_maxAttempts, mineCmd.Flags().Lookup("max-attempts"))
	mineCmd.Flags().Duration("timeout", 0, "give up on a block after this long. 0 is unbounded")
	viper.BindPFlag(config.Cfg_mining_timeout, mineCmd.Flags().Lookup("timeout"))
}

func runMine(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	rawTxs, err := cmd.Flags().GetStringArray("tx")
	if err != nil {
		return errors.Wrap(err, "failed to understand flag 'tx'")
	}
	perBlock, _ := cmd.Flags().GetInt("per-block")

	txs, err := parseTxs(rawTxs)
	if err != nil {
		return err
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	c, err := newChain(ctx, cfg)
	if err != nil {
		return err
	}

	for _, batch := range batches(txs, perBlock) {
		b, err := c.MineBlock(ctx, batch)
		if err != nil {
			return errors.Wrap(err, "mining block")
		}

		logging.Entry().WithFields(logging.Fields{
			"block": b.Number,
			"nonce": b.Nonce,
			"txs":   len(b.Txs),
		}).Info("mined block")
	}

	v, err := newChainView(c.Blocks(), c.Hasher(), idBase(cmd))
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), outputFormat(cmd), v)
}

func parseTxs(raw []string) ([]*tx.Tx, error) {
	txs := make([]*tx.Tx, 0, len(raw))

	for _, r := range raw {
		parts := strings.SplitN(r, "=", 2)
		if len(parts) != 2 {
			return nil, errors.Errorf("tx %q should have 2 logical parts", r)
		}
		txs = append(txs, tx.New(parts[0], parts[1]))
	}

	return txs, nil
}

// batches splits txs into blocks of n. A chain always gets at least one
// new block, even with no txs.
func batches(txs []*tx.Tx, n int) [][]*tx.Tx {
	if n <= 0 || len(txs) <= n {
		return [][]*tx.Tx{txs}
	}

	var out [][]*tx.Tx
	for len(txs) > 0 {
		if len(txs) < n {
			n = len(txs)
		}
		out = append(out, txs[:n])
		txs = txs[n:]
	}

	return out
}
