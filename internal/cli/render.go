package cli

import (
	"encoding/json"
	"io"

	"github.com/multiformats/go-multibase"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tcfw/minechain/pkg/block"
	"gopkg.in/yaml.v3"
)

const (
	outputYAML = "yaml"
	outputJSON = "json"
)

type txView struct {
	ID        string `yaml:"id" json:"id"`
	Timestamp int64  `yaml:"timestamp" json:"timestamp"`
	Details   string `yaml:"details" json:"details"`
}

type blockView struct {
	Number       uint64   `yaml:"number" json:"number"`
	ID           string   `yaml:"id" json:"id"`
	Hash         string   `yaml:"hash" json:"hash"`
	PreviousHash string   `yaml:"previousHash" json:"previousHash"`
	Timestamp    int64    `yaml:"timestamp" json:"timestamp"`
	Nonce        uint64   `yaml:"nonce" json:"nonce"`
	Transactions []txView `yaml:"transactions" json:"transactions"`
}

type chainView struct {
	Length int         `yaml:"length" json:"length"`
	Blocks []blockView `yaml:"blocks" json:"blocks"`
}

func newBlockView(b *block.Block, h *block.Hasher, base string) (*blockView, error) {
	enc, err := multibase.EncoderByName(base)
	if err != nil {
		return nil, errors.Wrap(err, "id encoding")
	}

	v := &blockView{
		Number:       b.Number,
		ID:           h.ID(b).Encode(enc),
		Hash:         h.Hash(b),
		PreviousHash: b.PrevHash,
		Timestamp:    b.Ts,
		Nonce:        b.Nonce,
		Transactions: make([]txView, 0, len(b.Txs)),
	}

	for _, t := range b.Txs {
		if t == nil {
			continue
		}
		v.Transactions = append(v.Transactions, txView{
			ID:        t.ID,
			Timestamp: t.Ts,
			Details:   t.Details,
		})
	}

	return v, nil
}

func newChainView(blocks []*block.Block, h *block.Hasher, base string) (*chainView, error) {
	v := &chainView{
		Length: len(blocks),
		Blocks: make([]blockView, 0, len(blocks)),
	}

	for _, b := range blocks {
		bv, err := newBlockView(b, h, base)
		if err != nil {
			return nil, err
		}
		v.Blocks = append(v.Blocks, *bv)
	}

	return v, nil
}

func render(w io.Writer, format string, v interface{}) error {
	switch format {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return enc.Close()
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "encoding json")
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}

func outputFormat(cmd *cobra.Command) string {
	f, _ := cmd.Flags().GetString(flagOutput)
	return f
}

func idBase(cmd *cobra.Command) string {
	b, _ := cmd.Flags().GetString(flagIDBase)
	return b
}
