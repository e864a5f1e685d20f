package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/tcfw/minechain/pkg/block"
	"github.com/tcfw/minechain/pkg/pow"
)

type Chain struct {
	Prefix string
	Hasher *block.Hasher
}

type Mining struct {
	MaxAttempts uint64
	Timeout     time.Duration
}

const (
	Cfg_chain_prefix = "chain.prefix"
	Cfg_chain_hash   = "chain.hash"

	Cfg_mining_maxAttempts = "mining.maxAttempts"
	Cfg_mining_timeout     = "mining.timeout"
)

var (
	chainDefaults = map[string]interface{}{
		Cfg_chain_prefix:       block.DefaultPrefix,
		Cfg_chain_hash:         block.DefaultHashName,
		Cfg_mining_maxAttempts: 0,
		Cfg_mining_timeout:     time.Duration(0),
	}
)

func init() {
	for k, v := range chainDefaults {
		viper.SetDefault(k, v)
	}
}

func buildChainConfig() (*Chain, error) {
	c := &Chain{
		Prefix: viper.GetString(Cfg_chain_prefix),
	}

	h, err := block.NewHasher(viper.GetString(Cfg_chain_hash))
	if err != nil {
		return nil, errors.Wrap(err, "chain hash")
	}
	c.Hasher = h

	return c, nil
}

func buildMiningConfig() (*Mining, error) {
	m := &Mining{
		MaxAttempts: viper.GetUint64(Cfg_mining_maxAttempts),
		Timeout:     viper.GetDuration(Cfg_mining_timeout),
	}

	if m.Timeout < 0 {
		return nil, errors.Errorf("negative mining timeout %s", m.Timeout)
	}

	return m, nil
}

// Options turns the mining section into options for pow.
func (m *Mining) Options() []pow.Option {
	return []pow.Option{
		pow.WithMaxAttempts(m.MaxAttempts),
		pow.WithTimeout(m.Timeout),
	}
}
