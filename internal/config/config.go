package config

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tcfw/minechain/internal/utils/logging"
)

const (
	Cfg_verbose  = "verbose"
	Cfg_logLevel = "log.level"
)

var (
	defaults = map[string]interface{}{
		Cfg_verbose:  false,
		Cfg_logLevel: "info",
	}
)

func init() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

func GetConfig() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("minechain")
	viper.AddConfigPath("/etc/minechain/")
	viper.AddConfigPath("$HOME/.minechain")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("MINECHAIN")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error
			logging.Entry().Debug("no config found")
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	return build()
}

func build() (*Config, error) {
	c := &Config{}

	var err error
	c.chain, err = buildChainConfig()
	if err != nil {
		return nil, errors.Wrap(err, "chain config")
	}

	c.mining, err = buildMiningConfig()
	if err != nil {
		return nil, errors.Wrap(err, "mining config")
	}

	if err := logging.ParseAndSetLevel(viper.GetString(Cfg_logLevel)); err != nil {
		return nil, err
	}

	if viper.GetBool(Cfg_verbose) {
		logging.SetLevel(logrus.DebugLevel)
		logging.Entry().WithField("level", "debug").Debug("setting log level")
	}

	return c, nil
}

type Config struct {
	chain  *Chain
	mining *Mining
}

func (c *Config) Chain() *Chain {
	return c.chain
}

func (c *Config) Mining() *Mining {
	return c.mining
}
