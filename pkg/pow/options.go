package pow

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tcfw/minechain/pkg/block"
)

type Option func(*miner)

// WithHasher sets the digest the search is run against.
func WithHasher(h *block.Hasher) Option {
	return func(m *miner) {
		m.hasher = h
	}
}

// WithMaxAttempts bounds the number of hashes tried per call. 0 means
// no bound.
func WithMaxAttempts(n uint64) Option {
	return func(m *miner) {
		m.maxAttempts = n
	}
}

// WithTimeout bounds the wall time of a call. 0 means no bound.
func WithTimeout(d time.Duration) Option {
	return func(m *miner) {
		m.timeout = d
	}
}

// WithObserver is called with every nonce tried and the hash it gave.
func WithObserver(fn func(nonce uint64, hash string)) Option {
	return func(m *miner) {
		m.observer = fn
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(m *miner) {
		m.logger = l
	}
}
