package pow

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tcfw/minechain/pkg/block"
)

// cancelCheckInterval is how many attempts pass between context checks.
const cancelCheckInterval = 1024

type miner struct {
	hasher      *block.Hasher
	maxAttempts uint64
	timeout     time.Duration
	observer    func(uint64, string)
	logger      *logrus.Entry
}

func newMiner(opts []Option) *miner {
	m := &miner{
		hasher: block.DefaultHasher,
		logger: logrus.NewEntry(logrus.StandardLogger()),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Mine searches upward from the block's current nonce until its hash
// starts with prefix. It does not return until it succeeds. Bounds set
// through options are ignored.
func Mine(b *block.Block, prefix string, opts ...Option) {
	m := newMiner(opts)
	m.maxAttempts = 0

	if err := m.run(context.Background(), b, prefix); err != nil {
		panic(err)
	}
}

// MineContext runs the same search as Mine but gives up when ctx is
// done, when the timeout or attempt bound is hit, or when the nonce
// would wrap. On such an exit the nonce is left at the next untried
// value, so calling again resumes the search.
func MineContext(ctx context.Context, b *block.Block, prefix string, opts ...Option) error {
	m := newMiner(opts)

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	return m.run(ctx, b, prefix)
}

func (m *miner) run(ctx context.Context, b *block.Block, prefix string) error {
	trace := m.logger.Logger.IsLevelEnabled(logrus.TraceLevel)
	start := b.Nonce

	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "mining block %d", b.Number)
	}

	var attempts uint64
	for {
		hash := m.hasher.Hash(b)

		if trace {
			m.logger.WithFields(logrus.Fields{"block": b.Number, "nonce": b.Nonce}).Trace("mining attempt")
		}
		if m.observer != nil {
			m.observer(b.Nonce, hash)
		}

		if block.IsValid(hash, prefix) {
			m.logger.WithFields(logrus.Fields{
				"block":    b.Number,
				"nonce":    b.Nonce,
				"attempts": attempts + 1,
				"hash":     hash,
			}).Debug("block mined")
			return nil
		}

		if b.Nonce == math.MaxUint64 {
			return errors.Wrapf(ErrNonceSpace, "block %d from nonce %d", b.Number, start)
		}

		b.Nonce++
		attempts++

		if m.maxAttempts > 0 && attempts >= m.maxAttempts {
			return errors.Wrapf(ErrAttemptsExhausted, "block %d after %d attempts", b.Number, attempts)
		}

		if attempts%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return errors.Wrapf(ctx.Err(), "mining block %d", b.Number)
			default:
			}
		}
	}
}

// Verify checks that b already satisfies prefix.
func Verify(b *block.Block, prefix string, h *block.Hasher) error {
	if h == nil {
		h = block.DefaultHasher
	}

	hash := h.Hash(b)
	if !block.IsValid(hash, prefix) {
		return errors.Wrapf(ErrInsufficientWork, "block %d hash %s prefix %q", b.Number, hash, prefix)
	}

	return nil
}
