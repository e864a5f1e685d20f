package pow

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcfw/minechain/pkg/block"
	"github.com/tcfw/minechain/pkg/tx"
)

// unreachable can never prefix a hex digest.
const unreachable = "g"

func testBlock() *block.Block {
	clock := func() time.Time { return time.Unix(1000, 0) }
	g := block.Genesis(block.WithClock(clock))
	return block.New([]*tx.Tx{tx.New("1", "Testing a new transaction", tx.WithTimestamp(0))}, g, block.WithClock(clock))
}

func TestMineMeetsPrefix(t *testing.T) {
	for _, prefix := range []string{"", "0", "00", "a"} {
		b := testBlock()
		Mine(b, prefix)

		assert.True(t, block.IsValid(block.Hash(b), prefix), "prefix %q", prefix)
	}
}

func TestMineFindsSmallestNonce(t *testing.T) {
	b := testBlock()
	b.Nonce = 7

	var tried []uint64
	var hashes []string
	Mine(b, "00", WithObserver(func(n uint64, h string) {
		tried = append(tried, n)
		hashes = append(hashes, h)
	}))

	require.NotEmpty(t, tried)
	assert.Equal(t, uint64(7), tried[0])
	assert.Equal(t, b.Nonce, tried[len(tried)-1])

	for i := range tried {
		assert.Equal(t, uint64(7)+uint64(i), tried[i])
		if i < len(tried)-1 {
			assert.False(t, block.IsValid(hashes[i], "00"))
		}
	}
	assert.True(t, block.IsValid(hashes[len(hashes)-1], "00"))
}

func TestMineEmptyPrefix(t *testing.T) {
	b := testBlock()

	var calls int
	Mine(b, "", WithObserver(func(uint64, string) { calls++ }))

	assert.Equal(t, uint64(0), b.Nonce)
	assert.Equal(t, 1, calls)
}

func TestMineContextMaxAttempts(t *testing.T) {
	b := testBlock()

	err := MineContext(context.Background(), b, unreachable, WithMaxAttempts(50))

	assert.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.Equal(t, uint64(50), b.Nonce)
}

func TestMineContextResumes(t *testing.T) {
	ref := testBlock()
	Mine(ref, "00")

	b := testBlock()
	for {
		err := MineContext(context.Background(), b, "00", WithMaxAttempts(10))
		if err == nil {
			break
		}
		require.True(t, errors.Is(err, ErrAttemptsExhausted))
	}

	assert.Equal(t, ref.Nonce, b.Nonce)
}

func TestMineContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := testBlock()
	err := MineContext(ctx, b, unreachable)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(0), b.Nonce)
}

func TestMineContextTimeout(t *testing.T) {
	b := testBlock()

	err := MineContext(context.Background(), b, unreachable, WithTimeout(20*time.Millisecond))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, b.Nonce, uint64(0))
}

func TestMineContextNonceSpace(t *testing.T) {
	b := testBlock()
	b.Nonce = math.MaxUint64 - 1

	err := MineContext(context.Background(), b, unreachable)

	assert.ErrorIs(t, err, ErrNonceSpace)
	assert.Equal(t, uint64(math.MaxUint64), b.Nonce)
}

func TestMineWithHasher(t *testing.T) {
	h, err := block.NewHasher("sha3-256")
	if err != nil {
		t.Fatal(err)
	}

	b := testBlock()
	Mine(b, "00", WithHasher(h))

	assert.NoError(t, Verify(b, "00", h))
}

func TestMineLogsAttempts(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)

	b := testBlock()
	var calls int
	Mine(b, "0", WithLogger(logrus.NewEntry(logger)), WithObserver(func(uint64, string) { calls++ }))

	var attempts int
	for _, e := range hook.AllEntries() {
		if e.Message == "mining attempt" {
			attempts++
		}
	}

	assert.Equal(t, calls, attempts)
	assert.Equal(t, "block mined", hook.LastEntry().Message)
}

func TestVerify(t *testing.T) {
	b := testBlock()
	Mine(b, "00")

	assert.NoError(t, Verify(b, "00", nil))

	b.Nonce++
	for block.IsValid(block.Hash(b), "00") {
		b.Nonce++
	}
	assert.ErrorIs(t, Verify(b, "00", nil), ErrInsufficientWork)
}

func TestMineSameResultAtAnyLogLevel(t *testing.T) {
	nonces := map[logrus.Level]uint64{}
	hashes := map[logrus.Level]string{}

	for _, level := range []logrus.Level{logrus.TraceLevel, logrus.InfoLevel} {
		logger, _ := logtest.NewNullLogger()
		logger.SetLevel(level)

		b := testBlock()
		Mine(b, "00", WithLogger(logrus.NewEntry(logger)))

		nonces[level] = b.Nonce
		hashes[level] = block.Hash(b)
	}

	assert.Equal(t, nonces[logrus.TraceLevel], nonces[logrus.InfoLevel])
	assert.Equal(t, hashes[logrus.TraceLevel], hashes[logrus.InfoLevel])
}
