package tx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMarshal(t *testing.T) {
	tx := New("42", "Testing a new transaction")

	b, err := tx.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	txRB := &Tx{}

	if err := txRB.Unmarshal(b); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, tx, txRB)
}

func TestNewTimestamp(t *testing.T) {
	before := time.Now().Unix()
	tx := New("1", "now")
	after := time.Now().Unix()

	assert.GreaterOrEqual(t, tx.Ts, before)
	assert.LessOrEqual(t, tx.Ts, after)

	pinned := New("1", "pinned", WithTimestamp(0))
	assert.Equal(t, int64(0), pinned.Ts)

	clock := func() time.Time { return time.Unix(1234, 0) }
	clocked := New("1", "clocked", WithClock(clock))
	assert.Equal(t, int64(1234), clocked.Ts)
}

func TestNewAcceptsEmpty(t *testing.T) {
	tx := New("", "", WithTimestamp(7))

	assert.Equal(t, &Tx{Ts: 7}, tx)
}

func TestUnmarshalGarbage(t *testing.T) {
	tx := &Tx{}

	assert.Error(t, tx.Unmarshal([]byte{0xc1}))
}
