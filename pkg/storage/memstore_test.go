package storage

import (
	"context"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/tcfw/minechain/pkg/block"
	"github.com/tcfw/minechain/pkg/tx"
)

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore(nil)

	obj := block.Genesis()

	id, err := m.PutBlock(ctx, obj)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, block.DefaultHasher.ID(obj), id)

	b, err := m.GetBlock(ctx, id)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, obj, b)

	//same content, same id
	again, err := m.PutBlock(ctx, obj)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, id, again)
	assert.Equal(t, 1, m.Len())

	_, err = m.GetBlock(ctx, cid.Undef)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreLastApplied(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore(nil)

	last, err := m.GetLastApplied(ctx)
	assert.NoError(t, err)
	assert.Nil(t, last)

	g := block.Genesis()
	id, err := m.PutBlock(ctx, g)
	if err != nil {
		t.Fatal(err)
	}

	assert.ErrorIs(t, m.UpdateLastApplied(ctx, cid.Undef), ErrNotFound)

	if err := m.UpdateLastApplied(ctx, id); err != nil {
		t.Fatal(err)
	}

	last, err = m.GetLastApplied(ctx)
	assert.NoError(t, err)
	assert.Equal(t, g, last)
}

func TestMemStoreTxBlock(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore(nil)

	g := block.Genesis()
	b1 := block.New([]*tx.Tx{tx.New("a", "one"), tx.New("b", "two")}, g)
	b2 := block.New([]*tx.Tx{tx.New("a", "again")}, b1)

	for _, b := range []*block.Block{g, b1, b2} {
		if _, err := m.PutBlock(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	found, err := m.GetTxBlock(ctx, "b")
	assert.NoError(t, err)
	assert.Equal(t, b1, found)

	//newest block wins when ids repeat
	found, err = m.GetTxBlock(ctx, "a")
	assert.NoError(t, err)
	assert.Equal(t, b2, found)

	found, err = m.GetTxBlock(ctx, block.GenesisTxID)
	assert.NoError(t, err)
	assert.Equal(t, g, found)

	_, err = m.GetTxBlock(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreHasher(t *testing.T) {
	h, err := block.NewHasher("sha3-256")
	if err != nil {
		t.Fatal(err)
	}

	m := NewMemStore(h)
	g := block.Genesis()

	id, err := m.PutBlock(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, h.ID(g), id)
	assert.NotEqual(t, block.DefaultHasher.ID(g), id)
}
