package mock

import (
	"context"

	"github.com/tcfw/minechain/pkg/block"
)

// MockValidator accepts every block.
type MockValidator struct {
	Seen []*block.Block
}

func (m *MockValidator) IsBlockValid(_ context.Context, b *block.Block) error {
	m.Seen = append(m.Seen, b)
	return nil
}
