package storage

import (
	"github.com/bits-and-blooms/bloom/v3"
)

const (
	bloomEstimate = 1000
	falsePositive = 0.01
)

// MakeBloom builds a filter over the tx ids of a block.
func MakeBloom(ids []string) ([]byte, error) {
	b := bloom.NewWithEstimates(bloomEstimate, falsePositive)

	for _, id := range ids {
		b.AddString(id)
	}

	return b.GobEncode()
}

func BloomContains(b []byte, id string) (bool, error) {
	bloom := bloom.NewWithEstimates(bloomEstimate, falsePositive)

	if err := bloom.GobDecode(b); err != nil {
		return false, err
	}

	return bloom.TestString(id), nil
}
