package pow

import "github.com/pkg/errors"

var (
	ErrAttemptsExhausted = errors.New("mining attempts exhausted")
	ErrNonceSpace        = errors.New("nonce space exhausted")
	ErrInsufficientWork  = errors.New("block hash does not meet prefix")
)
