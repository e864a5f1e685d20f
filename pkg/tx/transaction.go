package tx

import (
	"time"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Tx is a record carried by a block. It is never mutated once built.
type Tx struct {
	ID      string `msgpack:"i"`
	Ts      int64  `msgpack:"t"`
	Details string `msgpack:"d"`
}

type Option func(*options)

type options struct {
	clock func() time.Time
	ts    *int64
}

// WithTimestamp pins the tx timestamp (seconds since epoch).
func WithTimestamp(ts int64) Option {
	return func(o *options) {
		o.ts = &ts
	}
}

// WithClock replaces the wall clock used when no timestamp is pinned.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// New builds a tx. The id and details are taken as is; uniqueness of
// ids is left to the caller.
func New(id, details string, opts ...Option) *Tx {
	o := &options{clock: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	t := &Tx{
		ID:      id,
		Details: details,
	}

	if o.ts != nil {
		t.Ts = *o.ts
	} else {
		t.Ts = o.clock().Unix()
	}

	return t
}

func (t *Tx) Marshal() ([]byte, error) {
	b, err := msgpack.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(err, "mashaling tx")
	}

	return b, nil
}

func (t *Tx) Unmarshal(b []byte) error {
	if err := msgpack.Unmarshal(b, t); err != nil {
		return errors.Wrap(err, "unmarshaling tx")
	}

	return nil
}
