package block

import (
	"encoding/hex"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
)

const DefaultHashName = "sha2-256"

var (
	ErrUnknownHash = errors.New("unknown hash function")
	ErrBadHash     = errors.New("malformed block hash")

	DefaultHasher = &Hasher{code: multihash.SHA2_256}
)

// Hasher computes block digests with a single multihash function.
type Hasher struct {
	code uint64
}

// NewHasher looks up a multihash function by name, e.g. "sha2-256" or
// "sha3-256".
func NewHasher(name string) (*Hasher, error) {
	code, ok := multihash.Names[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrap(ErrUnknownHash, name)
	}

	if _, err := multihash.Sum(nil, code, -1); err != nil {
		return nil, errors.Wrapf(err, "hash function %s", name)
	}

	return &Hasher{code: code}, nil
}

func (h *Hasher) Name() string {
	return multihash.Codes[h.code]
}

// Sum returns the multihash of raw data.
func (h *Hasher) Sum(d []byte) multihash.Multihash {
	mh, err := multihash.Sum(d, h.code, -1)
	if err != nil {
		panic(errors.Wrap(err, "summing block"))
	}

	return mh
}

// Hash returns the hex digest of the serialized block.
func (h *Hasher) Hash(b *Block) string {
	return hex.EncodeToString(digest(h.Sum(Serialize(b))))
}

// ID returns the content id of the block. Its digest is the same one
// Hash renders as hex.
func (h *Hasher) ID(b *Block) cid.Cid {
	return cid.NewCidV1(cid.Raw, h.Sum(Serialize(b)))
}

// IDFromHash converts a hex digest produced by Hash back into the
// block's content id.
func (h *Hasher) IDFromHash(hash string) (cid.Cid, error) {
	d, err := hex.DecodeString(hash)
	if err != nil {
		return cid.Undef, errors.Wrap(ErrBadHash, err.Error())
	}

	mh, err := multihash.Encode(d, h.code)
	if err != nil {
		return cid.Undef, errors.Wrap(ErrBadHash, err.Error())
	}

	if _, err := multihash.Decode(mh); err != nil {
		return cid.Undef, errors.Wrap(ErrBadHash, err.Error())
	}

	return cid.NewCidV1(cid.Raw, mh), nil
}

// HashFromID is the inverse of IDFromHash.
func HashFromID(id cid.Cid) (string, error) {
	dec, err := multihash.Decode(id.Hash())
	if err != nil {
		return "", errors.Wrap(ErrBadHash, err.Error())
	}

	return hex.EncodeToString(dec.Digest), nil
}

func digest(mh multihash.Multihash) []byte {
	dec, err := multihash.Decode(mh)
	if err != nil {
		panic(errors.Wrap(err, "decoding block digest"))
	}

	return dec.Digest
}

// Hash returns the hex digest of b using the default hasher.
func Hash(b *Block) string {
	return DefaultHasher.Hash(b)
}

// IsValid reports whether hash starts with prefix. An empty prefix
// accepts every hash.
func IsValid(hash, prefix string) bool {
	return strings.HasPrefix(hash, prefix)
}
