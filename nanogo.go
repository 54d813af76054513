// Package nanogo is a client-side library for the NANO cryptocurrency
// protocol: the cryptographic and serialization primitives required to
// construct, sign, and validate account blocks without running a full
// node. It performs no networking, persistence, or consensus — every
// function here is synchronous and produces byte-for-byte artifacts a
// reference node accepts.
//
// The package is a thin facade over blake2bhash, nbase32, address, keys,
// block, and pow; most callers only need the functions declared here plus
// the block.Block type.
package nanogo

import (
	"context"
	"encoding/hex"

	"github.com/toole-brendan/nanogo/address"
	"github.com/toole-brendan/nanogo/block"
	"github.com/toole-brendan/nanogo/keys"
	"github.com/toole-brendan/nanogo/nanoerr"
	"github.com/toole-brendan/nanogo/pow"
)

// Re-exported types so callers importing only the root package have
// everything they need.
type (
	Block  = block.Block
	Fields = block.Fields
	Kind   = block.Kind
)

// Re-exported block kind constants.
const (
	KindState   = block.KindState
	KindSend    = block.KindSend
	KindReceive = block.KindReceive
	KindOpen    = block.KindOpen
	KindChange  = block.KindChange
)

// Default difficulty thresholds, re-exported from package pow.
const (
	DifficultySend    = pow.DifficultySend
	DifficultyReceive = pow.DifficultyReceive
	DifficultyEpoch1  = pow.DifficultyEpoch1
)

// NewBlock constructs a block of the given kind from its textual fields.
func NewBlock(kind Kind, fields Fields) (*Block, error) {
	return block.New(kind, fields)
}

// BlockFromJSON parses a block from its wire JSON form.
func BlockFromJSON(data []byte) (*Block, error) {
	return block.FromJSON(data)
}

// BlockFromDict parses a block from its dictionary form.
func BlockFromDict(m map[string]string) (*Block, error) {
	return block.FromDict(m)
}

// GenerateSeed returns a fresh 32-byte seed from a CSPRNG, hex-encoded.
func GenerateSeed() (string, error) { return keys.GenerateSeed() }

// ValidateSeed reports whether s is a syntactically valid seed.
func ValidateSeed(s string) bool { return keys.ValidateSeed(s) }

// GenerateAccountID derives the account address for (seedHex, index) under
// prefix ("" means address.DefaultPrefix).
func GenerateAccountID(seedHex string, index uint32, prefix string) (string, error) {
	if len(seedHex) != keys.SeedSize*2 {
		return "", nanoerr.New(nanoerr.InvalidSeed, "wrong seed length")
	}
	raw, err := hex.DecodeString(seedHex)
	if err != nil {
		return "", nanoerr.Wrap(nanoerr.InvalidSeed, "decoding seed hex", err)
	}
	var seed [keys.SeedSize]byte
	copy(seed[:], raw)
	kp := keys.DeriveKeyPair(seed, index)
	return address.Encode(kp.Public, prefix), nil
}

// GenerateAccountPrivateKey derives the 64-hex-character private key for
// (seedHex, index).
func GenerateAccountPrivateKey(seedHex string, index uint32) (string, error) {
	return keys.DerivePrivateKeyHex(seedHex, index)
}

// GenerateAccountKeyPair derives (privateKeyHex, publicKeyHex) for
// (seedHex, index).
func GenerateAccountKeyPair(seedHex string, index uint32) (string, string, error) {
	return keys.DeriveKeyPairHex(seedHex, index)
}

// ValidateAccountID reports whether address is a well-formed, checksum-
// valid NANO account address.
func ValidateAccountID(addr string) bool { return address.Validate(addr) }

// ValidatePublicKey reports whether s is a syntactically valid public key.
func ValidatePublicKey(s string) bool { return keys.ValidatePublicKey(s) }

// ValidatePrivateKey reports whether s is a syntactically valid private
// key.
func ValidatePrivateKey(s string) bool { return keys.ValidatePrivateKey(s) }

// DoWork searches for a nonce meeting threshold for blockHash using the
// process-wide proof-of-work pool.
func DoWork(ctx context.Context, blockHash [32]byte, threshold uint64) (uint64, error) {
	return pow.DoWork(ctx, blockHash, threshold)
}

// ValidateWork reports whether work meets threshold for blockHash.
func ValidateWork(blockHash [32]byte, work uint64, threshold uint64) bool {
	return pow.ValidateWork(blockHash, work, threshold)
}

// GetWorkValue returns the work value of work against blockHash.
func GetWorkValue(blockHash [32]byte, work uint64) uint64 {
	return pow.GetWorkValue(blockHash, work)
}

// DeriveWorkMultiplier returns the multiplier that rescales difficulty d
// relative to base.
func DeriveWorkMultiplier(d, base uint64) float64 { return pow.DeriveWorkMultiplier(d, base) }

// DeriveWorkDifficulty returns the difficulty corresponding to multiplier
// relative to base.
func DeriveWorkDifficulty(multiplier float64, base uint64) (uint64, error) {
	return pow.DeriveWorkDifficulty(multiplier, base)
}

// ValidateDifficulty accepts any nonzero threshold.
func ValidateDifficulty(d uint64) error { return pow.ValidateDifficulty(d) }
