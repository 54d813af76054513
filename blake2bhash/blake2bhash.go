// Package blake2bhash wraps golang.org/x/crypto/blake2b with the fixed
// output lengths the NANO protocol uses: 5 bytes (address checksums), 8
// bytes (proof-of-work digests), 32 bytes (block hashes, private key
// derivation), and 64 bytes (reserved for callers that need a full-width
// digest). It never substitutes Blake2s or Blake2bp — the reference network
// is bit-exact Blake2b per RFC 7693, keyless, unsalted.
package blake2bhash

import "golang.org/x/crypto/blake2b"

// Sizes the reference network is known to request. Any other size in
// [1, 64] also works through Sum, these are just the named conveniences
// used elsewhere in this module.
const (
	SizeChecksum = 5
	SizeWork     = 8
	SizeHash     = 32
	SizeWide     = 64
)

// Sum hashes the concatenation of parts with a Blake2b digest of the given
// output length. size must be in [1, 64]; size is controlled entirely by
// this module's own callers, so a bad value indicates a programming error
// and Sum panics rather than returning an error.
func Sum(size int, parts ...[]byte) []byte {
	h, err := blake2b.New(size, nil)
	if err != nil {
		panic("blake2bhash: " + err.Error())
	}
	for _, p := range parts {
		h.Write(p) //nolint:errcheck // hash.Hash.Write never fails
	}
	return h.Sum(nil)
}

// Sum5 returns a 5-byte Blake2b digest, used for account address checksums.
func Sum5(parts ...[]byte) []byte { return Sum(SizeChecksum, parts...) }

// Sum8 returns an 8-byte Blake2b digest, used for proof-of-work values.
func Sum8(parts ...[]byte) []byte { return Sum(SizeWork, parts...) }

// Sum32 returns a 32-byte Blake2b digest, used for block hashes and private
// key derivation.
func Sum32(parts ...[]byte) []byte { return Sum(SizeHash, parts...) }

// Sum64 returns a 64-byte Blake2b digest.
func Sum64(parts ...[]byte) []byte { return Sum(SizeWide, parts...) }
