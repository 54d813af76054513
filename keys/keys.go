// Package keys implements NANO's seed-based key derivation (§4.D) and
// Ed25519 signing (§4.E). Seed derivation uses Blake2b-256; key expansion
// and every EdDSA hash-to-scalar step use Blake2b-512 — NANO's signature
// scheme substitutes Blake2b-512
// for the SHA-512 RFC 8032 specifies, so this package builds the EdDSA
// construction directly from curve operations rather than calling
// crypto/ed25519, which hard-codes SHA-512 and offers no way to swap it.
package keys

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"

	"filippo.io/edwards25519"

	"github.com/toole-brendan/nanogo/blake2bhash"
	"github.com/toole-brendan/nanogo/nanoerr"
)

// SeedSize is the length in bytes of a NANO seed.
const SeedSize = 32

// PrivateKeySize is the length in bytes of a derived private key.
const PrivateKeySize = 32

// PublicKeySize is the length in bytes of an Ed25519 public key.
const PublicKeySize = 32

// SignatureSize is the length in bytes of an Ed25519 signature.
const SignatureSize = 64

// KeyPair is a derived Ed25519 keypair: a 32-byte NANO private key and the
// 32-byte Ed25519 public key it expands to.
type KeyPair struct {
	Private [PrivateKeySize]byte
	Public  [PublicKeySize]byte
}

// GenerateSeed returns 32 fresh random bytes from a CSPRNG, hex-encoded.
func GenerateSeed() (string, error) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return "", nanoerr.Wrap(nanoerr.InvalidSeed, "reading random seed", err)
	}
	return hex.EncodeToString(seed), nil
}

// ValidateSeed reports whether s is 64 hex characters encoding a 32-byte
// seed. GenerateSeed always emits lowercase, but validation accepts either
// case since a seed never appears in the wire JSON formats where case is
// load-bearing.
func ValidateSeed(s string) bool {
	_, err := decodeFixedHex(s, SeedSize)
	return err == nil
}

// DerivePrivateKey computes blake2b_32(seed || big_endian_u32(index)), the
// NANO account private key for the given seed and derivation index.
func DerivePrivateKey(seed [SeedSize]byte, index uint32) [PrivateKeySize]byte {
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], index)
	sum := blake2bhash.Sum32(seed[:], idx[:])
	var out [PrivateKeySize]byte
	copy(out[:], sum)
	return out
}

// expandedScalar derives the clamped Ed25519 signing scalar NANO uses: the
// low 32 bytes of Blake2b-512(priv), clamped per RFC 8032 §5.1.5 step 1
// (with Blake2b-512 standing in for SHA-512 throughout this package).
func expandedScalar(priv [PrivateKeySize]byte) *edwards25519.Scalar {
	h := blake2bhash.Sum64(priv[:])
	return edwards25519.NewScalar().SetBytesWithClamping(h[:32])
}

// noncePrefix returns the high 32 bytes of Blake2b-512(priv), the
// deterministic-nonce prefix RFC 8032 §5.1.6 step 1 mixes with the message
// being signed.
func noncePrefix(priv [PrivateKeySize]byte) []byte {
	h := blake2bhash.Sum64(priv[:])
	return h[32:]
}

// PublicFromPrivate expands a 32-byte NANO private key into its Ed25519
// public key: A = s*B, where s is expandedScalar's clamped signing scalar
// and B is the Ed25519 base point.
func PublicFromPrivate(priv [PrivateKeySize]byte) [PublicKeySize]byte {
	s := expandedScalar(priv)
	A := new(edwards25519.Point).ScalarBaseMult(s)
	var out [PublicKeySize]byte
	copy(out[:], A.Bytes())
	return out
}

// DeriveKeyPair derives the full keypair for seed and index in one step.
func DeriveKeyPair(seed [SeedSize]byte, index uint32) KeyPair {
	priv := DerivePrivateKey(seed, index)
	return KeyPair{Private: priv, Public: PublicFromPrivate(priv)}
}

// DeriveKeyPairHex is the hex-string convenience form of DeriveKeyPair,
// returning (privateKeyHex, publicKeyHex).
func DeriveKeyPairHex(seedHex string, index uint32) (string, string, error) {
	seed, err := decodeFixedHex(seedHex, SeedSize)
	if err != nil {
		return "", "", nanoerr.Wrap(nanoerr.InvalidSeed, "decoding seed", err)
	}
	var seedArr [SeedSize]byte
	copy(seedArr[:], seed)
	kp := DeriveKeyPair(seedArr, index)
	return hex.EncodeToString(kp.Private[:]), hex.EncodeToString(kp.Public[:]), nil
}

// DerivePrivateKeyHex is the hex-string convenience form of
// DerivePrivateKey, returning the private key as 64 lowercase hex chars.
func DerivePrivateKeyHex(seedHex string, index uint32) (string, error) {
	priv, _, err := DeriveKeyPairHex(seedHex, index)
	return priv, err
}

// Sign produces NANO's Ed25519 signature over hash using priv: the EdDSA
// construction of RFC 8032 §5.1.6, with every hash step computed as
// Blake2b-512 rather than SHA-512.
func Sign(priv [PrivateKeySize]byte, hash [32]byte) [SignatureSize]byte {
	s := expandedScalar(priv)
	prefix := noncePrefix(priv)

	A := new(edwards25519.Point).ScalarBaseMult(s)
	pub := A.Bytes()

	rDigest := blake2bhash.Sum64(prefix, hash[:])
	r, err := edwards25519.NewScalar().SetUniformBytes(rDigest)
	if err != nil {
		// Sum64 always returns exactly 64 bytes, the only length
		// SetUniformBytes accepts; a failure here is a programming
		// error, not bad input.
		panic("keys: reducing nonce scalar: " + err.Error())
	}
	R := new(edwards25519.Point).ScalarBaseMult(r)
	rBytes := R.Bytes()

	kDigest := blake2bhash.Sum64(rBytes, pub, hash[:])
	k, err := edwards25519.NewScalar().SetUniformBytes(kDigest)
	if err != nil {
		panic("keys: reducing challenge scalar: " + err.Error())
	}

	S := edwards25519.NewScalar().MultiplyAdd(k, s, r)

	var out [SignatureSize]byte
	copy(out[:32], rBytes)
	copy(out[32:], S.Bytes())
	return out
}

// Verify reports whether sig is a valid Ed25519 signature over hash by pub,
// using the same Blake2b-512 challenge hash Sign computes. Any structural
// failure (malformed point or non-canonical scalar encoding) simply yields
// false — the protocol does not distinguish "malformed signature" from
// "verifies false" at this layer (package block returns
// nanoerr.InvalidSignature only when a signing key does not match the
// block's account).
func Verify(pub [PublicKeySize]byte, hash [32]byte, sig [SignatureSize]byte) bool {
	A, err := new(edwards25519.Point).SetBytes(pub[:])
	if err != nil {
		return false
	}
	S, err := edwards25519.NewScalar().SetCanonicalBytes(sig[32:])
	if err != nil {
		return false
	}

	kDigest := blake2bhash.Sum64(sig[:32], pub[:], hash[:])
	k, err := edwards25519.NewScalar().SetUniformBytes(kDigest)
	if err != nil {
		panic("keys: reducing challenge scalar: " + err.Error())
	}

	minusA := new(edwards25519.Point).Negate(A)
	R := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(k, minusA, S)

	return bytes.Equal(sig[:32], R.Bytes())
}

// ValidatePublicKey reports whether s is 64 hex characters encoding a
// 32-byte Ed25519 public key.
func ValidatePublicKey(s string) bool {
	_, err := decodeFixedHex(s, PublicKeySize)
	return err == nil
}

// ValidatePrivateKey reports whether s is 64 hex characters encoding a
// 32-byte private key.
func ValidatePrivateKey(s string) bool {
	_, err := decodeFixedHex(s, PrivateKeySize)
	return err == nil
}

func decodeFixedHex(s string, n int) ([]byte, error) {
	if len(s) != n*2 {
		return nil, nanoerr.New(nanoerr.BadEncoding, "wrong hex length")
	}
	return hex.DecodeString(s)
}
