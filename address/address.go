// Package address implements the NANO account address codec (§4.C): a
// public key, a Blake2b checksum, and a human-readable prefix, all encoded
// through the custom alphabet in package nbase32. It is deliberately not a
// bech32 or base58 address — reusing either encoder here would produce
// strings no reference node would accept.
package address

import (
	"strings"

	"github.com/toole-brendan/nanogo/blake2bhash"
	"github.com/toole-brendan/nanogo/keys"
	"github.com/toole-brendan/nanogo/nanoerr"
	"github.com/toole-brendan/nanogo/nbase32"
)

// DefaultPrefix is the prefix Encode emits unless told otherwise.
const DefaultPrefix = "nano_"

// LegacyPrefix is accepted on decode and may be requested on encode for
// compatibility with older tooling.
const LegacyPrefix = "xrb_"

const (
	payloadLen  = 52 // nbase32(32-byte public key)
	checksumLen = 8  // nbase32(5-byte checksum)
)

var acceptedPrefixes = []string{DefaultPrefix, LegacyPrefix}

// Checksum returns reverse(blake2b(pub, out_len=5)), the 5 raw bytes an
// address's trailing 8 nbase32 characters encode. Byte reversal is
// mandatory: the reference network computes checksums this way, not as a
// plain Blake2b digest.
func Checksum(pub [keys.PublicKeySize]byte) [blake2bhash.SizeChecksum]byte {
	sum := blake2bhash.Sum5(pub[:])
	var out [blake2bhash.SizeChecksum]byte
	for i, b := range sum {
		out[len(sum)-1-i] = b
	}
	return out
}

// Encode renders pub as a NANO account address under prefix (DefaultPrefix
// or LegacyPrefix; an empty prefix means DefaultPrefix).
func Encode(pub [keys.PublicKeySize]byte, prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	checksum := Checksum(pub)
	return prefix + nbase32.Encode(pub[:]) + nbase32.Encode(checksum[:])
}

// Decode parses address into its 32-byte public key, verifying the prefix
// and the checksum. Prefix may be DefaultPrefix or LegacyPrefix on input
// regardless of which one Encode was called with.
func Decode(address string) ([keys.PublicKeySize]byte, error) {
	var pub [keys.PublicKeySize]byte

	var rest string
	matched := false
	for _, p := range acceptedPrefixes {
		if strings.HasPrefix(address, p) {
			rest = address[len(p):]
			matched = true
			break
		}
	}
	if !matched {
		return pub, nanoerr.New(nanoerr.InvalidAccount, "unrecognized prefix")
	}
	if len(rest) != payloadLen+checksumLen {
		return pub, nanoerr.New(nanoerr.InvalidAccount, "wrong address length")
	}
	// The leading payload character holds four zero padding bits and one
	// payload bit, so only '1' (0) or '3' (1) can appear there.
	if rest[0] != '1' && rest[0] != '3' {
		return pub, nanoerr.New(nanoerr.InvalidAccount, "invalid leading payload character")
	}

	payload, err := nbase32.Decode(rest[:payloadLen])
	if err != nil {
		return pub, nanoerr.Wrap(nanoerr.InvalidAccount, "decoding public key payload", err)
	}
	if len(payload) != keys.PublicKeySize {
		return pub, nanoerr.New(nanoerr.InvalidAccount, "decoded public key has wrong length")
	}

	checksumBytes, err := nbase32.Decode(rest[payloadLen:])
	if err != nil {
		return pub, nanoerr.Wrap(nanoerr.InvalidAccount, "decoding checksum", err)
	}
	if len(checksumBytes) != blake2bhash.SizeChecksum {
		return pub, nanoerr.New(nanoerr.InvalidAccount, "decoded checksum has wrong length")
	}

	copy(pub[:], payload)
	want := Checksum(pub)
	for i := range want {
		if want[i] != checksumBytes[i] {
			return pub, nanoerr.New(nanoerr.InvalidAccount, "checksum mismatch")
		}
	}
	return pub, nil
}

// Validate reports whether address is a well-formed, checksum-valid NANO
// account address.
func Validate(address string) bool {
	_, err := Decode(address)
	return err == nil
}
