package block

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/toole-brendan/nanogo/nanoerr"
)

// maxBalance is 2^128 - 1, the largest raw amount a balance field may hold.
var maxBalance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

func decodeHash(s string) ([32]byte, error) {
	var out [32]byte
	if len(s) != 64 {
		return out, nanoerr.New(nanoerr.BadEncoding, "hash must be 64 hex characters")
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, nanoerr.Wrap(nanoerr.BadEncoding, "decoding hash hex", err)
	}
	copy(out[:], raw)
	return out, nil
}

func decodeSignature(s string) ([64]byte, error) {
	var out [64]byte
	if len(s) != 128 {
		return out, nanoerr.New(nanoerr.BadEncoding, "signature must be 128 hex characters")
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, nanoerr.Wrap(nanoerr.BadEncoding, "decoding signature hex", err)
	}
	copy(out[:], raw)
	return out, nil
}

// decodeWork parses the 16-character big-endian textual form of a work
// value. It is the plain hex representation of the uint64 — the
// little-endian byte order only applies to the bytes fed into the
// proof-of-work hash, never to this textual form.
func decodeWork(s string) (uint64, error) {
	if len(s) != 16 {
		return 0, nanoerr.New(nanoerr.BadEncoding, "work must be 16 hex characters")
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return 0, nanoerr.Wrap(nanoerr.BadEncoding, "decoding work hex", err)
	}
	var v uint64
	for _, b := range raw {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

func encodeWork(w uint64) string {
	var raw [8]byte
	for i := 7; i >= 0; i-- {
		raw[i] = byte(w)
		w >>= 8
	}
	return hex.EncodeToString(raw[:])
}

// decodeBalance parses a decimal raw amount, rejecting negative values,
// fractional text, and anything exceeding 2^128-1.
func decodeBalance(s string) (*big.Int, error) {
	if s == "" || strings.ContainsAny(s, ".eE") {
		return nil, nanoerr.New(nanoerr.InvalidBlock, "balance must be an exact decimal integer")
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, nanoerr.New(nanoerr.InvalidBlock, "balance is not a valid decimal integer")
	}
	if v.Sign() < 0 {
		return nil, nanoerr.New(nanoerr.InvalidBlock, "balance must not be negative")
	}
	if v.Cmp(maxBalance) > 0 {
		return nil, nanoerr.New(nanoerr.InvalidBlock, "balance exceeds 2^128-1")
	}
	return v, nil
}

// balanceBytes16 renders v as 16 big-endian bytes, as required by the
// hashing layout for state and send blocks.
func balanceBytes16(v *big.Int) [16]byte {
	var out [16]byte
	v.FillBytes(out[:])
	return out
}
