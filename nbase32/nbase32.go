// Package nbase32 implements the custom Base32 alphabet the NANO network
// uses for account addresses and their checksums. It is not RFC 4648
// Base32: the alphabet omits 0, 2, l, and v to avoid visual ambiguity, and
// short inputs are left-padded (not right-padded) so every encoding of a
// fixed-width input has a fixed-width output.
package nbase32

import (
	"github.com/kkdai/bstream"

	"github.com/toole-brendan/nanogo/nanoerr"
)

// Alphabet is the canonical 32-character NBase32 alphabet. Index i of this
// string is the character nbase32 emits for the 5-bit value i.
const Alphabet = "13456789abcdefghijkmnopqrstuwxyz"

// reverse maps an alphabet byte back to its 5-bit value, or -1 if the byte
// is not part of the alphabet.
var reverse [256]int8

func init() {
	for i := range reverse {
		reverse[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		reverse[Alphabet[i]] = int8(i)
	}
}

// Encode regroups data's bit stream from 8-bit bytes into 5-bit symbols,
// left-padding with zero bits so the bit stream length is a multiple of 5
// before chunking. The output has ceil(len(data)*8/5) characters; for a
// 32-byte input the leading character is 4 zero padding bits followed by
// the single high payload bit, so its value is only ever 0 or 1.
func Encode(data []byte) string {
	totalBits := len(data) * 8
	pad := (5 - totalBits%5) % 5
	groups := (totalBits + pad) / 5

	w := bstream.New()
	if pad > 0 {
		w.WriteBits(0, pad)
	}
	for _, b := range data {
		w.WriteBits(uint64(b), 8)
	}

	r := bstream.NewBStreamReader(w.Bytes())
	out := make([]byte, groups)
	for i := 0; i < groups; i++ {
		v, err := r.ReadBits(5)
		if err != nil {
			// w.Bytes() was sized exactly for `groups` 5-bit reads;
			// running out here means WriteBits/ReadBits disagree on
			// bit order, which is a programming error, not bad input.
			panic("nbase32: short read while encoding: " + err.Error())
		}
		out[i] = Alphabet[v]
	}
	return string(out)
}

// Decode reverses Encode. Any character outside Alphabet fails with
// nanoerr.ErrBadEncoding.
func Decode(s string) ([]byte, error) {
	w := bstream.New()
	for i := 0; i < len(s); i++ {
		v := reverse[s[i]]
		if v < 0 {
			return nil, nanoerr.New(nanoerr.BadEncoding, "invalid nbase32 character '"+string(s[i])+"'")
		}
		w.WriteBits(uint64(v), 5)
	}

	totalBits := len(s) * 5
	pad := totalBits % 8
	n := totalBits / 8

	r := bstream.NewBStreamReader(w.Bytes())
	if pad > 0 {
		if _, err := r.ReadBits(pad); err != nil {
			return nil, nanoerr.Wrap(nanoerr.BadEncoding, "short read discarding padding bits", err)
		}
	}

	out := make([]byte, n)
	for i := 0; i < n; i++ {
		v, err := r.ReadBits(8)
		if err != nil {
			return nil, nanoerr.Wrap(nanoerr.BadEncoding, "short read decoding payload", err)
		}
		out[i] = byte(v)
	}
	return out, nil
}
