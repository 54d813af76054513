package block

import (
	"github.com/toole-brendan/nanogo/blake2bhash"
)

// hashingBytes concatenates this block's hashing fields in the canonical
// order for its variant (§3). It does not check completeness — callers
// needing a meaningful hash should check HasRequiredFields first.
func (b *Block) hashingBytes() []byte {
	switch b.kind {
	case KindState:
		bal := balanceBytes16(b.balance)
		out := make([]byte, 0, 32+32+32+32+16+32)
		out = append(out, statePreamble[:]...)
		out = append(out, b.account[:]...)
		out = append(out, b.previous[:]...)
		out = append(out, b.representative[:]...)
		out = append(out, bal[:]...)
		out = append(out, b.link[:]...)
		return out
	case KindSend:
		bal := balanceBytes16(b.balance)
		out := make([]byte, 0, 32+32+16)
		out = append(out, b.previous[:]...)
		out = append(out, b.destination[:]...)
		out = append(out, bal[:]...)
		return out
	case KindReceive:
		out := make([]byte, 0, 64)
		out = append(out, b.previous[:]...)
		out = append(out, b.source[:]...)
		return out
	case KindOpen:
		out := make([]byte, 0, 96)
		out = append(out, b.source[:]...)
		out = append(out, b.representative[:]...)
		out = append(out, b.account[:]...)
		return out
	case KindChange:
		out := make([]byte, 0, 64)
		out = append(out, b.previous[:]...)
		out = append(out, b.representative[:]...)
		return out
	default:
		return nil
	}
}

// Hash returns the block's hash, computing and caching it on first call and
// whenever a mutation has invalidated the cache.
func (b *Block) Hash() [32]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hashLocked()
}

func (b *Block) hashLocked() [32]byte {
	if b.hashCache != nil {
		return *b.hashCache
	}
	sum := blake2bhash.Sum32(b.hashingBytes())
	var h [32]byte
	copy(h[:], sum)
	b.hashCache = &h
	return h
}
