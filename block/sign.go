package block

import (
	"github.com/toole-brendan/nanogo/keys"
	"github.com/toole-brendan/nanogo/nanoerr"
)

// Sign computes the block's hash and signs it with priv, first verifying
// that priv's derived public key matches the block's account field. The
// block mutates only on success: a mismatched key leaves it untouched and
// returns nanoerr.InvalidSignature.
func (b *Block) Sign(priv [keys.PrivateKeySize]byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.set.account {
		return nanoerr.New(nanoerr.InvalidSignature, "account field must be set before signing")
	}
	pub := keys.PublicFromPrivate(priv)
	if pub != b.account {
		return nanoerr.New(nanoerr.InvalidSignature, "private key does not match block account")
	}

	hash := b.hashLocked()
	sig := keys.Sign(priv, hash)
	b.signature = sig
	b.hasSignature = true
	b.validSigCache = nil // hash didn't change; recomputed lazily, cheaply true
	return nil
}

// HasValidSignature reports whether the block's stored signature verifies
// against its account field's public key, caching the result until the
// account, a hashed field, or the signature itself changes.
func (b *Block) HasValidSignature() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasValidSignatureLocked()
}

func (b *Block) hasValidSignatureLocked() bool {
	if b.validSigCache != nil {
		return *b.validSigCache
	}
	ok := b.set.account && b.hasSignature &&
		keys.Verify(b.account, b.hashLocked(), b.signature)
	b.validSigCache = &ok
	return ok
}

// Signature returns the block's signature, if one has been set.
func (b *Block) Signature() ([keys.SignatureSize]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.signature, b.hasSignature
}
