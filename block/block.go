// Package block implements the NANO account block model (§4.F): the
// canonical byte layout of legacy and state blocks, lazy hash/signature/
// work caching invalidated on mutation, and JSON (de)serialization that is
// bit-exact with the reference node's `process` RPC input.
package block

import (
	"math/big"
	"sync"

	"github.com/toole-brendan/nanogo/address"
	"github.com/toole-brendan/nanogo/nanoerr"
)

// Kind tags which of the five canonical block variants a Block is. Hashing,
// field requirements, and JSON shape all dispatch on Kind rather than on
// runtime-typed field access.
type Kind int

const (
	// KindState is the universal (modern) block format; its field
	// values, not its Kind, determine whether it behaves as a send,
	// receive, change, or open.
	KindState Kind = iota
	KindSend
	KindReceive
	KindOpen
	KindChange
)

func (k Kind) String() string {
	switch k {
	case KindState:
		return "state"
	case KindSend:
		return "send"
	case KindReceive:
		return "receive"
	case KindOpen:
		return "open"
	case KindChange:
		return "change"
	default:
		return "unknown"
	}
}

// statePreamble is the 32-byte preamble prefixed to a state block's hashing
// bytes: 31 zero bytes followed by the block-type discriminator 0x06.
var statePreamble = func() [32]byte {
	var p [32]byte
	p[31] = 0x06
	return p
}()

// Fields is the external, textual form of a block's values, as a caller
// would supply them: hex hashes, an account address string, and a decimal
// balance. Construct coerces these into canonical byte arrays. Any field
// left as "" is simply not set — a Block may be incomplete.
type Fields struct {
	Account        string // nano_/xrb_ address; required and hashed for state and legacy open; for legacy send/receive/change only the signing account, not hashed
	Previous       string // 64 hex chars; required for state (if not opening), send, receive, change
	Representative string // nano_/xrb_ address; required for state, open, change
	Balance        string // decimal raw amount; required for state, send
	Link           string // 64 hex chars; state only
	LinkAsAccount  string // nano_/xrb_ address view of Link; state only, setting either populates both
	Destination    string // nano_/xrb_ address; legacy send only
	Source         string // 64 hex chars (source block hash); legacy receive/open only
	Signature      string // 128 hex chars
	Work           string // 16 hex chars, big-endian textual

	// PreviousBalance, if supplied, is the account's balance immediately
	// before this block — not a hashed field, but the only way this
	// library (which keeps no ledger state) can tell a state receive
	// from a state send/change for difficulty policy purposes (§4.F).
	PreviousBalance string
	// Epoch opts a block into the epoch V1 difficulty threshold when set
	// to "v1"; any other value (including "") means the modern (V2)
	// policy. The library never infers an epoch on its own.
	Epoch string
}

type fieldFlags struct {
	account, previous, representative, balance, link, destination, source bool
}

// Block is a tagged account block. It is safe for concurrent use: every
// accessor that can be invalidated by a mutation takes the same mutex a
// mutation takes, so readers never observe a hash/signature/work cache that
// is stale with respect to a completed write.
type Block struct {
	mu sync.RWMutex

	kind Kind
	set  fieldFlags

	account        [32]byte
	previous       [32]byte
	representative [32]byte
	balance        *big.Int
	link           [32]byte
	destination    [32]byte
	source         [32]byte

	hasSignature bool
	signature    [64]byte

	hasWork bool
	work    uint64

	difficultyOverride *uint64
	previousBalance    *big.Int
	hasPrevBalance     bool
	legacyEpoch1       bool
	addressPrefix      string

	hashCache      *[32]byte
	validWorkCache *bool
	validSigCache  *bool
}

// New constructs a Block of the given kind from its textual fields. A
// missing required field does not fail construction — it leaves the block
// incomplete, per §4.F — but a malformed *present* field (bad hex, bad
// checksum, non-decimal balance) fails immediately, and the variant tag
// itself is always required.
func New(kind Kind, f Fields) (*Block, error) {
	b := &Block{kind: kind, balance: big.NewInt(0), addressPrefix: address.DefaultPrefix}

	if f.Account != "" {
		pub, err := address.Decode(f.Account)
		if err != nil {
			return nil, nanoerr.Wrap(nanoerr.InvalidBlock, "decoding account", err)
		}
		b.account = pub
		b.set.account = true
	}
	if f.Previous != "" {
		h, err := decodeHash(f.Previous)
		if err != nil {
			return nil, nanoerr.Wrap(nanoerr.InvalidBlock, "decoding previous", err)
		}
		b.previous = h
		b.set.previous = true
	}
	if f.Representative != "" {
		pub, err := address.Decode(f.Representative)
		if err != nil {
			return nil, nanoerr.Wrap(nanoerr.InvalidBlock, "decoding representative", err)
		}
		b.representative = pub
		b.set.representative = true
	}
	if f.Balance != "" {
		bal, err := decodeBalance(f.Balance)
		if err != nil {
			return nil, err
		}
		b.balance = bal
		b.set.balance = true
	}
	if err := applyLink(b, f); err != nil {
		return nil, err
	}
	if f.Destination != "" {
		pub, err := address.Decode(f.Destination)
		if err != nil {
			return nil, nanoerr.Wrap(nanoerr.InvalidBlock, "decoding destination", err)
		}
		b.destination = pub
		b.set.destination = true
	}
	if f.Source != "" {
		h, err := decodeHash(f.Source)
		if err != nil {
			return nil, nanoerr.Wrap(nanoerr.InvalidBlock, "decoding source", err)
		}
		b.source = h
		b.set.source = true
	}
	if f.Signature != "" {
		sig, err := decodeSignature(f.Signature)
		if err != nil {
			return nil, nanoerr.Wrap(nanoerr.InvalidBlock, "decoding signature", err)
		}
		b.signature = sig
		b.hasSignature = true
	}
	if f.Work != "" {
		w, err := decodeWork(f.Work)
		if err != nil {
			return nil, nanoerr.Wrap(nanoerr.InvalidBlock, "decoding work", err)
		}
		b.work = w
		b.hasWork = true
	}
	if f.PreviousBalance != "" {
		bal, err := decodeBalance(f.PreviousBalance)
		if err != nil {
			return nil, err
		}
		b.previousBalance = bal
		b.hasPrevBalance = true
	}
	b.legacyEpoch1 = f.Epoch == "v1"

	return b, nil
}

// applyLink decodes Link and LinkAsAccount: link_as_account and link are two
// views of the same 32 bytes, so setting one populates the other; if both
// are given they must agree.
func applyLink(b *Block, f Fields) error {
	var fromHex, fromAccount [32]byte
	var haveHex, haveAccount bool

	if f.Link != "" {
		h, err := decodeHash(f.Link)
		if err != nil {
			return nanoerr.Wrap(nanoerr.InvalidBlock, "decoding link", err)
		}
		fromHex = h
		haveHex = true
	}
	if f.LinkAsAccount != "" {
		pub, err := address.Decode(f.LinkAsAccount)
		if err != nil {
			return nanoerr.Wrap(nanoerr.InvalidBlock, "decoding link_as_account", err)
		}
		fromAccount = pub
		haveAccount = true
	}

	switch {
	case haveHex && haveAccount:
		if fromHex != fromAccount {
			return nanoerr.New(nanoerr.InvalidBlock, "link and link_as_account disagree")
		}
		b.link = fromHex
	case haveHex:
		b.link = fromHex
	case haveAccount:
		b.link = fromAccount
	default:
		return nil
	}
	b.set.link = true
	return nil
}

// requiredFields reports which of the structural fields (account, previous,
// representative, balance, link, destination, source) this Block's Kind
// requires for completeness. Signature and work are handled separately.
func (k Kind) requiredFields() fieldFlags {
	switch k {
	case KindState:
		return fieldFlags{account: true, representative: true, balance: true, link: true}
	case KindSend:
		return fieldFlags{previous: true, destination: true, balance: true}
	case KindReceive:
		return fieldFlags{previous: true, source: true}
	case KindOpen:
		return fieldFlags{source: true, representative: true, account: true}
	case KindChange:
		return fieldFlags{previous: true, representative: true}
	default:
		return fieldFlags{}
	}
}

func (b *Block) hasRequiredFields() bool {
	req := b.kind.requiredFields()
	if req.account && !b.set.account {
		return false
	}
	if req.previous && !b.set.previous {
		return false
	}
	if req.representative && !b.set.representative {
		return false
	}
	if req.balance && !b.set.balance {
		return false
	}
	if req.link && !b.set.link {
		return false
	}
	if req.destination && !b.set.destination {
		return false
	}
	if req.source && !b.set.source {
		return false
	}
	return true
}

// Kind returns the block's variant.
func (b *Block) Kind() Kind {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.kind
}

// Root returns the 32 bytes fed into proof-of-work: previous if nonzero
// (state, send, receive, change), else account (state opening block, and
// legacy open).
func (b *Block) Root() [32]byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rootLocked()
}

func (b *Block) rootLocked() [32]byte {
	if b.kind == KindOpen {
		return b.account
	}
	if b.previous != ([32]byte{}) {
		return b.previous
	}
	return b.account
}

// invalidateLocked clears every cache derived from field values. Callers
// must already hold b.mu for writing.
func (b *Block) invalidateLocked() {
	b.hashCache = nil
	b.validWorkCache = nil
	b.validSigCache = nil
}

// SetAccount sets the account field, invalidating cached hash/signature/
// work validity. Exists to exercise the "mutating any field invalidates
// caches" invariant (§8 property 7) on an otherwise append-only lifecycle.
func (b *Block) SetAccount(address string) error {
	pub, err := decodeAccount(address)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.account = pub
	b.set.account = true
	b.invalidateLocked()
	return nil
}

// SetBalance sets the balance field from a decimal string, invalidating
// caches.
func (b *Block) SetBalance(decimal string) error {
	bal, err := decodeBalance(decimal)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balance = bal
	b.set.balance = true
	b.invalidateLocked()
	return nil
}

// SetDifficulty overrides the default difficulty policy (§4.F) for this
// block. Passing 0 clears the override and reverts to the default policy.
func (b *Block) SetDifficulty(d uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d == 0 {
		b.difficultyOverride = nil
	} else {
		b.difficultyOverride = &d
	}
	b.invalidateLocked()
	return nil
}

// SetAddressPrefix chooses which prefix (address.DefaultPrefix or
// address.LegacyPrefix) ToDict/MarshalJSON render account-shaped fields
// with. It does not affect hashing, signing, or work — those operate on
// raw public key bytes regardless of prefix.
func (b *Block) SetAddressPrefix(prefix string) error {
	if prefix != address.DefaultPrefix && prefix != address.LegacyPrefix {
		return nanoerr.New(nanoerr.InvalidBlock, "unrecognized address prefix")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.addressPrefix = prefix
	return nil
}

// Account returns the account field, if set.
func (b *Block) Account() ([32]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.account, b.set.account
}

// Balance returns the balance field as a decimal string, if set.
func (b *Block) Balance() (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.set.balance {
		return "", false
	}
	return b.balance.String(), true
}

// Complete reports whether the block has every field its variant requires,
// a verifying signature, and work meeting its difficulty.
func (b *Block) Complete() bool {
	if !b.HasRequiredFields() {
		return false
	}
	return b.HasValidSignature() && b.HasValidWork()
}

// HasRequiredFields reports whether every structural field the block's
// variant needs has been set (independent of signature/work).
func (b *Block) HasRequiredFields() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.hasRequiredFields()
}

func decodeAccount(s string) ([32]byte, error) {
	pub, err := address.Decode(s)
	if err != nil {
		return [32]byte{}, nanoerr.Wrap(nanoerr.InvalidBlock, "decoding account", err)
	}
	return pub, nil
}
