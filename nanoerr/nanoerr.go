// Package nanoerr defines the error taxonomy shared by every nanogo
// package. Errors are sentinel values grouped by kind so callers can test
// with errors.Is rather than matching on message text, mirroring the
// ErrInvalidAddress / ErrUnsupportedAddressType pattern used throughout the
// addresses package this library was adapted from.
package nanoerr

import "errors"

// Kind identifies the taxonomy bucket a nanogo error belongs to. It is
// exported so a caller can test nanoerr.Of(err, nanoerr.InvalidBlock)
// without caring which package raised the error.
type Kind int

const (
	// InvalidAccount covers a malformed address: bad checksum, bad
	// alphabet character, wrong prefix, or wrong length.
	InvalidAccount Kind = iota
	// InvalidPublicKey covers a public key of the wrong length or that
	// is not valid hex.
	InvalidPublicKey
	// InvalidPrivateKey covers a private key of the wrong length or
	// that is not valid hex.
	InvalidPrivateKey
	// InvalidSeed covers a seed of the wrong length or that is not
	// valid hex.
	InvalidSeed
	// InvalidBlock covers a missing required field or an internally
	// inconsistent field value (e.g. a negative balance).
	InvalidBlock
	// InvalidSignature covers a signature of the wrong length, or one
	// that fails to verify against the derived public key at sign time.
	InvalidSignature
	// InvalidWork covers work bytes of the wrong length, or a work
	// value that does not meet the configured difficulty threshold.
	InvalidWork
	// InvalidDifficulty covers a zero threshold or a non-positive
	// multiplier.
	InvalidDifficulty
	// BadEncoding covers a Base32 or hex decode failure.
	BadEncoding
	// Cancelled covers a proof-of-work search interrupted via its
	// cancellation token.
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case InvalidAccount:
		return "invalid account"
	case InvalidPublicKey:
		return "invalid public key"
	case InvalidPrivateKey:
		return "invalid private key"
	case InvalidSeed:
		return "invalid seed"
	case InvalidBlock:
		return "invalid block"
	case InvalidSignature:
		return "invalid signature"
	case InvalidWork:
		return "invalid work"
	case InvalidDifficulty:
		return "invalid difficulty"
	case BadEncoding:
		return "bad encoding"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown error"
	}
}

// Error wraps a Kind with a human-readable description and, optionally, the
// lower-level cause. errors.Is compares Kind values; errors.As recovers the
// wrapped cause via Unwrap.
type Error struct {
	Kind   Kind
	Reason string
	Cause  error
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Reason
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, someKindSentinel) work by comparing Kind, not
// pointer identity. The sentinels below are *Error values with only Kind
// set, used purely as comparison targets.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error with the given kind and reason.
func New(kind Kind, reason string) error {
	return &Error{Kind: kind, Reason: reason}
}

// Wrap constructs an *Error with the given kind, reason, and cause.
func Wrap(kind Kind, reason string, cause error) error {
	return &Error{Kind: kind, Reason: reason, Cause: cause}
}

// Sentinels usable directly with errors.Is, e.g.
// errors.Is(err, nanoerr.ErrInvalidWork).
var (
	ErrInvalidAccount    = &Error{Kind: InvalidAccount}
	ErrInvalidPublicKey  = &Error{Kind: InvalidPublicKey}
	ErrInvalidPrivateKey = &Error{Kind: InvalidPrivateKey}
	ErrInvalidSeed       = &Error{Kind: InvalidSeed}
	ErrInvalidBlock      = &Error{Kind: InvalidBlock}
	ErrInvalidSignature  = &Error{Kind: InvalidSignature}
	ErrInvalidWork       = &Error{Kind: InvalidWork}
	ErrInvalidDifficulty = &Error{Kind: InvalidDifficulty}
	ErrBadEncoding       = &Error{Kind: BadEncoding}
	ErrCancelled         = &Error{Kind: Cancelled}
)

// Of reports whether err's Kind matches kind.
func Of(err error, kind Kind) bool {
	return errors.Is(err, &Error{Kind: kind})
}
