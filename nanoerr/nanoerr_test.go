package nanoerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		InvalidAccount:    "invalid account",
		InvalidPublicKey:  "invalid public key",
		InvalidPrivateKey: "invalid private key",
		InvalidSeed:       "invalid seed",
		InvalidBlock:      "invalid block",
		InvalidSignature:  "invalid signature",
		InvalidWork:       "invalid work",
		InvalidDifficulty: "invalid difficulty",
		BadEncoding:       "bad encoding",
		Cancelled:         "cancelled",
		Kind(999):         "unknown error",
	}
	for kind, want := range cases {
		require.Equal(t, want, kind.String())
	}
}

func TestErrorMessage(t *testing.T) {
	err := New(InvalidBlock, "missing account field")
	require.EqualError(t, err, "invalid block: missing account field")

	bare := New(Cancelled, "")
	require.EqualError(t, bare, "cancelled")
}

func TestErrorsIsMatchesKindNotInstance(t *testing.T) {
	err := New(InvalidWork, "work too low")
	require.True(t, errors.Is(err, ErrInvalidWork))
	require.False(t, errors.Is(err, ErrInvalidAccount))
	require.True(t, Of(err, InvalidWork))
	require.False(t, Of(err, InvalidSeed))
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := errors.New("short buffer")
	err := Wrap(BadEncoding, "decoding hash", cause)

	require.True(t, errors.Is(err, ErrBadEncoding))
	require.ErrorIs(t, err, cause)

	var asErr *Error
	require.True(t, errors.As(err, &asErr))
	require.Equal(t, BadEncoding, asErr.Kind)
	require.Equal(t, cause, asErr.Cause)
}
