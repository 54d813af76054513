package blake2bhash

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

func TestSumMatchesUnderlyingBlake2b(t *testing.T) {
	data := []byte("nano proof-of-work")
	h, err := blake2b.New(SizeHash, nil)
	require.NoError(t, err)
	h.Write(data)
	want := h.Sum(nil)

	require.Equal(t, want, Sum32(data))
}

func TestSumConcatenatesParts(t *testing.T) {
	a, b := []byte("part-a"), []byte("part-b")

	got := Sum32(a, b)
	want := Sum32(append(append([]byte{}, a...), b...))
	require.Equal(t, want, got)
}

func TestNamedSizesReturnRequestedLength(t *testing.T) {
	data := []byte("seed material")
	require.Len(t, Sum5(data), SizeChecksum)
	require.Len(t, Sum8(data), SizeWork)
	require.Len(t, Sum32(data), SizeHash)
	require.Len(t, Sum64(data), SizeWide)
}

func TestSumPanicsOnInvalidSize(t *testing.T) {
	require.Panics(t, func() { Sum(0, []byte("x")) })
	require.Panics(t, func() { Sum(65, []byte("x")) })
}

// TestKnownAnswerBlake2b32 pins Sum32 against an independently computed
// Blake2b-256 digest of the empty input, guarding against an accidental
// substitution of Blake2s or Blake2bp.
func TestKnownAnswerBlake2b32(t *testing.T) {
	const emptyBlake2b256 = "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"
	want, err := hex.DecodeString(emptyBlake2b256)
	require.NoError(t, err)
	require.Equal(t, want, Sum32(nil))
}
