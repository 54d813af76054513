package address

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/toole-brendan/nanogo/keys"
	"github.com/toole-brendan/nanogo/nanoerr"
	"github.com/toole-brendan/nanogo/nbase32"
)

const (
	knownSeed    = "d290d319ce3c2cbb675b023e5383a767415d7444975a2ea121848fc986954568"
	knownAccount = "nano_1bum9d7gkjcca8n8acbbwiauarffa4i9qgoeey59t4t8cpffimupua6wr99u"
)

func derivedPublic(t *testing.T, seedHex string, index uint32) [keys.PublicKeySize]byte {
	t.Helper()
	_, pubHex, err := keys.DeriveKeyPairHex(seedHex, index)
	require.NoError(t, err)
	raw, err := hex.DecodeString(pubHex)
	require.NoError(t, err)
	var pub [keys.PublicKeySize]byte
	copy(pub[:], raw)
	return pub
}

// TestKnownAnswerSeedToAccount pins scenario 1 of §8: a fixed seed and
// index zero must always produce this exact address.
func TestKnownAnswerSeedToAccount(t *testing.T) {
	pub := derivedPublic(t, knownSeed, 0)
	require.Equal(t, knownAccount, Encode(pub, DefaultPrefix))
}

func TestDecodeAcceptsBothPrefixes(t *testing.T) {
	pub := derivedPublic(t, knownSeed, 0)

	withXrb := LegacyPrefix + knownAccount[len(DefaultPrefix):]
	decoded, err := Decode(withXrb)
	require.NoError(t, err)
	require.Equal(t, pub, decoded)

	decoded, err = Decode(knownAccount)
	require.NoError(t, err)
	require.Equal(t, pub, decoded)
}

func TestDecodeRejectsUnknownPrefix(t *testing.T) {
	_, err := Decode("btc_" + knownAccount[len(DefaultPrefix):])
	require.ErrorIs(t, err, nanoerr.ErrInvalidAccount)
}

// TestTamperedAlphabetCharacterFailsChecksum exercises §8 scenario 4:
// substituting any of the excluded characters into a valid address must
// fail.
func TestTamperedAlphabetCharacterFailsChecksum(t *testing.T) {
	for _, excluded := range []byte{'0', '2', 'l', 'v'} {
		tampered := []byte(knownAccount)
		tampered[len(DefaultPrefix)] = excluded
		_, err := Decode(string(tampered))
		require.ErrorIs(t, err, nanoerr.ErrInvalidAccount)
	}
}

func TestSingleCharacterTamperFailsChecksum(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pos := rapid.IntRange(len(DefaultPrefix), len(knownAccount)-1).Draw(t, "pos")
		replacement := rapid.SampledFrom([]byte(nbase32.Alphabet)).Draw(t, "replacement")

		tampered := []byte(knownAccount)
		if tampered[pos] == replacement {
			t.Skip("tamper must actually change the character")
		}
		tampered[pos] = replacement

		require.False(t, Validate(string(tampered)))
	})
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var pub [keys.PublicKeySize]byte
		data := rapid.SliceOfN(rapid.Byte(), keys.PublicKeySize, keys.PublicKeySize).Draw(t, "pub")
		copy(pub[:], data)

		addr := Encode(pub, DefaultPrefix)
		require.Len(t, addr, len(DefaultPrefix)+payloadLen+checksumLen)

		decoded, err := Decode(addr)
		require.NoError(t, err)
		require.Equal(t, pub, decoded)
	})
}
