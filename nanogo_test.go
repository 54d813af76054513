package nanogo

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const knownSeed = "d290d319ce3c2cbb675b023e5383a767415d7444975a2ea121848fc986954568"
const knownAccount = "nano_1bum9d7gkjcca8n8acbbwiauarffa4i9qgoeey59t4t8cpffimupua6wr99u"

// TestGenerateAccountIDKnownAnswer pins §8 scenario 1 through the public
// facade a collaborator actually imports.
func TestGenerateAccountIDKnownAnswer(t *testing.T) {
	account, err := GenerateAccountID(knownSeed, 0, "")
	require.NoError(t, err)
	require.Equal(t, knownAccount, account)
}

func TestGenerateAccountIDIsDeterministic(t *testing.T) {
	a, err := GenerateAccountID(knownSeed, 3, "")
	require.NoError(t, err)
	b, err := GenerateAccountID(knownSeed, 3, "")
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := GenerateAccountID(knownSeed, 4, "")
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestValidateAccountIDRoundTrip(t *testing.T) {
	seed, err := GenerateSeed()
	require.NoError(t, err)
	account, err := GenerateAccountID(seed, 0, "")
	require.NoError(t, err)
	require.True(t, ValidateAccountID(account))
}

func TestGenerateAccountKeyPairMatchesPrivateKeyHelper(t *testing.T) {
	priv, pub, err := GenerateAccountKeyPair(knownSeed, 0)
	require.NoError(t, err)
	require.True(t, ValidatePrivateKey(priv))
	require.True(t, ValidatePublicKey(pub))

	privOnly, err := GenerateAccountPrivateKey(knownSeed, 0)
	require.NoError(t, err)
	require.Equal(t, priv, privOnly)
}

func TestBlockLifecycleThroughFacade(t *testing.T) {
	b, err := NewBlock(KindState, Fields{
		Account:        knownAccount,
		Previous:       "0000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000"[:64],
		Representative: knownAccount,
		Balance:        "1",
		Link:           "A688CF225F2F16B89E49D3153899E9B36C218672379E61A66D6495CB275392BE",
	})
	require.NoError(t, err)
	require.False(t, b.Complete())

	privHex, _, err := GenerateAccountKeyPair(knownSeed, 0)
	require.NoError(t, err)
	privRaw, err := hex.DecodeString(privHex)
	require.NoError(t, err)
	var priv [32]byte
	copy(priv[:], privRaw)
	require.NoError(t, b.Sign(priv))
	require.True(t, b.HasValidSignature())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, b.SetDifficulty(1<<40))
	require.NoError(t, b.SolveWork(ctx))
	require.True(t, b.HasValidWork())
	require.True(t, b.Complete())
}

func TestDoWorkAndValidateWorkAgree(t *testing.T) {
	var hash [32]byte
	hash[2] = 0x7a

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const threshold = uint64(1) << 40
	nonce, err := DoWork(ctx, hash, threshold)
	require.NoError(t, err)
	require.True(t, ValidateWork(hash, nonce, threshold))
	require.GreaterOrEqual(t, GetWorkValue(hash, nonce), threshold)
}

func TestDifficultyConstantsMatchSpec(t *testing.T) {
	require.Equal(t, uint64(0xFFFFFFF800000000), DifficultySend)
	require.Equal(t, uint64(0xFFFFFE0000000000), DifficultyReceive)
	require.Equal(t, uint64(0xFFFFFFC000000000), DifficultyEpoch1)
}
