package pow

import (
	"encoding/hex"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/toole-brendan/nanogo/nanoerr"
)

func TestValidateDifficultyRejectsZero(t *testing.T) {
	require.NoError(t, ValidateDifficulty(1))
	require.NoError(t, ValidateDifficulty(DifficultySend))
	err := ValidateDifficulty(0)
	require.ErrorIs(t, err, nanoerr.ErrInvalidDifficulty)
}

// TestMultiplierIdentity pins §8 scenario 5: a difficulty measured against
// itself as base always has multiplier 1.0.
func TestMultiplierIdentity(t *testing.T) {
	require.Equal(t, 1.0, DeriveWorkMultiplier(DifficultySend, DifficultySend))
}

func TestDeriveWorkDifficultyRejectsNonPositiveMultiplier(t *testing.T) {
	_, err := DeriveWorkDifficulty(0, DifficultySend)
	require.ErrorIs(t, err, nanoerr.ErrInvalidDifficulty)

	_, err = DeriveWorkDifficulty(-1, DifficultySend)
	require.ErrorIs(t, err, nanoerr.ErrInvalidDifficulty)
}

func TestDeriveWorkDifficultyClampsToValidRange(t *testing.T) {
	// A tiny multiplier drives the derived difficulty below 0, which
	// must clamp up to 1.
	d, err := DeriveWorkDifficulty(1e-30, DifficultySend)
	require.NoError(t, err)
	require.Equal(t, uint64(1), d)
}

// TestMultiplierDifficultyRoundTrip pins §8 quantified invariant 6:
// derive_work_difficulty(derive_work_multiplier(d, base), base) == d within
// ±1 ULP, for d in [base, 2^64-1].
func TestMultiplierDifficultyRoundTrip(t *testing.T) {
	base := DifficultySend
	// One float64 ULP for values in [2^63, 2^64) is 2^11.
	const ulp = int64(1) << 11
	rapid.Check(t, func(t *rapid.T) {
		d := rapid.Uint64Range(base, math.MaxUint64).Draw(t, "d")

		multiplier := DeriveWorkMultiplier(d, base)
		got, err := DeriveWorkDifficulty(multiplier, base)
		require.NoError(t, err)

		diff := int64(got) - int64(d)
		if diff < 0 {
			diff = -diff
		}
		require.LessOrEqual(t, diff, ulp)
	})
}

// TestKnownAnswerWorkValue pins §8 scenario 3: this root/work pair must
// meet the default send threshold.
func TestKnownAnswerWorkValue(t *testing.T) {
	rootBytes, err := hex.DecodeString("A688CF225F2F16B89E49D3153899E9B36C218672379E61A66D6495CB275392BE")
	require.NoError(t, err)
	var root [32]byte
	copy(root[:], rootBytes)

	const work uint64 = 0xabc94d816bf7b2aa
	require.GreaterOrEqual(t, GetWorkValue(root, work), DifficultySend)
}

func TestValidateWorkAgreesWithGetWorkValue(t *testing.T) {
	var root [32]byte
	root[31] = 0x01

	require.Equal(t, GetWorkValue(root, 42) >= 1, ValidateWork(root, 42, 1))
}
