package pow

import (
	"math"

	"github.com/toole-brendan/nanogo/nanoerr"
)

// Default difficulty thresholds (§4.F). These are bit-exact with the
// reference network and govern every block unless a caller overrides them
// per block.
const (
	// DifficultySend is the default threshold for send/change/legacy
	// blocks, and for state blocks that are not receive-only.
	DifficultySend uint64 = 0xFFFFFFF800000000

	// DifficultyReceive is the reduced threshold (epoch V2) for state
	// receive blocks: previous is set and balance does not decrease.
	DifficultyReceive uint64 = 0xFFFFFE0000000000

	// DifficultyEpoch1 is the single, higher threshold used throughout
	// epoch V1 and earlier. Callers must opt into it explicitly — the
	// engine never silently upgrades or downgrades a block's epoch.
	DifficultyEpoch1 uint64 = 0xFFFFFFC000000000
)

// ValidateDifficulty accepts any nonzero 64-bit threshold.
func ValidateDifficulty(d uint64) error {
	if d == 0 {
		return nanoerr.New(nanoerr.InvalidDifficulty, "difficulty must be nonzero")
	}
	return nil
}

// DeriveWorkMultiplier returns (2^64 - base) / (2^64 - d), the multiplier
// that rescales a difficulty relative to a base difficulty.
func DeriveWorkMultiplier(d, base uint64) float64 {
	const twoTo64 = 18446744073709551616.0 // 2^64, exceeds uint64 range
	return (twoTo64 - float64(base)) / (twoTo64 - float64(d))
}

// DeriveWorkDifficulty is the inverse of DeriveWorkMultiplier: given a
// multiplier and a base difficulty, returns the corresponding difficulty,
// rounded to the nearest integer and clamped to [1, 2^64-1].
//
// multiplier <= 0 is rejected with nanoerr.InvalidDifficulty: a
// non-positive multiplier has no corresponding difficulty.
func DeriveWorkDifficulty(multiplier float64, base uint64) (uint64, error) {
	if multiplier <= 0 {
		return 0, nanoerr.New(nanoerr.InvalidDifficulty, "multiplier must be positive")
	}
	const twoTo64 = 18446744073709551616.0 // 2^64; math.MaxUint64 (2^64-1) is not exactly representable as a float64 and rounds up to this
	d := twoTo64 - (twoTo64-float64(base))/multiplier
	d = math.Round(d)
	if d < 1 {
		return 1, nil
	}
	if d >= twoTo64 {
		return math.MaxUint64, nil
	}
	return uint64(d), nil
}

// GetWorkValue computes the single-evaluation Blake2b-8 work value for the
// given root and work nonce: little_endian_u64(blake2b(little_endian(w) ||
// root, out_len=8)). It is used both by the search loop's inner check and
// directly by verification callers.
func GetWorkValue(root [32]byte, work uint64) uint64 {
	return workValue(root, work)
}

// ValidateWork reports whether work meets threshold for root.
func ValidateWork(root [32]byte, work uint64, threshold uint64) bool {
	return GetWorkValue(root, work) >= threshold
}
