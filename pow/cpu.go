package pow

import "golang.org/x/sys/cpu"

// Variant names the Blake2b evaluation strategy the engine selected at
// process start. golang.org/x/crypto/blake2b already carries its own
// assembly-optimized compression function on amd64/arm64; Variant records
// which CPU features made that optimized path available so the choice is
// made once, logged once, and never re-probed per hash — selection happens
// once at package init (see selectedVariant below), not per call or per
// batch.
type Variant string

const (
	VariantScalar Variant = "scalar"
	VariantSSE2   Variant = "sse2"
	VariantSSSE3  Variant = "ssse3"
	VariantSSE41  Variant = "sse4.1"
	VariantAVX2   Variant = "avx2"
	VariantNEON   Variant = "neon"
)

// detectVariant runs once, at init, and picks the best Blake2b path the
// running CPU actually supports. The scalar fallback is always valid.
func detectVariant() Variant {
	if cpu.ARM64.HasASIMD {
		return VariantNEON
	}
	switch {
	case cpu.X86.HasAVX2:
		return VariantAVX2
	case cpu.X86.HasSSE41:
		return VariantSSE41
	case cpu.X86.HasSSSE3:
		return VariantSSSE3
	case cpu.X86.HasSSE2:
		return VariantSSE2
	default:
		return VariantScalar
	}
}

// selectedVariant is resolved once at package init, mirroring the teacher's
// ARM64Optimizer.detectFeatures / NPU adapter detection pattern: probe
// hardware once, then dispatch through the chosen path for the life of the
// process.
var selectedVariant = detectVariant()

// SelectedVariant reports which Blake2b evaluation strategy the proof-of-work
// engine resolved at process start.
func SelectedVariant() Variant { return selectedVariant }
