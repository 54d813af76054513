// Package pow implements the NANO proof-of-work engine (§4.G): a nonce
// search whose inner loop is bit-exact with the reference network (nonce
// hashed before root, both the nonce bytes and the result interpreted as
// little-endian), a parallel worker pool with cooperative cancellation, and
// the difficulty/multiplier arithmetic in difficulty.go.
package pow

import (
	"context"
	"encoding/binary"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/btcsuite/btclog"

	"github.com/toole-brendan/nanogo/blake2bhash"
	"github.com/toole-brendan/nanogo/nanoerr"
)

// log is a package-scoped logger, disabled until a caller supplies one via
// UseLogger — the same opt-in-logging pattern the teacher's mining packages
// use for their speed monitors.
var log btclog.Logger

// UseLogger directs the package's log output to logger.
func UseLogger(logger btclog.Logger) { log = logger }

// DisableLog silences all package logging. This is the default.
func DisableLog() { log = btclog.Disabled }

func init() { DisableLog() }

// batchIterations bounds how many nonces a worker tries between
// cancellation checks, trading a small amount of overshoot latency for
// negligible per-hash overhead.
const batchIterations = 250_000

// workValue computes blake2b_8(little_endian_8(nonce) || root) as a
// little-endian uint64. The update order — nonce first, then root — and
// the little-endian interpretation of both the nonce bytes and the
// resulting digest are canonical and must never be reordered.
func workValue(root [32]byte, nonce uint64) uint64 {
	var nb [8]byte
	binary.LittleEndian.PutUint64(nb[:], nonce)
	sum := blake2bhash.Sum8(nb[:], root[:])
	return binary.LittleEndian.Uint64(sum)
}

// Search runs the single-threaded, bit-exact inner loop of §4.G starting
// from startNonce, returning the first nonce whose work value meets
// threshold. It checks ctx for cancellation once per batch of
// batchIterations hashes.
func Search(ctx context.Context, root [32]byte, startNonce uint64, threshold uint64) (uint64, error) {
	if err := ValidateDifficulty(threshold); err != nil {
		return 0, err
	}

	nonce := startNonce
	for {
		select {
		case <-ctx.Done():
			return 0, nanoerr.New(nanoerr.Cancelled, "proof-of-work search cancelled")
		default:
		}

		for i := 0; i < batchIterations; i++ {
			nonce++ // wraps on overflow, 2^64 modulus, by uint64 semantics
			if workValue(root, nonce) >= threshold {
				return nonce, nil
			}
		}
	}
}

// EngineConfig controls the worker pool DoWork launches.
type EngineConfig struct {
	// NumWorkers is the number of parallel search goroutines. Zero or
	// negative is treated as one.
	NumWorkers int
}

// DefaultEngineConfig returns a pool sized to the detected core count,
// matching the teacher's RandomXMiner default worker count.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{NumWorkers: runtime.NumCPU()}
}

var (
	poolMu  sync.Mutex
	poolCfg = DefaultEngineConfig()
)

// ConfigurePool sets the process-wide worker count used by subsequent
// DoWork calls. This is the "explicit configure_pool for callers that want
// control" call-out in §9's design notes.
func ConfigurePool(numWorkers int) {
	poolMu.Lock()
	defer poolMu.Unlock()
	if numWorkers < 1 {
		numWorkers = 1
	}
	poolCfg.NumWorkers = numWorkers
}

func currentConfig() EngineConfig {
	poolMu.Lock()
	defer poolMu.Unlock()
	return poolCfg
}

// DoWork searches for a nonce meeting threshold for root using a pool of
// parallel workers, each starting from an independent random nonce. The
// first worker to find a solution wins; the rest are cancelled at their
// next batch boundary. DoWork blocks until a solution is found or ctx is
// cancelled, in which case it returns a nanoerr.Cancelled error without
// any side effect on the caller's state.
func DoWork(ctx context.Context, root [32]byte, threshold uint64) (uint64, error) {
	if err := ValidateDifficulty(threshold); err != nil {
		return 0, err
	}

	cfg := currentConfig()
	numWorkers := cfg.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan uint64, numWorkers)
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	log.Debugf("pow: launching %d workers (variant=%s)", numWorkers, selectedVariant)

	for i := 0; i < numWorkers; i++ {
		go func(workerID int) {
			defer wg.Done()
			src := rand.New(rand.NewSource(time.Now().UnixNano() ^ int64(workerID)<<32))
			start := src.Uint64()
			nonce, err := Search(workerCtx, root, start, threshold)
			if err == nil {
				select {
				case results <- nonce:
					cancel()
				default:
				}
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case nonce := <-results:
		return nonce, nil
	case <-done:
		select {
		case nonce := <-results:
			return nonce, nil
		default:
			return 0, nanoerr.New(nanoerr.Cancelled, "proof-of-work search cancelled")
		}
	}
}
