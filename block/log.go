package block

import "github.com/btcsuite/btclog"

// log is disabled until a caller supplies a logger via UseLogger. It is
// used sparingly — just enough to trace cache invalidation and solved-work
// events for callers debugging a stuck miner or a rejected block.
var log btclog.Logger

// UseLogger directs the package's log output to logger.
func UseLogger(logger btclog.Logger) { log = logger }

// DisableLog silences all package logging. This is the default.
func DisableLog() { log = btclog.Disabled }

func init() { DisableLog() }
