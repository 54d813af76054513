// Copyright (c) 2025 The Shell developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

// options holds the command-line flags accepted by nanocli, parsed with
// go-flags the same way the teacher node's own configuration does.
type options struct {
	LogFile  string `long:"logfile" description:"file to write rotated logs to" default:"nanocli.log"`
	LogLevel string `long:"loglevel" description:"trace|debug|info|warn|error|critical|off" default:"info"`
	Prefix   string `long:"prefix" description:"address prefix to emit (nano_ or xrb_)" default:"nano_"`
	Workers  int    `long:"workers" description:"proof-of-work worker count (0 = number of CPUs)" default:"0"`

	Seed      string `long:"seed" description:"64-hex-character seed; a fresh one is generated if omitted"`
	Index     uint32 `long:"index" description:"account derivation index" default:"0"`
	Root      string `long:"root" description:"64-hex-character proof-of-work root, for the solve-work command"`
	Threshold string `long:"threshold" description:"16-hex-character difficulty threshold for solve-work" default:"fffffff800000000"`

	Positional struct {
		Command string `positional-arg-name:"command" description:"seed | account | solve-work"`
	} `positional-args:"yes" required:"yes"`
}
