// Copyright (c) 2025 The Shell developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command nanocli is a thin demonstration harness over the nanogo library:
// it generates seeds and accounts and solves proof-of-work for a root, the
// way the teacher node ships a small cmd/ entry point over its packages.
// It is scaffolding for exercising the library end to end, not a product —
// decimal conversion, RPC submission, and wallet storage remain the job of
// external collaborators per the library's own scope.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/jessevdk/go-flags"

	"github.com/toole-brendan/nanogo"
	"github.com/toole-brendan/nanogo/pow"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "nanocli:", err)
		os.Exit(1)
	}
}

func run() error {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		return err
	}

	if err := initLogRotator(opts.LogFile); err != nil {
		return err
	}
	defer logRotator.Close()
	setLogLevels(opts.LogLevel)

	if opts.Workers > 0 {
		pow.ConfigurePool(opts.Workers)
	}

	switch opts.Positional.Command {
	case "seed":
		return cmdSeed()
	case "account":
		return cmdAccount(opts)
	case "solve-work":
		return cmdSolveWork(opts)
	default:
		return fmt.Errorf("unknown command %q (want seed | account | solve-work)", opts.Positional.Command)
	}
}

func cmdSeed() error {
	seed, err := nanogo.GenerateSeed()
	if err != nil {
		return err
	}
	fmt.Println(seed)
	return nil
}

func cmdAccount(opts options) error {
	seed := opts.Seed
	if seed == "" {
		generated, err := nanogo.GenerateSeed()
		if err != nil {
			return err
		}
		seed = generated
	}
	account, err := nanogo.GenerateAccountID(seed, opts.Index, opts.Prefix)
	if err != nil {
		return err
	}
	priv, pub, err := nanogo.GenerateAccountKeyPair(seed, opts.Index)
	if err != nil {
		return err
	}
	fmt.Printf("seed:        %s\n", seed)
	fmt.Printf("index:       %d\n", opts.Index)
	fmt.Printf("account:     %s\n", account)
	fmt.Printf("public_key:  %s\n", pub)
	fmt.Printf("private_key: %s\n", priv)
	return nil
}

func cmdSolveWork(opts options) error {
	if len(opts.Root) != 64 {
		return fmt.Errorf("--root must be 64 hex characters")
	}
	rootBytes, err := hex.DecodeString(opts.Root)
	if err != nil {
		return fmt.Errorf("decoding --root: %w", err)
	}
	var root [32]byte
	copy(root[:], rootBytes)

	threshold, err := strconv.ParseUint(opts.Threshold, 16, 64)
	if err != nil {
		return fmt.Errorf("decoding --threshold: %w", err)
	}

	nonce, err := nanogo.DoWork(context.Background(), root, threshold)
	if err != nil {
		return err
	}
	fmt.Printf("work: %016x\n", nonce)
	return nil
}
