// Copyright (c) 2026 The hashmape authors
// SPDX-License-Identifier: MIT

// Command hashmapectl demonstrates encoding and decoding a HashmapE
// dictionary, replacing the teacher's hard-coded cmd/main.go benchmark
// loop with a flag-driven CLI (grounded on ethereum-go-ethereum's
// urfave/cli/v2 usage across its own cmd/ tree — see DESIGN.md).
//
// Packaging a Cell tree to and from a flat byte blob (a "bag of
// cells") is explicitly out of scope for this codec (spec.md §1
// Non-goals: "packaging"), so this tool operates on in-memory Cells
// within a single invocation rather than pretending to round-trip
// through a wire format this module does not implement.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tlbcodec/hashmape"
	"github.com/tlbcodec/hashmape/internal/clog"
)

func main() {
	log := clog.Default()

	app := &cli.App{
		Name:  "hashmapectl",
		Usage: "build a HashmapE dictionary of uint64 keys/values, dump it, and verify the round-trip",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "key-bits", Value: 32, Usage: "fixed key bit width"},
		},
		Action: func(c *cli.Context) error {
			var raw map[string]uint64
			if err := json.NewDecoder(os.Stdin).Decode(&raw); err != nil {
				return fmt.Errorf("decode input JSON: %w", err)
			}
			m := make(map[uint64]uint64, len(raw))
			for k, v := range raw {
				var key uint64
				if _, err := fmt.Sscanf(k, "%d", &key); err != nil {
					return fmt.Errorf("parse key %q: %w", k, err)
				}
				m[key] = v
			}

			keyBits := c.Int("key-bits")
			kc := hashmape.NewUintCoder(keyBits)
			vc := hashmape.NewUintCoder(64)
			dc := hashmape.NewDictionaryCoder[uint64, uint64](keyBits, kc, vc)
			dc.Observer = func(prefix hashmape.BitString, atRoot bool) {
				log.Warn("pruned subtree at prefix %q (root=%v)", prefix.String(), atRoot)
			}

			if err := dc.Fprint(os.Stdout, m); err != nil {
				return err
			}

			b := hashmape.NewBuilder()
			if err := dc.Store(m, b); err != nil {
				return fmt.Errorf("store: %w", err)
			}
			envelope := b.EndCell()
			log.Info("stored %d entries, envelope cell CID %s", len(m), envelope.CID())

			decoded, err := dc.Load(envelope.BeginParse())
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			if len(decoded) != len(m) {
				return fmt.Errorf("round-trip mismatch: stored %d entries, loaded %d", len(m), len(decoded))
			}
			for k, v := range m {
				got, ok := decoded[k]
				if !ok || got != v {
					return fmt.Errorf("round-trip mismatch at key %d: want %d, got %d (present=%v)", k, v, got, ok)
				}
			}
			log.Info("round-trip verified OK")
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}
