// Package cmd implements the command-line interface for gFlux. It provides
// a small command structure for exercising the store from the outside - the
// store itself has no CLI surface, the commands here are external consumers
// of its public operations.
//
// The package is organized into several subpackages:
//
//   - demo: A counter demo application driven by a ticker
//   - perf: Dispatch throughput and latency benchmarks
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See gflux -help for a list of all commands.
package cmd
