// Package model defines the core data structures shared across mailscout:
// recorded email findings, the per-run result accumulator, and the run
// report consumed by report writers and the history database.
package model
