// Package storage persists completed run results behind a small Store
// interface (MemoryStore today; a disk-backed implementation can be added
// without touching RunStore or its callers) so a coordinator can answer
// "what did run X produce" after every rank reports in.
package storage
