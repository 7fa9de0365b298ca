// Package cluster defines the wire types and HTTP helpers for the
// coordinator/rank-agent control plane: a future deployment mode in which
// the engine's ranks run as separate processes over a network instead of
// goroutines sharing an in-process internal/fabric.Fabric.
//
// The model is hub-and-spoke: a coordinator (cmd/kaspan coordinator)
// tracks which rank agents (cmd/kaspan rankd) are alive and archives
// completed run results; rank agents register on startup and report
// health. This package carries only the shapes and transport helpers
// (RankInfo, RegisterRequest, PostJSON/GetJSON) — the registry lives in
// internal/coordinator, and result archival in internal/storage.
package cluster
