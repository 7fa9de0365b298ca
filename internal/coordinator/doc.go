// Package coordinator is the control plane for a network-transport
// deployment of the engine: a RankRegistry tracking which rank agents
// (cmd/kaspan rankd) have registered and are reachable, paired with
// internal/storage for archiving completed runs. It does not itself run
// any part of the SCC pipeline — see internal/engine and internal/fabric
// for the supported in-process compute path; this package only answers
// "who is alive" and "what did the last run produce."
package coordinator
