// Package shard holds a rank's emerging scc_id results in a network
// deployment (cmd/kaspan rankd): the in-memory record a rank's HTTP
// handlers read and write while internal/engine.SCC runs locally, and that
// gets reported up to the coordinator on completion. In the supported
// in-process deployment, engine.SCC's return value fills this role directly
// and no Shard is needed.
package shard
