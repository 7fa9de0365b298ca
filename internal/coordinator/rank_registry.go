// Package coordinator implements the control-plane orchestration for a
// network-transport deployment of the engine: tracking which rank agents
// are alive. Completed run results are archived by internal/storage. See
// doc.go.
package coordinator

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slices"

	"github.com/dreamware/kaspan/internal/cluster"
)

// RankRegistry tracks the rank agents that have registered with the
// coordinator: their address, and the last time they were heard from.
// Unlike a shard-to-node assignment table, rank ownership of the graph is
// fixed by the partition scheme chosen at run time (see internal/partition);
// the registry's only job is knowing which ranks are live and reachable.
type RankRegistry struct {
	mu    sync.RWMutex
	ranks map[int]*cluster.RankInfo

	// world is the expected rank count for the run this registry backs;
	// zero means no run has been announced yet and any rank may join.
	world int
}

// NewRankRegistry builds an empty registry expecting world ranks (0 means
// unconstrained, useful for a coordinator that hasn't been told the run's
// size yet).
func NewRankRegistry(world int) *RankRegistry {
	return &RankRegistry{ranks: make(map[int]*cluster.RankInfo), world: world}
}

// Register records or refreshes a rank's address and marks it healthy.
// It rejects a rank ID outside [0, world) once world is known.
func (r *RankRegistry) Register(info cluster.RankInfo) error {
	if r.world > 0 && (info.ID < 0 || info.ID >= r.world) {
		return fmt.Errorf("rank id %d out of range [0, %d)", info.ID, r.world)
	}
	if info.Addr == "" {
		return errors.New("rank addr cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	info.Status = "healthy"
	info.LastHealthCheck = time.Now()
	r.ranks[info.ID] = &info
	return nil
}

// Touch refreshes a rank's last-seen timestamp without changing its address,
// the registry-side half of a health check response.
func (r *RankRegistry) Touch(id int, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if info, ok := r.ranks[id]; ok {
		info.Status = status
		info.LastHealthCheck = time.Now()
	}
}

// Get returns a copy of the rank's info, or false if it has never registered.
func (r *RankRegistry) Get(id int) (cluster.RankInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.ranks[id]
	if !ok {
		return cluster.RankInfo{}, false
	}
	return *info, true
}

// List returns a snapshot of all registered ranks, ordered by ID. When
// world is known, gaps for ranks that haven't registered yet are skipped.
func (r *RankRegistry) List() []cluster.RankInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cluster.RankInfo, 0, len(r.ranks))
	if r.world > 0 {
		for id := 0; id < r.world; id++ {
			if info, ok := r.ranks[id]; ok {
				out = append(out, *info)
			}
		}
		return out
	}
	for _, info := range r.ranks {
		out = append(out, *info)
	}
	slices.SortFunc(out, func(a, b cluster.RankInfo) int { return a.ID - b.ID })
	return out
}

// Ready reports whether every rank in [0, world) has registered.
func (r *RankRegistry) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.world == 0 {
		return false
	}
	for id := 0; id < r.world; id++ {
		if _, ok := r.ranks[id]; !ok {
			return false
		}
	}
	return true
}

// Count returns the number of ranks currently registered.
func (r *RankRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ranks)
}
