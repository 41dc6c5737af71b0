// Package ecs provides a small explicit entity arena: generation-checked
// entity handles and typed component side tables.
//
// There is no global registry. A game owns one Arena and the Stores it needs,
// and systems are plain functions over them.
package ecs

// Entity is a stable handle into an Arena.
// Index 0 is never issued, so the zero Entity is always invalid.
type Entity struct {
	Index uint32
	Gen   uint32
}

// IsZero reports whether e is the zero (invalid) handle.
func (e Entity) IsZero() bool {
	return e.Index == 0
}

// Arena allocates and recycles entity handles.
type Arena struct {
	gens  []uint32 // generation per index; gens[0] is unused
	alive []bool
	free  []uint32
	count int
	hooks []func(Entity)
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{
		gens:  make([]uint32, 1, 64),
		alive: make([]bool, 1, 64),
	}
}

// Spawn allocates a new live entity. Freed slots are reused with a bumped
// generation so stale handles never alias the new entity.
func (a *Arena) Spawn() Entity {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.gens)) //nolint:gosec // entity counts stay far below MaxUint32
		a.gens = append(a.gens, 0)
		a.alive = append(a.alive, false)
	}
	a.alive[idx] = true
	a.count++
	return Entity{Index: idx, Gen: a.gens[idx]}
}

// Alive reports whether e refers to a live entity of the current generation.
func (a *Arena) Alive(e Entity) bool {
	if e.Index == 0 || int(e.Index) >= len(a.gens) {
		return false
	}
	return a.alive[e.Index] && a.gens[e.Index] == e.Gen
}

// Despawn frees e and notifies removal hooks so component stores drop it.
// Returns false if e was not alive.
func (a *Arena) Despawn(e Entity) bool {
	if !a.Alive(e) {
		return false
	}
	for _, h := range a.hooks {
		h(e)
	}
	a.alive[e.Index] = false
	a.gens[e.Index]++
	a.free = append(a.free, e.Index)
	a.count--
	return true
}

// Len returns the number of live entities.
func (a *Arena) Len() int {
	return a.count
}

// OnDespawn registers a hook run for every despawned entity.
func (a *Arena) OnDespawn(h func(Entity)) {
	a.hooks = append(a.hooks, h)
}

// Clear despawns every live entity.
func (a *Arena) Clear() {
	for idx := 1; idx < len(a.gens); idx++ {
		if a.alive[idx] {
			a.Despawn(Entity{Index: uint32(idx), Gen: a.gens[idx]}) //nolint:gosec // idx < len(gens)
		}
	}
}
