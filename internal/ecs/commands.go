package ecs

// Commands is a deferred structural-change list. Systems record spawns and
// despawns while scanning stores and Apply realizes them at the end of the
// stage, so the scan never observes a half-mutated arena.
type Commands struct {
	arena    *Arena
	spawns   []func(Entity)
	despawns []Entity
	pending  map[Entity]struct{}
}

// NewCommands creates a command list bound to an arena.
func NewCommands(arena *Arena) *Commands {
	return &Commands{
		arena:   arena,
		pending: make(map[Entity]struct{}),
	}
}

// Spawn queues a new entity; build receives the fresh handle on Apply and
// attaches its components.
func (c *Commands) Spawn(build func(Entity)) {
	c.spawns = append(c.spawns, build)
}

// Despawn queues e for removal. Repeated requests for the same entity are
// collapsed into one.
func (c *Commands) Despawn(e Entity) {
	if _, ok := c.pending[e]; ok {
		return
	}
	c.pending[e] = struct{}{}
	c.despawns = append(c.despawns, e)
}

// Pending reports whether e is already queued for removal.
func (c *Commands) Pending(e Entity) bool {
	_, ok := c.pending[e]
	return ok
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.despawns)
}

// Apply realizes queued despawns then spawns, in request order, and resets
// the list. Returns the number of entities despawned and spawned.
func (c *Commands) Apply() (despawned, spawned int) {
	for _, e := range c.despawns {
		if c.arena.Despawn(e) {
			despawned++
		}
	}
	for _, build := range c.spawns {
		build(c.arena.Spawn())
		spawned++
	}

	c.spawns = c.spawns[:0]
	c.despawns = c.despawns[:0]
	clear(c.pending)
	return despawned, spawned
}
