package ecs

import "testing"

func TestArenaSpawnDespawn(t *testing.T) {
	a := NewArena()

	e1 := a.Spawn()
	e2 := a.Spawn()

	if e1.IsZero() || e2.IsZero() {
		t.Fatal("Spawn should never return the zero entity")
	}
	if e1 == e2 {
		t.Fatal("Spawn should return distinct handles")
	}
	if a.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", a.Len())
	}

	if !a.Despawn(e1) {
		t.Error("Despawn of live entity should return true")
	}
	if a.Despawn(e1) {
		t.Error("Despawn of dead entity should return false")
	}
	if a.Alive(e1) {
		t.Error("despawned entity should not be alive")
	}
	if a.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", a.Len())
	}
}

func TestArenaGenerationCheck(t *testing.T) {
	a := NewArena()

	old := a.Spawn()
	a.Despawn(old)
	reused := a.Spawn()

	if reused.Index != old.Index {
		t.Fatalf("expected slot reuse, got index %d vs %d", reused.Index, old.Index)
	}
	if reused.Gen == old.Gen {
		t.Error("reused slot should carry a new generation")
	}
	if a.Alive(old) {
		t.Error("stale handle must not be alive after slot reuse")
	}
	if !a.Alive(reused) {
		t.Error("new handle should be alive")
	}
}

func TestArenaZeroAndOutOfRange(t *testing.T) {
	a := NewArena()
	if a.Alive(Entity{}) {
		t.Error("zero entity should never be alive")
	}
	if a.Alive(Entity{Index: 42}) {
		t.Error("unknown index should not be alive")
	}
}

func TestStoreDropsOnDespawn(t *testing.T) {
	a := NewArena()
	positions := NewStore[int](a)
	names := NewStore[string](a)

	e := a.Spawn()
	positions.Set(e, 7)
	names.Set(e, "ship")

	a.Despawn(e)

	if positions.Has(e) || names.Has(e) {
		t.Error("despawn should remove components from all registered stores")
	}
}

func TestStoreSetGetPtr(t *testing.T) {
	a := NewArena()
	s := NewStore[int](a)
	e := a.Spawn()

	if _, ok := s.Get(e); ok {
		t.Error("Get on missing component should return false")
	}
	if s.Ptr(e) != nil {
		t.Error("Ptr on missing component should return nil")
	}

	s.Set(e, 1)
	s.Set(e, 2) // replace, not append
	if s.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", s.Len())
	}

	*s.Ptr(e) += 10
	if v, _ := s.Get(e); v != 12 {
		t.Errorf("Get() = %d, expected 12", v)
	}
}

func TestStoreRemoveKeepsOthers(t *testing.T) {
	a := NewArena()
	s := NewStore[int](a)

	var es []Entity
	for i := range 5 {
		e := a.Spawn()
		s.Set(e, i*10)
		es = append(es, e)
	}

	s.Remove(es[1])

	if s.Len() != 4 {
		t.Fatalf("Len() = %d, expected 4", s.Len())
	}
	for i, e := range es {
		v, ok := s.Get(e)
		if i == 1 {
			if ok {
				t.Error("removed entity still present")
			}
			continue
		}
		if !ok || v != i*10 {
			t.Errorf("entity %d: Get() = %d, %v, expected %d", i, v, ok, i*10)
		}
	}
}

func TestStoreOrderAfterRemove(t *testing.T) {
	a := NewArena()
	s := NewStore[int](a)

	var es []Entity
	for i := range 4 {
		e := a.Spawn()
		s.Set(e, i)
		es = append(es, e)
	}

	// The last entity fills the freed slot.
	s.Remove(es[0])
	want := []Entity{es[3], es[1], es[2]}
	got := s.Entities()
	if len(got) != len(want) {
		t.Fatalf("Entities() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Entities() = %v, expected %v", got, want)
		}
	}
}

func TestStoreEntitiesSnapshot(t *testing.T) {
	a := NewArena()
	s := NewStore[int](a)
	e1 := a.Spawn()
	e2 := a.Spawn()
	s.Set(e1, 1)
	s.Set(e2, 2)

	snap := s.Entities()
	a.Despawn(e1)

	if len(snap) != 2 || snap[0] != e1 || snap[1] != e2 {
		t.Errorf("snapshot should be unaffected by later mutation, got %v", snap)
	}
}

func TestCommandsDeferAndDedupe(t *testing.T) {
	a := NewArena()
	s := NewStore[string](a)
	cmds := NewCommands(a)

	target := a.Spawn()
	s.Set(target, "asteroid")

	cmds.Despawn(target)
	cmds.Despawn(target)
	if !cmds.Pending(target) {
		t.Error("Pending should report queued entity")
	}

	var spawned []Entity
	for range 2 {
		cmds.Spawn(func(e Entity) {
			s.Set(e, "child")
			spawned = append(spawned, e)
		})
	}

	// Nothing happens until Apply
	if !a.Alive(target) || s.Len() != 1 {
		t.Fatal("commands must not mutate before Apply")
	}

	despawned, created := cmds.Apply()
	if despawned != 1 || created != 2 {
		t.Errorf("Apply() = (%d, %d), expected (1, 2)", despawned, created)
	}
	if a.Alive(target) {
		t.Error("target should be despawned")
	}
	if s.Len() != 2 || len(spawned) != 2 {
		t.Errorf("expected 2 children, store has %d", s.Len())
	}
	if cmds.Len() != 0 || cmds.Pending(target) {
		t.Error("Apply should reset the command list")
	}
}

func TestArenaClear(t *testing.T) {
	a := NewArena()
	s := NewStore[int](a)
	for i := range 10 {
		s.Set(a.Spawn(), i)
	}

	a.Clear()

	if a.Len() != 0 || s.Len() != 0 {
		t.Errorf("Clear left %d entities and %d components", a.Len(), s.Len())
	}
}
