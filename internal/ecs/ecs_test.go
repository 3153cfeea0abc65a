package ecs

import "testing"

func TestRegistryCreateDestroy(t *testing.T) {
	r := NewRegistry()

	a := r.Create()
	b := r.Create()
	if a == b {
		t.Fatal("two live entities share a handle")
	}
	if !r.Alive(a) || !r.Alive(b) {
		t.Fatal("fresh entities should be alive")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}

	r.Destroy(a)
	if r.Alive(a) {
		t.Error("destroyed entity still alive")
	}
	if r.Len() != 1 {
		t.Errorf("Len() after destroy = %d, want 1", r.Len())
	}

	// Slot is recycled with a new generation.
	c := r.Create()
	if c.Index != a.Index {
		t.Errorf("expected slot %d to be recycled, got %d", a.Index, c.Index)
	}
	if c.Generation == a.Generation {
		t.Error("recycled slot kept its generation")
	}
	if r.Alive(a) {
		t.Error("stale handle reported alive after slot reuse")
	}

	// Double destroy is harmless.
	r.Destroy(a)
	if r.Len() != 2 {
		t.Errorf("Len() = %d after double destroy, want 2", r.Len())
	}
}

func TestNilNeverAlive(t *testing.T) {
	r := NewRegistry()
	r.Create()
	if r.Alive(Nil) {
		t.Error("Nil entity reported alive")
	}
}

func TestRegistryEach(t *testing.T) {
	r := NewRegistry()
	a := r.Create()
	b := r.Create()
	c := r.Create()
	r.Destroy(b)

	var seen []Entity
	r.Each(func(e Entity) { seen = append(seen, e) })
	if len(seen) != 2 || seen[0] != a || seen[1] != c {
		t.Errorf("Each visited %v, want [%v %v]", seen, a, c)
	}
}

func TestPool(t *testing.T) {
	r := NewRegistry()
	p := NewPool[int]("counter")

	e := r.Create()
	if p.Has(e) {
		t.Fatal("empty pool reports component")
	}

	*p.Add(e, 5) += 1
	if got := *p.Get(e); got != 6 {
		t.Errorf("Get() = %d, want 6", got)
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}

	p.Add(e, 10)
	if p.Len() != 1 {
		t.Errorf("replacing a component changed Len() to %d", p.Len())
	}

	p.Remove(e)
	if p.Has(e) || p.Len() != 0 {
		t.Error("Remove did not detach component")
	}
	if _, ok := p.Lookup(e); ok {
		t.Error("Lookup found removed component")
	}
}

func TestPoolRejectsStaleHandle(t *testing.T) {
	r := NewRegistry()
	p := NewPool[string]("label")

	old := r.Create()
	p.Add(old, "old")
	r.Destroy(old)
	p.Remove(old)

	fresh := r.Create()
	p.Add(fresh, "fresh")
	if p.Has(old) {
		t.Error("stale handle resolved to the recycled slot")
	}
}

func TestPoolAddOverStaleSlot(t *testing.T) {
	r := NewRegistry()
	p := NewPool[string]("label")

	old := r.Create()
	p.Add(old, "old")
	r.Destroy(old)

	fresh := r.Create()
	if fresh.Index != old.Index {
		t.Fatalf("registry did not recycle index %d", old.Index)
	}
	p.Add(fresh, "fresh")

	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
	if p.Has(old) {
		t.Error("old generation still resolves")
	}
	p.Remove(fresh)
	if p.Len() != 0 {
		t.Errorf("Len() after Remove = %d, want 0", p.Len())
	}
}

func TestPoolGetMissingPanics(t *testing.T) {
	r := NewRegistry()
	p := NewPool[int]("counter")
	e := r.Create()

	defer func() {
		if recover() == nil {
			t.Error("Get on a missing component should panic")
		}
	}()
	p.Get(e)
}
