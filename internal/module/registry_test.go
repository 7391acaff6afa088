package module

import (
	"context"
	"errors"
	"testing"
)

type stubModule struct {
	Base
	initErr error
	inits   int
	stops   int
}

func (m *stubModule) Init(ctx context.Context, notifier Notifier) error {
	m.inits++
	if m.initErr != nil {
		return m.initErr
	}
	return m.Base.Init(ctx, notifier)
}

func (m *stubModule) Stop() error {
	m.stops++
	return m.Base.Stop()
}

func ids(r *Registry) []string {
	var got []string
	for _, m := range r.Modules() {
		got = append(got, m.ID())
	}
	return got
}

func TestApplyReordersWithoutRebuilding(t *testing.T) {
	a := &stubModule{Base: NewBase("a")}
	b := &stubModule{Base: NewBase("b")}
	r := NewRegistry(a, b)
	r.Init(context.Background(), nil)

	r.Apply(context.Background(), nil, []string{"b", "a"}, nil)

	got := ids(r)
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("got order %v, want [b a]", got)
	}
	if a.inits != 1 || b.inits != 1 {
		t.Fatalf("reorder reinitialized modules: a=%d b=%d", a.inits, b.inits)
	}
	if a.stops != 0 || b.stops != 0 {
		t.Fatalf("reorder stopped modules: a=%d b=%d", a.stops, b.stops)
	}
	if kept, _ := r.ByID("a"); kept != Module(a) {
		t.Fatal("reorder replaced a surviving module instance")
	}
}

func TestApplyStopsRemovedModules(t *testing.T) {
	a := &stubModule{Base: NewBase("a")}
	b := &stubModule{Base: NewBase("b")}
	r := NewRegistry(a, b)
	r.Init(context.Background(), nil)

	r.Apply(context.Background(), nil, []string{"a"}, nil)

	if got := ids(r); len(got) != 1 || got[0] != "a" {
		t.Fatalf("got modules %v, want [a]", got)
	}
	if b.stops != 1 {
		t.Fatalf("removed module stopped %d times, want 1", b.stops)
	}
	if a.stops != 0 {
		t.Fatal("surviving module was stopped")
	}
}

func TestApplyBuildsAndInitializesNew(t *testing.T) {
	a := &stubModule{Base: NewBase("a")}
	c := &stubModule{Base: NewBase("c")}
	r := NewRegistry(a)
	r.Init(context.Background(), nil)

	build := func(id string) (Module, bool) {
		if id == "c" {
			return c, true
		}
		return nil, false
	}
	r.Apply(context.Background(), nil, []string{"a", "c", "bogus"}, build)

	got := ids(r)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("got modules %v, want [a c]", got)
	}
	if c.inits != 1 {
		t.Fatalf("new module initialized %d times, want 1", c.inits)
	}
}

func TestApplySkipsNewModuleThatFailsInit(t *testing.T) {
	a := &stubModule{Base: NewBase("a")}
	r := NewRegistry(a)
	r.Init(context.Background(), nil)

	build := func(id string) (Module, bool) {
		return &stubModule{Base: NewBase(id), initErr: errors.New("no bus")}, true
	}
	r.Apply(context.Background(), nil, []string{"a", "broken"}, build)

	if got := ids(r); len(got) != 1 || got[0] != "a" {
		t.Fatalf("got modules %v, want [a]", got)
	}
	if _, ok := r.ByID("broken"); ok {
		t.Fatal("failed module exposed as active")
	}
}
