package module

import (
	"context"
	"log"
)

// Registry is the ordered module collection. The iteration order is the
// declared order and is shared by rendering and hit-testing; both must walk
// modules through the same accessors.
type Registry struct {
	modules []Module
	failed  map[string]bool
}

// NewRegistry creates a registry with modules in the given order.
func NewRegistry(modules ...Module) *Registry {
	return &Registry{
		modules: modules,
		failed:  make(map[string]bool),
	}
}

// Init initializes all modules. A module that fails to initialize is logged
// and skipped from then on; the rest of the shell keeps running.
func (r *Registry) Init(ctx context.Context, notifier Notifier) {
	for _, m := range r.modules {
		if err := m.Init(ctx, notifier); err != nil {
			log.Printf("Module %s failed to initialize: %v (skipping)", m.ID(), err)
			r.failed[m.ID()] = true
		}
	}
}

// Apply reconciles the registry with a new ordered id list. Modules already
// present are reused in the new order, keeping their state; newly listed ids
// are built and initialized with the usual skip-on-error handling; modules
// no longer listed are stopped. Unknown ids are logged and skipped.
func (r *Registry) Apply(ctx context.Context, notifier Notifier, ids []string, build func(id string) (Module, bool)) {
	existing := make(map[string]Module, len(r.modules))
	for _, m := range r.modules {
		existing[m.ID()] = m
	}

	next := make([]Module, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		if m, ok := existing[id]; ok {
			delete(existing, id)
			next = append(next, m)
			continue
		}
		if build == nil {
			continue
		}
		m, ok := build(id)
		if !ok {
			log.Printf("Unknown module %q in config (skipping)", id)
			continue
		}
		if err := m.Init(ctx, notifier); err != nil {
			log.Printf("Module %s failed to initialize: %v (skipping)", m.ID(), err)
			r.failed[m.ID()] = true
		}
		next = append(next, m)
	}

	for id, m := range existing {
		if r.failed[id] {
			delete(r.failed, id)
			continue
		}
		if err := m.Stop(); err != nil {
			log.Printf("Module %s failed to stop: %v", id, err)
		}
	}

	r.modules = next
}

// Stop shuts down all modules.
func (r *Registry) Stop() {
	for _, m := range r.modules {
		if r.failed[m.ID()] {
			continue
		}
		if err := m.Stop(); err != nil {
			log.Printf("Module %s failed to stop: %v", m.ID(), err)
		}
	}
}

// Modules returns all active modules in declared order.
func (r *Registry) Modules() []Module {
	active := make([]Module, 0, len(r.modules))
	for _, m := range r.modules {
		if !r.failed[m.ID()] {
			active = append(active, m)
		}
	}
	return active
}

// DrawerItems returns the drawer modules in declared order. This order is
// used both for rendering and for hit-testing.
func (r *Registry) DrawerItems() []Item {
	var items []Item
	for _, m := range r.Modules() {
		if item, ok := DrawerItem(m); ok {
			items = append(items, item)
		}
	}
	return items
}

// PanelModules returns the active panel modules with the given alignment,
// in declared order.
func (r *Registry) PanelModules(alignment Alignment) []PanelModule {
	var mods []PanelModule
	for _, m := range r.Modules() {
		if pm, ok := m.(PanelModule); ok && pm.Alignment() == alignment {
			mods = append(mods, pm)
		}
	}
	return mods
}

// BackgroundModules returns the active background activity modules.
func (r *Registry) BackgroundModules() []BackgroundModule {
	var mods []BackgroundModule
	for _, m := range r.Modules() {
		if bm, ok := m.(BackgroundModule); ok {
			mods = append(mods, bm)
		}
	}
	return mods
}

// ByID finds an active module by identifier.
func (r *Registry) ByID(id string) (Module, bool) {
	for _, m := range r.Modules() {
		if m.ID() == id {
			return m, true
		}
	}
	return nil, false
}
