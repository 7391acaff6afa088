package module

import "context"

// Base provides default implementations of the Module interface. Embed it
// in module implementations and override what is needed.
type Base struct {
	id       string
	ctx      context.Context
	cancel   context.CancelFunc
	notifier Notifier
}

// NewBase creates a Base with the given ID.
func NewBase(id string) Base {
	return Base{id: id}
}

// ID returns the module's identifier.
func (b *Base) ID() string {
	return b.id
}

// Init stores the context and notifier. Overriding modules must call this
// before starting their own listeners.
func (b *Base) Init(ctx context.Context, notifier Notifier) error {
	b.ctx, b.cancel = context.WithCancel(ctx)
	b.notifier = notifier
	return nil
}

// Stop cancels the module's context.
func (b *Base) Stop() error {
	if b.cancel != nil {
		b.cancel()
	}
	return nil
}

// Context returns the module's context.
func (b *Base) Context() context.Context {
	return b.ctx
}

// Notify forwards apply to the owning loop. Safe to call before Init; the
// update is dropped in that case.
func (b *Base) Notify(apply func()) {
	if b.notifier != nil {
		b.notifier.Notify(apply)
	}
}
