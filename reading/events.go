package reading

// Typed publish/subscribe bus decoupling the navigation UI from the
// coordinator. Everything runs on the single UI event loop, so delivery is
// synchronous and unlocked by design of the host, not by accident.

// Event is a closed set of notification payloads.
type Event interface {
	isEvent()
}

// LocatorChanged is published after the canonical position moves.
type LocatorChanged struct {
	Loc Locator
}

// BusyChanged is published when the navigation busy lock is taken or
// released.
type BusyChanged struct {
	Busy bool
}

func (LocatorChanged) isEvent() {}
func (BusyChanged) isEvent()    {}

// Bus fans events out to subscribers in subscription order.
type Bus struct {
	subs []func(Event)
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all events. Handlers must not block.
func (b *Bus) Subscribe(fn func(Event)) {
	b.subs = append(b.subs, fn)
}

// Publish delivers an event to every subscriber synchronously.
func (b *Bus) Publish(e Event) {
	for _, fn := range b.subs {
		fn(e)
	}
}
