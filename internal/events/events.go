// Package events carries change notifications from the stores to whoever is
// rendering them. Subscribers hold a Subscription and cancel it when done.
package events

import "sync"

// Event is any store change notification.
type Event interface {
	isEvent()
}

// CategoryUpdate lists the positions in the sorted category listing that were
// inserted or deleted.
type CategoryUpdate struct {
	Inserted []int
	Deleted  []int
}

// TrackerOp names the mutation applied to a tracker.
type TrackerOp string

const (
	TrackerAdded    TrackerOp = "added"
	TrackerUpdated  TrackerOp = "updated"
	TrackerDeleted  TrackerOp = "deleted"
	TrackerRestored TrackerOp = "restored"
)

// TrackerUpdate is published after every tracker mutation.
type TrackerUpdate struct {
	Op        TrackerOp
	TrackerID string
}

// RecordUpdate is published when a completion mark is added or removed.
type RecordUpdate struct {
	TrackerID string
	Day       string
	Done      bool
}

// StoreChanged signals that the underlying store was modified from outside
// this process and everything should be re-fetched.
type StoreChanged struct{}

func (CategoryUpdate) isEvent() {}
func (TrackerUpdate) isEvent()  {}
func (RecordUpdate) isEvent()   {}
func (StoreChanged) isEvent()   {}

// Bus fans events out to subscribers. The zero value is ready to use.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
}

// Subscription detaches a subscriber from the bus.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Cancel stops delivery. It is safe to call more than once.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn to be called synchronously for every published event.
func (b *Bus) Subscribe(fn func(Event)) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[int]func(Event))
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	return &Subscription{cancel: func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}}
}

// Channel delivers events on a buffered channel. Events are dropped when the
// buffer is full. The channel is closed when the subscription is cancelled.
func (b *Bus) Channel(buffer int) (<-chan Event, *Subscription) {
	ch := make(chan Event, buffer)
	var closeMu sync.Mutex
	closed := false

	sub := b.Subscribe(func(e Event) {
		closeMu.Lock()
		defer closeMu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- e:
		default:
		}
	})

	inner := sub.cancel
	sub.cancel = func() {
		inner()
		closeMu.Lock()
		closed = true
		close(ch)
		closeMu.Unlock()
	}
	return ch, sub
}

// Publish delivers e to every current subscriber. A nil bus drops the event.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(e)
	}
}

// Len returns the number of active subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
