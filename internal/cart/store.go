package cart

import (
	"fmt"
	"sync"
	"time"
)

type EventKind string

const (
	EventAdded       EventKind = "added"
	EventQuantitySet EventKind = "quantity_set"
	EventRemoved     EventKind = "removed"
	EventCleared     EventKind = "cleared"
)

// Event is one applied cart edit. Seq numbers start at 1 and have no gaps.
type Event struct {
	Seq       uint64    `json:"seq"`
	Kind      EventKind `json:"kind"`
	ProductID string    `json:"productId,omitempty"`
	Item      *Item     `json:"item,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	At        time.Time `json:"at"`
}

const subscriberBuffer = 16

// Store owns one cart. All edits go through it, are appended to its log and
// are then broadcast to subscribers. A subscriber that falls behind is
// dropped and its channel closed.
type Store struct {
	mu     sync.Mutex
	items  []Item
	log    []Event
	subs   map[int]chan Event
	nextID int
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{subs: make(map[int]chan Event), now: time.Now}
}

// Replay rebuilds a cart from a previously recorded log.
func Replay(events []Event) (*Store, error) {
	s := NewStore()
	for _, e := range events {
		if _, err := s.apply(e); err != nil {
			return nil, fmt.Errorf("replay event %d: %w", e.Seq, err)
		}
	}
	return s, nil
}

// Add puts the item in the cart or, when the product is already there,
// increases its quantity. Quantities below 1 count as 1.
func (s *Store) Add(item Item) (Event, error) {
	return s.apply(Event{Kind: EventAdded, ProductID: item.ProductID, Item: &item})
}

// SetQuantity floors quantity at 1; removing a line is Remove.
func (s *Store) SetQuantity(productID string, quantity int) (Event, error) {
	return s.apply(Event{Kind: EventQuantitySet, ProductID: productID, Quantity: quantity})
}

func (s *Store) Remove(productID string) (Event, error) {
	return s.apply(Event{Kind: EventRemoved, ProductID: productID})
}

func (s *Store) Clear() (Event, error) {
	return s.apply(Event{Kind: EventCleared})
}

func (s *Store) apply(e Event) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e.Kind {
	case EventAdded:
		if e.Item == nil || e.Item.ProductID == "" {
			return Event{}, fmt.Errorf("added event without product")
		}
		item := *e.Item
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		e.Item = &item
		e.ProductID = item.ProductID
		if i := s.index(item.ProductID); i >= 0 {
			s.items[i].Quantity += item.Quantity
		} else {
			s.items = append(s.items, item)
		}
	case EventQuantitySet:
		i := s.index(e.ProductID)
		if i < 0 {
			return Event{}, fmt.Errorf("product %s is not in the cart", e.ProductID)
		}
		if e.Quantity < 1 {
			e.Quantity = 1
		}
		s.items[i].Quantity = e.Quantity
	case EventRemoved:
		i := s.index(e.ProductID)
		if i < 0 {
			return Event{}, fmt.Errorf("product %s is not in the cart", e.ProductID)
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
	case EventCleared:
		s.items = nil
	default:
		return Event{}, fmt.Errorf("unknown cart event %q", e.Kind)
	}

	e.Seq = uint64(len(s.log)) + 1
	if e.At.IsZero() {
		e.At = s.now()
	}
	s.log = append(s.log, e)
	s.broadcastLocked(e)
	return e, nil
}

func (s *Store) index(productID string) int {
	for i, it := range s.items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) broadcastLocked(e Event) {
	for id, ch := range s.subs {
		select {
		case ch <- e:
		default:
			close(ch)
			delete(s.subs, id)
		}
	}
}

// Subscribe returns a channel receiving every event applied from now on and
// a function that ends the subscription.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Event, subscriberBuffer)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				close(c)
				delete(s.subs, id)
			}
		})
	}
}

// Items returns a copy of the current cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]Event, len(s.log))
	copy(events, s.log)
	return events
}

func (s *Store) Summary() Summary {
	return Quote(s.Items())
}
