package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  Summary
	}{
		{
			name:  "free shipping at threshold",
			items: []Item{{ProductID: "a", Price: 2000, Quantity: 1}, {ProductID: "b", Price: 4000, Quantity: 1}},
			want:  Summary{Subtotal: 6000, Shipping: 0, Total: 6000, ItemCount: 2},
		},
		{
			name:  "exactly threshold",
			items: []Item{{ProductID: "a", Price: 2500, Quantity: 2}},
			want:  Summary{Subtotal: 5000, Shipping: 0, Total: 5000, ItemCount: 2},
		},
		{
			name:  "below threshold",
			items: []Item{{ProductID: "a", Price: 1200.5, Quantity: 3}},
			want:  Summary{Subtotal: 3601.5, Shipping: 350, Total: 3951.5, ItemCount: 3},
		},
		{
			name:  "quantity floored at one",
			items: []Item{{ProductID: "a", Price: 100, Quantity: 0}},
			want:  Summary{Subtotal: 100, Shipping: 350, Total: 450, ItemCount: 1},
		},
		{
			name:  "discount is not charged",
			items: []Item{{ProductID: "a", Price: 1000, Quantity: 1, Discount: 50}},
			want:  Summary{Subtotal: 1000, Shipping: 350, Total: 1350, ItemCount: 1},
		},
		{
			name: "empty",
			want: Summary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quote(tt.items))
		})
	}
}

func TestStoreEdits(t *testing.T) {
	s := NewStore()

	_, err := s.Add(Item{ProductID: "bag", Name: "Tote", Price: 450})
	require.NoError(t, err)
	_, err = s.Add(Item{ProductID: "lamp", Name: "Jar lamp", Price: 900, Quantity: 2})
	require.NoError(t, err)
	_, err = s.Add(Item{ProductID: "bag", Name: "Tote", Price: 450})
	require.NoError(t, err)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "bag", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)

	_, err = s.SetQuantity("lamp", -4)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Items()[1].Quantity)

	_, err = s.Remove("bag")
	require.NoError(t, err)
	assert.Equal(t, Summary{Subtotal: 900, Shipping: 350, Total: 1250, ItemCount: 1}, s.Summary())

	_, err = s.Remove("bag")
	assert.Error(t, err)
	_, err = s.SetQuantity("missing", 3)
	assert.Error(t, err)

	_, err = s.Clear()
	require.NoError(t, err)
	assert.Empty(t, s.Items())

	events := s.Events()
	require.Len(t, events, 6)
	for i, e := range events {
		assert.Equal(t, uint64(i+1), e.Seq)
	}
	assert.Equal(t, EventCleared, events[5].Kind)
}

func TestItemsIsACopy(t *testing.T) {
	s := NewStore()
	_, err := s.Add(Item{ProductID: "bag", Price: 10})
	require.NoError(t, err)

	items := s.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestReplay(t *testing.T) {
	s := NewStore()
	_, _ = s.Add(Item{ProductID: "a", Price: 2000})
	_, _ = s.Add(Item{ProductID: "b", Price: 4000})
	_, _ = s.Add(Item{ProductID: "c", Price: 10})
	_, _ = s.Remove("c")

	replayed, err := Replay(s.Events())
	require.NoError(t, err)
	assert.Equal(t, s.Items(), replayed.Items())
	assert.Equal(t, Summary{Subtotal: 6000, Shipping: 0, Total: 6000, ItemCount: 2}, replayed.Summary())

	_, err = Replay([]Event{{Kind: "renamed"}})
	assert.Error(t, err)
}

func TestReplayFloorsAddedQuantity(t *testing.T) {
	replayed, err := Replay([]Event{
		{Seq: 1, Kind: EventAdded, Item: &Item{ProductID: "a", Price: 500, Quantity: 0}},
		{Seq: 2, Kind: EventAdded, Item: &Item{ProductID: "b", Price: 500, Quantity: -3}},
	})
	require.NoError(t, err)

	items := replayed.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, 1, replayed.Events()[0].Item.Quantity)
}

func TestSubscribe(t *testing.T) {
	s := NewStore()
	events, cancel := s.Subscribe()

	_, err := s.Add(Item{ProductID: "a", Price: 1})
	require.NoError(t, err)
	_, err = s.SetQuantity("a", 3)
	require.NoError(t, err)

	first := <-events
	assert.Equal(t, EventAdded, first.Kind)
	assert.Equal(t, "a", first.ProductID)
	second := <-events
	assert.Equal(t, EventQuantitySet, second.Kind)
	assert.Equal(t, 3, second.Quantity)

	cancel()
	cancel()
	_, ok := <-events
	assert.False(t, ok)

	_, err = s.Clear()
	require.NoError(t, err)
}

func TestSlowSubscriberIsDropped(t *testing.T) {
	s := NewStore()
	events, cancel := s.Subscribe()
	defer cancel()

	for i := 0; i <= subscriberBuffer; i++ {
		_, err := s.Add(Item{ProductID: "a", Price: 1})
		require.NoError(t, err)
	}

	received := 0
	for range events {
		received++
	}
	assert.Equal(t, subscriberBuffer, received)
}
