package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishIsSynchronousAndOrdered(t *testing.T) {
	b := NewBus()
	var got []string
	b.Subscribe(PlayerScoreChanged, func(e Event) {
		got = append(got, "a")
		assert.Equal(t, 500, e.Value)
	})
	b.Subscribe(PlayerScoreChanged, func(Event) { got = append(got, "b") })
	b.Subscribe(PlayerGoldChanged, func(Event) { got = append(got, "gold") })

	b.Publish(PlayerScoreChanged, 500)

	assert.Equal(t, []string{"a", "b"}, got)
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus()
	calls := 0
	sub := b.Subscribe(GameOver, func(Event) { calls++ })

	b.Publish(GameOver, 0)
	sub.Unsubscribe()
	sub.Unsubscribe()
	b.Publish(GameOver, 0)

	assert.Equal(t, 1, calls)
	assert.Zero(t, b.Subscribers(GameOver))
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	b := NewBus()
	calls := 0
	var second Subscription
	b.Subscribe(ActivateArena, func(Event) {
		calls++
		second.Unsubscribe()
	})
	second = b.Subscribe(ActivateArena, func(Event) { calls++ })

	b.Publish(ActivateArena, 0)
	assert.Equal(t, 1, calls)
}

func TestGroupDetachesEverything(t *testing.T) {
	b := NewBus()
	var g Group
	calls := 0
	g.Subscribe(b, PlayerHealthChanged, func(Event) { calls++ })
	g.Subscribe(b, PlayerGoldChanged, func(Event) { calls++ })

	g.Unsubscribe()
	b.Publish(PlayerHealthChanged, 3)
	b.Publish(PlayerGoldChanged, 1)

	assert.Zero(t, calls)
}

func TestNilBusIsInert(t *testing.T) {
	var b *Bus
	sub := b.Subscribe(GameOver, func(Event) { t.Fatal("must not be called") })
	b.Publish(GameOver, 0)
	sub.Unsubscribe()
	assert.Zero(t, b.Subscribers(GameOver))
}
