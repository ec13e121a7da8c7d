package hud

import (
	"testing"

	"github.com/milk9111/dungeon/ecs/entity"
	"github.com/milk9111/dungeon/events"
	"github.com/stretchr/testify/assert"
)

func TestHearts(t *testing.T) {
	tests := []struct {
		name     string
		lives    int
		maxLives int
		want     []Heart
	}{
		{"full", 6, 6, []Heart{HeartFull, HeartFull, HeartFull}},
		{"half", 5, 6, []Heart{HeartFull, HeartFull, HeartHalf}},
		{"one_life", 1, 6, []Heart{HeartHalf, HeartEmpty, HeartEmpty}},
		{"dead", 0, 6, []Heart{HeartEmpty, HeartEmpty, HeartEmpty}},
		{"odd_max", 3, 3, []Heart{HeartFull, HeartHalf}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := New(nil, entity.PlayerData{Lives: tc.lives, MaxLives: tc.maxLives})
			assert.Equal(t, tc.want, h.Hearts())
		})
	}
}

func TestFollowsTheBus(t *testing.T) {
	bus := events.NewBus()
	h := New(bus, entity.PlayerData{Lives: 6, MaxLives: 6, Score: 10, Gold: 2})
	assert.Equal(t, "Score: 10", h.ScoreText())

	bus.Publish(events.PlayerHealthChanged, 4)
	bus.Publish(events.PlayerScoreChanged, 510)
	bus.Publish(events.PlayerGoldChanged, 3)

	assert.Equal(t, 4, h.Lives())
	assert.Equal(t, "Score: 510", h.ScoreText())
	assert.Equal(t, "3", h.GoldText())
	assert.Equal(t, []Heart{HeartFull, HeartFull, HeartEmpty}, h.Hearts())

	h.Close()
	bus.Publish(events.PlayerScoreChanged, 9999)
	assert.Equal(t, 510, h.Score())
	assert.Zero(t, bus.Subscribers(events.PlayerScoreChanged))
}
