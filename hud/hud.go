// Package hud keeps the player's hearts, score and gold for display. It only
// learns about changes from the event bus.
package hud

import (
	"fmt"

	"github.com/milk9111/dungeon/ecs/entity"
	"github.com/milk9111/dungeon/events"
)

type Heart int

const (
	HeartEmpty Heart = iota
	HeartHalf
	HeartFull
)

func (h Heart) String() string {
	switch h {
	case HeartFull:
		return "full"
	case HeartHalf:
		return "half"
	default:
		return "empty"
	}
}

// HUD mirrors the values last published on the bus. Two lives make a heart.
type HUD struct {
	lives    int
	maxLives int
	score    int
	gold     int
	subs     events.Group
}

// New starts from data and follows bus until Close.
func New(bus *events.Bus, data entity.PlayerData) *HUD {
	h := &HUD{
		lives:    data.Lives,
		maxLives: data.MaxLives,
		score:    data.Score,
		gold:     data.Gold,
	}
	h.subs.Subscribe(bus, events.PlayerHealthChanged, func(e events.Event) { h.lives = e.Value })
	h.subs.Subscribe(bus, events.PlayerScoreChanged, func(e events.Event) { h.score = e.Value })
	h.subs.Subscribe(bus, events.PlayerGoldChanged, func(e events.Event) { h.gold = e.Value })
	return h
}

// Hearts lists one entry per heart container, left to right.
func (h *HUD) Hearts() []Heart {
	n := (h.maxLives + 1) / 2
	hearts := make([]Heart, n)
	for i := range hearts {
		full := 2 * (i + 1)
		switch {
		case h.lives >= full:
			hearts[i] = HeartFull
		case h.lives == full-1:
			hearts[i] = HeartHalf
		default:
			hearts[i] = HeartEmpty
		}
	}
	return hearts
}

func (h *HUD) Lives() int { return h.lives }
func (h *HUD) Score() int { return h.score }
func (h *HUD) Gold() int  { return h.gold }

func (h *HUD) ScoreText() string { return fmt.Sprintf("Score: %d", h.score) }
func (h *HUD) GoldText() string  { return fmt.Sprintf("%d", h.gold) }

func (h *HUD) Close() {
	h.subs.Unsubscribe()
}
