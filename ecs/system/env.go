package system

import (
	"github.com/milk9111/dungeon/events"
	"github.com/milk9111/dungeon/prefabs"
)

// Cues plays named sound effects and music. Frontends provide the backend;
// the simulation only names what should be heard.
type Cues interface {
	Play(name string)
	PlayMusic(name string)
}

// Env is what every system shares for one room.
type Env struct {
	Bus    *events.Bus
	Cues   Cues
	Tuning prefabs.TuningSpec
	// Dt is the length of the current tick in seconds.
	Dt float64
}

func NewEnv(bus *events.Bus, cues Cues, tuning prefabs.TuningSpec) *Env {
	return &Env{
		Bus:    bus,
		Cues:   cues,
		Tuning: tuning,
		Dt:     tuning.TickDuration().Seconds(),
	}
}

func (e *Env) cue(name string) {
	if e == nil || e.Cues == nil || name == "" {
		return
	}
	e.Cues.Play(name)
}

func (e *Env) publish(typ events.Type, value int) {
	if e == nil {
		return
	}
	e.Bus.Publish(typ, value)
}

func (e *Env) dt() float64 {
	if e == nil || e.Dt <= 0 {
		return 1.0 / 60
	}
	return e.Dt
}
