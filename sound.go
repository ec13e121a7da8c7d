package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/dungeon/assets"
	"github.com/milk9111/dungeon/prefabs"
)

// soundBoard plays the cues named by the simulation through ebiten/audio.
// Clips are decoded on first use.
type soundBoard struct {
	muted   bool
	clips   map[string]prefabs.AudioClipSpec
	players map[string]*audio.Player
	missing map[string]bool

	music     *audio.Player
	musicName string
	musicLoop bool
}

func newSoundBoard(muted bool) *soundBoard {
	s := &soundBoard{
		muted:   muted,
		clips:   make(map[string]prefabs.AudioClipSpec),
		players: make(map[string]*audio.Player),
		missing: make(map[string]bool),
	}
	if muted {
		return s
	}
	spec, err := prefabs.LoadAudioSpec()
	if err != nil {
		log.Printf("audio: %v", err)
		return s
	}
	for _, clip := range spec.Clips {
		s.clips[clip.Name] = clip
	}
	return s
}

func (s *soundBoard) Play(name string) {
	p, clip := s.player(name)
	if p == nil {
		return
	}
	p.SetVolume(clip.Volume)
	if err := p.Rewind(); err != nil {
		log.Printf("audio: rewind %s: %v", name, err)
		return
	}
	p.Play()
}

func (s *soundBoard) PlayMusic(name string) {
	if name == s.musicName {
		return
	}
	if s.music != nil {
		s.music.Pause()
	}
	s.music, s.musicName = nil, name

	p, clip := s.player(name)
	if p == nil {
		return
	}
	s.music = p
	s.musicLoop = clip.Loop
	p.SetVolume(clip.Volume)
	_ = p.Rewind()
	p.Play()
}

// update restarts looping music that ran out.
func (s *soundBoard) update() {
	if s.music == nil || !s.musicLoop || s.music.IsPlaying() {
		return
	}
	_ = s.music.Rewind()
	s.music.Play()
}

func (s *soundBoard) player(name string) (*audio.Player, prefabs.AudioClipSpec) {
	if s.muted || s.missing[name] {
		return nil, prefabs.AudioClipSpec{}
	}
	clip, ok := s.clips[name]
	if !ok {
		log.Printf("audio: no clip for cue %q", name)
		s.missing[name] = true
		return nil, clip
	}
	if p, ok := s.players[name]; ok {
		return p, clip
	}
	p, err := assets.LoadAudioPlayer(clip.File)
	if err != nil {
		log.Printf("audio: load %s: %v", clip.File, err)
		s.missing[name] = true
		return nil, clip
	}
	if clip.Volume <= 0 {
		clip.Volume = 1
		s.clips[name] = clip
	}
	s.players[name] = p
	return p, clip
}
