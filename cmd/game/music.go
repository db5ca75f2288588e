package main

import (
	"bytes"
	"fmt"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const sampleRate = 44100

// wavMusicPlayer loops wav songs read from a directory
type wavMusicPlayer struct {
	ctx     *audio.Context
	fsys    fs.FS
	current string
	player  *audio.Player
}

func newWavMusicPlayer(fsys fs.FS) *wavMusicPlayer {
	return &wavMusicPlayer{
		ctx:  audio.NewContext(sampleRate),
		fsys: fsys,
	}
}

// Current returns the last requested song, even when it failed to load,
// so a missing file is reported once
func (m *wavMusicPlayer) Current() string {
	return m.current
}

// Play replaces the playing song with name, looping it
func (m *wavMusicPlayer) Play(name string) error {
	m.current = name
	if m.player != nil {
		_ = m.player.Close()
		m.player = nil
	}

	b, err := fs.ReadFile(m.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read song %s: %w", name, err)
	}
	stream, err := wav.DecodeWithSampleRate(m.ctx.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("decode wav %q: %w", name, err)
	}
	player, err := m.ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return fmt.Errorf("failed to create player for %s: %w", name, err)
	}
	player.Play()
	m.player = player
	return nil
}
