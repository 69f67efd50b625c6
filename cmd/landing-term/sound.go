package main

import (
	"fmt"
	"math"
	"time"

	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(game.AudioSampleRate)

// beepSound 通过 beep 播放正弦提示音
type beepSound struct {
	cfg config.AudioConfig
}

// newBeepSound 初始化扬声器
func newBeepSound(cfg config.AudioConfig) (*beepSound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}
	return &beepSound{cfg: cfg}, nil
}

// Play 实现 game.SoundPlayer
func (b *beepSound) Play(cue game.Cue) {
	tone, ok := b.tone(cue)
	if !ok {
		return
	}
	speaker.Play(tone)
}

// tone 生成提示音音频流，结束音比开始音长一倍
func (b *beepSound) tone(cue game.Cue) (beep.Streamer, bool) {
	if b.cfg.Volume <= 0 {
		return nil, false
	}

	hz, ms := b.cfg.StartHz, b.cfg.ToneMs
	if cue == game.CueGameOver {
		hz, ms = b.cfg.GameOverHz, b.cfg.ToneMs*2
	}

	sine, err := generators.SineTone(sampleRate, hz)
	if err != nil {
		return nil, false
	}
	duration := time.Duration(ms * float64(time.Millisecond))
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(duration), sine),
		Base:     2,
		Volume:   math.Log2(b.cfg.Volume),
	}, true
}
