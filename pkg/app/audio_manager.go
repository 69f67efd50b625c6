package app

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/game"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 桌面端提示音播放器
//
// 提示音在创建时按配置合成为 PCM（16 位小端立体声），播放时从内存创建播放器，
// 不依赖任何音频资源文件。
type AudioManager struct {
	context *audio.Context
	cfg     config.AudioConfig
	tones   map[game.Cue][]byte
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: Ebitengine 音频上下文，可为 nil（静音）
//   - cfg: 提示音配置
func NewAudioManager(ctx *audio.Context, cfg config.AudioConfig) *AudioManager {
	am := &AudioManager{
		context: ctx,
		cfg:     cfg,
		tones:   make(map[game.Cue][]byte),
	}
	if ctx != nil && cfg.Enabled {
		am.tones[game.CueStart] = SynthesizeTone(game.AudioSampleRate, cfg.StartHz, cfg.ToneMs)
		am.tones[game.CueGameOver] = SynthesizeTone(game.AudioSampleRate, cfg.GameOverHz, cfg.ToneMs*2)
		log.Printf("[AudioManager] Synthesized %d cues", len(am.tones))
	}
	return am
}

// Play 实现 game.SoundPlayer
func (am *AudioManager) Play(cue game.Cue) {
	if am.context == nil || !am.cfg.Enabled {
		return
	}
	pcm, ok := am.tones[cue]
	if !ok || len(pcm) == 0 {
		return
	}
	player := am.context.NewPlayerFromBytes(pcm)
	player.SetVolume(am.cfg.Volume)
	player.Play()
}

// SynthesizeTone 合成正弦提示音
// 返回 16 位小端立体声 PCM，末尾 30% 线性淡出以避免爆音
func SynthesizeTone(sampleRate int, hz, durationMs float64) []byte {
	if hz <= 0 || durationMs <= 0 {
		return nil
	}
	samples := int(float64(sampleRate) * durationMs / 1000)
	fadeStart := int(float64(samples) * 0.7)
	buf := make([]byte, samples*4)

	for i := 0; i < samples; i++ {
		amp := 1.0
		if i >= fadeStart {
			amp = float64(samples-i) / float64(samples-fadeStart)
		}
		v := math.Sin(2*math.Pi*hz*float64(i)/float64(sampleRate)) * amp
		s := uint16(int16(v * math.MaxInt16 * 0.8))
		binary.LittleEndian.PutUint16(buf[i*4:], s)
		binary.LittleEndian.PutUint16(buf[i*4+2:], s)
	}
	return buf
}
