package game

// AudioSampleRate 提示音采样率，桌面端与终端共用
const AudioSampleRate = 48000

// Cue 提示音类型
type Cue int

const (
	// CueStart 一局开始
	CueStart Cue = iota
	// CueGameOver 碰撞结束
	CueGameOver
)

// SoundPlayer 播放提示音
// 桌面端由 app.AudioManager（Ebitengine audio）实现，终端由 beep 实现
type SoundPlayer interface {
	Play(cue Cue)
}

// MuteSound 不发声的 SoundPlayer
type MuteSound struct{}

// Play 实现 SoundPlayer
func (MuteSound) Play(Cue) {}
