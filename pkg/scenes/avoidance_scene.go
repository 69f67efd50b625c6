package scenes

import (
	"log"

	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/game"
	"github.com/Onimix/ONIMISIV/pkg/render"
	"github.com/Onimix/ONIMISIV/pkg/systems"
	"github.com/Onimix/ONIMISIV/pkg/utils"
)

// panelBorderAlpha 小游戏面板边框透明度
const panelBorderAlpha = 0.2

// AvoidanceScene 躲避小游戏场景
//
// 小游戏画布固定尺寸，居中绘制在场景画布上。
// 帧回调链只在进行中存在：开始时注册，游戏结束或 Dispose 时取消。
type AvoidanceScene struct {
	loop      *game.FrameLoop
	input     *game.InputHub
	lifecycle *game.Lifecycle
	sim       *systems.AvoidanceSimulation

	// origin 小游戏画布左上角在场景画布中的位置，用于换算指针坐标
	origin utils.Point

	handle  game.FrameHandle
	running bool
}

// NewAvoidanceScene 创建并挂载小游戏场景（处于 start 状态）
func NewAvoidanceScene(env *Environment) *AvoidanceScene {
	cfg := env.Config.Avoidance
	s := &AvoidanceScene{
		loop:      env.Loop,
		input:     env.Input,
		lifecycle: game.NewLifecycle(),
		sim:       systems.NewAvoidanceSimulation(cfg, env.Rand, env.Sound),
	}

	// 未绘制前按视口居中估算，首帧 Draw 后以实际画布为准
	vw, vh := env.Viewport.Size()
	s.origin.X, s.origin.Y = config.CenterIn(float64(vw), float64(vh), cfg.Width, cfg.Height)

	s.lifecycle.Own(s.input.SubscribeStart(s.Start))
	s.lifecycle.Own(s.stop)

	log.Printf("[AvoidanceScene] Mounted")
	return s
}

// Start 开始或重新开始一局，并确保帧回调链在运行
func (s *AvoidanceScene) Start() {
	if s.lifecycle.Disposed() {
		return
	}
	s.sim.Start(s.loop.Now())
	if !s.running {
		s.running = true
		s.handle = s.loop.Request(s.onFrame)
	}
}

// onFrame 帧回调：推进一帧，仍在进行则重新注册
func (s *AvoidanceScene) onFrame(timestampMs float64) {
	if s.sim.Tick(s.localPointer(), timestampMs) {
		s.handle = s.loop.Request(s.onFrame)
		return
	}
	s.running = false
	state := s.sim.State()
	log.Printf("[AvoidanceScene] Frame chain stopped after round %d (phase=%s score=%d)", state.Rounds(), state.Phase(), state.Score())
}

// stop 取消帧回调链
func (s *AvoidanceScene) stop() {
	if s.running {
		s.loop.Cancel(s.handle)
		s.running = false
	}
}

// localPointer 将指针位置换算为小游戏画布坐标
// 尚无指针输入时返回核心当前位置（核心保持不动）
func (s *AvoidanceScene) localPointer() utils.Point {
	p, ok := s.input.Pointer.Load()
	if !ok {
		return s.sim.CorePosition()
	}
	return utils.ScreenToLocal(p, s.origin)
}

// Draw 实现 game.Scene
func (s *AvoidanceScene) Draw(canvas render.Canvas) {
	cfg := s.sim.Config()
	cw, ch := canvas.Size()
	if cw <= 0 || ch <= 0 {
		return
	}
	x, y := config.CenterIn(cw, ch, cfg.Width, cfg.Height)
	s.origin = utils.Point{X: x, Y: y}

	s.sim.Draw(canvas.Region(x, y, cfg.Width, cfg.Height), s.loop.Now())

	border := cfg.HUD.Color.WithAlpha(panelBorderAlpha)
	canvas.StrokeLine(x, y, x+cfg.Width, y, 1, border)
	canvas.StrokeLine(x, y+cfg.Height, x+cfg.Width, y+cfg.Height, 1, border)
	canvas.StrokeLine(x, y, x, y+cfg.Height, 1, border)
	canvas.StrokeLine(x+cfg.Width, y, x+cfg.Width, y+cfg.Height, 1, border)
}

// Dispose 实现 game.Scene
func (s *AvoidanceScene) Dispose() {
	s.lifecycle.Dispose()
	log.Printf("[AvoidanceScene] Disposed")
}

// Simulation 返回小游戏模拟
func (s *AvoidanceScene) Simulation() *systems.AvoidanceSimulation {
	return s.sim
}

// Running 帧回调链是否在运行
func (s *AvoidanceScene) Running() bool {
	return s.running
}
