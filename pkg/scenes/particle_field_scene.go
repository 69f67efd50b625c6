package scenes

import (
	"fmt"
	"log"

	"github.com/Onimix/ONIMISIV/pkg/ecs"
	"github.com/Onimix/ONIMISIV/pkg/game"
	"github.com/Onimix/ONIMISIV/pkg/render"
	"github.com/Onimix/ONIMISIV/pkg/systems"
)

// ParticleFieldScene 全视口背景粒子场
//
// 挂载时按视口尺寸生成粒子并注册一条帧回调链；
// 视口尺寸变化时重建粒子。Dispose 时取消帧回调链和尺寸订阅。
type ParticleFieldScene struct {
	loop      *game.FrameLoop
	lifecycle *game.Lifecycle

	variantName  string
	fieldSystem  *systems.ParticleFieldSystem
	renderSystem *systems.ParticleRenderSystem

	handle game.FrameHandle
}

// NewParticleFieldScene 创建并挂载粒子场场景
//
// 参数:
//   - env: 场景运行环境
//   - variantName: 粒子场变体名称
//
// 返回:
//   - *ParticleFieldScene: 已开始运行的场景
//   - error: 变体不存在时返回错误
func NewParticleFieldScene(env *Environment, variantName string) (*ParticleFieldScene, error) {
	variant, ok := env.Config.Variant(variantName)
	if !ok {
		return nil, fmt.Errorf("unknown particle variant %q (available: %v)", variantName, env.Config.VariantNames())
	}

	em := ecs.NewEntityManager()
	s := &ParticleFieldScene{
		loop:         env.Loop,
		lifecycle:    game.NewLifecycle(),
		variantName:  variantName,
		fieldSystem:  systems.NewParticleFieldSystem(em, env.Rand, env.Config.ParticleField, variant),
		renderSystem: systems.NewParticleRenderSystem(em, variant),
	}

	w, h := env.Viewport.Size()
	s.fieldSystem.Regenerate(float64(w), float64(h))

	s.lifecycle.Own(env.Viewport.Subscribe(func(w, h int) {
		s.fieldSystem.Regenerate(float64(w), float64(h))
	}))

	s.handle = s.loop.Request(s.onFrame)
	s.lifecycle.Own(func() {
		s.loop.Cancel(s.handle)
	})

	log.Printf("[ParticleFieldScene] Mounted variant %q", variantName)
	return s, nil
}

// onFrame 帧回调：推进粒子并重新注册自己
func (s *ParticleFieldScene) onFrame(float64) {
	s.fieldSystem.Update()
	s.handle = s.loop.Request(s.onFrame)
}

// Draw 实现 game.Scene
func (s *ParticleFieldScene) Draw(canvas render.Canvas) {
	w, h := s.fieldSystem.Bounds()
	if w <= 0 || h <= 0 {
		return
	}
	canvas.Fill(s.fieldSystem.Variant().Background.Opaque())
	s.renderSystem.Draw(canvas)
}

// Dispose 实现 game.Scene
func (s *ParticleFieldScene) Dispose() {
	s.lifecycle.Dispose()
	log.Printf("[ParticleFieldScene] Disposed variant %q", s.variantName)
}

// VariantName 返回当前变体名称
func (s *ParticleFieldScene) VariantName() string {
	return s.variantName
}

// ParticleCount 返回当前粒子数量
func (s *ParticleFieldScene) ParticleCount() int {
	return s.fieldSystem.Count()
}
