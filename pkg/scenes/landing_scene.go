package scenes

import (
	"log"

	"github.com/Onimix/ONIMISIV/pkg/game"
	"github.com/Onimix/ONIMISIV/pkg/render"
)

// LandingScene 落地页：全屏粒子场背景 + 居中的小游戏面板
//
// 两个模拟各自持有实体集合和帧回调链，互不共享状态。
type LandingScene struct {
	lifecycle *game.Lifecycle
	field     *ParticleFieldScene
	avoidance *AvoidanceScene
}

// NewLandingScene 创建并挂载落地页
func NewLandingScene(env *Environment, variantName string) (*LandingScene, error) {
	field, err := NewParticleFieldScene(env, variantName)
	if err != nil {
		return nil, err
	}
	s := &LandingScene{
		lifecycle: game.NewLifecycle(),
		field:     field,
		avoidance: NewAvoidanceScene(env),
	}
	s.lifecycle.Own(s.field.Dispose)
	s.lifecycle.Own(s.avoidance.Dispose)

	log.Printf("[LandingScene] Mounted with variant %q", variantName)
	return s, nil
}

// Draw 实现 game.Scene
func (s *LandingScene) Draw(canvas render.Canvas) {
	s.field.Draw(canvas)
	s.avoidance.Draw(canvas)
}

// Dispose 实现 game.Scene
// 先卸载小游戏，再卸载粒子场
func (s *LandingScene) Dispose() {
	s.lifecycle.Dispose()
}

// Field 返回背景粒子场
func (s *LandingScene) Field() *ParticleFieldScene {
	return s.field
}

// Avoidance 返回小游戏
func (s *LandingScene) Avoidance() *AvoidanceScene {
	return s.avoidance
}
