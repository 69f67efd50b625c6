package scenes

import (
	"fmt"

	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/game"
	"github.com/Onimix/ONIMISIV/pkg/utils"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// 场景名称（--scene 参数取值）
const (
	SceneLanding   = "landing"
	SceneParticles = "particles"
	SceneGame      = "game"
)

// SceneNames 返回所有场景名称
func SceneNames() []string {
	return []string{SceneLanding, SceneParticles, SceneGame}
}

// Environment 场景运行环境
//
// 前端（桌面或终端）创建一份 Environment，场景挂载时从中取得帧循环、视口、输入等依赖。
// 所有字段只在帧循环所在 goroutine 访问，Input.Pointer 除外。
type Environment struct {
	Loop     *game.FrameLoop
	Viewport *game.Viewport
	Input    *game.InputHub
	Config   *config.SimulationConfig
	Rand     *utils.Rand
	Sound    game.SoundPlayer

	// Variant 粒子场变体，切换后重新加载场景生效
	Variant string
}

// NewScene 按名称创建并挂载场景，可直接作为 game.SceneFactory 使用
func (env *Environment) NewScene(name string) (game.Scene, error) {
	switch name {
	case SceneLanding:
		return NewLandingScene(env, env.Variant)
	case SceneParticles:
		return NewParticleFieldScene(env, env.Variant)
	case SceneGame:
		return NewAvoidanceScene(env), nil
	default:
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, SceneNames())
	}
}

// NextVariant 切换到下一个粒子场变体并返回其名称
func (env *Environment) NextVariant() string {
	env.Variant = env.Config.NextVariant(env.Variant)
	return env.Variant
}
