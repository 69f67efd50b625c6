package game

import (
	"errors"
	"log"

	"github.com/Onimix/ONIMISIV/pkg/render"
)

var errNoSceneFactory = errors.New("scene factory not set")

// SceneFactory 场景工厂函数类型
// 根据场景名创建并挂载场景，避免 game 包依赖 scenes 包
type SceneFactory func(name string) (Scene, error)

// SceneManager manages which scene is mounted.
// Switching scenes disposes the previous one so that no frame chain
// or subscription outlives its scene.
type SceneManager struct {
	currentScene Scene
	currentName  string
	sceneFactory SceneFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or Load to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo disposes the active scene (if any) and mounts the provided one.
func (sm *SceneManager) SwitchTo(name string, scene Scene) {
	if sm.currentScene != nil {
		log.Printf("[SceneManager] Disposing scene: %s", sm.currentName)
		sm.currentScene.Dispose()
	}
	sm.currentScene = scene
	sm.currentName = name
}

// Load 通过工厂创建指定场景并切换过去
// 创建失败时保留当前场景
func (sm *SceneManager) Load(name string) error {
	log.Printf("[SceneManager] Loading scene: %s", name)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set")
		return errNoSceneFactory
	}

	scene, err := sm.sceneFactory(name)
	if err != nil {
		log.Printf("[SceneManager] Error: cannot create scene %s: %v", name, err)
		return err
	}
	sm.SwitchTo(name, scene)
	log.Printf("[SceneManager] Switched to scene: %s", name)
	return nil
}

// Current 返回当前活动的场景及其名称
func (sm *SceneManager) Current() (Scene, string) {
	return sm.currentScene, sm.currentName
}

// Draw renders the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(canvas render.Canvas) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(canvas)
	}
}

// Close disposes the active scene. Called on shutdown.
func (sm *SceneManager) Close() {
	if sm.currentScene != nil {
		sm.currentScene.Dispose()
		sm.currentScene = nil
		sm.currentName = ""
	}
}
