package systems

import (
	"log"

	"github.com/Onimix/ONIMISIV/pkg/components"
	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/ecs"
	"github.com/Onimix/ONIMISIV/pkg/entities"
	"github.com/Onimix/ONIMISIV/pkg/game"
	"github.com/Onimix/ONIMISIV/pkg/render"
	"github.com/Onimix/ONIMISIV/pkg/utils"
)

// AvoidanceSimulation 躲避小游戏的完整模拟
//
// 持有小游戏专用的 EntityManager（核心 + 敌人）与 AvoidanceState，
// 按固定顺序驱动各系统：核心追随 → 敌人生成 → 敌人移动/碰撞/离场。
// 所有状态通过该结构显式传递，不使用包级变量。
type AvoidanceSimulation struct {
	entityManager *ecs.EntityManager
	cfg           config.AvoidanceConfig
	state         *game.AvoidanceState
	sound         game.SoundPlayer

	followSystem  *CoreFollowSystem
	spawnSystem   *EnemySpawnSystem
	enemySystem   *EnemySystem
	renderSystem  *AvoidanceRenderSystem
	coreID        ecs.EntityID
	phaseChangeAt float64
}

// NewAvoidanceSimulation 创建处于 start 状态的小游戏
//
// 参数:
//   - cfg: 小游戏配置
//   - rng: 随机数源
//   - sound: 提示音，可为 nil
func NewAvoidanceSimulation(cfg config.AvoidanceConfig, rng *utils.Rand, sound game.SoundPlayer) *AvoidanceSimulation {
	if sound == nil {
		sound = game.MuteSound{}
	}
	em := ecs.NewEntityManager()
	state := game.NewAvoidanceState()

	sim := &AvoidanceSimulation{
		entityManager: em,
		cfg:           cfg,
		state:         state,
		sound:         sound,
		followSystem:  NewCoreFollowSystem(em, cfg.Smoothing),
		spawnSystem:   NewEnemySpawnSystem(em, rng, cfg),
		enemySystem:   NewEnemySystem(em, state, sound, cfg),
		renderSystem:  NewAvoidanceRenderSystem(em, cfg),
		coreID:        entities.NewCoreEntity(em, cfg),
	}
	log.Printf("[AvoidanceSimulation] Created %.0fx%.0f field", cfg.Width, cfg.Height)
	return sim
}

// Start 开始（或重新开始）一局
//
// 清空敌人、核心回到中心、重置生成计时器，分数归零。任何状态下都可调用。
func (s *AvoidanceSimulation) Start(now float64) {
	s.enemySystem.Clear()
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.coreID); ok {
		pos.X = s.cfg.Width / 2
		pos.Y = s.cfg.Height / 2
	}
	s.spawnSystem.Reset()
	s.state.Start()
	s.phaseChangeAt = now
	s.sound.Play(game.CueStart)
}

// Tick 推进一帧
//
// 参数:
//   - pointer: 指针位置（小游戏画布坐标）
//   - now: 帧时间戳（毫秒）
//
// 返回:
//   - bool: 本帧结束后游戏是否仍在进行
func (s *AvoidanceSimulation) Tick(pointer utils.Point, now float64) bool {
	if !s.state.IsPlaying() {
		return false
	}

	s.followSystem.Update(pointer)

	core := s.CorePosition()
	s.spawnSystem.Update(now, core.X, core.Y)

	if s.enemySystem.Update() {
		s.phaseChangeAt = now
		return false
	}
	return true
}

// Draw 绘制当前状态
func (s *AvoidanceSimulation) Draw(canvas render.Canvas, now float64) {
	s.renderSystem.Draw(canvas, s.state, now-s.phaseChangeAt)
}

// State 返回游戏状态
func (s *AvoidanceSimulation) State() *game.AvoidanceState {
	return s.state
}

// EntityManager 返回小游戏的实体管理器
func (s *AvoidanceSimulation) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Config 返回小游戏配置
func (s *AvoidanceSimulation) Config() config.AvoidanceConfig {
	return s.cfg
}

// CorePosition 返回核心当前位置
func (s *AvoidanceSimulation) CorePosition() utils.Point {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.coreID)
	if !ok {
		return utils.Point{X: s.cfg.Width / 2, Y: s.cfg.Height / 2}
	}
	return utils.Point{X: pos.X, Y: pos.Y}
}

// EnemyCount 返回存活敌人数量
func (s *AvoidanceSimulation) EnemyCount() int {
	return s.enemySystem.Count()
}

// SpawnEnemy 立即生成一个朝核心飞行的敌人
func (s *AvoidanceSimulation) SpawnEnemy(now float64) ecs.EntityID {
	core := s.CorePosition()
	return s.spawnSystem.Spawn(now, core.X, core.Y)
}
