package systems

import (
	"github.com/Onimix/ONIMISIV/pkg/components"
	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/ecs"
	"github.com/Onimix/ONIMISIV/pkg/game"
	"github.com/Onimix/ONIMISIV/pkg/utils"
)

// EnemySystem 移动敌人并处理碰撞与离场计分
//
// 每个敌人按实体ID升序处理：先移动，再判定碰撞，最后判定离场。
// 一旦发生碰撞，本局结束，本帧剩余敌人不再处理。
type EnemySystem struct {
	entityManager *ecs.EntityManager
	state         *game.AvoidanceState
	sound         game.SoundPlayer
	cfg           config.AvoidanceConfig
}

// NewEnemySystem 创建敌人系统
// 参数:
//   - em: 小游戏的 EntityManager
//   - state: 游戏状态（计分与结束）
//   - sound: 提示音，可为 nil
//   - cfg: 小游戏配置
func NewEnemySystem(em *ecs.EntityManager, state *game.AvoidanceState, sound game.SoundPlayer, cfg config.AvoidanceConfig) *EnemySystem {
	if sound == nil {
		sound = game.MuteSound{}
	}
	return &EnemySystem{
		entityManager: em,
		state:         state,
		sound:         sound,
		cfg:           cfg,
	}
}

// Update 推进一帧
//
// 返回:
//   - bool: 本帧是否发生碰撞
func (s *EnemySystem) Update() bool {
	defer s.entityManager.RemoveMarkedEntities()

	_, corePos, coreRadius, hasCore := findCore(s.entityManager)

	ids := ecs.GetEntitiesWith3[
		*components.EnemyComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](s.entityManager)

	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		pos.X += vel.VX
		pos.Y += vel.VY

		if hasCore {
			radius := 0.0
			if col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id); ok {
				radius = col.Radius
			}
			if utils.CirclesOverlap(corePos.X, corePos.Y, coreRadius, pos.X, pos.Y, radius) {
				s.state.EndRound()
				s.sound.Play(game.CueGameOver)
				return true
			}
		}

		if utils.OutsideBounds(pos.X, pos.Y, s.cfg.Width, s.cfg.Height, s.cfg.ExitMargin) {
			s.entityManager.DestroyEntity(id)
			s.state.AddScore(s.cfg.ExitScore)
		}
	}
	return false
}

// Clear 移除所有敌人
func (s *EnemySystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()
}

// Count 返回存活敌人数量
func (s *EnemySystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager))
}
