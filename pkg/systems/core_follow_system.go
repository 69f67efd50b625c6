package systems

import (
	"github.com/Onimix/ONIMISIV/pkg/components"
	"github.com/Onimix/ONIMISIV/pkg/ecs"
	"github.com/Onimix/ONIMISIV/pkg/utils"
)

// CoreFollowSystem 让核心平滑追随指针
//
// 每帧移动剩余距离的 smoothing 比例（指数平滑），指针静止时核心渐近逼近但不越过。
type CoreFollowSystem struct {
	entityManager *ecs.EntityManager
	smoothing     float64
}

// NewCoreFollowSystem 创建核心追随系统
// 参数:
//   - em: 小游戏的 EntityManager
//   - smoothing: 平滑系数 (0, 1]
func NewCoreFollowSystem(em *ecs.EntityManager, smoothing float64) *CoreFollowSystem {
	return &CoreFollowSystem{
		entityManager: em,
		smoothing:     smoothing,
	}
}

// Update 将核心向 target 移动一步
func (s *CoreFollowSystem) Update(target utils.Point) {
	for _, id := range ecs.GetEntitiesWith2[*components.CoreComponent, *components.PositionComponent](s.entityManager) {
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}
		pos.X = utils.Approach(pos.X, target.X, s.smoothing)
		pos.Y = utils.Approach(pos.Y, target.Y, s.smoothing)
	}
}

// findCore 返回核心实体及其位置、碰撞半径
// 不存在核心时 ok 为 false
func findCore(em *ecs.EntityManager) (id ecs.EntityID, pos *components.PositionComponent, radius float64, ok bool) {
	ids := ecs.GetEntitiesWith3[
		*components.CoreComponent,
		*components.PositionComponent,
		*components.CollisionComponent,
	](em)
	if len(ids) == 0 {
		return 0, nil, 0, false
	}
	id = ids[0]
	pos, _ = ecs.GetComponent[*components.PositionComponent](em, id)
	col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
	return id, pos, col.Radius, true
}
