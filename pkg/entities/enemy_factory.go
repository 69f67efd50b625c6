package entities

import (
	"image/color"

	"github.com/Onimix/ONIMISIV/pkg/components"
	"github.com/Onimix/ONIMISIV/pkg/ecs"
)

// NewEnemyEntity 创建一个敌人实体
// 参数:
//   - manager: 小游戏的 EntityManager
//   - x, y: 出生位置（画布边缘外侧）
//   - vx, vy: 每帧位移，生成后不再改变
//   - radius: 碰撞与绘制半径
//   - clr: 敌人颜色
//   - spawnAt: 生成时的模拟时间戳（毫秒）
//
// 返回: 创建的实体ID
func NewEnemyEntity(manager *ecs.EntityManager, x, y, vx, vy, radius float64, clr color.Color, spawnAt float64) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	manager.AddComponent(id, &components.VelocityComponent{VX: vx, VY: vy})
	manager.AddComponent(id, &components.CollisionComponent{Radius: radius})
	manager.AddComponent(id, &components.EnemyComponent{
		Color:   clr,
		SpawnAt: spawnAt,
	})

	return id
}
