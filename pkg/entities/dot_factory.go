package entities

import (
	"github.com/Onimix/ONIMISIV/pkg/components"
	"github.com/Onimix/ONIMISIV/pkg/ecs"
)

// NewDotEntity 创建一个背景粒子实体
// 参数:
//   - manager: 粒子场的 EntityManager
//   - x, y: 初始位置
//   - vx, vy: 每帧位移
//   - radius, alpha: 绘制半径与固定透明度
//
// 返回: 创建的实体ID
func NewDotEntity(manager *ecs.EntityManager, x, y, vx, vy, radius, alpha float64) ecs.EntityID {
	id := manager.CreateEntity()
	manager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	manager.AddComponent(id, &components.VelocityComponent{VX: vx, VY: vy})
	manager.AddComponent(id, &components.DotComponent{Radius: radius, Alpha: alpha})
	return id
}
