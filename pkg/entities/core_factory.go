package entities

import (
	"github.com/Onimix/ONIMISIV/pkg/components"
	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/ecs"
)

// NewCoreEntity 创建躲避小游戏的核心实体（玩家控制）
//
// 核心放在画布中心，没有速度组件：位置由 CoreFollowSystem 每帧平滑追随指针。
//
// 参数:
//   - manager: 小游戏的 EntityManager
//   - cfg: 小游戏配置（画布尺寸、核心半径与颜色）
//
// 返回: 创建的实体ID
func NewCoreEntity(manager *ecs.EntityManager, cfg config.AvoidanceConfig) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{
		X: cfg.Width / 2,
		Y: cfg.Height / 2,
	})
	manager.AddComponent(id, &components.CollisionComponent{
		Radius: cfg.Core.Radius,
	})
	manager.AddComponent(id, &components.CoreComponent{
		Color: cfg.Core.Color.Opaque(),
		Glow:  cfg.Core.GlowColor.Opaque(),
	})

	return id
}
