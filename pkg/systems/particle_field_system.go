package systems

import (
	"log"
	"math"

	"github.com/Onimix/ONIMISIV/pkg/components"
	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/ecs"
	"github.com/Onimix/ONIMISIV/pkg/entities"
	"github.com/Onimix/ONIMISIV/pkg/utils"
)

// ParticleFieldSystem 管理背景粒子场
//
// 粒子数量与画布面积成正比：floor(W*H / K)。
// 每帧粒子按速度移动，越过边界时对应速度分量取反（弹性反射，不截断位置，
// 因此反射当帧允许越界不超过一帧的位移）。
// 画布尺寸变化时整体重建粒子集合，不保留旧粒子。
//
// 粒子场独占自己的 EntityManager。
type ParticleFieldSystem struct {
	entityManager *ecs.EntityManager
	rng           *utils.Rand
	cfg           config.ParticleFieldConfig
	variant       config.ParticleVariant

	width, height float64
}

// NewParticleFieldSystem 创建粒子场系统
//
// 参数:
//   - em: 粒子场专用的实体管理器
//   - rng: 随机数源（测试中使用固定种子）
//   - cfg: 粒子生成参数
//   - variant: 变体（密度常数、颜色、连线）
func NewParticleFieldSystem(em *ecs.EntityManager, rng *utils.Rand, cfg config.ParticleFieldConfig, variant config.ParticleVariant) *ParticleFieldSystem {
	return &ParticleFieldSystem{
		entityManager: em,
		rng:           rng,
		cfg:           cfg,
		variant:       variant,
	}
}

// ParticleCount 计算 w x h 画布在密度常数 density 下的粒子数量
func ParticleCount(w, h, density float64) int {
	if w <= 0 || h <= 0 || density <= 0 {
		return 0
	}
	return int(math.Floor(w * h / density))
}

// Regenerate 按新尺寸重建全部粒子
//
// 返回:
//   - int: 新粒子数量
func (s *ParticleFieldSystem) Regenerate(w, h float64) int {
	for _, id := range ecs.GetEntitiesWith1[*components.DotComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()

	s.width, s.height = w, h
	count := ParticleCount(w, h, s.variant.Density)
	for i := 0; i < count; i++ {
		s.spawnDot()
	}

	log.Printf("[ParticleFieldSystem] Regenerated %d particles for %.0fx%.0f (K=%.0f)",
		count, w, h, s.variant.Density)
	return count
}

// spawnDot 在画布内随机位置创建一个粒子
// 随机取值顺序：位置、速度、半径、透明度
func (s *ParticleFieldSystem) spawnDot() ecs.EntityID {
	x := s.rng.Float64() * s.width
	y := s.rng.Float64() * s.height
	vx := s.rng.Centered(s.cfg.Speed)
	vy := s.rng.Centered(s.cfg.Speed)
	radius := s.cfg.Radius.Lerp(s.rng.Float64())
	alpha := s.cfg.Alpha.Lerp(s.rng.Float64())
	return entities.NewDotEntity(s.entityManager, x, y, vx, vy, radius, alpha)
}

// Update 推进一帧：移动所有粒子并在边界处反射
func (s *ParticleFieldSystem) Update() {
	ids := ecs.GetEntitiesWith3[
		*components.DotComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](s.entityManager)

	for _, id := range ids {
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}
		vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		if !ok {
			continue
		}

		pos.X += vel.VX
		pos.Y += vel.VY

		if pos.X < 0 || pos.X > s.width {
			vel.VX = -vel.VX
		}
		if pos.Y < 0 || pos.Y > s.height {
			vel.VY = -vel.VY
		}
	}
}

// Bounds 返回当前画布尺寸
func (s *ParticleFieldSystem) Bounds() (float64, float64) {
	return s.width, s.height
}

// Count 返回当前粒子数量
func (s *ParticleFieldSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.DotComponent](s.entityManager))
}

// Variant 返回粒子场变体
func (s *ParticleFieldSystem) Variant() config.ParticleVariant {
	return s.variant
}
