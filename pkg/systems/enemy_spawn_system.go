package systems

import (
	"log"

	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/ecs"
	"github.com/Onimix/ONIMISIV/pkg/entities"
	"github.com/Onimix/ONIMISIV/pkg/utils"
)

// 敌人出生的画布边
const (
	edgeTop = iota
	edgeRight
	edgeBottom
	edgeLeft
	edgeCount
)

// EnemySpawnSystem 按模拟时间定时生成敌人
//
// 计时基于帧回调传入的时间戳（毫秒）：距上次计划生成时刻超过 SpawnIntervalMs 时生成一个。
// 一局开始后的第一帧只记录时间戳，不生成敌人。
type EnemySpawnSystem struct {
	entityManager *ecs.EntityManager
	rng           *utils.Rand
	cfg           config.AvoidanceConfig

	lastSpawn float64
	armed     bool
	spawned   int
}

// NewEnemySpawnSystem 创建敌人生成系统
// 参数:
//   - em: 小游戏的 EntityManager
//   - rng: 随机数源
//   - cfg: 小游戏配置（画布尺寸、间隔、敌人参数）
func NewEnemySpawnSystem(em *ecs.EntityManager, rng *utils.Rand, cfg config.AvoidanceConfig) *EnemySpawnSystem {
	return &EnemySpawnSystem{
		entityManager: em,
		rng:           rng,
		cfg:           cfg,
	}
}

// Reset 重置计时器，下一次 Update 重新开始计时
func (s *EnemySpawnSystem) Reset() {
	s.armed = false
	s.lastSpawn = 0
	s.spawned = 0
}

// Update 检查是否到达生成时间
//
// 参数:
//   - now: 当前帧时间戳（毫秒）
//   - coreX, coreY: 核心当前位置，新敌人朝此处飞行
//
// 返回:
//   - ecs.EntityID: 新敌人ID
//   - bool: 本帧是否生成了敌人
func (s *EnemySpawnSystem) Update(now, coreX, coreY float64) (ecs.EntityID, bool) {
	if !s.armed {
		s.armed = true
		s.lastSpawn = now
		return 0, false
	}
	if now-s.lastSpawn <= s.cfg.SpawnIntervalMs {
		return 0, false
	}
	// 按固定间隔推进，帧时长不整除间隔时也不会累积漂移；
	// 落后超过一个间隔（如长时间卡顿）时重新对齐到当前帧，不补生成
	s.lastSpawn += s.cfg.SpawnIntervalMs
	if now-s.lastSpawn > s.cfg.SpawnIntervalMs {
		s.lastSpawn = now
	}
	return s.Spawn(now, coreX, coreY), true
}

// Spawn 立即在随机边缘外侧生成一个敌人，朝 (coreX, coreY) 飞行
func (s *EnemySpawnSystem) Spawn(now, coreX, coreY float64) ecs.EntityID {
	enemy := s.cfg.Enemy
	radius := enemy.Radius.Lerp(s.rng.Float64())

	var x, y float64
	switch s.rng.Intn(edgeCount) {
	case edgeTop:
		x, y = s.rng.Float64()*s.cfg.Width, -radius
	case edgeRight:
		x, y = s.cfg.Width+radius, s.rng.Float64()*s.cfg.Height
	case edgeBottom:
		x, y = s.rng.Float64()*s.cfg.Width, s.cfg.Height+radius
	default:
		x, y = -radius, s.rng.Float64()*s.cfg.Height
	}

	speed := enemy.Speed.Lerp(s.rng.Float64())
	dx, dy := utils.Normalize(coreX-x, coreY-y)

	id := entities.NewEnemyEntity(s.entityManager, x, y, dx*speed, dy*speed, radius, enemy.Color.Opaque(), now)
	s.spawned++
	log.Printf("[EnemySpawnSystem] Spawned enemy %d at (%.0f, %.0f) r=%.1f speed=%.2f", id, x, y, radius, speed)
	return id
}

// Spawned 返回本局已生成的敌人数量
func (s *EnemySpawnSystem) Spawned() int {
	return s.spawned
}
