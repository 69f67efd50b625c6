package components

import "image/color"

// EnemyComponent 标记一个敌人实体
//
// 敌人在生成时朝核心当时的位置飞行，速度与半径在生成后不再变化。
type EnemyComponent struct {
	Color   color.Color
	SpawnAt float64 // 生成时的模拟时间戳（毫秒）
}
