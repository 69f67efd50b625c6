package utils

import (
	"math/rand"
	"time"
)

// Rand 可注入的随机数源
//
// 所有模拟中的随机取值（粒子位置、敌人出生点、速度、半径）都通过 Rand，
// 测试中使用固定种子即可完全复现。非并发安全，每个模拟持有自己的实例。
type Rand struct {
	r *rand.Rand
}

// NewRand 使用指定种子创建随机数源
func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// NewTimeSeededRand 使用当前时间作为种子
func NewTimeSeededRand() *Rand {
	return NewRand(time.Now().UnixNano())
}

// Float64 返回 [0, 1) 内的随机数
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// Centered 返回 [-scale/2, scale/2) 内的随机数
// 等价于 (rand - 0.5) * scale
func (r *Rand) Centered(scale float64) float64 {
	return (r.r.Float64() - 0.5) * scale
}

// Intn 返回 [0, n) 内的随机整数
func (r *Rand) Intn(n int) int {
	return r.r.Intn(n)
}
