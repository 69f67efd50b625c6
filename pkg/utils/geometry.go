// Package utils 提供通用工具函数
package utils

import "math"

// Distance 两点间欧氏距离
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// CirclesOverlap 判断两圆是否相交
// 圆心距离严格小于半径之和时视为碰撞，恰好相切不算
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	return Distance(x1, y1, x2, y2) < r1+r2
}

// Normalize 返回 (dx, dy) 方向的单位向量
// 零向量返回 (0, 0)
func Normalize(dx, dy float64) (float64, float64) {
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 0, 0
	}
	return dx / length, dy / length
}

// Approach 从 current 向 target 移动剩余距离的 factor 比例
// factor=1 时直接到达，factor=0 时保持不动
func Approach(current, target, factor float64) float64 {
	return current + (target-current)*factor
}

// OutsideBounds 判断点是否超出 [-margin, w+margin] x [-margin, h+margin]
func OutsideBounds(x, y, w, h, margin float64) bool {
	return x < -margin || x > w+margin || y < -margin || y > h+margin
}
