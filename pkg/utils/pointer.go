package utils

import "sync/atomic"

// Point 画布坐标系中的点（像素）
type Point struct {
	X, Y float64
}

// PointerTracker 保存指针最后一次上报的位置
//
// 写入方（输入事件）与读取方（帧回调）之间无锁：
// 后写覆盖先写，不排队，两帧之间的中间位置对模拟不可见。
// 可被任意 goroutine 并发写入。
type PointerTracker struct {
	pos atomic.Pointer[Point]
}

// Store 记录最新指针位置
func (pt *PointerTracker) Store(x, y float64) {
	pt.pos.Store(&Point{X: x, Y: y})
}

// Load 读取最新指针位置
// 从未写入过时返回零值和 false
func (pt *PointerTracker) Load() (Point, bool) {
	p := pt.pos.Load()
	if p == nil {
		return Point{}, false
	}
	return *p, true
}
