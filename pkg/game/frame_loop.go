package game

import (
	"slices"
)

// FrameHandle 帧回调句柄，0 为无效句柄
type FrameHandle uint64

// FrameCallback 帧回调，参数为当前模拟时间戳（毫秒）
type FrameCallback func(timestampMs float64)

// FrameLoop 模拟宿主的逐帧调度器
//
// 回调是一次性的：每次 Advance 执行当前已登记的全部回调后将其移除，
// 回调需要在执行时重新 Request 才能形成持续的帧链。
// 同一帧内先登记的回调先执行；执行前被 Cancel 的回调不会执行。
//
// 所有方法只能在帧循环所在 goroutine 调用。
type FrameLoop struct {
	nextHandle FrameHandle
	pending    map[FrameHandle]FrameCallback
	running    map[FrameHandle]FrameCallback
	nowMs      float64
	frame      uint64
}

// NewFrameLoop 创建帧调度器，时间从 0 开始
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{
		pending: make(map[FrameHandle]FrameCallback),
	}
}

// Request 登记一个在下一帧执行的回调
func (l *FrameLoop) Request(cb FrameCallback) FrameHandle {
	l.nextHandle++
	l.pending[l.nextHandle] = cb
	return l.nextHandle
}

// Cancel 取消尚未执行的回调，句柄无效或已执行时无操作
func (l *FrameLoop) Cancel(h FrameHandle) {
	delete(l.pending, h)
	if l.running != nil {
		delete(l.running, h)
	}
}

// Advance 推进 dtMs 毫秒并执行一帧
func (l *FrameLoop) Advance(dtMs float64) {
	l.nowMs += dtMs
	l.frame++

	l.running = l.pending
	l.pending = make(map[FrameHandle]FrameCallback)

	handles := make([]FrameHandle, 0, len(l.running))
	for h := range l.running {
		handles = append(handles, h)
	}
	slices.Sort(handles)

	for _, h := range handles {
		cb, ok := l.running[h]
		if !ok {
			continue
		}
		delete(l.running, h)
		cb(l.nowMs)
	}
	l.running = nil
}

// Now 返回当前模拟时间戳（毫秒）
func (l *FrameLoop) Now() float64 {
	return l.nowMs
}

// Frame 返回已执行的帧数
func (l *FrameLoop) Frame() uint64 {
	return l.frame
}

// Pending 返回等待下一帧执行的回调数量
func (l *FrameLoop) Pending() int {
	return len(l.pending)
}
