package game

import (
	"log"
	"slices"
)

// Viewport 绘制表面尺寸及其变化通知
//
// 桌面端在 Layout 中上报窗口尺寸，终端在收到 EventResize 时上报。
// 尺寸变化时按订阅顺序同步通知所有订阅者。
type Viewport struct {
	width, height int
	subscribers   map[int]func(w, h int)
	nextID        int
}

// NewViewport 创建初始尺寸为 w x h 的视口
func NewViewport(w, h int) *Viewport {
	return &Viewport{
		width:       w,
		height:      h,
		subscribers: make(map[int]func(w, h int)),
	}
}

// Size 返回当前尺寸
func (v *Viewport) Size() (int, int) {
	return v.width, v.height
}

// Resize 更新尺寸，尺寸变化时通知订阅者并返回 true
func (v *Viewport) Resize(w, h int) bool {
	if w == v.width && h == v.height {
		return false
	}
	v.width, v.height = w, h
	log.Printf("[Viewport] Resized to %dx%d", w, h)

	ids := make([]int, 0, len(v.subscribers))
	for id := range v.subscribers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := v.subscribers[id]; ok {
			fn(w, h)
		}
	}
	return true
}

// Subscribe 订阅尺寸变化，返回取消订阅函数
func (v *Viewport) Subscribe(fn func(w, h int)) func() {
	v.nextID++
	id := v.nextID
	v.subscribers[id] = fn
	return func() {
		delete(v.subscribers, id)
	}
}

// SubscriberCount 返回当前订阅者数量
func (v *Viewport) SubscriberCount() int {
	return len(v.subscribers)
}
