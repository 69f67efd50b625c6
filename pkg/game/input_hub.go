package game

import (
	"slices"

	"github.com/Onimix/ONIMISIV/pkg/utils"
)

// InputHub 前端输入与场景之间的桥梁
//
// 指针位置写入 Pointer（无锁，后写覆盖先写），
// 离散的“开始/重新开始”操作通过 TriggerStart 分发给订阅者。
// TriggerStart 必须在帧循环所在 goroutine 调用。
type InputHub struct {
	Pointer *utils.PointerTracker

	startSubscribers map[int]func()
	nextID           int
}

// NewInputHub 创建输入中心
func NewInputHub() *InputHub {
	return &InputHub{
		Pointer:          &utils.PointerTracker{},
		startSubscribers: make(map[int]func()),
	}
}

// SubscribeStart 订阅开始操作，返回取消订阅函数
func (h *InputHub) SubscribeStart(fn func()) func() {
	h.nextID++
	id := h.nextID
	h.startSubscribers[id] = fn
	return func() {
		delete(h.startSubscribers, id)
	}
}

// TriggerStart 通知所有订阅者
func (h *InputHub) TriggerStart() {
	ids := make([]int, 0, len(h.startSubscribers))
	for id := range h.startSubscribers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := h.startSubscribers[id]; ok {
			fn()
		}
	}
}

// StartSubscriberCount 返回开始操作的订阅者数量
func (h *InputHub) StartSubscriberCount() int {
	return len(h.startSubscribers)
}
