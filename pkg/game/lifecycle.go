package game

// Lifecycle 收集资源的释放函数，在 Dispose 时统一释放
//
// 场景挂载时登记的帧回调链、尺寸变化订阅、输入订阅都通过 Own 交给 Lifecycle，
// 卸载时调用一次 Dispose 即可全部释放，释放顺序与登记顺序相反。
type Lifecycle struct {
	teardowns []func()
	disposed  bool
}

// NewLifecycle 创建空的 Lifecycle
func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

// Own 登记一个释放函数
// 已经 Dispose 后登记的释放函数会立即执行
func (lc *Lifecycle) Own(teardown func()) {
	if teardown == nil {
		return
	}
	if lc.disposed {
		teardown()
		return
	}
	lc.teardowns = append(lc.teardowns, teardown)
}

// Dispose 按登记的逆序执行全部释放函数，重复调用无操作
func (lc *Lifecycle) Dispose() {
	if lc.disposed {
		return
	}
	lc.disposed = true
	for i := len(lc.teardowns) - 1; i >= 0; i-- {
		lc.teardowns[i]()
	}
	lc.teardowns = nil
}

// Disposed 返回是否已释放
func (lc *Lifecycle) Disposed() bool {
	return lc.disposed
}
