package config

// 窗口与布局常量
// 小游戏画布尺寸可在 YAML 中覆盖，这里只放与配置无关的窗口参数

const (
	// DefaultWindowWidth 桌面端初始窗口宽度
	DefaultWindowWidth = 1280

	// DefaultWindowHeight 桌面端初始窗口高度
	DefaultWindowHeight = 800

	// TicksPerSecond 每秒逻辑帧数，与 Ebitengine 默认 TPS 一致
	TicksPerSecond = 60

	// FrameDurationMs 单帧模拟时长（毫秒）
	FrameDurationMs = 1000.0 / TicksPerSecond

	// HUDMargin 分数等文字距离画布边缘的距离（像素）
	HUDMargin = 12.0
)

// CenterIn 计算尺寸为 (w, h) 的面板在 (outerW, outerH) 中居中时的左上角坐标
// 面板比容器大时返回负偏移，保证面板中心与容器中心对齐
func CenterIn(outerW, outerH, w, h float64) (float64, float64) {
	return (outerW - w) / 2, (outerH - h) / 2
}
