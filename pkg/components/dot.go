package components

// DotComponent 背景粒子场中的单个光点
//
// 纯数据组件：半径与透明度在创建时随机确定，之后保持不变。
// 位置和速度分别由 PositionComponent / VelocityComponent 提供。
type DotComponent struct {
	Radius float64 // 绘制半径（像素）
	Alpha  float64 // 固定透明度 0-1
}
