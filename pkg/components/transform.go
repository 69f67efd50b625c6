package components

// PositionComponent 存储实体在画布坐标系中的位置（像素，浮点）
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 存储实体每帧的位移量（像素/帧）
//
// 粒子的速度在边界处取反；敌人的速度在生成时确定，之后不再改变。
type VelocityComponent struct {
	VX float64
	VY float64
}
