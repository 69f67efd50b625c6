package components

// CollisionComponent 定义实体的圆形碰撞体
// 核心与敌人都携带该组件，碰撞判定为两圆心距离小于半径之和
type CollisionComponent struct {
	Radius float64 // 碰撞半径（像素），同时也是绘制半径
}
