package utils

// 坐标系统：
//   - 屏幕坐标：相对于窗口（或终端）左上角，指针输入使用此坐标
//   - 局部坐标：相对于某个面板（如小游戏画布）左上角，模拟与绘制使用此坐标
//
// 面板原点 origin 为面板左上角的屏幕坐标，两者关系：
//
//	local = screen - origin

// ScreenToLocal 将屏幕坐标转换为以 origin 为原点的局部坐标
func ScreenToLocal(p, origin Point) Point {
	return Point{X: p.X - origin.X, Y: p.Y - origin.Y}
}

// LocalToScreen 将局部坐标转换回屏幕坐标
func LocalToScreen(p, origin Point) Point {
	return Point{X: p.X + origin.X, Y: p.Y + origin.Y}
}
