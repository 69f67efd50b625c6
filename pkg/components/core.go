package components

import "image/color"

// CoreComponent 标记玩家控制的核心实体
//
// 每个小游戏实例中只存在一个核心。核心不由速度驱动，
// 而是每帧向指针位置做指数平滑移动（见 CoreFollowSystem）。
type CoreComponent struct {
	Color color.Color // 核心实体颜色
	Glow  color.Color // 光晕颜色（绘制在实体下方）
}
