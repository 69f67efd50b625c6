// Package render 定义模拟使用的绘制表面
//
// 系统只依赖 Canvas 接口绘制圆点、连线、矩形和文字，
// 桌面端由 Ebitengine 实现（app.EbitenCanvas），终端由 tcell 实现（TerminalCanvas）。
// 坐标均为浮点像素，原点在画布左上角。
package render

import "image/color"

// Canvas 绘制表面
type Canvas interface {
	// Size 返回画布逻辑尺寸（像素）
	Size() (w, h float64)

	// Fill 用颜色填充整个画布
	Fill(c color.Color)

	// FillRect 填充矩形
	FillRect(x, y, w, h float64, c color.Color)

	// FillCircle 填充圆（实心圆盘）
	FillCircle(cx, cy, r float64, c color.Color)

	// StrokeLine 绘制线段
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)

	// DrawText 以 (x, y) 为左上角绘制单行文字
	DrawText(s string, x, y float64, c color.Color)

	// Region 返回平移并裁剪到 (x, y, w, h) 的子画布
	// 子画布坐标原点为 (x, y)，超出区域的内容被裁剪
	Region(x, y, w, h float64) Canvas
}

// TextWidth 估算单行文字宽度（像素）
// 两种实现都使用等宽字体，字宽固定
func TextWidth(s string) float64 {
	return float64(len([]rune(s))) * GlyphWidth
}

const (
	// GlyphWidth 等宽字体字宽（像素），与 basicfont.Face7x13 一致
	GlyphWidth = 7.0
	// GlyphHeight 等宽字体行高（像素）
	GlyphHeight = 13.0
)
