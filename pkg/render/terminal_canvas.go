package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// 终端单元格对应的逻辑像素尺寸
// 终端字符宽高比约 1:2，模拟坐标按像素计算后映射到单元格
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

type termCell struct {
	ch rune
	fg colorful.Color
	bg colorful.Color
}

type termBuffer struct {
	cols, rows   int
	cellW, cellH float64
	cells        []termCell
}

// TerminalCanvas 基于字符单元格的画布
//
// 绘制先合成到内存缓冲区（带 alpha 混合），Flush 时一次性写入 tcell.Screen。
// 半径小于一个单元格的圆绘制为字符，更大的圆和矩形绘制为单元格背景色。
type TerminalCanvas struct {
	buf    *termBuffer
	ox, oy float64
	w, h   float64
}

// NewTerminalCanvas 创建 cols x rows 个单元格的画布
func NewTerminalCanvas(cols, rows int, cellW, cellH float64) *TerminalCanvas {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	buf := &termBuffer{
		cols:  cols,
		rows:  rows,
		cellW: cellW,
		cellH: cellH,
		cells: make([]termCell, cols*rows),
	}
	for i := range buf.cells {
		buf.cells[i] = termCell{ch: ' ', fg: colorful.Color{R: 1, G: 1, B: 1}}
	}
	return &TerminalCanvas{
		buf: buf,
		w:   float64(cols) * cellW,
		h:   float64(rows) * cellH,
	}
}

// Size 实现 Canvas
func (c *TerminalCanvas) Size() (float64, float64) {
	return c.w, c.h
}

// Fill 实现 Canvas
func (c *TerminalCanvas) Fill(clr color.Color) {
	c.FillRect(0, 0, c.w, c.h, clr)
}

// FillRect 实现 Canvas
func (c *TerminalCanvas) FillRect(x, y, w, h float64, clr color.Color) {
	src, a := toColorful(clr)
	if a == 0 {
		return
	}
	c.eachCellCenter(func(cell *termCell, px, py float64) {
		if px >= x && px < x+w && py >= y && py < y+h {
			cell.bg = blend(cell.bg, src, a)
		}
	})
}

// FillCircle 实现 Canvas
func (c *TerminalCanvas) FillCircle(cx, cy, r float64, clr color.Color) {
	src, a := toColorful(clr)
	if a == 0 || r <= 0 {
		return
	}
	covered := 0
	c.eachCellCenter(func(cell *termCell, px, py float64) {
		if math.Hypot(px-cx, py-cy) < r {
			cell.bg = blend(cell.bg, src, a)
			covered++
		}
	})
	if covered > 0 {
		return
	}

	// 圆太小，没有覆盖任何单元格中心，用字符表示
	cell := c.cellAt(cx, cy)
	if cell == nil {
		return
	}
	switch {
	case r < 1:
		cell.ch = '·'
	case r < 2:
		cell.ch = '•'
	default:
		cell.ch = '●'
	}
	cell.fg = blend(cell.bg, src, a)
}

// StrokeLine 实现 Canvas
func (c *TerminalCanvas) StrokeLine(x0, y0, x1, y1, _ float64, clr color.Color) {
	src, a := toColorful(clr)
	if a == 0 {
		return
	}
	step := math.Min(c.buf.cellW, c.buf.cellH) / 2
	length := math.Hypot(x1-x0, y1-y0)
	n := int(length/step) + 1

	var last *termCell
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		cell := c.cellAt(x0+(x1-x0)*t, y0+(y1-y0)*t)
		if cell == nil || cell == last {
			continue
		}
		last = cell
		if cell.ch == ' ' {
			cell.ch = '·'
			cell.fg = blend(cell.bg, src, a)
		}
	}
}

// DrawText 实现 Canvas
func (c *TerminalCanvas) DrawText(s string, x, y float64, clr color.Color) {
	src, a := toColorful(clr)
	if a == 0 {
		return
	}
	px := x
	for _, r := range s {
		if cell := c.cellAt(px+c.buf.cellW/2, y+c.buf.cellH/2); cell != nil {
			cell.ch = r
			cell.fg = blend(cell.bg, src, a)
		}
		px += c.buf.cellW
	}
}

// Region 实现 Canvas
func (c *TerminalCanvas) Region(x, y, w, h float64) Canvas {
	return &TerminalCanvas{
		buf: c.buf,
		ox:  c.ox + x,
		oy:  c.oy + y,
		w:   math.Min(w, c.w-x),
		h:   math.Min(h, c.h-y),
	}
}

// Flush 将缓冲区写入屏幕
func (c *TerminalCanvas) Flush(screen tcell.Screen) {
	for row := 0; row < c.buf.rows; row++ {
		for col := 0; col < c.buf.cols; col++ {
			cell := c.buf.cells[row*c.buf.cols+col]
			style := tcell.StyleDefault.
				Foreground(toTcell(cell.fg)).
				Background(toTcell(cell.bg))
			screen.SetContent(col, row, cell.ch, nil, style)
		}
	}
}

// CellRune 返回指定单元格的字符，越界返回 0
func (c *TerminalCanvas) CellRune(col, row int) rune {
	if col < 0 || row < 0 || col >= c.buf.cols || row >= c.buf.rows {
		return 0
	}
	return c.buf.cells[row*c.buf.cols+col].ch
}

// CellBackground 返回指定单元格的背景色
func (c *TerminalCanvas) CellBackground(col, row int) colorful.Color {
	if col < 0 || row < 0 || col >= c.buf.cols || row >= c.buf.rows {
		return colorful.Color{}
	}
	return c.buf.cells[row*c.buf.cols+col].bg
}

// cellAt 返回画布坐标 (x, y) 所在的单元格，超出区域返回 nil
func (c *TerminalCanvas) cellAt(x, y float64) *termCell {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return nil
	}
	col := int(math.Floor((c.ox + x) / c.buf.cellW))
	row := int(math.Floor((c.oy + y) / c.buf.cellH))
	if col < 0 || row < 0 || col >= c.buf.cols || row >= c.buf.rows {
		return nil
	}
	return &c.buf.cells[row*c.buf.cols+col]
}

// eachCellCenter 遍历区域内的单元格，回调参数为单元格中心的画布坐标
func (c *TerminalCanvas) eachCellCenter(fn func(cell *termCell, px, py float64)) {
	b := c.buf
	col0 := int(math.Max(0, math.Floor(c.ox/b.cellW)))
	row0 := int(math.Max(0, math.Floor(c.oy/b.cellH)))
	col1 := int(math.Min(float64(b.cols), math.Ceil((c.ox+c.w)/b.cellW)))
	row1 := int(math.Min(float64(b.rows), math.Ceil((c.oy+c.h)/b.cellH)))

	for row := row0; row < row1; row++ {
		for col := col0; col < col1; col++ {
			px := (float64(col)+0.5)*b.cellW - c.ox
			py := (float64(row)+0.5)*b.cellH - c.oy
			if px < 0 || py < 0 || px >= c.w || py >= c.h {
				continue
			}
			fn(&b.cells[row*b.cols+col], px, py)
		}
	}
}

func toColorful(clr color.Color) (colorful.Color, float64) {
	n := color.NRGBAModel.Convert(clr).(color.NRGBA)
	return colorful.Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
	}, float64(n.A) / 255
}

func blend(dst, src colorful.Color, alpha float64) colorful.Color {
	return dst.BlendRgb(src, alpha)
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
