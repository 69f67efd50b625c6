package app

import (
	"image"
	"image/color"

	"github.com/Onimix/ONIMISIV/pkg/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// hudFace HUD 文字字体
var hudFace = text.NewGoXFace(basicfont.Face7x13)

// EbitenCanvas 基于 *ebiten.Image 的 render.Canvas 实现
//
// 子画布通过 SubImage 实现裁剪。SubImage 与父图共享坐标系，
// 因此子画布需要自行记录偏移量。
type EbitenCanvas struct {
	img    *ebiten.Image
	ox, oy float64
	w, h   float64
}

// NewEbitenCanvas 包装一张 ebiten 图像（通常是屏幕）
func NewEbitenCanvas(img *ebiten.Image) *EbitenCanvas {
	b := img.Bounds()
	return &EbitenCanvas{
		img: img,
		ox:  float64(b.Min.X),
		oy:  float64(b.Min.Y),
		w:   float64(b.Dx()),
		h:   float64(b.Dy()),
	}
}

// Size 实现 render.Canvas
func (c *EbitenCanvas) Size() (float64, float64) {
	return c.w, c.h
}

// Fill 实现 render.Canvas
func (c *EbitenCanvas) Fill(clr color.Color) {
	c.FillRect(0, 0, c.w, c.h, clr)
}

// FillRect 实现 render.Canvas
func (c *EbitenCanvas) FillRect(x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(c.img, float32(c.ox+x), float32(c.oy+y), float32(w), float32(h), clr, false)
}

// FillCircle 实现 render.Canvas
func (c *EbitenCanvas) FillCircle(cx, cy, r float64, clr color.Color) {
	if r <= 0 {
		return
	}
	vector.DrawFilledCircle(c.img, float32(c.ox+cx), float32(c.oy+cy), float32(r), clr, true)
}

// StrokeLine 实现 render.Canvas
func (c *EbitenCanvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	vector.StrokeLine(c.img,
		float32(c.ox+x0), float32(c.oy+y0),
		float32(c.ox+x1), float32(c.oy+y1),
		float32(width), clr, true)
}

// DrawText 实现 render.Canvas
func (c *EbitenCanvas) DrawText(s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(c.ox+x, c.oy+y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(c.img, s, hudFace, op)
}

// Region 实现 render.Canvas
func (c *EbitenCanvas) Region(x, y, w, h float64) render.Canvas {
	rect := image.Rect(
		int(c.ox+x), int(c.oy+y),
		int(c.ox+x+w), int(c.oy+y+h),
	).Intersect(c.img.Bounds())

	sub, ok := c.img.SubImage(rect).(*ebiten.Image)
	if !ok {
		return c
	}
	return &EbitenCanvas{
		img: sub,
		ox:  c.ox + x,
		oy:  c.oy + y,
		w:   w,
		h:   h,
	}
}
