package render

import "image/color"

// OpKind 绘制操作类型
type OpKind int

const (
	OpFill OpKind = iota
	OpRect
	OpCircle
	OpLine
	OpText
)

// Op 一次绘制操作，坐标为根画布坐标
type Op struct {
	Kind           OpKind
	X0, Y0, X1, Y1 float64 // 线段端点；矩形为 (x, y, x+w, y+h)；圆为 (cx, cy, r, 0)
	Width          float64
	Text           string
	Color          color.NRGBA
}

// Recorder 记录绘制操作的画布，用于测试渲染系统
type Recorder struct {
	ops    *[]Op
	ox, oy float64
	w, h   float64
}

// NewRecorder 创建指定尺寸的记录画布
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{ops: new([]Op), w: w, h: h}
}

// Ops 返回已记录的全部操作
func (r *Recorder) Ops() []Op {
	return *r.ops
}

// OpsOf 返回指定类型的操作
func (r *Recorder) OpsOf(kind OpKind) []Op {
	var out []Op
	for _, op := range *r.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset 清空记录
func (r *Recorder) Reset() {
	*r.ops = (*r.ops)[:0]
}

func (r *Recorder) record(op Op) {
	*r.ops = append(*r.ops, op)
}

func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// Size 实现 Canvas
func (r *Recorder) Size() (float64, float64) { return r.w, r.h }

// Fill 实现 Canvas
func (r *Recorder) Fill(c color.Color) {
	r.record(Op{Kind: OpFill, X0: r.ox, Y0: r.oy, X1: r.ox + r.w, Y1: r.oy + r.h, Color: nrgba(c)})
}

// FillRect 实现 Canvas
func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.record(Op{Kind: OpRect, X0: r.ox + x, Y0: r.oy + y, X1: r.ox + x + w, Y1: r.oy + y + h, Color: nrgba(c)})
}

// FillCircle 实现 Canvas
func (r *Recorder) FillCircle(cx, cy, radius float64, c color.Color) {
	r.record(Op{Kind: OpCircle, X0: r.ox + cx, Y0: r.oy + cy, X1: radius, Color: nrgba(c)})
}

// StrokeLine 实现 Canvas
func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	r.record(Op{Kind: OpLine, X0: r.ox + x0, Y0: r.oy + y0, X1: r.ox + x1, Y1: r.oy + y1, Width: width, Color: nrgba(c)})
}

// DrawText 实现 Canvas
func (r *Recorder) DrawText(s string, x, y float64, c color.Color) {
	r.record(Op{Kind: OpText, X0: r.ox + x, Y0: r.oy + y, Text: s, Color: nrgba(c)})
}

// Region 实现 Canvas，子画布与父画布共享记录
func (r *Recorder) Region(x, y, w, h float64) Canvas {
	return &Recorder{ops: r.ops, ox: r.ox + x, oy: r.oy + y, w: w, h: h}
}
