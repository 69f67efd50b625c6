package config

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Color 配置文件中的颜色值
//
// YAML 中写作十六进制字符串（"#ff6b6b" 或 "#f66"），
// 透明度不在颜色里配置，由绘制时的 alpha 参数决定。
type Color struct {
	colorful.Color
}

// ParseColor 解析十六进制颜色字符串
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return Color{c}, nil
}

// MustColor 解析十六进制颜色，失败时 panic
// 仅用于默认配置中的常量颜色
func MustColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var hex string
	if err := value.Decode(&hex); err != nil {
		return fmt.Errorf("line %d: color must be a hex string: %w", value.Line, err)
	}
	parsed, err := ParseColor(hex)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML 实现 yaml.Marshaler，输出十六进制字符串
func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// WithAlpha 返回带透明度的 NRGBA 颜色
// alpha 超出 [0,1] 时截断
func (c Color) WithAlpha(alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}

// Opaque 返回不透明颜色
func (c Color) Opaque() color.NRGBA {
	return c.WithAlpha(1)
}

// Blend 在 Lab 空间中向 other 混合 t（0-1）
// 用于生成光晕的渐变色
func (c Color) Blend(other Color, t float64) Color {
	return Color{c.BlendLab(other.Color, t).Clamped()}
}
