package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// 粒子场变体名称
const (
	// VariantStream 流媒体首页背景：较密集，无连线
	VariantStream = "stream"
	// VariantTech 科技公司首页背景：较稀疏，邻近粒子之间连线
	VariantTech = "tech"
)

// SimulationConfig 模拟参数总配置
//
// 配置文件位置: data/simulation.yaml（嵌入二进制），可通过 --config 覆盖。
// 覆盖文件只需写出要修改的字段，其余字段保持默认值；
// variants 下的单个变体整体替换。
type SimulationConfig struct {
	// ParticleField 背景粒子场配置
	ParticleField ParticleFieldConfig `yaml:"particleField"`

	// Avoidance 躲避小游戏配置
	Avoidance AvoidanceConfig `yaml:"avoidance"`

	// Audio 提示音配置
	Audio AudioConfig `yaml:"audio"`
}

// Range 闭开区间 [Min, Max)，用于随机取值
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Lerp 按 t∈[0,1) 在区间内取值
func (r Range) Lerp(t float64) float64 {
	return r.Min + t*(r.Max-r.Min)
}

// ParticleFieldConfig 粒子场配置
//
// 粒子生成规则：
//   - 位置在画布内均匀分布
//   - 速度分量 = (rand - 0.5) * Speed
//   - 半径、透明度在各自区间内均匀分布
type ParticleFieldConfig struct {
	Speed    float64                    `yaml:"speed"`
	Radius   Range                      `yaml:"radius"`
	Alpha    Range                      `yaml:"alpha"`
	Variants map[string]ParticleVariant `yaml:"variants"`
}

// ParticleVariant 粒子场变体
type ParticleVariant struct {
	// Density 密度常数 K：粒子数量 = floor(W*H / K)
	Density float64 `yaml:"density"`

	// Color 粒子颜色
	Color Color `yaml:"color"`

	// Background 粒子场所在页面的底色
	Background Color `yaml:"background"`

	// Links 邻近粒子连线
	Links LinkConfig `yaml:"links"`
}

// LinkConfig 粒子连线配置
// 连线透明度 = BaseAlpha * (1 - dist/Distance)
type LinkConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Distance  float64 `yaml:"distance"`
	BaseAlpha float64 `yaml:"baseAlpha"`
	Width     float64 `yaml:"width"`
}

// AvoidanceConfig 躲避小游戏配置
type AvoidanceConfig struct {
	// Width/Height 游戏画布尺寸（像素）
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Smoothing 核心每帧向指针移动剩余距离的比例
	Smoothing float64 `yaml:"smoothing"`

	// SpawnIntervalMs 敌人生成间隔（模拟时间，毫秒）
	SpawnIntervalMs float64 `yaml:"spawnIntervalMs"`

	// ExitMargin 敌人越过边界多少像素后移除并计分
	ExitMargin float64 `yaml:"exitMargin"`

	// ExitScore 每个离场敌人的得分
	ExitScore int `yaml:"exitScore"`

	Background Color       `yaml:"background"`
	Grid       GridConfig  `yaml:"grid"`
	Core       CoreConfig  `yaml:"core"`
	Enemy      EnemyConfig `yaml:"enemy"`
	HUD        HUDConfig   `yaml:"hud"`
}

// GridConfig 背景参考网格
type GridConfig struct {
	Spacing float64 `yaml:"spacing"`
	Color   Color   `yaml:"color"`
	Alpha   float64 `yaml:"alpha"`
}

// CoreConfig 核心实体
type CoreConfig struct {
	Radius float64 `yaml:"radius"`
	Color  Color   `yaml:"color"`
	// GlowColor/GlowScale 径向光晕颜色与外径倍数（相对 Radius）
	GlowColor Color   `yaml:"glowColor"`
	GlowScale float64 `yaml:"glowScale"`
}

// EnemyConfig 敌人
type EnemyConfig struct {
	Radius Range `yaml:"radius"`
	// Speed 像素/帧
	Speed     Range   `yaml:"speed"`
	Color     Color   `yaml:"color"`
	GlowAlpha float64 `yaml:"glowAlpha"`
}

// HUDConfig 分数文字
type HUDConfig struct {
	Color Color `yaml:"color"`
}

// AudioConfig 提示音
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	ToneMs     float64 `yaml:"toneMs"`
	StartHz    float64 `yaml:"startHz"`
	GameOverHz float64 `yaml:"gameOverHz"`
}

// DefaultSimulationConfig 返回默认配置
// 与 data/simulation.yaml 保持一致
func DefaultSimulationConfig() *SimulationConfig {
	return &SimulationConfig{
		ParticleField: ParticleFieldConfig{
			Speed:  0.3,
			Radius: Range{Min: 0.5, Max: 2.5},
			Alpha:  Range{Min: 0.1, Max: 0.5},
			Variants: map[string]ParticleVariant{
				VariantStream: {
					Density:    12000,
					Color:      MustColor("#ff6b6b"),
					Background: MustColor("#141414"),
				},
				VariantTech: {
					Density:    15000,
					Color:      MustColor("#64d2ff"),
					Background: MustColor("#05070d"),
					Links: LinkConfig{
						Enabled:   true,
						Distance:  120,
						BaseAlpha: 0.2,
						Width:     1,
					},
				},
			},
		},
		Avoidance: AvoidanceConfig{
			Width:           600,
			Height:          400,
			Smoothing:       0.15,
			SpawnIntervalMs: 800,
			ExitMargin:      50,
			ExitScore:       10,
			Background:      MustColor("#0a0a12"),
			Grid: GridConfig{
				Spacing: 40,
				Color:   MustColor("#ffffff"),
				Alpha:   0.05,
			},
			Core: CoreConfig{
				Radius:    25,
				Color:     MustColor("#00d4ff"),
				GlowColor: MustColor("#0077ff"),
				GlowScale: 2,
			},
			Enemy: EnemyConfig{
				Radius:    Range{Min: 8, Max: 16},
				Speed:     Range{Min: 2, Max: 4},
				Color:     MustColor("#ff3366"),
				GlowAlpha: 0.35,
			},
			HUD: HUDConfig{
				Color: MustColor("#ffffff"),
			},
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.4,
			ToneMs:     120,
			StartHz:    660,
			GameOverHz: 220,
		},
	}
}

// LoadSimulationConfig 从文件加载配置并叠加到默认值上
//
// 参数:
//   - path: 配置文件路径（如 "data/simulation.yaml"）
//
// 返回:
//   - *SimulationConfig: 校验通过的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadSimulationConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}
	return ParseSimulationConfig(data)
}

// ParseSimulationConfig 解析 YAML 数据并叠加到默认值上
func ParseSimulationConfig(data []byte) (*SimulationConfig, error) {
	return ParseSimulationConfigOver(DefaultSimulationConfig(), data)
}

// ParseSimulationConfigOver 解析 YAML 数据并叠加到 base 的副本上
// base 不会被修改
func ParseSimulationConfigOver(base *SimulationConfig, data []byte) (*SimulationConfig, error) {
	cfg := base.clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	return cfg, nil
}

func (c *SimulationConfig) clone() *SimulationConfig {
	cp := *c
	cp.ParticleField.Variants = make(map[string]ParticleVariant, len(c.ParticleField.Variants))
	for name, v := range c.ParticleField.Variants {
		cp.ParticleField.Variants[name] = v
	}
	return &cp
}

// Validate 验证配置有效性
//
// 检查项：
//   - 密度常数必须为正
//   - 随机区间 Min 不大于 Max
//   - 平滑系数在 (0, 1] 内
//   - 画布尺寸、生成间隔、碰撞半径为正
//   - 启用连线时连线距离为正
func (c *SimulationConfig) Validate() error {
	pf := c.ParticleField
	if pf.Speed < 0 {
		return fmt.Errorf("particleField.speed must be >= 0, got %.2f", pf.Speed)
	}
	if err := validateRange("particleField.radius", pf.Radius); err != nil {
		return err
	}
	if err := validateRange("particleField.alpha", pf.Alpha); err != nil {
		return err
	}
	if len(pf.Variants) == 0 {
		return fmt.Errorf("particleField.variants must not be empty")
	}
	for _, name := range c.VariantNames() {
		v := pf.Variants[name]
		if v.Density <= 0 {
			return fmt.Errorf("variant %q: density must be > 0, got %.1f", name, v.Density)
		}
		if v.Links.Enabled && v.Links.Distance <= 0 {
			return fmt.Errorf("variant %q: links.distance must be > 0 when links are enabled", name)
		}
	}

	a := c.Avoidance
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("avoidance size must be positive, got %.0fx%.0f", a.Width, a.Height)
	}
	if a.Smoothing <= 0 || a.Smoothing > 1 {
		return fmt.Errorf("avoidance.smoothing must be in (0, 1], got %.3f", a.Smoothing)
	}
	if a.SpawnIntervalMs <= 0 {
		return fmt.Errorf("avoidance.spawnIntervalMs must be > 0, got %.1f", a.SpawnIntervalMs)
	}
	if a.ExitMargin < 0 {
		return fmt.Errorf("avoidance.exitMargin must be >= 0, got %.1f", a.ExitMargin)
	}
	if a.Core.Radius <= 0 {
		return fmt.Errorf("avoidance.core.radius must be > 0, got %.1f", a.Core.Radius)
	}
	if err := validateRange("avoidance.enemy.radius", a.Enemy.Radius); err != nil {
		return err
	}
	if a.Enemy.Radius.Min <= 0 {
		return fmt.Errorf("avoidance.enemy.radius.min must be > 0, got %.1f", a.Enemy.Radius.Min)
	}
	if err := validateRange("avoidance.enemy.speed", a.Enemy.Speed); err != nil {
		return err
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be in [0, 1], got %.2f", c.Audio.Volume)
	}
	return nil
}

func validateRange(name string, r Range) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s range invalid: min(%.2f) > max(%.2f)", name, r.Min, r.Max)
	}
	return nil
}

// Variant 获取指定名称的粒子场变体
func (c *SimulationConfig) Variant(name string) (ParticleVariant, bool) {
	v, ok := c.ParticleField.Variants[name]
	return v, ok
}

// VariantNames 返回按名称排序的变体列表
func (c *SimulationConfig) VariantNames() []string {
	names := make([]string, 0, len(c.ParticleField.Variants))
	for name := range c.ParticleField.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NextVariant 返回 name 之后的变体名（循环）
// name 不存在时返回第一个变体
func (c *SimulationConfig) NextVariant(name string) string {
	names := c.VariantNames()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
