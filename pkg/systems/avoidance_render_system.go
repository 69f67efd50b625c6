package systems

import (
	"fmt"

	"github.com/Onimix/ONIMISIV/pkg/components"
	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/ecs"
	"github.com/Onimix/ONIMISIV/pkg/game"
	"github.com/Onimix/ONIMISIV/pkg/render"
	"github.com/Onimix/ONIMISIV/pkg/utils"
)

const (
	// glowSteps 光晕同心圆层数
	glowSteps = 6
	// glowLayerAlpha 每层光晕透明度，叠加后中心约 0.55
	glowLayerAlpha = 0.12
	// enemyGlowScale 敌人光晕半径倍数
	enemyGlowScale = 1.5
	// overlayFadeMs 遮罩淡入时长（毫秒）
	overlayFadeMs = 300.0
	// overlayDim 遮罩最大不透明度
	overlayDim = 0.7
	// lineSpacing 遮罩文字行距
	lineSpacing = render.GlyphHeight + 8
)

// 遮罩文字
const (
	titleText   = "AVOID THE ORBS"
	startHint   = "CLICK OR PRESS SPACE TO START"
	gameOverMsg = "GAME OVER"
	retryHint   = "CLICK OR PRESS SPACE TO RETRY"
)

// AvoidanceRenderSystem 绘制躲避小游戏
//
// 绘制顺序：背景 → 网格 → 敌人 → 核心（光晕在下，实心圆在上）→ 分数 → 遮罩。
type AvoidanceRenderSystem struct {
	entityManager *ecs.EntityManager
	cfg           config.AvoidanceConfig
}

// NewAvoidanceRenderSystem 创建小游戏渲染系统
func NewAvoidanceRenderSystem(em *ecs.EntityManager, cfg config.AvoidanceConfig) *AvoidanceRenderSystem {
	return &AvoidanceRenderSystem{
		entityManager: em,
		cfg:           cfg,
	}
}

// Draw 绘制一帧
//
// 参数:
//   - canvas: 小游戏画布（尺寸应为 cfg.Width x cfg.Height）
//   - state: 游戏状态
//   - sincePhaseMs: 距上次状态变化的时间，用于遮罩淡入
func (s *AvoidanceRenderSystem) Draw(canvas render.Canvas, state *game.AvoidanceState, sincePhaseMs float64) {
	canvas.Fill(s.cfg.Background.Opaque())
	s.drawGrid(canvas)
	s.drawEnemies(canvas)
	s.drawCore(canvas)
	s.drawHUD(canvas, state)

	if !state.IsPlaying() {
		t := utils.Clamp01(sincePhaseMs / overlayFadeMs)
		s.drawOverlay(canvas, state, utils.EaseOutCubic(t))
	}
}

func (s *AvoidanceRenderSystem) drawGrid(canvas render.Canvas) {
	grid := s.cfg.Grid
	if grid.Spacing <= 0 {
		return
	}
	clr := grid.Color.WithAlpha(grid.Alpha)
	for x := grid.Spacing; x < s.cfg.Width; x += grid.Spacing {
		canvas.StrokeLine(x, 0, x, s.cfg.Height, 1, clr)
	}
	for y := grid.Spacing; y < s.cfg.Height; y += grid.Spacing {
		canvas.StrokeLine(0, y, s.cfg.Width, y, 1, clr)
	}
}

func (s *AvoidanceRenderSystem) drawEnemies(canvas render.Canvas) {
	ids := ecs.GetEntitiesWith3[
		*components.EnemyComponent,
		*components.PositionComponent,
		*components.CollisionComponent,
	](s.entityManager)

	glow := s.cfg.Enemy.Color.WithAlpha(s.cfg.Enemy.GlowAlpha)
	for _, id := range ids {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)

		canvas.FillCircle(pos.X, pos.Y, col.Radius*enemyGlowScale, glow)
		canvas.FillCircle(pos.X, pos.Y, col.Radius, enemy.Color)
	}
}

// drawCore 核心：由外向内叠加同心圆模拟径向渐变，颜色从光晕色过渡到核心色
func (s *AvoidanceRenderSystem) drawCore(canvas render.Canvas) {
	_, pos, radius, ok := findCore(s.entityManager)
	if !ok {
		return
	}

	core := s.cfg.Core
	outer := radius * core.GlowScale
	for i := glowSteps; i >= 1; i-- {
		k := float64(i) / glowSteps
		r := radius + (outer-radius)*k
		clr := core.GlowColor.Blend(core.Color, 1-k).WithAlpha(glowLayerAlpha)
		canvas.FillCircle(pos.X, pos.Y, r, clr)
	}
	canvas.FillCircle(pos.X, pos.Y, radius, core.Color.Opaque())
}

func (s *AvoidanceRenderSystem) drawHUD(canvas render.Canvas, state *game.AvoidanceState) {
	clr := s.cfg.HUD.Color.Opaque()
	canvas.DrawText(fmt.Sprintf("SCORE %d", state.Score()), config.HUDMargin, config.HUDMargin, clr)

	best := fmt.Sprintf("BEST %d", state.HighScore())
	w, _ := canvas.Size()
	canvas.DrawText(best, w-config.HUDMargin-render.TextWidth(best), config.HUDMargin, clr)
}

func (s *AvoidanceRenderSystem) drawOverlay(canvas render.Canvas, state *game.AvoidanceState, fade float64) {
	w, h := canvas.Size()
	canvas.FillRect(0, 0, w, h, s.cfg.Background.WithAlpha(overlayDim*fade))

	var lines []string
	switch state.Phase() {
	case game.PhaseStart:
		lines = []string{titleText, startHint}
	case game.PhaseGameOver:
		lines = []string{
			gameOverMsg,
			fmt.Sprintf("SCORE %d   BEST %d", state.Score(), state.HighScore()),
			retryHint,
		}
	}

	clr := s.cfg.HUD.Color.WithAlpha(fade)
	top := (h - float64(len(lines))*lineSpacing) / 2
	for i, line := range lines {
		x, _ := config.CenterIn(w, 0, render.TextWidth(line), 0)
		canvas.DrawText(line, x, top+float64(i)*lineSpacing, clr)
	}
}
