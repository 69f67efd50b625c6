package systems

import (
	"github.com/Onimix/ONIMISIV/pkg/components"
	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/ecs"
	"github.com/Onimix/ONIMISIV/pkg/render"
	"github.com/Onimix/ONIMISIV/pkg/utils"
)

// Link 两个粒子之间的连线，I < J
type Link struct {
	I, J int
	Dist float64
}

// FindLinks 找出距离小于 maxDist 的所有粒子对
//
// 只比较 j > i 的粒子对，每对最多出现一次。复杂度 O(n²)，
// 粒子数量受密度公式限制，常见视口下可以接受。
func FindLinks(points []utils.Point, maxDist float64) []Link {
	var links []Link
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			d := utils.Distance(points[i].X, points[i].Y, points[j].X, points[j].Y)
			if d < maxDist {
				links = append(links, Link{I: i, J: j, Dist: d})
			}
		}
	}
	return links
}

// LinkAlpha 连线透明度，随距离线性衰减
// alpha = baseAlpha * (1 - dist/maxDist)
func LinkAlpha(baseAlpha, dist, maxDist float64) float64 {
	return baseAlpha * (1 - dist/maxDist)
}

// ParticleRenderSystem 绘制粒子场
// 启用连线的变体先画连线，再画粒子
type ParticleRenderSystem struct {
	entityManager *ecs.EntityManager
	variant       config.ParticleVariant

	// 每帧复用的缓冲区
	points []utils.Point
	dots   []*components.DotComponent
}

// NewParticleRenderSystem 创建粒子场渲染系统
func NewParticleRenderSystem(em *ecs.EntityManager, variant config.ParticleVariant) *ParticleRenderSystem {
	return &ParticleRenderSystem{
		entityManager: em,
		variant:       variant,
	}
}

// Draw 绘制所有粒子
func (s *ParticleRenderSystem) Draw(canvas render.Canvas) {
	s.points = s.points[:0]
	s.dots = s.dots[:0]

	ids := ecs.GetEntitiesWith2[*components.DotComponent, *components.PositionComponent](s.entityManager)
	for _, id := range ids {
		dot, _ := ecs.GetComponent[*components.DotComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		s.points = append(s.points, utils.Point{X: pos.X, Y: pos.Y})
		s.dots = append(s.dots, dot)
	}

	links := s.variant.Links
	if links.Enabled {
		for _, l := range FindLinks(s.points, links.Distance) {
			a, b := s.points[l.I], s.points[l.J]
			clr := s.variant.Color.WithAlpha(LinkAlpha(links.BaseAlpha, l.Dist, links.Distance))
			canvas.StrokeLine(a.X, a.Y, b.X, b.Y, links.Width, clr)
		}
	}

	for i, p := range s.points {
		dot := s.dots[i]
		canvas.FillCircle(p.X, p.Y, dot.Radius, s.variant.Color.WithAlpha(dot.Alpha))
	}
}
