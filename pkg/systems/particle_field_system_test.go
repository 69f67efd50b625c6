package systems

import (
	"math"
	"testing"

	"github.com/Onimix/ONIMISIV/pkg/components"
	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/ecs"
	"github.com/Onimix/ONIMISIV/pkg/entities"
	"github.com/Onimix/ONIMISIV/pkg/utils"
)

func newTestParticleField(t *testing.T, variantName string, seed int64) (*ecs.EntityManager, *ParticleFieldSystem) {
	t.Helper()
	cfg := config.DefaultSimulationConfig()
	variant, ok := cfg.Variant(variantName)
	if !ok {
		t.Fatalf("variant %q not found", variantName)
	}
	em := ecs.NewEntityManager()
	return em, NewParticleFieldSystem(em, utils.NewRand(seed), cfg.ParticleField, variant)
}

func TestParticleCount(t *testing.T) {
	tests := []struct {
		name    string
		w, h, k float64
		want    int
	}{
		{"1200x800 stream", 1200, 800, 12000, 80},
		{"1920x1080 tech", 1920, 1080, 15000, 138},
		{"rounds down", 1000, 1000, 12000, 83},
		{"smaller than one particle", 100, 100, 12000, 0},
		{"zero width", 0, 800, 12000, 0},
		{"negative height", 800, -1, 12000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParticleCount(tt.w, tt.h, tt.k); got != tt.want {
				t.Errorf("ParticleCount(%.0f, %.0f, %.0f) = %d, want %d", tt.w, tt.h, tt.k, got, tt.want)
			}
		})
	}
}

// TestRegenerate_ReplacesWholeSet 尺寸变化后粒子数量按新尺寸计算，且不保留任何旧粒子
func TestRegenerate_ReplacesWholeSet(t *testing.T) {
	em, sys := newTestParticleField(t, config.VariantStream, 1)

	if got := sys.Regenerate(1200, 800); got != 80 {
		t.Fatalf("first Regenerate = %d, want 80", got)
	}
	before := ecs.GetEntitiesWith1[*components.DotComponent](em)

	if got := sys.Regenerate(600, 400); got != 20 {
		t.Fatalf("second Regenerate = %d, want 20", got)
	}
	after := ecs.GetEntitiesWith1[*components.DotComponent](em)
	if len(after) != 20 || sys.Count() != 20 {
		t.Fatalf("dot entities = %d, want 20", len(after))
	}

	old := make(map[ecs.EntityID]bool, len(before))
	for _, id := range before {
		old[id] = true
	}
	for _, id := range after {
		if old[id] {
			t.Errorf("entity %d survived regeneration", id)
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if pos.X < 0 || pos.X >= 600 || pos.Y < 0 || pos.Y >= 400 {
			t.Errorf("entity %d spawned outside 600x400: (%.2f, %.2f)", id, pos.X, pos.Y)
		}
	}

	if w, h := sys.Bounds(); w != 600 || h != 400 {
		t.Errorf("Bounds() = %.0fx%.0f, want 600x400", w, h)
	}
}

func TestRegenerate_ZeroSize(t *testing.T) {
	_, sys := newTestParticleField(t, config.VariantTech, 1)
	sys.Regenerate(800, 600)
	if got := sys.Regenerate(0, 0); got != 0 || sys.Count() != 0 {
		t.Errorf("Regenerate(0, 0) left %d particles, want 0", sys.Count())
	}
}

// TestSpawnRanges 验证随机取值范围
func TestSpawnRanges(t *testing.T) {
	em, sys := newTestParticleField(t, config.VariantStream, 42)
	sys.Regenerate(1920, 1080)

	for _, id := range ecs.GetEntitiesWith1[*components.DotComponent](em) {
		dot, _ := ecs.GetComponent[*components.DotComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)

		if dot.Radius < 0.5 || dot.Radius >= 2.5 {
			t.Errorf("radius %.3f out of [0.5, 2.5)", dot.Radius)
		}
		if dot.Alpha < 0.1 || dot.Alpha >= 0.5 {
			t.Errorf("alpha %.3f out of [0.1, 0.5)", dot.Alpha)
		}
		if math.Abs(vel.VX) > 0.15 || math.Abs(vel.VY) > 0.15 {
			t.Errorf("velocity (%.3f, %.3f) exceeds 0.15", vel.VX, vel.VY)
		}
	}
}

// TestUpdate_StaysInBounds 长时间运行后粒子越界不超过一帧位移
func TestUpdate_StaysInBounds(t *testing.T) {
	em, sys := newTestParticleField(t, config.VariantStream, 7)
	const w, h = 400.0, 300.0
	sys.Regenerate(w, h)

	const maxStep = 0.15 + 1e-9
	for frame := 0; frame < 5000; frame++ {
		sys.Update()
	}
	for _, id := range ecs.GetEntitiesWith1[*components.DotComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if pos.X < -maxStep || pos.X > w+maxStep || pos.Y < -maxStep || pos.Y > h+maxStep {
			t.Errorf("particle %d escaped: (%.3f, %.3f)", id, pos.X, pos.Y)
		}
	}
}

// TestUpdate_Reflects 越过边界时速度分量取反，位置不截断
func TestUpdate_Reflects(t *testing.T) {
	em, sys := newTestParticleField(t, config.VariantStream, 1)
	sys.Regenerate(100, 100)
	for _, id := range ecs.GetEntitiesWith1[*components.DotComponent](em) {
		em.DestroyEntity(id)
	}
	em.RemoveMarkedEntities()

	id := entities.NewDotEntity(em, 0.05, 99.95, -0.1, 0.1, 1, 0.2)

	sys.Update()
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	if math.Abs(pos.X-(-0.05)) > 1e-9 || math.Abs(pos.Y-100.05) > 1e-9 {
		t.Errorf("position after overshoot = (%.3f, %.3f), want (-0.05, 100.05)", pos.X, pos.Y)
	}
	if vel.VX != 0.1 || vel.VY != -0.1 {
		t.Errorf("velocity after reflection = (%.2f, %.2f), want (0.1, -0.1)", vel.VX, vel.VY)
	}

	sys.Update()
	if pos.X < 0 || pos.Y > 100 {
		t.Errorf("particle did not return inside: (%.3f, %.3f)", pos.X, pos.Y)
	}
}

// TestRegenerate_Deterministic 相同种子产生相同粒子集合
func TestRegenerate_Deterministic(t *testing.T) {
	emA, a := newTestParticleField(t, config.VariantTech, 99)
	emB, b := newTestParticleField(t, config.VariantTech, 99)
	a.Regenerate(800, 600)
	b.Regenerate(800, 600)

	idsA := ecs.GetEntitiesWith1[*components.DotComponent](emA)
	idsB := ecs.GetEntitiesWith1[*components.DotComponent](emB)
	if len(idsA) != len(idsB) {
		t.Fatalf("counts differ: %d vs %d", len(idsA), len(idsB))
	}
	for i := range idsA {
		pa, _ := ecs.GetComponent[*components.PositionComponent](emA, idsA[i])
		pb, _ := ecs.GetComponent[*components.PositionComponent](emB, idsB[i])
		if *pa != *pb {
			t.Fatalf("particle %d differs: %+v vs %+v", i, *pa, *pb)
		}
	}
}
