package systems

import (
	"math"
	"testing"

	"github.com/Onimix/ONIMISIV/pkg/components"
	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/ecs"
	"github.com/Onimix/ONIMISIV/pkg/entities"
	"github.com/Onimix/ONIMISIV/pkg/game"
	"github.com/Onimix/ONIMISIV/pkg/render"
	"github.com/Onimix/ONIMISIV/pkg/utils"
)

const frameMs = 1000.0 / 60

// recordingSound 记录播放的提示音
type recordingSound struct {
	cues []game.Cue
}

func (r *recordingSound) Play(cue game.Cue) {
	r.cues = append(r.cues, cue)
}

func newTestSimulation(seed int64) (*AvoidanceSimulation, *recordingSound) {
	sound := &recordingSound{}
	cfg := config.DefaultSimulationConfig().Avoidance
	return NewAvoidanceSimulation(cfg, utils.NewRand(seed), sound), sound
}

var center = utils.Point{X: 300, Y: 200}

// placeEnemy 在指定位置放置一个静止或匀速的敌人
func placeEnemy(sim *AvoidanceSimulation, x, y, vx, vy, r float64) ecs.EntityID {
	clr := sim.Config().Enemy.Color.Opaque()
	return entities.NewEnemyEntity(sim.EntityManager(), x, y, vx, vy, r, clr, 0)
}

func TestAvoidance_InitialState(t *testing.T) {
	sim, _ := newTestSimulation(1)

	if sim.State().Phase() != game.PhaseStart {
		t.Errorf("initial phase = %v, want start", sim.State().Phase())
	}
	if p := sim.CorePosition(); p != center {
		t.Errorf("core = %+v, want %+v", p, center)
	}
	if sim.Tick(utils.Point{X: 0, Y: 0}, 0) {
		t.Error("Tick before Start should not run")
	}
	if p := sim.CorePosition(); p != center {
		t.Errorf("core moved before Start: %+v", p)
	}
}

// TestAvoidance_StartResets 开始新局：分数归零、清空敌人、核心回中心
func TestAvoidance_StartResets(t *testing.T) {
	sim, sound := newTestSimulation(1)
	sim.Start(0)
	sim.State().AddScore(30)
	sim.SpawnEnemy(0)
	sim.SpawnEnemy(0)
	for i := 0; i < 10; i++ {
		sim.Tick(center, float64(i)*frameMs)
	}
	sim.Tick(utils.Point{X: 320, Y: 220}, 10*frameMs)
	if sim.CorePosition() == center {
		t.Fatal("core should have moved toward the pointer")
	}

	sim.Start(1000)

	if got := sim.State().Score(); got != 0 {
		t.Errorf("score after Start = %d, want 0", got)
	}
	if got := sim.EnemyCount(); got != 0 {
		t.Errorf("enemies after Start = %d, want 0", got)
	}
	if p := sim.CorePosition(); p != center {
		t.Errorf("core after Start = %+v, want %+v", p, center)
	}
	if !sim.State().IsPlaying() {
		t.Error("should be playing after Start")
	}
	if len(sound.cues) != 2 || sound.cues[1] != game.CueStart {
		t.Errorf("cues = %v, want two start cues", sound.cues)
	}
}

// TestAvoidance_Collision 核心 (300,200) r25 与敌人 (300,224) r8 相交
func TestAvoidance_Collision(t *testing.T) {
	sim, sound := newTestSimulation(1)
	sim.Start(0)
	sim.State().AddScore(20)
	placeEnemy(sim, 300, 224, 0, 0, 8)

	if sim.Tick(center, frameMs) {
		t.Fatal("Tick should report game over")
	}
	st := sim.State()
	if st.Phase() != game.PhaseGameOver {
		t.Errorf("phase = %v, want gameover", st.Phase())
	}
	if st.Score() != 20 || st.HighScore() != 20 {
		t.Errorf("score=%d high=%d, want 20/20", st.Score(), st.HighScore())
	}
	if sound.cues[len(sound.cues)-1] != game.CueGameOver {
		t.Errorf("last cue = %v, want game over", sound.cues[len(sound.cues)-1])
	}

	// 结束后不再推进
	if sim.Tick(utils.Point{X: 0, Y: 0}, 2*frameMs) {
		t.Error("Tick after game over should not run")
	}
}

// TestAvoidance_TangentIsNotCollision 恰好相切不算碰撞
func TestAvoidance_TangentIsNotCollision(t *testing.T) {
	sim, _ := newTestSimulation(1)
	sim.Start(0)
	placeEnemy(sim, 300, 233, 0, 0, 8)

	if !sim.Tick(center, frameMs) {
		t.Error("tangent circles should not collide")
	}
}

// TestAvoidance_ExitScores 越过边界 50 像素的敌人被移除并计 10 分
func TestAvoidance_ExitScores(t *testing.T) {
	tests := []struct {
		name      string
		x, y      float64
		vx, vy    float64
		wantScore int
		wantLeft  int
	}{
		{"right edge", 650, 200, 1, 0, 10, 0},
		{"top edge", 300, -50, 0, -1, 10, 0},
		{"exactly on margin stays", 649, 200, 1, 0, 0, 1},
		{"inside bounds stays", 620, 20, 1, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, _ := newTestSimulation(1)
			sim.Start(0)
			placeEnemy(sim, tt.x, tt.y, tt.vx, tt.vy, 8)

			sim.Tick(center, frameMs)

			if got := sim.State().Score(); got != tt.wantScore {
				t.Errorf("score = %d, want %d", got, tt.wantScore)
			}
			if got := sim.EnemyCount(); got != tt.wantLeft {
				t.Errorf("enemies = %d, want %d", got, tt.wantLeft)
			}
		})
	}
}

// TestAvoidance_CollisionStopsProcessing 碰撞后本帧剩余敌人不再处理
func TestAvoidance_CollisionStopsProcessing(t *testing.T) {
	sim, _ := newTestSimulation(1)
	sim.Start(0)
	placeEnemy(sim, 300, 210, 0, 0, 8)
	exiting := placeEnemy(sim, 700, 200, 1, 0, 8)

	sim.Tick(center, frameMs)

	if sim.State().Score() != 0 {
		t.Errorf("score = %d, want 0", sim.State().Score())
	}
	if !sim.EntityManager().Exists(exiting) {
		t.Error("enemy after the colliding one should not be removed")
	}
}

// TestAvoidance_HighScoreNeverDecreases 多局之间最高分只增不减
func TestAvoidance_HighScoreNeverDecreases(t *testing.T) {
	sim, _ := newTestSimulation(1)
	rounds := []int{30, 10, 30, 50, 0}
	wantHigh := []int{30, 30, 30, 50, 50}

	now := 0.0
	for i, score := range rounds {
		sim.Start(now)
		sim.State().AddScore(score)
		placeEnemy(sim, 300, 200, 0, 0, 8)
		now += frameMs
		sim.Tick(center, now)

		if got := sim.State().HighScore(); got != wantHigh[i] {
			t.Errorf("round %d: high = %d, want %d", i+1, got, wantHigh[i])
		}
	}
}

func TestCoreFollow(t *testing.T) {
	sim, _ := newTestSimulation(1)
	sim.Start(0)

	target := utils.Point{X: 400, Y: 100}
	sim.Tick(target, frameMs)
	p := sim.CorePosition()
	if math.Abs(p.X-315) > 1e-9 || math.Abs(p.Y-185) > 1e-9 {
		t.Errorf("core after one step = %+v, want (315, 185)", p)
	}

	for i := 0; i < 200; i++ {
		sim.Tick(target, frameMs)
	}
	p = sim.CorePosition()
	if utils.Distance(p.X, p.Y, target.X, target.Y) > 0.01 {
		t.Errorf("core did not converge: %+v", p)
	}
	if p.X > target.X || p.Y < target.Y {
		t.Errorf("core overshot target: %+v", p)
	}
}

// TestEnemySpawn_Cadence T 毫秒内生成数量约为 floor(T/800)
func TestEnemySpawn_Cadence(t *testing.T) {
	for _, total := range []float64{2000, 8000, 16000, 60000, 600000} {
		em := ecs.NewEntityManager()
		cfg := config.DefaultSimulationConfig().Avoidance
		spawner := NewEnemySpawnSystem(em, utils.NewRand(5), cfg)

		for frame := 0; float64(frame)*frameMs <= total; frame++ {
			spawner.Update(float64(frame)*frameMs, 300, 200)
		}

		want := int(math.Floor(total / 800))
		got := spawner.Spawned()
		if got < want-1 || got > want+1 {
			t.Errorf("T=%.0f: spawned %d, want %d±1", total, got, want)
		}
		if n := len(ecs.GetEntitiesWith1[*components.EnemyComponent](em)); n != got {
			t.Errorf("T=%.0f: entities %d != spawned %d", total, n, got)
		}
	}
}

func TestEnemySpawn_FirstUpdateArms(t *testing.T) {
	em := ecs.NewEntityManager()
	spawner := NewEnemySpawnSystem(em, utils.NewRand(5), config.DefaultSimulationConfig().Avoidance)

	if _, ok := spawner.Update(5000, 300, 200); ok {
		t.Error("first Update should only arm the timer")
	}
	if _, ok := spawner.Update(5800, 300, 200); ok {
		t.Error("exactly one interval later should not spawn")
	}
	if _, ok := spawner.Update(5801, 300, 200); !ok {
		t.Error("more than one interval later should spawn")
	}

	spawner.Reset()
	if _, ok := spawner.Update(9000, 300, 200); ok {
		t.Error("first Update after Reset should only arm the timer")
	}
}

// TestEnemySpawn_StallRealigns 长时间卡顿后只生成一个敌人并重新对齐计时
func TestEnemySpawn_StallRealigns(t *testing.T) {
	em := ecs.NewEntityManager()
	spawner := NewEnemySpawnSystem(em, utils.NewRand(5), config.DefaultSimulationConfig().Avoidance)

	spawner.Update(0, 300, 200)
	if _, ok := spawner.Update(810, 300, 200); !ok {
		t.Fatal("expected a spawn after one interval")
	}
	// 下一次计划时刻为 1600，而不是 810+800
	if _, ok := spawner.Update(1601, 300, 200); !ok {
		t.Error("schedule should advance by the interval, not by the frame time")
	}

	if _, ok := spawner.Update(10000, 300, 200); !ok {
		t.Fatal("expected a spawn after the stall")
	}
	if _, ok := spawner.Update(10000+frameMs, 300, 200); ok {
		t.Error("stall should not trigger catch-up spawns")
	}
	if _, ok := spawner.Update(10801, 300, 200); !ok {
		t.Error("schedule should realign to the frame after the stall")
	}
	if got := spawner.Spawned(); got != 4 {
		t.Errorf("spawned = %d, want 4", got)
	}
}

// TestEnemySpawn_OutsideAndAimed 敌人生成在画布外，朝核心飞行
func TestEnemySpawn_OutsideAndAimed(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultSimulationConfig().Avoidance
	spawner := NewEnemySpawnSystem(em, utils.NewRand(11), cfg)

	const coreX, coreY = 250.0, 180.0
	for i := 0; i < 200; i++ {
		id := spawner.Spawn(0, coreX, coreY)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)

		if col.Radius < 8 || col.Radius >= 16 {
			t.Errorf("radius %.2f out of [8, 16)", col.Radius)
		}
		inside := pos.X >= 0 && pos.X <= cfg.Width && pos.Y >= 0 && pos.Y <= cfg.Height
		if inside {
			t.Errorf("enemy spawned inside field at (%.1f, %.1f)", pos.X, pos.Y)
		}
		speed := math.Hypot(vel.VX, vel.VY)
		if speed < 2-1e-9 || speed >= 4 {
			t.Errorf("speed %.3f out of [2, 4)", speed)
		}
		// 速度方向与指向核心的方向一致
		dx, dy := utils.Normalize(coreX-pos.X, coreY-pos.Y)
		if dot := (vel.VX*dx + vel.VY*dy) / speed; dot < 1-1e-9 {
			t.Errorf("enemy not aimed at core: cos=%.6f", dot)
		}
	}
}

// TestAvoidanceRender_Layers 背景最先绘制，核心实心圆在光晕之上
func TestAvoidanceRender_Layers(t *testing.T) {
	sim, _ := newTestSimulation(1)
	sim.Start(0)
	placeEnemy(sim, 100, 100, 0, 0, 10)

	rec := render.NewRecorder(600, 400)
	sim.Draw(rec, frameMs)

	ops := rec.Ops()
	if ops[0].Kind != render.OpFill {
		t.Fatalf("first op = %v, want fill", ops[0].Kind)
	}

	circles := rec.OpsOf(render.OpCircle)
	// 敌人光晕 + 敌人 + 核心光晕若干层 + 核心
	if len(circles) != 2+glowSteps+1 {
		t.Fatalf("circles = %d, want %d", len(circles), 2+glowSteps+1)
	}
	coreDisc := circles[len(circles)-1]
	if coreDisc.X1 != 25 || coreDisc.Color.A != 255 {
		t.Errorf("core disc radius=%.0f alpha=%d, want 25/255", coreDisc.X1, coreDisc.Color.A)
	}
	outerGlow := circles[2]
	if outerGlow.X1 != 50 {
		t.Errorf("outer glow radius = %.0f, want 50", outerGlow.X1)
	}

	// 进行中不绘制遮罩
	for _, op := range rec.OpsOf(render.OpText) {
		if op.Text == gameOverMsg || op.Text == startHint {
			t.Errorf("overlay text %q drawn while playing", op.Text)
		}
	}
}

func TestAvoidanceRender_Overlays(t *testing.T) {
	sim, _ := newTestSimulation(1)

	rec := render.NewRecorder(600, 400)
	sim.Draw(rec, 1000)
	if !hasText(rec, startHint) {
		t.Error("start overlay missing")
	}

	sim.Start(0)
	sim.State().AddScore(40)
	placeEnemy(sim, 300, 200, 0, 0, 8)
	sim.Tick(center, frameMs)

	rec.Reset()
	sim.Draw(rec, frameMs+1000)
	for _, want := range []string{gameOverMsg, "SCORE 40   BEST 40", retryHint, "SCORE 40", "BEST 40"} {
		if !hasText(rec, want) {
			t.Errorf("game over overlay missing %q", want)
		}
	}

	// 刚结束时遮罩透明，随后淡入
	rec.Reset()
	sim.Draw(rec, frameMs)
	for _, op := range rec.OpsOf(render.OpText) {
		if op.Text == gameOverMsg && op.Color.A != 0 {
			t.Errorf("overlay alpha at t=0 = %d, want 0", op.Color.A)
		}
	}
}

func hasText(rec *render.Recorder, s string) bool {
	for _, op := range rec.OpsOf(render.OpText) {
		if op.Text == s {
			return true
		}
	}
	return false
}
