package scenes

import (
	"math"
	"testing"

	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/entities"
	"github.com/Onimix/ONIMISIV/pkg/game"
	"github.com/Onimix/ONIMISIV/pkg/render"
	"github.com/Onimix/ONIMISIV/pkg/utils"
)

const frameMs = config.FrameDurationMs

func newTestEnv(w, h int) *Environment {
	return &Environment{
		Loop:     game.NewFrameLoop(),
		Viewport: game.NewViewport(w, h),
		Input:    game.NewInputHub(),
		Config:   config.DefaultSimulationConfig(),
		Rand:     utils.NewRand(1),
		Sound:    game.MuteSound{},
		Variant:  config.VariantStream,
	}
}

// TestParticleFieldScene_Lifecycle 挂载时注册一条帧回调链，卸载时全部释放
func TestParticleFieldScene_Lifecycle(t *testing.T) {
	env := newTestEnv(1200, 800)
	scene, err := NewParticleFieldScene(env, config.VariantStream)
	if err != nil {
		t.Fatalf("NewParticleFieldScene() error = %v", err)
	}

	if got := scene.ParticleCount(); got != 80 {
		t.Errorf("ParticleCount() = %d, want 80", got)
	}
	if env.Loop.Pending() != 1 {
		t.Errorf("pending callbacks = %d, want 1", env.Loop.Pending())
	}
	for i := 0; i < 10; i++ {
		env.Loop.Advance(frameMs)
		if env.Loop.Pending() != 1 {
			t.Fatalf("frame %d: pending callbacks = %d, want 1", i, env.Loop.Pending())
		}
	}
	if env.Viewport.SubscriberCount() != 1 {
		t.Errorf("resize subscribers = %d, want 1", env.Viewport.SubscriberCount())
	}

	scene.Dispose()

	if env.Loop.Pending() != 0 {
		t.Errorf("pending callbacks after Dispose = %d, want 0", env.Loop.Pending())
	}
	if env.Viewport.SubscriberCount() != 0 {
		t.Errorf("resize subscribers after Dispose = %d, want 0", env.Viewport.SubscriberCount())
	}
}

func TestParticleFieldScene_Resize(t *testing.T) {
	env := newTestEnv(1200, 800)
	scene, err := NewParticleFieldScene(env, config.VariantTech)
	if err != nil {
		t.Fatal(err)
	}
	defer scene.Dispose()

	// 1200*800/15000 = 64
	if got := scene.ParticleCount(); got != 64 {
		t.Errorf("initial count = %d, want 64", got)
	}
	env.Viewport.Resize(600, 400)
	if got := scene.ParticleCount(); got != 16 {
		t.Errorf("count after resize = %d, want 16", got)
	}
}

func TestParticleFieldScene_Draw(t *testing.T) {
	env := newTestEnv(600, 400)
	scene, err := NewParticleFieldScene(env, config.VariantStream)
	if err != nil {
		t.Fatal(err)
	}
	defer scene.Dispose()

	rec := render.NewRecorder(600, 400)
	scene.Draw(rec)

	ops := rec.Ops()
	if len(ops) == 0 || ops[0].Kind != render.OpFill {
		t.Fatal("background should be filled first")
	}
	if got := len(rec.OpsOf(render.OpCircle)); got != 20 {
		t.Errorf("circles = %d, want 20", got)
	}
}

// TestParticleFieldScene_ZeroViewport 尺寸为 0 时跳过绘制
func TestParticleFieldScene_ZeroViewport(t *testing.T) {
	env := newTestEnv(0, 0)
	scene, err := NewParticleFieldScene(env, config.VariantStream)
	if err != nil {
		t.Fatal(err)
	}
	defer scene.Dispose()

	env.Loop.Advance(frameMs)
	rec := render.NewRecorder(0, 0)
	scene.Draw(rec)
	if len(rec.Ops()) != 0 {
		t.Errorf("ops = %d, want 0", len(rec.Ops()))
	}
}

func TestParticleFieldScene_UnknownVariant(t *testing.T) {
	env := newTestEnv(100, 100)
	if _, err := NewParticleFieldScene(env, "neon"); err == nil {
		t.Error("expected error for unknown variant")
	}
	if env.Loop.Pending() != 0 {
		t.Error("failed mount should not register callbacks")
	}
}

// TestAvoidanceScene_ChainFollowsGameState 帧回调链只在进行中存在
func TestAvoidanceScene_ChainFollowsGameState(t *testing.T) {
	env := newTestEnv(1000, 600)
	scene := NewAvoidanceScene(env)
	sim := scene.Simulation()

	if env.Loop.Pending() != 0 {
		t.Fatalf("chain registered before start: %d", env.Loop.Pending())
	}

	env.Input.TriggerStart()
	if !scene.Running() || env.Loop.Pending() != 1 {
		t.Fatalf("after start: running=%v pending=%d", scene.Running(), env.Loop.Pending())
	}

	// 在核心上放一个敌人，下一帧碰撞
	core := sim.CorePosition()
	entities.NewEnemyEntity(sim.EntityManager(), core.X, core.Y, 0, 0, 8, nil, 0)
	env.Loop.Advance(frameMs)

	if sim.State().Phase() != game.PhaseGameOver {
		t.Fatalf("phase = %v, want gameover", sim.State().Phase())
	}
	if scene.Running() || env.Loop.Pending() != 0 {
		t.Errorf("after game over: running=%v pending=%d", scene.Running(), env.Loop.Pending())
	}

	env.Input.TriggerStart()
	if !sim.State().IsPlaying() || sim.EnemyCount() != 0 || sim.State().Score() != 0 {
		t.Errorf("restart: phase=%v enemies=%d score=%d", sim.State().Phase(), sim.EnemyCount(), sim.State().Score())
	}
	if env.Loop.Pending() != 1 {
		t.Errorf("pending after restart = %d, want 1", env.Loop.Pending())
	}

	scene.Dispose()
	if env.Loop.Pending() != 0 || env.Input.StartSubscriberCount() != 0 {
		t.Errorf("after Dispose: pending=%d subscribers=%d", env.Loop.Pending(), env.Input.StartSubscriberCount())
	}
}

// TestAvoidanceScene_RepeatedStart 进行中重复开始不会注册第二条帧回调链
func TestAvoidanceScene_RepeatedStart(t *testing.T) {
	env := newTestEnv(1000, 600)
	scene := NewAvoidanceScene(env)
	defer scene.Dispose()

	env.Input.TriggerStart()
	env.Loop.Advance(frameMs)
	env.Input.TriggerStart()

	if env.Loop.Pending() != 1 {
		t.Errorf("pending = %d, want 1", env.Loop.Pending())
	}
}

// TestAvoidanceScene_PointerIsPanelLocal 指针换算为小游戏画布坐标
func TestAvoidanceScene_PointerIsPanelLocal(t *testing.T) {
	env := newTestEnv(1000, 600)
	scene := NewAvoidanceScene(env)
	defer scene.Dispose()

	// 面板居中：原点 (200, 100)
	rec := render.NewRecorder(1000, 600)
	scene.Draw(rec)

	env.Input.TriggerStart()
	env.Input.Pointer.Store(250, 150)
	env.Loop.Advance(frameMs)

	// 局部指针 (50, 50)：核心移动 15%
	p := scene.Simulation().CorePosition()
	if math.Abs(p.X-262.5) > 1e-9 || math.Abs(p.Y-177.5) > 1e-9 {
		t.Errorf("core = %+v, want (262.5, 177.5)", p)
	}

	// 面板内容绘制在偏移后的区域内
	fill := rec.OpsOf(render.OpFill)[0]
	if fill.X0 != 200 || fill.Y0 != 100 {
		t.Errorf("panel origin = (%.0f, %.0f), want (200, 100)", fill.X0, fill.Y0)
	}
}

func TestAvoidanceScene_NoPointerKeepsCore(t *testing.T) {
	env := newTestEnv(600, 400)
	scene := NewAvoidanceScene(env)
	defer scene.Dispose()

	env.Input.TriggerStart()
	env.Loop.Advance(frameMs)

	if p := scene.Simulation().CorePosition(); p != (utils.Point{X: 300, Y: 200}) {
		t.Errorf("core moved without pointer input: %+v", p)
	}
}

// TestLandingScene_IndependentSimulations 落地页两个模拟各自一条帧回调链
func TestLandingScene_IndependentSimulations(t *testing.T) {
	env := newTestEnv(1200, 800)
	scene, err := NewLandingScene(env, config.VariantTech)
	if err != nil {
		t.Fatal(err)
	}

	if env.Loop.Pending() != 1 {
		t.Errorf("pending before start = %d, want 1 (particle field)", env.Loop.Pending())
	}
	env.Input.TriggerStart()
	if env.Loop.Pending() != 2 {
		t.Errorf("pending after start = %d, want 2", env.Loop.Pending())
	}

	rec := render.NewRecorder(1200, 800)
	scene.Draw(rec)
	ops := rec.Ops()
	if ops[0].Kind != render.OpFill || ops[0].X1 != 1200 {
		t.Errorf("first op should fill the whole page, got %+v", ops[0])
	}

	scene.Dispose()
	if env.Loop.Pending() != 0 {
		t.Errorf("pending after Dispose = %d, want 0", env.Loop.Pending())
	}
	if env.Viewport.SubscriberCount() != 0 || env.Input.StartSubscriberCount() != 0 {
		t.Error("subscriptions leaked after Dispose")
	}
}

func TestEnvironment_NewScene(t *testing.T) {
	env := newTestEnv(800, 600)
	sm := game.NewSceneManager()
	sm.SetSceneFactory(env.NewScene)

	for _, name := range SceneNames() {
		if err := sm.Load(name); err != nil {
			t.Errorf("Load(%q) error = %v", name, err)
		}
		if _, current := sm.Current(); current != name {
			t.Errorf("current = %q, want %q", current, name)
		}
	}
	if err := sm.Load("credits"); err == nil {
		t.Error("expected error for unknown scene")
	}
	if _, current := sm.Current(); current != SceneGame {
		t.Errorf("failed load should keep current scene, got %q", current)
	}

	sm.Close()
	if env.Loop.Pending() != 0 || env.Viewport.SubscriberCount() != 0 {
		t.Error("scene manager Close should dispose the active scene")
	}
}

func TestEnvironment_NextVariant(t *testing.T) {
	env := newTestEnv(800, 600)
	if got := env.NextVariant(); got != config.VariantTech {
		t.Errorf("NextVariant() = %q, want %q", got, config.VariantTech)
	}
	if got := env.NextVariant(); got != config.VariantStream {
		t.Errorf("NextVariant() = %q, want %q", got, config.VariantStream)
	}
}
