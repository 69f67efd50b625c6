// Package app 提供桌面端应用包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载模拟配置、创建帧循环与场景环境、
// 把 Ebitengine 的输入与窗口尺寸转发给场景。
package app

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/embedded"
	"github.com/Onimix/ONIMISIV/pkg/game"
	"github.com/Onimix/ONIMISIV/pkg/scenes"
	"github.com/Onimix/ONIMISIV/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DefaultConfigPath 嵌入的默认模拟配置
const DefaultConfigPath = "data/simulation.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Scene 启动场景（landing / particles / game）
	Scene string
	// Variant 粒子场变体（stream / tech）
	Variant string
	// ConfigPath 覆盖配置文件路径，为空则只使用嵌入配置
	ConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Mute 关闭提示音
	Mute bool
}

// App 桌面端应用，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	env          *scenes.Environment

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	simCfg, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	variant := cfg.Variant
	if variant == "" {
		variant = config.VariantStream
	}
	if _, ok := simCfg.Variant(variant); !ok {
		return nil, fmt.Errorf("unknown variant %q (available: %v)", variant, simCfg.VariantNames())
	}

	var sound game.SoundPlayer = game.MuteSound{}
	if !cfg.Mute && simCfg.Audio.Enabled {
		sound = NewAudioManager(audio.NewContext(game.AudioSampleRate), simCfg.Audio)
		log.Printf("[App] AudioManager initialized")
	}

	env := &scenes.Environment{
		Loop:     game.NewFrameLoop(),
		Viewport: game.NewViewport(config.DefaultWindowWidth, config.DefaultWindowHeight),
		Input:    game.NewInputHub(),
		Config:   simCfg,
		Rand:     NewRand(cfg.Seed),
		Sound:    sound,
		Variant:  variant,
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(env.NewScene)

	sceneName := cfg.Scene
	if sceneName == "" {
		sceneName = scenes.SceneLanding
	}
	if err := sceneManager.Load(sceneName); err != nil {
		return nil, fmt.Errorf("failed to load scene: %w", err)
	}
	log.Printf("[App] Started scene %q with variant %q", sceneName, variant)

	return &App{
		sceneManager: sceneManager,
		env:          env,
	}, nil
}

// LoadConfig 读取嵌入的默认配置，并叠加 overridePath 指定的文件
func LoadConfig(overridePath string) (*config.SimulationConfig, error) {
	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded config: %w", err)
	}
	simCfg, err := config.ParseSimulationConfig(data)
	if err != nil {
		return nil, err
	}
	log.Printf("[Config] Loaded %s", DefaultConfigPath)

	if overridePath == "" {
		return simCfg, nil
	}
	override, err := os.ReadFile(overridePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config override: %w", err)
	}
	simCfg, err = config.ParseSimulationConfigOver(simCfg, override)
	if err != nil {
		return nil, err
	}
	log.Printf("[Config] Applied override %s", overridePath)
	return simCfg, nil
}

// NewRand 按种子创建随机数源，0 表示使用当前时间
func NewRand(seed int64) *utils.Rand {
	if seed == 0 {
		return utils.NewTimeSeededRand()
	}
	return utils.NewRand(seed)
}

// Update 处理输入并推进一帧
// 每个 tick 调用一次（每秒 60 次）
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.DefaultWindowWidth, config.DefaultWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.DefaultWindowWidth, config.DefaultWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if err := a.SwitchVariant(); err != nil {
			log.Printf("[App] Failed to switch variant: %v", err)
		}
	}

	x, y := pointerPosition()
	a.env.Input.Pointer.Store(float64(x), float64(y))

	if isStartJustPressed() {
		a.env.Input.TriggerStart()
	}

	a.env.Loop.Advance(config.FrameDurationMs)
	return nil
}

// SwitchVariant 切换粒子场变体，并重新加载使用粒子场的场景
func (a *App) SwitchVariant() error {
	variant := a.env.NextVariant()
	log.Printf("[App] Variant switched to %q", variant)

	_, name := a.sceneManager.Current()
	if name == scenes.SceneGame {
		return nil
	}
	return a.sceneManager.Load(name)
}

// Draw 绘制当前场景
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(NewEbitenCanvas(screen))
}

// Layout 返回逻辑屏幕尺寸
// 逻辑尺寸与窗口尺寸一致，窗口尺寸变化时通知视口订阅者
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.env.Viewport.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Close 卸载当前场景
func (a *App) Close() {
	a.sceneManager.Close()
}
