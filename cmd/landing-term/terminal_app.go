package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/game"
	"github.com/Onimix/ONIMISIV/pkg/render"
	"github.com/Onimix/ONIMISIV/pkg/scenes"
	"github.com/Onimix/ONIMISIV/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

// options 终端应用启动参数
type options struct {
	simCfg  *config.SimulationConfig
	scene   string
	variant string
	seed    int64
	sound   game.SoundPlayer
}

// terminalApp 终端前端
//
// 终端字符单元按固定像素尺寸换算为画布坐标，模拟仍以像素为单位运行。
type terminalApp struct {
	screen       tcell.Screen
	env          *scenes.Environment
	sceneManager *game.SceneManager
	canvas       *render.TerminalCanvas

	cellW, cellH float64
	mouseDown    bool
}

func newTerminalApp(screen tcell.Screen, opts options) (*terminalApp, error) {
	if _, ok := opts.simCfg.Variant(opts.variant); !ok {
		return nil, fmt.Errorf("unknown variant %q (available: %v)", opts.variant, opts.simCfg.VariantNames())
	}

	cols, rows := screen.Size()
	t := &terminalApp{
		screen: screen,
		cellW:  render.DefaultCellWidth,
		cellH:  render.DefaultCellHeight,
	}

	rng := utils.NewTimeSeededRand()
	if opts.seed != 0 {
		rng = utils.NewRand(opts.seed)
	}

	t.env = &scenes.Environment{
		Loop:     game.NewFrameLoop(),
		Viewport: game.NewViewport(t.pixelSize(cols, rows)),
		Input:    game.NewInputHub(),
		Config:   opts.simCfg,
		Rand:     rng,
		Sound:    opts.sound,
		Variant:  opts.variant,
	}
	t.canvas = render.NewTerminalCanvas(cols, rows, t.cellW, t.cellH)

	t.sceneManager = game.NewSceneManager()
	t.sceneManager.SetSceneFactory(t.env.NewScene)
	if err := t.sceneManager.Load(opts.scene); err != nil {
		return nil, err
	}

	log.Printf("[Terminal] Started scene %q on %dx%d cells", opts.scene, cols, rows)
	return t, nil
}

// pixelSize 字符网格对应的画布像素尺寸
func (t *terminalApp) pixelSize(cols, rows int) (int, int) {
	return int(float64(cols) * t.cellW), int(float64(rows) * t.cellH)
}

// storePointer 记录指针位置（单元格中心）
// 可在事件 goroutine 调用
func (t *terminalApp) storePointer(col, row int) {
	t.env.Input.Pointer.Store((float64(col)+0.5)*t.cellW, (float64(row)+0.5)*t.cellH)
}

// handleEvent 处理一个终端事件，返回 false 表示退出
func (t *terminalApp) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		t.handleMouse(ev.Buttons())
	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.handleResize(cols, rows)
	}
	return true
}

func (t *terminalApp) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		t.env.Input.TriggerStart()
	case tcell.KeyTab:
		t.switchVariant()
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return false
		case ' ':
			t.env.Input.TriggerStart()
		}
	}
	return true
}

// handleMouse 左键按下的瞬间触发开始
func (t *terminalApp) handleMouse(buttons tcell.ButtonMask) {
	down := buttons&tcell.Button1 != 0
	if down && !t.mouseDown {
		t.env.Input.TriggerStart()
	}
	t.mouseDown = down
}

func (t *terminalApp) handleResize(cols, rows int) {
	t.canvas = render.NewTerminalCanvas(cols, rows, t.cellW, t.cellH)
	t.env.Viewport.Resize(t.pixelSize(cols, rows))
	t.screen.Sync()
}

func (t *terminalApp) switchVariant() {
	variant := t.env.NextVariant()
	log.Printf("[Terminal] Variant switched to %q", variant)

	if _, name := t.sceneManager.Current(); name != scenes.SceneGame {
		if err := t.sceneManager.Load(name); err != nil {
			log.Printf("[Terminal] Failed to reload scene: %v", err)
		}
	}
}

// tick 推进一帧并重绘
func (t *terminalApp) tick() {
	t.env.Loop.Advance(config.FrameDurationMs)

	t.canvas.Fill(color.Black)
	t.sceneManager.Draw(t.canvas)
	t.canvas.Flush(t.screen)
	t.screen.Show()
}

func (t *terminalApp) close() {
	t.sceneManager.Close()
}
