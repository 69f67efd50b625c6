// Package main 终端版落地页
//
// 与桌面端共用场景与模拟，使用 tcell 绘制到终端字符网格，beep 播放提示音。
//
// Usage:
//
//	go run ./cmd/landing-term [flags]
//
// Flags:
//
//	--scene <name>      Start scene: landing, particles or game
//	--variant <name>    Particle field variant: stream or tech
//	--config <file>     YAML file overriding the default simulation config
//	--seed <int>        Random seed (0 = time based)
//	--log <file>        Write logs to file (default: discard)
//	--mute              Disable sound cues
//
// Controls:
//
//	Mouse             - Move the core
//	Click/Space/Enter - Start or restart the game
//	Tab               - Switch particle variant
//	Q/Escape/Ctrl-C   - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/game"
	"github.com/Onimix/ONIMISIV/pkg/scenes"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep/speaker"
)

var (
	sceneFlag   = flag.String("scene", scenes.SceneLanding, "Start scene: landing, particles or game")
	variantFlag = flag.String("variant", config.VariantStream, "Particle field variant: stream or tech")
	configFlag  = flag.String("config", "", "YAML file overriding the default simulation config")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = time based)")
	logFlag     = flag.String("log", "", "Write logs to file (default: discard)")
	muteFlag    = flag.Bool("mute", false, "Disable sound cues")
)

func main() {
	flag.Parse()

	// 终端被 tcell 占用，日志只能写文件或丢弃
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	simCfg, err := loadConfig(*configFlag)
	if err != nil {
		return err
	}

	var sound game.SoundPlayer = game.MuteSound{}
	if !*muteFlag && simCfg.Audio.Enabled {
		bs, err := newBeepSound(simCfg.Audio)
		if err != nil {
			// 没有音频设备时静音运行
			log.Printf("[Audio] Initialization failed: %v", err)
		} else {
			sound = bs
			defer speaker.Close()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	t, err := newTerminalApp(screen, options{
		simCfg:  simCfg,
		scene:   *sceneFlag,
		variant: *variantFlag,
		seed:    *seedFlag,
		sound:   sound,
	})
	if err != nil {
		return err
	}
	defer t.close()

	t.run()
	return nil
}

// loadConfig 默认配置叠加 --config 指定的文件
func loadConfig(path string) (*config.SimulationConfig, error) {
	if path == "" {
		return config.DefaultSimulationConfig(), nil
	}
	return config.LoadSimulationConfig(path)
}

// run 事件循环
//
// 事件 goroutine 直接写入指针位置（无锁，后写覆盖先写），
// 其余事件经 channel 交给帧循环所在 goroutine 处理。
func (t *terminalApp) run() {
	ticker := time.NewTicker(time.Second / config.TicksPerSecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			if m, ok := ev.(*tcell.EventMouse); ok {
				x, y := m.Position()
				t.storePointer(x, y)
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !t.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			t.tick()
		}
	}
}
