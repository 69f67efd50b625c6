package main

import (
	"flag"
	"log"
	"os"

	"github.com/Onimix/ONIMISIV/pkg/app"
	"github.com/Onimix/ONIMISIV/pkg/config"
	"github.com/Onimix/ONIMISIV/pkg/embedded"
	"github.com/Onimix/ONIMISIV/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	sceneFlag   = flag.String("scene", scenes.SceneLanding, "Start scene: landing, particles or game")
	variantFlag = flag.String("variant", config.VariantStream, "Particle field variant: stream or tech")
	configFlag  = flag.String("config", "", "YAML file overriding data/simulation.yaml")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = time based)")
	muteFlag    = flag.Bool("mute", false, "Disable sound cues")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		Scene:      *sceneFlag,
		Variant:    *variantFlag,
		ConfigPath: *configFlag,
		Seed:       *seedFlag,
		Mute:       *muteFlag,
	})
	if err != nil {
		// 非 verbose 模式下日志已被静默，错误需要输出到 stderr
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(config.DefaultWindowWidth, config.DefaultWindowHeight)
	ebiten.SetWindowTitle("ONIMIX")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Update 返回 ebiten.Termination 时 RunGame 返回 nil
	if err := ebiten.RunGame(gameApp); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
