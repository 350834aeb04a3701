package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/idletower/pkg/app"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose debug logging")
	configFlag  = flag.String("config", "", "Session config override file (YAML)")
	seedFlag    = flag.Int64("seed", 0, "Spawn RNG seed (0 uses the config value)")
)

func main() {
	flag.Parse()

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Seed:       *seedFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Idle Tower")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)

	// 窗口关闭时保存进度
	if err := gameApp.Session().Close(); err != nil {
		fmt.Fprintf(os.Stderr, "进度保存失败: %v\n", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "游戏运行失败: %v\n", runErr)
		os.Exit(1)
	}
}
