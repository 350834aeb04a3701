// simulate_run 在无窗口的情况下运行一局，并定期打印局内快照
//
// 用法：
//
//	go run ./cmd/simulate_run -seconds 300 -speed 2 -tier 3 -seed 42
//	go run ./cmd/simulate_run -autobuy Damage,Health -report 30
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/decker502/idletower/pkg/app"
	"github.com/decker502/idletower/pkg/config"
	"github.com/decker502/idletower/pkg/game"
	"github.com/decker502/idletower/pkg/utils"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "会话配置覆盖文件 (YAML)")
	seconds    = flag.Float64("seconds", 120, "模拟的真实时间（秒）")
	speed      = flag.Float64("speed", 1, "游戏速度 (0.5 ~ 5，步长 0.5)")
	tier       = flag.Int("tier", 0, "难度等级 (1 ~ 21)，0 表示使用存档中的等级")
	seed       = flag.Int64("seed", 1, "出生角度随机数种子")
	report     = flag.Float64("report", 10, "打印快照的间隔（秒）")
	autobuy    = flag.String("autobuy", "", "每秒尝试购买的局内升级，逗号分隔（如 Damage,Health）")
	persist    = flag.Bool("persist", false, "使用 gdata 存档（默认只在内存中运行）")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadSessionConfig(*configPath)
	if err != nil {
		return err
	}
	cfg.Seed = *seed
	cfg.Verbose = *verbose

	catalog, err := config.LoadUpgradeCatalog(config.DefaultUpgradeCatalogPath)
	if err != nil {
		return err
	}

	var session *app.Session
	if *persist {
		manager, err := utils.OpenStorage(cfg.AppName, game.ProgressionObject)
		if err != nil {
			return err
		}
		session = app.NewSession(cfg, catalog, manager)
	} else {
		cfg.AutoSave = false
		session = app.NewSession(cfg, catalog, nil)
	}

	if *tier > 0 {
		session.ChangeTier(*tier - session.Progression().CurrentTier)
	}

	if !session.StartRun() {
		return errors.New("failed to start run")
	}
	if !session.SetGameSpeed(*speed) {
		return fmt.Errorf("invalid game speed %v", *speed)
	}

	var buyList []string
	for _, id := range strings.Split(*autobuy, ",") {
		if id = strings.TrimSpace(id); id != "" {
			buyList = append(buyList, id)
		}
	}

	dt := cfg.TickDelta()
	totalTicks := int(*seconds * float64(cfg.TicksPerSecond))
	reportEvery := max(1, int(*report*float64(cfg.TicksPerSecond)))

	fmt.Printf("Run %s: tier %d, speed x%.1f, %d ticks\n",
		session.Run().ID, session.Run().Tier, session.Run().GameSpeed, totalTicks)

	var kills, breaches int
	for tick := 1; tick <= totalTicks; tick++ {
		result, err := session.Tick(dt)
		if err != nil {
			return err
		}
		for _, death := range result.Deaths {
			if death.Cause.Rewarded() {
				kills++
			} else {
				breaches++
			}
		}
		if result.WaveCompleted {
			fmt.Printf("  wave %d complete (+%d coins)\n", result.CompletedWave, result.CoinsEarned)
		}

		if tick%cfg.TicksPerSecond == 0 {
			for _, id := range buyList {
				for session.BuyUpgrade(id) {
				}
			}
		}

		if tick%reportEvery == 0 || result.TowerDestroyed {
			printSnapshot(float64(tick)*dt, session.RunSnapshot())
		}
		if result.TowerDestroyed {
			fmt.Println("Tower destroyed")
			break
		}
	}

	session.ExitRun()
	progression := session.ProgressionSnapshot()
	fmt.Printf("Finished: kills %d, breaches %d, coins %s, highest wave %d\n",
		kills, breaches, progression.CoinsText, progression.HighestWave)

	if err := session.Close(); err != nil {
		return err
	}
	return nil
}

// printSnapshot 打印一行局内状态
func printSnapshot(elapsed float64, snap app.RunSnapshot) {
	fmt.Printf("[%7.1fs] wave %-4d %-8s cash %-10.0f health %.0f/%.0f damage %.0f enemies %d projectiles %d\n",
		elapsed, snap.Wave, snap.WavePhase, snap.Cash, snap.TowerHealth, snap.TowerMaxHealth,
		snap.Damage, len(snap.Enemies), len(snap.Projectiles))
	for _, view := range snap.Upgrades {
		if view.Level > 0 {
			fmt.Printf("           %-14s lv %-4d %s\n", view.DisplayName, view.Level, view.Value)
		}
	}
}
