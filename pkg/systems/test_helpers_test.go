package systems

import (
	"math"
	"testing"

	"github.com/decker502/idletower/pkg/components"
	"github.com/decker502/idletower/pkg/config"
	"github.com/decker502/idletower/pkg/ecs"
	"github.com/decker502/idletower/pkg/game"
)

func approxEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// newTestEngine 创建一局已开始的战斗引擎（固定随机种子）
func newTestEngine(t *testing.T) (*CombatEngine, *game.RunState, *game.ProgressionStore) {
	t.Helper()
	return newTestEngineWith(t, game.NewProgressionStore(nil))
}

// newTestEngineWith 使用指定永久进度创建战斗引擎
func newTestEngineWith(t *testing.T, progression *game.ProgressionStore) (*CombatEngine, *game.RunState, *game.ProgressionStore) {
	t.Helper()
	catalog, err := config.LoadUpgradeCatalog(config.DefaultUpgradeCatalogPath)
	if err != nil {
		t.Fatalf("Failed to load upgrade catalog: %v", err)
	}
	run := game.StartNewRun(progression, catalog)
	engine := NewCombatEngine(run, progression, NewSpawnRand(1))
	return engine, run, progression
}

// freezeSpawns 让本波视为已全部生成，测试只使用手动放置的敌人
func freezeSpawns(e *CombatEngine) {
	e.spawnSystem.scheduled = 1
	e.spawnSystem.spawned = 1
	e.spawnSystem.phase = WaveClearing
}

// disableAttacks 让塔在测试期间不会开火
func disableAttacks(e *CombatEngine) {
	e.attackSystem.nextAttackTime = math.Inf(1)
}

// placeEnemy 在指定位置放置一个第 1 波、第 1 级属性的敌人
func placeEnemy(e *CombatEngine, position components.Vec2, hp float64) ecs.EntityID {
	stats := CalculateEnemyStats(1, 1)
	return e.enemies.CreateEntity(components.EnemyComponent{
		MaxHP:         stats.MaxHP,
		HP:            hp,
		DamageToTower: stats.DamageToTower,
		CashReward:    stats.CashReward,
		Position:      position,
		MoveSpeed:     stats.MoveSpeed,
		Alive:         true,
	})
}

// mustTick 推进一帧，出错时终止测试
func mustTick(t *testing.T, e *CombatEngine, dt float64) TickResult {
	t.Helper()
	result, err := e.Tick(dt)
	if err != nil {
		t.Fatalf("Tick(%v) error: %v", dt, err)
	}
	return result
}
