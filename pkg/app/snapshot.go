package app

import (
	"strconv"

	"github.com/decker502/idletower/pkg/components"
	"github.com/decker502/idletower/pkg/config"
	"github.com/decker502/idletower/pkg/ecs"
	"github.com/decker502/idletower/pkg/game"
	"github.com/decker502/idletower/pkg/systems"
	"github.com/decker502/idletower/pkg/types"
	"github.com/decker502/idletower/pkg/utils"
)

// maxLevelText 满级升级的数值文本
const maxLevelText = "Max"

// UpgradeView 单个升级的显示数据
type UpgradeView struct {
	ID          string
	DisplayName string
	Category    config.UpgradeCategory
	Level       int
	NextCost    int
	Value       string
	Maxed       bool
	// Purchasable 当前是否可以购买（阶段允许、未满级且货币足够）
	Purchasable bool
}

// EnemyView 敌人的显示数据
type EnemyView struct {
	Position components.Vec2
	// HPFraction 剩余生命比例 [0, 1]
	HPFraction float64
	IsBoss     bool
}

// RunSnapshot 当前局的只读快照
type RunSnapshot struct {
	RunID string
	Phase game.RunPhase

	Wave              int
	Tier              int
	Cash              float64
	TowerHealth       float64
	TowerMaxHealth    float64
	Damage            float64
	HealthRegenPerSec float64
	GameSpeed         float64

	WavePhase      systems.WavePhase
	SpawnedInWave  int
	ScheduledCount int

	Enemies     []EnemyView
	Projectiles []components.Vec2

	// Upgrades 九种模拟升级，按目录顺序
	Upgrades []UpgradeView
}

// ProgressionSnapshot 永久进度的只读快照
type ProgressionSnapshot struct {
	Coins     int64
	CoinsText string

	Gems        int32
	PowerStones int32

	Tier               int
	TierCoinMultiplier float64
	HighestWave        int

	// Upgrades 目录中的全部条目（含占位条目），按显示顺序
	Upgrades []UpgradeView
}

// RunSnapshot 生成当前局的快照
func (s *Session) RunSnapshot() RunSnapshot {
	run := s.run
	snap := RunSnapshot{
		RunID:             run.ID,
		Phase:             run.Phase,
		Wave:              run.Wave,
		Tier:              run.Tier,
		Cash:              run.Cash,
		TowerHealth:       run.TowerHealth,
		TowerMaxHealth:    run.TowerMaxHealth,
		Damage:            run.Damage,
		HealthRegenPerSec: run.HealthRegenPerSec,
		GameSpeed:         run.GameSpeed,
	}

	if s.engine != nil {
		snap.WavePhase = s.engine.WavePhase()
		snap.SpawnedInWave, snap.ScheduledCount = s.engine.WaveProgress()

		s.engine.Enemies().Each(func(_ ecs.EntityID, enemy *components.EnemyComponent) bool {
			fraction := 0.0
			if enemy.MaxHP > 0 {
				fraction = max(0, min(1, enemy.HP/enemy.MaxHP))
			}
			snap.Enemies = append(snap.Enemies, EnemyView{
				Position:   enemy.Position,
				HPFraction: fraction,
				IsBoss:     enemy.IsBoss,
			})
			return true
		})
		s.engine.Projectiles().Each(func(_ ecs.EntityID, projectile *components.ProjectileComponent) bool {
			snap.Projectiles = append(snap.Projectiles, projectile.Position)
			return true
		})
	}

	for _, kind := range types.AllUpgradeIDs() {
		entry, ok := s.catalog.EntryFor(kind)
		if !ok {
			continue
		}
		view := UpgradeView{
			ID:          entry.ID,
			DisplayName: entry.DisplayName,
			Category:    entry.Category,
			Level:       run.Level(kind),
			NextCost:    run.NextCost(kind),
			Value:       run.ValueString(entry),
			Maxed:       run.IsMaxed(kind),
		}
		view.Purchasable = run.IsActive() && game.CanBuy(kind) && !view.Maxed && run.Cash >= float64(view.NextCost)
		snap.Upgrades = append(snap.Upgrades, view)
	}
	return snap
}

// ProgressionSnapshot 生成永久进度的快照
func (s *Session) ProgressionSnapshot() ProgressionSnapshot {
	ps := s.progression
	snap := ProgressionSnapshot{
		Coins:              ps.Coins,
		CoinsText:          utils.FormatBigNumber(ps.Coins),
		Gems:               ps.Gems,
		PowerStones:        ps.PowerStones,
		Tier:               ps.CurrentTier,
		TierCoinMultiplier: systems.TierCoinMultiplier(ps.CurrentTier),
		HighestWave:        ps.HighestWave,
	}

	inLobby := !s.run.IsActive()
	for _, entry := range s.catalog.Entries() {
		level := ps.LevelByName(entry.ID)
		cost := entry.Cost.At(level)
		view := UpgradeView{
			ID:          entry.ID,
			DisplayName: entry.DisplayName,
			Category:    entry.Category,
			Level:       level,
			NextCost:    cost,
			Maxed:       level >= entry.MaxLevel,
		}
		if view.Maxed {
			view.Value = maxLevelText
		} else {
			view.Value = "Lv " + strconv.Itoa(level)
		}
		view.Purchasable = inLobby && !entry.Inert() && !view.Maxed && ps.Coins >= int64(cost)
		snap.Upgrades = append(snap.Upgrades, view)
	}
	return snap
}
