package systems

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/decker502/idletower/pkg/components"
	"github.com/decker502/idletower/pkg/config"
	"github.com/decker502/idletower/pkg/game"
)

// WavePhase 波次阶段
type WavePhase int

const (
	WaveSpawning WavePhase = iota // 仍有敌人待生成
	WaveClearing                  // 已全部生成，等待场上敌人清空
	WaveComplete                  // 本波完成（随即进入下一波）
)

// String 返回阶段名
func (p WavePhase) String() string {
	switch p {
	case WaveSpawning:
		return "spawning"
	case WaveClearing:
		return "clearing"
	case WaveComplete:
		return "complete"
	}
	return "unknown"
}

// NewSpawnRand 创建出生角度随机数源
// seed 为 0 时使用当前时间，否则同一种子得到相同的出生序列
func NewSpawnRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// WaveSpawnSystem 波次生成系统
//
// 职责：
//   - 进入新波次时根据难度模型确定生成数量
//   - 按生成间隔在以塔为圆心的圆上生成敌人（每帧至多一个）
//   - 判断本波是否清空
type WaveSpawnSystem struct {
	enemies *EnemyStore
	run     *game.RunState
	rng     *rand.Rand

	phase        WavePhase
	scheduled    int
	spawned      int
	nextSpawnDue float64

	verbose bool
}

// NewWaveSpawnSystem 创建波次生成系统
//
// 参数：
//
//	enemies - 敌人存储
//	run - 本局状态（读取波次与难度等级）
//	rng - 出生角度随机数源
func NewWaveSpawnSystem(enemies *EnemyStore, run *game.RunState, rng *rand.Rand) *WaveSpawnSystem {
	return &WaveSpawnSystem{
		enemies: enemies,
		run:     run,
		rng:     rng,
	}
}

// StartWave 进入当前波次，第一个敌人立即到期
func (s *WaveSpawnSystem) StartWave(clock float64) {
	s.phase = WaveSpawning
	s.scheduled = SpawnCount(s.run.Wave)
	s.spawned = 0
	s.nextSpawnDue = clock

	if IsBossWave(s.run.Wave) {
		log.Printf("[WaveSpawnSystem] Boss wave %d started (tier %d)", s.run.Wave, s.run.Tier)
	} else if s.verbose {
		log.Printf("[WaveSpawnSystem] Wave %d started: %d enemies", s.run.Wave, s.scheduled)
	}
}

// Update 到期时生成一个敌人
func (s *WaveSpawnSystem) Update(clock float64, result *TickResult) {
	if s.spawned >= s.scheduled || clock < s.nextSpawnDue {
		return
	}

	s.spawnOne()
	s.spawned++
	s.nextSpawnDue += SpawnInterval(s.run.Wave)
	result.Spawned++

	if s.spawned >= s.scheduled {
		s.phase = WaveClearing
	}
}

// spawnOne 在出生圆上随机位置生成一个敌人
func (s *WaveSpawnSystem) spawnOne() {
	stats := CalculateEnemyStats(s.run.Wave, s.run.Tier)
	angle := s.rng.Float64() * 2 * math.Pi
	position := TowerPosition.Add(components.Vec2{
		X: math.Cos(angle) * config.SpawnRadius,
		Y: math.Sin(angle) * config.SpawnRadius,
	})

	id := s.enemies.CreateEntity(components.EnemyComponent{
		MaxHP:         stats.MaxHP,
		HP:            stats.MaxHP,
		DamageToTower: stats.DamageToTower,
		CashReward:    stats.CashReward,
		IsBoss:        stats.IsBoss,
		Position:      position,
		MoveSpeed:     stats.MoveSpeed,
		Alive:         true,
	})

	if s.verbose {
		log.Printf("[WaveSpawnSystem] Spawned enemy %d at (%.2f, %.2f): hp=%.1f boss=%v",
			id, position.X, position.Y, stats.MaxHP, stats.IsBoss)
	}
}

// IsWaveCleared 本波是否已全部生成且场上无存活敌人
func (s *WaveSpawnSystem) IsWaveCleared() bool {
	return s.scheduled > 0 && s.spawned >= s.scheduled && s.enemies.Len() == 0
}

// CompleteWave 标记本波完成
func (s *WaveSpawnSystem) CompleteWave() {
	s.phase = WaveComplete
}

// Phase 返回当前波次阶段
func (s *WaveSpawnSystem) Phase() WavePhase {
	return s.phase
}

// Scheduled 返回本波计划生成数量
func (s *WaveSpawnSystem) Scheduled() int {
	return s.scheduled
}

// Spawned 返回本波已生成数量
func (s *WaveSpawnSystem) Spawned() int {
	return s.spawned
}
