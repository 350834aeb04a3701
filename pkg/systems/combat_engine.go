package systems

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/decker502/idletower/pkg/components"
	"github.com/decker502/idletower/pkg/config"
	"github.com/decker502/idletower/pkg/ecs"
	"github.com/decker502/idletower/pkg/game"
)

var (
	// ErrRunNotActive 对未开始或已结束的局推进模拟
	ErrRunNotActive = errors.New("run is not active")

	// ErrInvalidDelta 时间步长为负数或非有限值
	ErrInvalidDelta = errors.New("invalid tick delta")
)

// EnemyStore 敌人存储
type EnemyStore = ecs.EntityStore[components.EnemyComponent]

// ProjectileStore 子弹存储
type ProjectileStore = ecs.EntityStore[components.ProjectileComponent]

// TowerPosition 塔的世界坐标
var TowerPosition = components.Vec2{X: config.TowerX, Y: config.TowerY}

// EnemyDeath 一次敌人移除事件
type EnemyDeath struct {
	Enemy      ecs.EntityID
	Cause      components.DeathCause
	CashReward float64
	IsBoss     bool
}

// TickResult 一次 Tick 的结果
//
// Deaths 列出本帧移出战场的全部敌人及原因，由奖励结算消费；
// 宿主可据此播放特效或统计。
type TickResult struct {
	// Wave 本帧结束时的波次
	Wave int
	// ScaledDelta 乘以游戏速度后的时间步长
	ScaledDelta float64

	Spawned        int
	ShotsFired     int
	ProjectileHits int
	Deaths         []EnemyDeath

	DamageTaken float64
	CashEarned  float64
	CoinsEarned int64

	// WaveCompleted 本帧完成了一波，CompletedWave 为完成的波次
	WaveCompleted bool
	CompletedWave int

	// TowerDestroyed 塔生命值为 0，由局控制方决定是否结束本局
	TowerDestroyed bool
}

// CombatEngine 战斗引擎
//
// 职责：
//   - 按固定顺序推进一帧：生成、移动、到达、塔攻击、子弹结算、奖励结算、波次完成、生命回复
//   - 持有敌人与子弹存储，以及本局的波次状态
//   - 通过 TickResult 报告死亡事件与塔被摧毁
//
// 架构说明：
//   - 单线程，由宿主每帧调用 Tick
//   - 游戏速度只缩放时间步长，不增加 Tick 次数
//   - 引擎不会自行结束本局：塔生命值为 0 后继续模拟，生命值保持为 0
type CombatEngine struct {
	run         *game.RunState
	progression *game.ProgressionStore

	enemies     *EnemyStore
	projectiles *ProjectileStore

	spawnSystem      *WaveSpawnSystem
	movementSystem   *EnemyMovementSystem
	attackSystem     *TowerAttackSystem
	projectileSystem *ProjectileSystem

	// clock 本局经过的模拟时间（已缩放）
	clock float64

	destroyedReported bool

	// verbose 是否输出详细日志
	verbose bool
}

// NewCombatEngine 创建战斗引擎
//
// 参数：
//   - run: 本局状态（由引擎读写）
//   - progression: 永久进度（波次完成时发放金币）
//   - rng: 出生角度随机数源，nil 时使用 NewSpawnRand(0)
//
// 返回：
//   - *CombatEngine: 第一波已进入生成阶段的引擎
func NewCombatEngine(run *game.RunState, progression *game.ProgressionStore, rng *rand.Rand) *CombatEngine {
	if rng == nil {
		rng = NewSpawnRand(0)
	}

	enemies := ecs.NewEntityStore[components.EnemyComponent]()
	projectiles := ecs.NewEntityStore[components.ProjectileComponent]()

	e := &CombatEngine{
		run:              run,
		progression:      progression,
		enemies:          enemies,
		projectiles:      projectiles,
		spawnSystem:      NewWaveSpawnSystem(enemies, run, rng),
		movementSystem:   NewEnemyMovementSystem(enemies, run),
		attackSystem:     NewTowerAttackSystem(enemies, projectiles, run),
		projectileSystem: NewProjectileSystem(enemies, projectiles),
	}
	e.spawnSystem.StartWave(e.clock)
	return e
}

// SetVerbose 设置是否输出逐个敌人的详细日志
func (e *CombatEngine) SetVerbose(verbose bool) {
	e.verbose = verbose
	e.spawnSystem.verbose = verbose
	e.movementSystem.verbose = verbose
}

// Tick 推进一帧模拟
//
// 参数：
//   - dt: 真实经过时间（秒），内部乘以游戏速度
//
// 返回：
//   - TickResult: 本帧结果
//   - error: 局不在进行中返回 ErrRunNotActive，dt 非法返回 ErrInvalidDelta，均不做任何模拟
func (e *CombatEngine) Tick(dt float64) (TickResult, error) {
	if e.run == nil || !e.run.IsActive() {
		return TickResult{}, ErrRunNotActive
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return TickResult{}, fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}

	scaled := dt * e.run.GameSpeed
	e.clock += scaled
	result := TickResult{ScaledDelta: scaled}

	// 1. 生成
	e.spawnSystem.Update(e.clock, &result)
	// 2. 移动
	e.movementSystem.Update(scaled)
	// 3. 到达塔：伤害塔并承受反伤
	e.movementSystem.ResolveArrivals(&result)
	// 4. 塔攻击
	e.attackSystem.Update(e.clock, &result)
	// 5. 子弹结算
	e.projectileSystem.Update(scaled, &result)
	// 6. 击杀奖励
	e.settleRewards(&result)
	// 7. 波次完成
	e.checkWaveCompletion(&result)
	// 8. 生命回复
	e.regenerate(scaled)

	e.enemies.RemoveMarkedEntities()
	e.projectiles.RemoveMarkedEntities()

	result.Wave = e.run.Wave
	result.TowerDestroyed = e.run.TowerHealth <= 0
	if result.TowerDestroyed && !e.destroyedReported {
		e.destroyedReported = true
		log.Printf("[CombatEngine] Tower destroyed at wave %d (run %s)", e.run.Wave, e.run.ID)
	}
	return result, nil
}

// settleRewards 为被击杀的敌人发放现金，到达后存活移除的敌人没有奖励
func (e *CombatEngine) settleRewards(result *TickResult) {
	for _, death := range result.Deaths {
		if !death.Cause.Rewarded() {
			continue
		}
		e.run.Cash += death.CashReward
		result.CashEarned += death.CashReward
	}
}

// checkWaveCompletion 本波全部生成且场上无敌人时完成本波并进入下一波
func (e *CombatEngine) checkWaveCompletion(result *TickResult) {
	if !e.spawnSystem.IsWaveCleared() {
		return
	}

	e.spawnSystem.CompleteWave()
	completed := e.run.Wave
	cash := e.run.CashPerWave()
	coins := WaveCoinReward(e.run.Tier)

	e.run.Cash += cash
	e.progression.AddCoins(coins)
	e.run.Wave++

	result.WaveCompleted = true
	result.CompletedWave = completed
	result.CashEarned += cash
	result.CoinsEarned += coins

	log.Printf("[CombatEngine] Wave %d complete: +%.0f cash, +%d coins (run %s)", completed, cash, coins, e.run.ID)
	e.spawnSystem.StartWave(e.clock)
}

// regenerate 生命回复，不超过最大生命值
// 生命值为 0 时不再回复
func (e *CombatEngine) regenerate(dt float64) {
	if e.run.TowerHealth <= 0 {
		e.run.TowerHealth = 0
		return
	}
	e.run.TowerHealth = math.Min(e.run.TowerMaxHealth, e.run.TowerHealth+e.run.HealthRegenPerSec*dt)
}

// Run 返回引擎推进的局状态
func (e *CombatEngine) Run() *game.RunState {
	return e.run
}

// Clock 返回本局经过的模拟时间（秒，已缩放）
func (e *CombatEngine) Clock() float64 {
	return e.clock
}

// WavePhase 返回当前波次阶段
func (e *CombatEngine) WavePhase() WavePhase {
	return e.spawnSystem.Phase()
}

// WaveProgress 返回本波已生成与计划生成的敌人数
func (e *CombatEngine) WaveProgress() (spawned, scheduled int) {
	return e.spawnSystem.Spawned(), e.spawnSystem.Scheduled()
}

// Enemies 返回敌人存储（只读使用）
func (e *CombatEngine) Enemies() *EnemyStore {
	return e.enemies
}

// Projectiles 返回子弹存储（只读使用）
func (e *CombatEngine) Projectiles() *ProjectileStore {
	return e.projectiles
}
