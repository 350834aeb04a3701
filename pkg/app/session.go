package app

import (
	"errors"
	"log"
	"math/rand"

	"github.com/decker502/idletower/pkg/config"
	"github.com/decker502/idletower/pkg/game"
	"github.com/decker502/idletower/pkg/systems"
	"github.com/quasilyte/gdata/v2"
)

// Session 游戏会话
//
// 职责：
//   - 持有唯一的永久进度存储和当前局
//   - 提供开局、购买、调速、调整难度、退出等同步命令
//   - 每帧把 Tick 转发给战斗引擎，塔被摧毁时结束本局
//   - 只在两次 Tick 之间（开局、退出、购买永久升级、关闭）读写存档
//
// 单线程使用，由宿主（ebiten App 或命令行模拟器）驱动。
type Session struct {
	cfg         *config.SessionConfig
	catalog     *config.UpgradeCatalog
	progression *game.ProgressionStore

	run    *game.RunState
	engine *systems.CombatEngine

	// rng 整个会话共用的出生角度随机数源
	rng *rand.Rand

	lastResult systems.TickResult
}

// NewSession 创建游戏会话并加载永久进度
//
// 参数：
//   - cfg: 会话配置
//   - catalog: 升级目录
//   - gdataManager: 存储管理器，可为 nil（进度只保存在内存中）
//
// 返回：
//   - *Session: 尚未开局的会话
func NewSession(cfg *config.SessionConfig, catalog *config.UpgradeCatalog, gdataManager *gdata.Manager) *Session {
	progression := game.NewProgressionStore(gdataManager)
	progression.ClampLevels(catalog)

	s := &Session{
		cfg:         cfg,
		catalog:     catalog,
		progression: progression,
		run:         game.NewRunState(catalog),
		rng:         systems.NewSpawnRand(cfg.Seed),
	}

	log.Printf("[Session] Session created (storage=%v, coins=%d, tier=%d)",
		progression.HasStorage(), progression.Coins, progression.CurrentTier)
	return s
}

// StartRun 按当前永久进度开始新的一局
//
// 返回：
//   - bool: 已有进行中的局时返回 false
func (s *Session) StartRun() bool {
	if s.run.IsActive() {
		return false
	}

	s.run = game.StartNewRun(s.progression, s.catalog)
	s.engine = systems.NewCombatEngine(s.run, s.progression, s.rng)
	s.engine.SetVerbose(s.cfg.Verbose)
	s.lastResult = systems.TickResult{Wave: s.run.Wave}
	return true
}

// BuyUpgrade 花费局内现金购买一级升级
//
// 参数：
//   - id: 目录 ID 或按钮名（如 "Damage"、"BuyDamage"，忽略大小写）
func (s *Session) BuyUpgrade(id string) bool {
	entry, ok := s.catalog.LookupByButtonName(id)
	if !ok || entry.Inert() {
		return false
	}
	return s.run.BuyUpgrade(entry.Kind)
}

// BuyPermanentUpgrade 花费金币购买一级永久升级
// 局进行中时拒绝，购买成功后按 AutoSave 保存
func (s *Session) BuyPermanentUpgrade(id string) bool {
	if s.run.IsActive() {
		return false
	}

	entry, ok := s.catalog.LookupByButtonName(id)
	if !ok {
		return false
	}
	if !s.progression.BuyUpgrade(s.catalog, entry.ID) {
		return false
	}

	s.persist()
	return true
}

// SetGameSpeed 设置游戏速度（0.5 ~ 5，步长 0.5）
func (s *Session) SetGameSpeed(multiplier float64) bool {
	return s.run.SetGameSpeed(multiplier)
}

// SpeedUp 游戏速度 +0.5
func (s *Session) SpeedUp() {
	s.run.SpeedUp()
}

// SpeedDown 游戏速度 -0.5
func (s *Session) SpeedDown() {
	s.run.SpeedDown()
}

// ChangeTier 调整难度等级
// 局进行中时拒绝；返回等级是否发生变化
func (s *Session) ChangeTier(delta int) bool {
	if s.run.IsActive() {
		return false
	}
	if !s.progression.ChangeTier(delta) {
		return false
	}

	log.Printf("[Session] Tier changed to %d", s.progression.CurrentTier)
	s.persist()
	return true
}

// ExitRun 结束当前局并保存进度
// 没有进行中的局时无效果
func (s *Session) ExitRun() {
	if !s.run.IsActive() {
		return
	}
	s.run.End(s.progression)
	s.persist()
}

// Tick 推进一帧
//
// 参数：
//   - dt: 真实经过时间（秒）
//
// 返回：
//   - systems.TickResult: 本帧结果
//   - error: 没有进行中的局返回 systems.ErrRunNotActive
func (s *Session) Tick(dt float64) (systems.TickResult, error) {
	if s.engine == nil {
		return systems.TickResult{}, systems.ErrRunNotActive
	}

	result, err := s.engine.Tick(dt)
	if err != nil {
		return result, err
	}
	s.lastResult = result

	if result.TowerDestroyed {
		log.Printf("[Session] Tower destroyed at wave %d", result.Wave)
		s.ExitRun()
	}
	return result, nil
}

// Close 关闭会话：结束进行中的局并保存进度
//
// 返回：
//   - error: 保存失败时返回错误（没有存储时不算错误）
func (s *Session) Close() error {
	if s.run.IsActive() {
		s.run.End(s.progression)
	}

	if err := s.progression.Save(); err != nil {
		if errors.Is(err, game.ErrNoStorage) {
			log.Printf("[Session] No storage, progression not saved")
			return nil
		}
		return err
	}
	return nil
}

// persist 按 AutoSave 配置保存进度，失败只记录日志
func (s *Session) persist() {
	if !s.cfg.AutoSave {
		return
	}
	if err := s.progression.Save(); err != nil {
		if !errors.Is(err, game.ErrNoStorage) {
			log.Printf("[Session] Warning: Failed to save progression: %v", err)
		}
	}
}

// Catalog 返回升级目录
func (s *Session) Catalog() *config.UpgradeCatalog {
	return s.catalog
}

// Progression 返回永久进度
func (s *Session) Progression() *game.ProgressionStore {
	return s.progression
}

// Run 返回当前局（未开局时为 RunNotStarted 状态）
func (s *Session) Run() *game.RunState {
	return s.run
}

// Engine 返回当前局的战斗引擎，从未开局时为 nil
func (s *Session) Engine() *systems.CombatEngine {
	return s.engine
}

// LastResult 返回最近一次成功 Tick 的结果
func (s *Session) LastResult() systems.TickResult {
	return s.lastResult
}

// Config 返回会话配置
func (s *Session) Config() *config.SessionConfig {
	return s.cfg
}
