package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/idletower/pkg/config"
	"github.com/decker502/idletower/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ErrNoStorage 存储管理器不可用（降级模式）
var ErrNoStorage = errors.New("progression storage is not available")

// 存储路径常量
const (
	// ProgressionObject 进度存档所在的 gdata 对象，打开存储时按它准备目录
	ProgressionObject   = "progression"
	progressionProperty = "meta"
)

// ProgressionData 持久化的进度数据
//
// 所有字段读取时均可缺省：缺省字段保留默认值（0，CurrentTier 为 1）
type ProgressionData struct {
	Coins       int64 `yaml:"coins"`
	Gems        int32 `yaml:"gems"`
	PowerStones int32 `yaml:"powerStones"`
	CurrentTier int   `yaml:"currentTier"`
	HighestWave int   `yaml:"highestWave"`

	// 永久升级等级
	DamageLevel         int `yaml:"damageLevel"`
	AttackSpeedLevel    int `yaml:"attackSpeedLevel"`
	CriticalChanceLevel int `yaml:"criticalChanceLevel"`
	RangeLevel          int `yaml:"rangeLevel"`
	HealthLevel         int `yaml:"healthLevel"`
	RegenLevel          int `yaml:"regenLevel"`
	DefenseLevel        int `yaml:"defenseLevel"`
	CashBonusLevel      int `yaml:"cashBonusLevel"`
	CashPerWaveLevel    int `yaml:"cashPerWaveLevel"`
}

// DefaultProgressionData 返回默认进度（新存档）
func DefaultProgressionData() ProgressionData {
	return ProgressionData{CurrentTier: config.MinTier}
}

// levelFields 返回九个等级字段的指针，顺序与 types.AllUpgradeIDs() 一致
func (d *ProgressionData) levelFields() [types.UpgradeCount]*int {
	return [types.UpgradeCount]*int{
		&d.DamageLevel,
		&d.AttackSpeedLevel,
		&d.CriticalChanceLevel,
		&d.RangeLevel,
		&d.HealthLevel,
		&d.RegenLevel,
		&d.DefenseLevel,
		&d.CashBonusLevel,
		&d.CashPerWaveLevel,
	}
}

// ProgressionStore 永久进度存储
//
// 职责：
//   - 保存货币、难度等级、最高波次和九种永久升级等级
//   - 处理永久升级的购买事务
//   - 通过 gdata 跨平台存储持久化（YAML 格式）
//
// gdataManager 为 nil 时进入降级模式：进度只保存在内存中。
type ProgressionStore struct {
	gdataManager *gdata.Manager

	Coins       int64
	Gems        int32
	PowerStones int32
	CurrentTier int
	HighestWave int

	levels types.UpgradeLevels
}

// NewProgressionStore 创建进度存储并尝试加载已保存的进度
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存进度）
//
// 返回：
//   - *ProgressionStore: 进度存储实例，加载失败时使用默认进度
func NewProgressionStore(gdataManager *gdata.Manager) *ProgressionStore {
	ps := &ProgressionStore{gdataManager: gdataManager}
	ps.apply(DefaultProgressionData())

	if err := ps.Load(); err != nil {
		// 加载失败不是致命错误，使用默认进度
		log.Printf("[ProgressionStore] Warning: Failed to load progression: %v (using defaults)", err)
	}
	return ps
}

// Load 从 gdata 加载进度
//
// 存档中缺省的字段取默认值，因此重复调用结果一致。
// gdataManager 为 nil 或存档不存在时不修改内存中的进度。
//
// 返回：
//   - error: 读取或反序列化失败时返回错误（此时内存中的进度保持不变）
func (ps *ProgressionStore) Load() error {
	if ps.gdataManager == nil {
		return nil
	}
	if !ps.gdataManager.ObjectPropExists(ProgressionObject, progressionProperty) {
		return nil
	}

	raw, err := ps.gdataManager.LoadObjectProp(ProgressionObject, progressionProperty)
	if err != nil {
		return fmt.Errorf("failed to load progression: %w", err)
	}

	data := DefaultProgressionData()
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to unmarshal progression: %w", err)
	}

	ps.apply(data)
	log.Printf("[ProgressionStore] Progression loaded (coins=%d, tier=%d, highestWave=%d)",
		data.Coins, data.CurrentTier, data.HighestWave)
	return nil
}

// Save 保存进度到 gdata
//
// 先生成完整快照再一次性写入，读取方不会看到部分字段更新。
//
// 返回：
//   - error: gdataManager 为 nil 时返回 ErrNoStorage，序列化或写入失败时返回错误
func (ps *ProgressionStore) Save() error {
	if ps.gdataManager == nil {
		return ErrNoStorage
	}

	data, err := yaml.Marshal(ps.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal progression: %w", err)
	}

	if err := ps.gdataManager.SaveObjectProp(ProgressionObject, progressionProperty, data); err != nil {
		return fmt.Errorf("failed to save progression: %w", err)
	}

	log.Printf("[ProgressionStore] Progression saved")
	return nil
}

// Reset 恢复默认进度（仅内存，需调用 Save 持久化）
func (ps *ProgressionStore) Reset() {
	ps.apply(DefaultProgressionData())
}

// HasStorage 是否可以持久化
func (ps *ProgressionStore) HasStorage() bool {
	return ps.gdataManager != nil
}

// Snapshot 返回当前进度的持久化快照
func (ps *ProgressionStore) Snapshot() ProgressionData {
	data := ProgressionData{
		Coins:       ps.Coins,
		Gems:        ps.Gems,
		PowerStones: ps.PowerStones,
		CurrentTier: ps.CurrentTier,
		HighestWave: ps.HighestWave,
	}
	fields := data.levelFields()
	for i := range fields {
		*fields[i] = ps.levels[i]
	}
	return data
}

// apply 用快照覆盖内存进度，并修正非法值
func (ps *ProgressionStore) apply(data ProgressionData) {
	ps.Coins = max(data.Coins, 0)
	ps.Gems = max(data.Gems, 0)
	ps.PowerStones = max(data.PowerStones, 0)
	ps.CurrentTier = clampTier(data.CurrentTier)
	ps.HighestWave = max(data.HighestWave, 0)

	fields := data.levelFields()
	for i := range fields {
		ps.levels[i] = max(*fields[i], 0)
	}
}

// Level 返回永久升级等级，无效 ID 返回 0
func (ps *ProgressionStore) Level(id types.UpgradeID) int {
	return ps.levels.Get(id)
}

// Levels 返回九种永久升级等级的副本
func (ps *ProgressionStore) Levels() types.UpgradeLevels {
	return ps.levels
}

// LevelByName 按目录 ID 返回永久升级等级（忽略大小写）
// 未知或无效果的 ID 返回 0
func (ps *ProgressionStore) LevelByName(name string) int {
	id, _ := types.ParseUpgradeID(name)
	return ps.levels.Get(id)
}

// TryBuyLevel 尝试购买一级永久升级
//
// 以下情况失败且不做任何修改：等级已满、价格 <= 0、金币不足、ID 无效。
// 成功时扣除金币，等级恰好加 1。
//
// 参数：
//   - id: 升级 ID
//   - cost: 当前等级的购买价格
//   - maxLevel: 最大等级
//
// 返回：
//   - bool: 是否购买成功
func (ps *ProgressionStore) TryBuyLevel(id types.UpgradeID, cost int64, maxLevel int) bool {
	if !id.Valid() {
		return false
	}
	level := ps.levels.Get(id)
	if level >= maxLevel || cost <= 0 || ps.Coins < cost {
		return false
	}

	ps.Coins -= cost
	ps.levels.Set(id, level+1)
	return true
}

// BuyUpgrade 按目录 ID 购买一级永久升级
//
// 价格与最大等级由升级目录按当前永久等级计算；
// 占位条目和未知 ID 返回 false。
func (ps *ProgressionStore) BuyUpgrade(catalog *config.UpgradeCatalog, name string) bool {
	entry, ok := catalog.Lookup(name)
	if !ok || entry.Inert() {
		return false
	}

	cost := int64(entry.Cost.At(ps.levels.Get(entry.Kind)))
	if !ps.TryBuyLevel(entry.Kind, cost, entry.MaxLevel) {
		return false
	}

	log.Printf("[ProgressionStore] Bought permanent %s -> level %d (cost %d, coins left %d)",
		entry.ID, ps.levels.Get(entry.Kind), cost, ps.Coins)
	return true
}

// ClampLevels 将永久等级限制在目录的最大等级内
// 存档来自旧版本目录时可能超出上限
func (ps *ProgressionStore) ClampLevels(catalog *config.UpgradeCatalog) {
	for _, id := range types.AllUpgradeIDs() {
		if maxLevel := catalog.MaxLevelFor(id); ps.levels.Get(id) > maxLevel {
			log.Printf("[ProgressionStore] Warning: %s level %d exceeds max %d, clamped", id, ps.levels.Get(id), maxLevel)
			ps.levels.Set(id, maxLevel)
		}
	}
}

// AddCoins 增加金币（负数忽略）
func (ps *ProgressionStore) AddCoins(amount int64) {
	if amount <= 0 {
		return
	}
	ps.Coins += amount
}

// RecordWave 记录到达的波次：HighestWave = max(HighestWave, wave)
func (ps *ProgressionStore) RecordWave(wave int) {
	if wave > ps.HighestWave {
		ps.HighestWave = wave
	}
}

// ChangeTier 调整难度等级，结果限制在 [1, 21]
//
// 返回：
//   - bool: 等级是否发生变化
func (ps *ProgressionStore) ChangeTier(delta int) bool {
	next := clampTier(ps.CurrentTier + delta)
	if next == ps.CurrentTier {
		return false
	}
	ps.CurrentTier = next
	return true
}

// clampTier 将难度等级限制在 [MinTier, MaxTier]
func clampTier(tier int) int {
	if tier < config.MinTier {
		return config.MinTier
	}
	if tier > config.MaxTier {
		return config.MaxTier
	}
	return tier
}
