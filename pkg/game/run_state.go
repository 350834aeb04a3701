package game

import (
	"fmt"
	"log"
	"math"
	"strconv"

	"github.com/decker502/idletower/pkg/config"
	"github.com/decker502/idletower/pkg/types"
	"github.com/google/uuid"
)

// RunPhase 一局游戏的生命周期阶段
type RunPhase int

const (
	RunNotStarted RunPhase = iota // 尚未开始
	RunActive                     // 进行中
	RunEnded                      // 已结束（终态，重新开始需新建 RunState）
)

// String 返回阶段名
func (p RunPhase) String() string {
	switch p {
	case RunNotStarted:
		return "not_started"
	case RunActive:
		return "active"
	case RunEnded:
		return "ended"
	}
	return "unknown"
}

// 开局基础属性
const (
	baseDamage         = 10.0
	damagePerPermLevel = 2.0
	baseMaxHealth      = 100.0
	healthPerPermLevel = 10.0
	baseRegen          = 1.0
	regenPerPermLevel  = 0.5
)

// 局内购买的属性增量
const (
	buyDamageDelta      = 15.0
	buyAttackSpeedRegen = 0.1 // 攻速升级增加的是生命回复，与原数值保持一致
	buyHealthDelta      = 20.0
	buyRegenDelta       = 0.15
)

// RunState 一局游戏的可变状态
//
// 开局时由永久进度生成快照：九种局内升级等级初始等于永久等级，
// 局内购买在此基础上累加，但不会写回 ProgressionStore。
// 由战斗引擎和购买命令修改，局结束后丢弃。
type RunState struct {
	ID    string
	Phase RunPhase

	Wave              int
	Cash              float64
	TowerHealth       float64
	TowerMaxHealth    float64
	Damage            float64
	HealthRegenPerSec float64
	GameSpeed         float64

	// Tier 开局时锁定的难度等级
	Tier int

	levels  types.UpgradeLevels
	catalog *config.UpgradeCatalog
}

// NewRunState 创建未开始的局状态
func NewRunState(catalog *config.UpgradeCatalog) *RunState {
	return &RunState{
		Phase:          RunNotStarted,
		Wave:           1,
		TowerHealth:    baseMaxHealth,
		TowerMaxHealth: baseMaxHealth,
		Damage:         baseDamage,
		GameSpeed:      1,
		Tier:           config.MinTier,
		catalog:        catalog,
	}
}

// StartNewRun 根据永久进度开始新的一局
//
// 参数：
//   - progression: 永久进度（只读）
//   - catalog: 升级目录，用于局内购买的价格与等级上限
//
// 返回：
//   - *RunState: 处于 RunActive 阶段的新局
func StartNewRun(progression *ProgressionStore, catalog *config.UpgradeCatalog) *RunState {
	rs := NewRunState(catalog)
	rs.ID = uuid.New().String()
	rs.Phase = RunActive
	rs.Tier = progression.CurrentTier
	rs.levels = progression.Levels()

	rs.Damage = baseDamage + damagePerPermLevel*float64(progression.Level(types.UpgradeDamage))
	rs.TowerMaxHealth = baseMaxHealth + healthPerPermLevel*float64(progression.Level(types.UpgradeHealth))
	rs.HealthRegenPerSec = baseRegen + regenPerPermLevel*float64(progression.Level(types.UpgradeRegen))
	rs.TowerHealth = rs.TowerMaxHealth

	log.Printf("[RunState] Run %s started (tier=%d, damage=%.0f, health=%.0f, regen=%.2f)",
		rs.ID, rs.Tier, rs.Damage, rs.TowerMaxHealth, rs.HealthRegenPerSec)
	return rs
}

// IsActive 是否进行中
func (rs *RunState) IsActive() bool {
	return rs.Phase == RunActive
}

// End 结束本局，并把到达的波次记入永久进度
// 对非进行中的局无效果
func (rs *RunState) End(progression *ProgressionStore) {
	if rs.Phase != RunActive {
		return
	}
	rs.Phase = RunEnded
	progression.RecordWave(rs.Wave)
	log.Printf("[RunState] Run %s ended at wave %d (highest %d)", rs.ID, rs.Wave, progression.HighestWave)
}

// Level 返回局内升级等级
func (rs *RunState) Level(id types.UpgradeID) int {
	return rs.levels.Get(id)
}

// LevelByName 按目录 ID 返回局内升级等级，未知或占位 ID 返回 0
func (rs *RunState) LevelByName(name string) int {
	id, _ := types.ParseUpgradeID(name)
	return rs.levels.Get(id)
}

// NextCost 返回局内升级下一级的价格
func (rs *RunState) NextCost(id types.UpgradeID) int {
	return rs.catalog.CostFor(id, rs.levels.Get(id))
}

// IsMaxed 局内升级是否已满级
func (rs *RunState) IsMaxed(id types.UpgradeID) bool {
	return rs.levels.Get(id) >= rs.catalog.MaxLevelFor(id)
}

// TowerRange 塔的射程（已乘世界缩放）
func (rs *RunState) TowerRange() float64 {
	return (config.BaseTowerRange + float64(rs.Level(types.UpgradeRange))*config.RangePerLevel) * config.WorldScale
}

// AttacksPerSecond 每秒攻击次数
func (rs *RunState) AttacksPerSecond() float64 {
	return config.BaseAttacksPerSecond * (1 + float64(rs.Level(types.UpgradeAttackSpeed))*config.AttackSpeedPerLevel)
}

// AttackInterval 攻击间隔（秒）
func (rs *RunState) AttackInterval() float64 {
	return 1 / max(config.MinAttacksPerSecond, rs.AttacksPerSecond())
}

// DefensePercent 防御率（0~1），每级 0.5%
func (rs *RunState) DefensePercent() float64 {
	return float64(rs.Level(types.UpgradeDefense)) * config.DefensePercentPerLevel
}

// AbsoluteDefense 绝对防御，尚无对应升级，恒为 0
func (rs *RunState) AbsoluteDefense() float64 {
	return 0
}

// CashBonusMultiplier 现金加成倍率（仅用于显示）
func (rs *RunState) CashBonusMultiplier() float64 {
	return 1 + float64(rs.Level(types.UpgradeCashBonus))*config.CashBonusPerLevel
}

// CashPerWave 每波完成时获得的现金
func (rs *RunState) CashPerWave() float64 {
	return 5 + 2*float64(rs.Level(types.UpgradeCashPerWave))
}

// SetGameSpeed 设置游戏速度倍率
//
// 合法值为 0.5 ~ 5 之间 0.5 的整数倍，其他值被拒绝且不修改状态。
func (rs *RunState) SetGameSpeed(multiplier float64) bool {
	if multiplier < config.MinGameSpeed || multiplier > config.MaxGameSpeed {
		return false
	}
	steps := multiplier / config.GameSpeedStep
	if math.Abs(steps-math.Round(steps)) > 1e-9 {
		return false
	}
	rs.GameSpeed = math.Round(steps) * config.GameSpeedStep
	return true
}

// SpeedUp 游戏速度 +0.5，上限 5
func (rs *RunState) SpeedUp() {
	rs.GameSpeed = min(config.MaxGameSpeed, rs.GameSpeed+config.GameSpeedStep)
}

// SpeedDown 游戏速度 -0.5，下限 0.5
func (rs *RunState) SpeedDown() {
	rs.GameSpeed = max(config.MinGameSpeed, rs.GameSpeed-config.GameSpeedStep)
}

// buyEffects 局内购买后应用的属性变化
// 未列出的升级只增加等级
var buyEffects = map[types.UpgradeID]func(rs *RunState){
	types.UpgradeDamage: func(rs *RunState) {
		rs.Damage += buyDamageDelta
	},
	types.UpgradeAttackSpeed: func(rs *RunState) {
		rs.HealthRegenPerSec += buyAttackSpeedRegen
	},
	types.UpgradeHealth: func(rs *RunState) {
		rs.TowerMaxHealth += buyHealthDelta
		rs.TowerHealth += buyHealthDelta
	},
	types.UpgradeRegen: func(rs *RunState) {
		rs.HealthRegenPerSec += buyRegenDelta
	},
	types.UpgradeDefense:     nil,
	types.UpgradeCashBonus:   nil,
	types.UpgradeCashPerWave: nil,
}

// CanBuy 升级是否可以在局内购买
// 暴击率和射程没有局内购买入口
func CanBuy(id types.UpgradeID) bool {
	_, ok := buyEffects[id]
	return ok
}

// BuyUpgrade 花费现金购买一级局内升级
//
// 价格按当前局内等级计算。以下情况不做任何修改并返回 false：
// 局不在进行中或塔已被摧毁、升级不可局内购买、已满级、现金不足。
//
// 参数：
//   - id: 升级 ID
//
// 返回：
//   - bool: 是否购买成功
func (rs *RunState) BuyUpgrade(id types.UpgradeID) bool {
	effect, ok := buyEffects[id]
	if !ok || rs.Phase != RunActive || rs.IsMaxed(id) {
		return false
	}
	// 生命归零的塔不能再通过购买复活
	if rs.TowerHealth <= 0 {
		return false
	}

	cost := float64(rs.NextCost(id))
	if rs.Cash < cost {
		return false
	}

	rs.Cash -= cost
	rs.levels.Set(id, rs.levels.Get(id)+1)
	if effect != nil {
		effect(rs)
	}
	return true
}

// BuyDamage 购买伤害：+15 伤害
func (rs *RunState) BuyDamage() bool { return rs.BuyUpgrade(types.UpgradeDamage) }

// BuyAttackSpeed 购买攻速：等级 +1，生命回复 +0.1
func (rs *RunState) BuyAttackSpeed() bool { return rs.BuyUpgrade(types.UpgradeAttackSpeed) }

// BuyHealth 购买生命：最大生命与当前生命各 +20
func (rs *RunState) BuyHealth() bool { return rs.BuyUpgrade(types.UpgradeHealth) }

// BuyHealthRegen 购买生命回复：+0.15/秒
func (rs *RunState) BuyHealthRegen() bool { return rs.BuyUpgrade(types.UpgradeRegen) }

// BuyDefensePercent 购买防御率
func (rs *RunState) BuyDefensePercent() bool { return rs.BuyUpgrade(types.UpgradeDefense) }

// BuyCashBonus 购买现金加成
func (rs *RunState) BuyCashBonus() bool { return rs.BuyUpgrade(types.UpgradeCashBonus) }

// BuyCashPerWave 购买每波现金
func (rs *RunState) BuyCashPerWave() bool { return rs.BuyUpgrade(types.UpgradeCashPerWave) }

// ValueString 返回局内升级当前数值的显示文本
// 占位升级显示 "Lv N"
func (rs *RunState) ValueString(entry config.UpgradeEntry) string {
	switch entry.Kind {
	case types.UpgradeDamage:
		return fmt.Sprintf("%.0f", rs.Damage)
	case types.UpgradeAttackSpeed:
		return fmt.Sprintf("%.2f", rs.AttacksPerSecond())
	case types.UpgradeCriticalChance:
		return fmt.Sprintf("%.1f%%", float64(rs.Level(types.UpgradeCriticalChance))*config.CriticalChancePerLevel)
	case types.UpgradeRange:
		return fmt.Sprintf("%.1f", rs.TowerRange())
	case types.UpgradeHealth:
		return fmt.Sprintf("%.0f", rs.TowerMaxHealth)
	case types.UpgradeRegen:
		return fmt.Sprintf("%.2f/s", rs.HealthRegenPerSec)
	case types.UpgradeDefense:
		return fmt.Sprintf("%.1f%%", rs.DefensePercent()*100)
	case types.UpgradeCashBonus:
		return fmt.Sprintf("x%.2f", rs.CashBonusMultiplier())
	case types.UpgradeCashPerWave:
		return "+" + strconv.Itoa(5+2*rs.Level(types.UpgradeCashPerWave))
	}
	return "Lv " + strconv.Itoa(rs.Level(entry.Kind))
}
