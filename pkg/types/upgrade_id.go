// Package types 定义共享的基础类型
package types

import "strings"

// UpgradeID 定义具有模拟效果的升级类型
//
// 升级目录中共有数十个条目，但只有以下九种接入了模拟逻辑，
// 其余条目统一视为 UpgradeNone（占位，无效果）。
type UpgradeID int

const (
	// UpgradeNone 无效果的占位升级，或未知 ID
	UpgradeNone UpgradeID = iota

	// 攻击
	UpgradeDamage         // 伤害
	UpgradeAttackSpeed    // 攻击速度
	UpgradeCriticalChance // 暴击率
	UpgradeRange          // 射程

	// 防御
	UpgradeHealth  // 生命值
	UpgradeRegen   // 生命回复
	UpgradeDefense // 防御率%

	// 功能
	UpgradeCashBonus   // 现金加成
	UpgradeCashPerWave // 每波现金
)

// UpgradeCount 具有模拟效果的升级数量（不含 UpgradeNone）
const UpgradeCount = int(UpgradeCashPerWave)

// upgradeNames 升级 ID 与目录键名的对应关系
var upgradeNames = [...]string{
	UpgradeNone:           "",
	UpgradeDamage:         "Damage",
	UpgradeAttackSpeed:    "AttackSpeed",
	UpgradeCriticalChance: "CriticalChance",
	UpgradeRange:          "Range",
	UpgradeHealth:         "Health",
	UpgradeRegen:          "Regen",
	UpgradeDefense:        "Defense",
	UpgradeCashBonus:      "CashBonus",
	UpgradeCashPerWave:    "CashPerWave",
}

// String 返回升级的目录键名，UpgradeNone 返回空字符串
func (id UpgradeID) String() string {
	if !id.Valid() && id != UpgradeNone {
		return ""
	}
	return upgradeNames[id]
}

// Valid 判断是否为九种有效升级之一
func (id UpgradeID) Valid() bool {
	return id > UpgradeNone && int(id) <= UpgradeCount
}

// Index 返回升级在等级数组中的下标（0 ~ UpgradeCount-1）
// 对 UpgradeNone 返回 -1
func (id UpgradeID) Index() int {
	if !id.Valid() {
		return -1
	}
	return int(id) - 1
}

// ParseUpgradeID 按目录键名解析升级 ID（忽略大小写）
//
// 参数：
//   - name: 目录键名，如 "Damage"、"cashperwave"
//
// 返回：
//   - UpgradeID: 解析结果，无法识别时为 UpgradeNone
//   - bool: 是否为九种有效升级之一
func ParseUpgradeID(name string) (UpgradeID, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return UpgradeNone, false
	}
	for _, id := range AllUpgradeIDs() {
		if strings.EqualFold(upgradeNames[id], name) {
			return id, true
		}
	}
	return UpgradeNone, false
}

// AllUpgradeIDs 按固定顺序返回九种有效升级
func AllUpgradeIDs() []UpgradeID {
	ids := make([]UpgradeID, 0, UpgradeCount)
	for id := UpgradeDamage; id <= UpgradeCashPerWave; id++ {
		ids = append(ids, id)
	}
	return ids
}

// UpgradeLevels 九种升级的等级计数器，以 UpgradeID.Index() 为下标
type UpgradeLevels [UpgradeCount]int

// Get 获取指定升级的等级，无效 ID 返回 0
func (l *UpgradeLevels) Get(id UpgradeID) int {
	if !id.Valid() {
		return 0
	}
	return l[id.Index()]
}

// Set 设置指定升级的等级，无效 ID 忽略
func (l *UpgradeLevels) Set(id UpgradeID, level int) {
	if !id.Valid() {
		return
	}
	l[id.Index()] = level
}
