package config

import (
	"fmt"
	"strings"

	"github.com/decker502/idletower/pkg/embedded"
	"github.com/decker502/idletower/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultUpgradeCatalogPath 内置升级目录路径
const DefaultUpgradeCatalogPath = "data/upgrades.yaml"

// buttonNamePrefix 按钮名前缀，如 "BuyDamage"
const buttonNamePrefix = "Buy"

// UpgradeCategory 升级分类（工坊标签页）
type UpgradeCategory int

const (
	CategoryAttack UpgradeCategory = iota
	CategoryDefense
	CategoryUtility
	CategoryCard
)

var categoryNames = map[string]UpgradeCategory{
	"attack":  CategoryAttack,
	"defense": CategoryDefense,
	"utility": CategoryUtility,
	"card":    CategoryCard,
}

// String 返回分类名
func (c UpgradeCategory) String() string {
	switch c {
	case CategoryAttack:
		return "attack"
	case CategoryDefense:
		return "defense"
	case CategoryUtility:
		return "utility"
	case CategoryCard:
		return "card"
	}
	return "unknown"
}

// ParseUpgradeCategory 从分类名解析（忽略大小写）
func ParseUpgradeCategory(name string) (UpgradeCategory, error) {
	category, ok := categoryNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return CategoryAttack, fmt.Errorf("unknown upgrade category %q", name)
	}
	return category, nil
}

// CostCurve 线性成本曲线：cost(level) = Base + level × PerLevel
type CostCurve struct {
	Base     int `yaml:"base"`
	PerLevel int `yaml:"perLevel"`
}

// At 计算指定等级的购买成本
func (c CostCurve) At(level int) int {
	return c.Base + level*c.PerLevel
}

// UpgradeEntry 单个升级条目（不可变）
type UpgradeEntry struct {
	ID          string
	DisplayName string
	MaxLevel    int
	Category    UpgradeCategory
	Cost        CostCurve
	// Kind 对应的模拟效果，占位条目为 types.UpgradeNone
	Kind types.UpgradeID
}

// ButtonName 返回条目对应的购买按钮名
func (e UpgradeEntry) ButtonName() string {
	return buttonNamePrefix + e.ID
}

// Inert 条目是否为无模拟效果的占位
func (e UpgradeEntry) Inert() bool {
	return e.Kind == types.UpgradeNone
}

// upgradeEntryYAML 条目的文件格式
type upgradeEntryYAML struct {
	ID           string `yaml:"id"`
	DisplayName  string `yaml:"displayName"`
	MaxLevel     int    `yaml:"maxLevel"`
	Category     string `yaml:"category"`
	CostBase     *int   `yaml:"costBase"`
	CostPerLevel *int   `yaml:"costPerLevel"`
}

// upgradeCatalogYAML 目录文件结构
type upgradeCatalogYAML struct {
	DefaultCost CostCurve          `yaml:"defaultCost"`
	Upgrades    []upgradeEntryYAML `yaml:"upgrades"`
}

// UpgradeCatalog 升级目录
//
// 职责：
//   - 按显示顺序保存全部升级条目
//   - 提供忽略大小写的 ID 查询
//   - 计算成本曲线（局内现金与永久金币共用）
//
// 构建后只读，可在多处共享。
type UpgradeCatalog struct {
	entries     []UpgradeEntry
	byID        map[string]int // 小写 ID -> entries 下标
	byKind      [types.UpgradeCount]int
	defaultCost CostCurve
}

// LoadUpgradeCatalog 从嵌入数据加载升级目录
//
// 参数：
//
//	path - 数据路径（如 DefaultUpgradeCatalogPath）
//
// 返回：
//
//	*UpgradeCatalog - 校验后的目录
//	error - 文件读取、解析或校验失败时返回错误
func LoadUpgradeCatalog(path string) (*UpgradeCatalog, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upgrade catalog %s: %w", path, err)
	}

	catalog, err := ParseUpgradeCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("invalid upgrade catalog %s: %w", path, err)
	}
	return catalog, nil
}

// ParseUpgradeCatalog 从 YAML 内容构建升级目录
func ParseUpgradeCatalog(data []byte) (*UpgradeCatalog, error) {
	raw := upgradeCatalogYAML{
		DefaultCost: CostCurve{Base: 10, PerLevel: 5},
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse upgrade catalog YAML: %w", err)
	}

	if err := validateUpgradeCatalog(&raw); err != nil {
		return nil, err
	}

	catalog := &UpgradeCatalog{
		entries:     make([]UpgradeEntry, 0, len(raw.Upgrades)),
		byID:        make(map[string]int, len(raw.Upgrades)),
		defaultCost: raw.DefaultCost,
	}
	for i := range catalog.byKind {
		catalog.byKind[i] = -1
	}

	for _, item := range raw.Upgrades {
		cost := raw.DefaultCost
		if item.CostBase != nil {
			cost.Base = *item.CostBase
		}
		if item.CostPerLevel != nil {
			cost.PerLevel = *item.CostPerLevel
		}

		// 分类已在校验阶段检查过
		category, _ := ParseUpgradeCategory(item.Category)
		kind, _ := types.ParseUpgradeID(item.ID)
		entry := UpgradeEntry{
			ID:          item.ID,
			DisplayName: item.DisplayName,
			MaxLevel:    item.MaxLevel,
			Category:    category,
			Cost:        cost,
			Kind:        kind,
		}

		index := len(catalog.entries)
		catalog.entries = append(catalog.entries, entry)
		catalog.byID[strings.ToLower(item.ID)] = index
		if kind.Valid() {
			catalog.byKind[kind.Index()] = index
		}
	}

	for _, kind := range types.AllUpgradeIDs() {
		if catalog.byKind[kind.Index()] < 0 {
			return nil, fmt.Errorf("catalog is missing simulated upgrade %s", kind)
		}
	}

	return catalog, nil
}

// validateUpgradeCatalog 验证目录的完整性和合法性
func validateUpgradeCatalog(raw *upgradeCatalogYAML) error {
	if len(raw.Upgrades) == 0 {
		return fmt.Errorf("at least one upgrade is required")
	}
	if raw.DefaultCost.Base < 0 || raw.DefaultCost.PerLevel < 0 {
		return fmt.Errorf("defaultCost cannot be negative, got %+v", raw.DefaultCost)
	}

	seen := make(map[string]bool, len(raw.Upgrades))
	for _, item := range raw.Upgrades {
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("upgrade id cannot be empty")
		}

		key := strings.ToLower(item.ID)
		if seen[key] {
			return fmt.Errorf("duplicate upgrade id %s", item.ID)
		}
		seen[key] = true

		if _, err := ParseUpgradeCategory(item.Category); err != nil {
			return fmt.Errorf("upgrade %s: %w", item.ID, err)
		}

		if item.MaxLevel < 1 {
			return fmt.Errorf("upgrade %s: maxLevel must be at least 1, got %d", item.ID, item.MaxLevel)
		}

		if item.CostBase != nil && *item.CostBase < 0 {
			return fmt.Errorf("upgrade %s: costBase cannot be negative, got %d", item.ID, *item.CostBase)
		}

		if item.CostPerLevel != nil && *item.CostPerLevel < 0 {
			return fmt.Errorf("upgrade %s: costPerLevel cannot be negative, got %d", item.ID, *item.CostPerLevel)
		}
	}

	return nil
}

// Entries 按显示顺序返回全部条目（副本）
func (c *UpgradeCatalog) Entries() []UpgradeEntry {
	entries := make([]UpgradeEntry, len(c.entries))
	copy(entries, c.entries)
	return entries
}

// Len 返回条目数量
func (c *UpgradeCatalog) Len() int {
	return len(c.entries)
}

// Lookup 按 ID 查询条目（忽略大小写）
func (c *UpgradeCatalog) Lookup(id string) (UpgradeEntry, bool) {
	index, ok := c.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return UpgradeEntry{}, false
	}
	return c.entries[index], true
}

// LookupByButtonName 按按钮名（如 "BuyDamage"）查询条目
// 不带 "Buy" 前缀的名称按 ID 查询
func (c *UpgradeCatalog) LookupByButtonName(buttonName string) (UpgradeEntry, bool) {
	id := buttonName
	if len(buttonName) >= len(buttonNamePrefix) && strings.EqualFold(buttonName[:len(buttonNamePrefix)], buttonNamePrefix) {
		id = buttonName[len(buttonNamePrefix):]
	}
	if id == "" {
		return UpgradeEntry{}, false
	}
	return c.Lookup(id)
}

// EntryFor 返回模拟升级对应的条目
func (c *UpgradeCatalog) EntryFor(kind types.UpgradeID) (UpgradeEntry, bool) {
	if !kind.Valid() {
		return UpgradeEntry{}, false
	}
	return c.entries[c.byKind[kind.Index()]], true
}

// ByCategory 按显示顺序返回某分类下的条目
func (c *UpgradeCatalog) ByCategory(category UpgradeCategory) []UpgradeEntry {
	result := make([]UpgradeEntry, 0)
	for _, entry := range c.entries {
		if entry.Category == category {
			result = append(result, entry)
		}
	}
	return result
}

// Cost 计算某升级在指定等级的购买成本
// 未知 ID 使用默认成本曲线，不报错
func (c *UpgradeCatalog) Cost(id string, level int) int {
	if entry, ok := c.Lookup(id); ok {
		return entry.Cost.At(level)
	}
	return c.defaultCost.At(level)
}

// CostFor 计算模拟升级在指定等级的购买成本
func (c *UpgradeCatalog) CostFor(kind types.UpgradeID, level int) int {
	if entry, ok := c.EntryFor(kind); ok {
		return entry.Cost.At(level)
	}
	return c.defaultCost.At(level)
}

// MaxLevelFor 返回模拟升级的最大等级，无效 ID 返回 0
func (c *UpgradeCatalog) MaxLevelFor(kind types.UpgradeID) int {
	if entry, ok := c.EntryFor(kind); ok {
		return entry.MaxLevel
	}
	return 0
}

// DefaultCost 返回默认成本曲线
func (c *UpgradeCatalog) DefaultCost() CostCurve {
	return c.defaultCost
}
