package config

import (
	"strings"
	"testing"

	"github.com/decker502/idletower/pkg/types"
)

func loadDefaultCatalog(t *testing.T) *UpgradeCatalog {
	t.Helper()
	catalog, err := LoadUpgradeCatalog(DefaultUpgradeCatalogPath)
	if err != nil {
		t.Fatalf("LoadUpgradeCatalog failed: %v", err)
	}
	return catalog
}

func TestLoadDefaultUpgradeCatalog(t *testing.T) {
	catalog := loadDefaultCatalog(t)

	if catalog.Len() < 40 {
		t.Errorf("Expected around 40+ entries, got %d", catalog.Len())
	}

	// 显示顺序：攻击 -> 防御 -> 功能
	entries := catalog.Entries()
	if entries[0].ID != "Damage" {
		t.Errorf("First entry should be Damage, got %s", entries[0].ID)
	}
	lastCategory := CategoryAttack
	for _, entry := range entries {
		if entry.Category < lastCategory {
			t.Errorf("Entry %s breaks category order", entry.ID)
		}
		lastCategory = entry.Category
	}

	// 九种模拟升级都能找到，其余条目为占位
	simulated := 0
	for _, entry := range entries {
		if !entry.Inert() {
			simulated++
		}
	}
	if simulated != types.UpgradeCount {
		t.Errorf("Expected %d simulated entries, got %d", types.UpgradeCount, simulated)
	}
}

func TestUpgradeCatalogCosts(t *testing.T) {
	catalog := loadDefaultCatalog(t)

	tests := []struct {
		id    string
		level int
		want  int
	}{
		{"Damage", 0, 10},
		{"Damage", 3, 25},
		{"AttackSpeed", 2, 11},
		{"Range", 1, 12},
		{"Health", 4, 30},
		{"Regen", 0, 5},
		{"Defense", 2, 12},
		{"CashBonus", 5, 14},
		{"CashPerWave", 1, 7},
		{"CriticalChance", 2, 20}, // 默认曲线
		{"MultishotChance", 1, 15},
		{"NoSuchUpgrade", 2, 20},
		{"", 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := catalog.Cost(tt.id, tt.level); got != tt.want {
				t.Errorf("Cost(%q, %d) = %d, want %d", tt.id, tt.level, got, tt.want)
			}
		})
	}

	if got := catalog.CostFor(types.UpgradeDamage, 0); got != 10 {
		t.Errorf("CostFor(Damage, 0) = %d, want 10", got)
	}
	if got := catalog.CostFor(types.UpgradeNone, 1); got != 15 {
		t.Errorf("CostFor(None, 1) should use default curve, got %d", got)
	}
}

func TestUpgradeCatalogLookup(t *testing.T) {
	catalog := loadDefaultCatalog(t)

	entry, ok := catalog.Lookup("attackspeed")
	if !ok {
		t.Fatal("Lookup should ignore case")
	}
	if entry.Kind != types.UpgradeAttackSpeed || entry.MaxLevel != 99 {
		t.Errorf("Unexpected AttackSpeed entry: %+v", entry)
	}

	entry, ok = catalog.LookupByButtonName("BuyCashPerWave")
	if !ok || entry.ID != "CashPerWave" {
		t.Errorf("LookupByButtonName(BuyCashPerWave) = %+v, %v", entry, ok)
	}
	if entry.ButtonName() != "BuyCashPerWave" {
		t.Errorf("ButtonName round trip failed: %s", entry.ButtonName())
	}

	if _, ok := catalog.LookupByButtonName("Buy"); ok {
		t.Error("Bare prefix should not resolve")
	}

	placeholder, ok := catalog.Lookup("Lifesteal")
	if !ok || !placeholder.Inert() {
		t.Errorf("Lifesteal should be an inert placeholder: %+v", placeholder)
	}

	if got := catalog.MaxLevelFor(types.UpgradeHealth); got != 6000 {
		t.Errorf("Health max level = %d, want 6000", got)
	}
	if got := catalog.MaxLevelFor(types.UpgradeNone); got != 0 {
		t.Errorf("UpgradeNone max level = %d, want 0", got)
	}
}

func TestUpgradeCatalogByCategory(t *testing.T) {
	catalog := loadDefaultCatalog(t)

	total := 0
	for _, category := range []UpgradeCategory{CategoryAttack, CategoryDefense, CategoryUtility, CategoryCard} {
		entries := catalog.ByCategory(category)
		for _, entry := range entries {
			if entry.Category != category {
				t.Errorf("%s listed under %s", entry.ID, category)
			}
		}
		total += len(entries)
	}
	if total != catalog.Len() {
		t.Errorf("Categories cover %d entries, catalog has %d", total, catalog.Len())
	}
}

func TestParseUpgradeCatalogErrors(t *testing.T) {
	minimal := func(extra string) string {
		var b strings.Builder
		b.WriteString("upgrades:\n")
		for _, id := range types.AllUpgradeIDs() {
			b.WriteString("  - {id: " + id.String() + ", displayName: x, maxLevel: 5, category: attack}\n")
		}
		b.WriteString(extra)
		return b.String()
	}

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"空目录", "upgrades: []\n", "at least one upgrade"},
		{"重复ID", minimal("  - {id: damage, displayName: x, maxLevel: 5, category: attack}\n"), "duplicate"},
		{"未知分类", minimal("  - {id: Foo, displayName: x, maxLevel: 5, category: magic}\n"), "unknown upgrade category"},
		{"最大等级为0", minimal("  - {id: Foo, displayName: x, maxLevel: 0, category: card}\n"), "maxLevel"},
		{"负成本", minimal("  - {id: Foo, displayName: x, maxLevel: 1, category: card, costBase: -1}\n"), "costBase"},
		{"缺少模拟升级", "upgrades:\n  - {id: Damage, displayName: x, maxLevel: 5, category: attack}\n", "missing simulated upgrade"},
		{"语法错误", "upgrades: [\n", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUpgradeCatalog([]byte(tt.content))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	// 省略 defaultCost 时使用 10 + 5 x 等级
	catalog, err := ParseUpgradeCatalog([]byte(minimal("")))
	if err != nil {
		t.Fatalf("Minimal catalog should parse: %v", err)
	}
	if got := catalog.DefaultCost(); got.Base != 10 || got.PerLevel != 5 {
		t.Errorf("Default cost curve = %+v, want {10 5}", got)
	}
}
