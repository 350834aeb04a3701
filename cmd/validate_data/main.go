// validate_data 校验升级目录和会话配置文件
//
// 用法：
//
//	go run ./cmd/validate_data                                   # 校验内置数据
//	go run ./cmd/validate_data -catalog my_upgrades.yaml -session my_session.yaml
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/idletower/pkg/config"
)

var (
	catalogPath = flag.String("catalog", "", "升级目录文件，为空时校验内置目录")
	sessionPath = flag.String("session", "", "会话配置覆盖文件，为空时校验内置默认值")
)

func main() {
	flag.Parse()

	failed := false
	if !validateCatalog(*catalogPath) {
		failed = true
	}
	if !validateSession(*sessionPath) {
		failed = true
	}

	if failed {
		os.Exit(1)
	}
}

func validateCatalog(path string) bool {
	var (
		catalog *config.UpgradeCatalog
		err     error
	)
	if path == "" {
		path = config.DefaultUpgradeCatalogPath
		catalog, err = config.LoadUpgradeCatalog(path)
	} else {
		var data []byte
		data, err = os.ReadFile(path)
		if err == nil {
			catalog, err = config.ParseUpgradeCatalog(data)
		}
	}
	if err != nil {
		fmt.Printf("❌ 升级目录 %s 校验失败: %v\n", path, err)
		return false
	}

	fmt.Printf("✅ 升级目录 %s: %d 个条目\n", path, catalog.Len())
	for _, category := range []config.UpgradeCategory{
		config.CategoryAttack, config.CategoryDefense, config.CategoryUtility, config.CategoryCard,
	} {
		entries := catalog.ByCategory(category)
		inert := 0
		for _, entry := range entries {
			if entry.Inert() {
				inert++
			}
		}
		fmt.Printf("   %-8s %3d 个（%d 个无模拟效果）\n", category, len(entries), inert)
	}
	return true
}

func validateSession(path string) bool {
	cfg, err := config.LoadSessionConfig(path)
	name := path
	if name == "" {
		name = config.DefaultSessionConfigPath
	}
	if err != nil {
		fmt.Printf("❌ 会话配置 %s 校验失败: %v\n", name, err)
		return false
	}

	fmt.Printf("✅ 会话配置 %s: appName=%s tps=%d seed=%d autoSave=%v\n",
		name, cfg.AppName, cfg.TicksPerSecond, cfg.Seed, cfg.AutoSave)
	return true
}
