package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/quasilyte/gdata/v2"
)

// OpenStorage 打开 gdata 跨平台存储，并准备存档对象所在的目录
//
// gdata 在桌面平台上会创建应用目录，但在 Android 上只使用已存在的
// /data/data/{package}/，不会预先创建对象子目录。因此 Android 上
// 在打开后立即创建并验证对象目录，避免第一次保存时才发现不可写。
//
// 参数：
//   - appName: 存储使用的应用名
//   - object: 存档对象名（如进度存档），决定需要准备的子目录
//
// 返回：
//   - *gdata.Manager: 存储管理器
//   - error: 打开或目录准备失败时返回错误，调用方可降级为仅内存进度
func OpenStorage(appName, object string) (*gdata.Manager, error) {
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage %s: %w", appName, err)
	}

	dir := StorageDir(manager, object)
	if runtime.GOOS == "android" {
		if err := ensureWritableDir(dir); err != nil {
			return nil, fmt.Errorf("failed to prepare storage dir: %w", err)
		}
	}

	log.Printf("[Storage] %s saves %q under %s", appName, object, dir)
	return manager, nil
}

// StorageDir 返回存档对象的目录（用于调试和目录准备）
// Web 平台上返回的是存储键而不是文件系统路径
func StorageDir(manager *gdata.Manager, object string) string {
	return filepath.Dir(manager.ObjectPropPath(object, ""))
}

// ensureWritableDir 创建目录（如果不存在）并验证可写
func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create saves directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return fmt.Errorf("saves directory %s is not writable: %w", dir, err)
	}
	os.Remove(testFile)
	return nil
}
