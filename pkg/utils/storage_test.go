package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEnsureWritableDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "progression")

	if err := ensureWritableDir(dir); err != nil {
		t.Fatalf("ensureWritableDir() error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("Directory %s should exist: %v", dir, err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".write_test")); !os.IsNotExist(err) {
		t.Error("Write test file should be removed")
	}

	// 已存在的目录再次准备不报错
	if err := ensureWritableDir(dir); err != nil {
		t.Errorf("ensureWritableDir() on existing dir: %v", err)
	}
}

func TestEnsureWritableDirRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := ensureWritableDir(file); err == nil {
		t.Error("ensureWritableDir() should fail when the path is a file")
	}
}

func TestOpenStorageUsesObjectDir(t *testing.T) {
	appName := fmt.Sprintf("idletower_storage_test_%d", time.Now().UnixNano())
	manager, err := OpenStorage(appName, "progression")
	if err != nil {
		t.Skipf("gdata storage not available: %v", err)
	}
	t.Cleanup(func() {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			os.RemoveAll(filepath.Join(homeDir, ".local", "share", appName))
		}
	})

	dir := StorageDir(manager, "progression")
	if filepath.Base(dir) != "progression" {
		t.Errorf("StorageDir: got %s, want a progression directory", dir)
	}
	if filepath.Base(filepath.Dir(dir)) != appName {
		t.Errorf("StorageDir %s should live under the app directory %s", dir, appName)
	}

	if err := manager.SaveObjectProp("progression", "meta", []byte("coins: 1\n")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "meta")); err != nil {
		t.Errorf("Saved property should be inside StorageDir: %v", err)
	}
}
