package embedded

import (
	"testing"
	"testing/fstest"
)

func TestReadFileDefaultData(t *testing.T) {
	for _, path := range []string{"data/upgrades.yaml", "./data/session.yaml"} {
		data, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%q) failed: %v", path, err)
		}
		if len(data) == 0 {
			t.Errorf("ReadFile(%q) returned empty content", path)
		}
	}
}

func TestReadFileRejectsUnknownPrefix(t *testing.T) {
	if _, err := ReadFile("assets/tower.png"); err == nil {
		t.Error("Expected error for path outside data/")
	}
	if Exists("upgrades.yaml") {
		t.Error("Paths without data/ prefix should not exist")
	}
}

func TestGlob(t *testing.T) {
	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) < 2 {
		t.Errorf("Expected at least 2 yaml files, got %v", matches)
	}
}

func TestOverride(t *testing.T) {
	t.Cleanup(func() { Override(nil) })

	Override(fstest.MapFS{
		"data/custom.yaml": &fstest.MapFile{Data: []byte("k: v\n")},
	})

	if !Exists("data/custom.yaml") {
		t.Error("Overridden file should exist")
	}
	if Exists("data/upgrades.yaml") {
		t.Error("Default data should be hidden by override")
	}

	Override(nil)
	if !Exists("data/upgrades.yaml") {
		t.Error("Default data should be restored")
	}
}
