package app

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// mockScene is a mock implementation of the Scene interface for testing.
type mockScene struct {
	updateCalls int
	drawCalled  bool
	deltaTime   float64
}

func (m *mockScene) Update(deltaTime float64) {
	m.updateCalls++
	m.deltaTime = deltaTime
}

func (m *mockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.CurrentScene() != nil {
		t.Error("Expected no active scene initially")
	}

	// 没有场景时不应 panic
	sm.Update(testTickDelta)
	sm.Draw(nil)
}

func TestSceneManagerUpdateAndDraw(t *testing.T) {
	sm := NewSceneManager()
	scene := &mockScene{}
	sm.SwitchTo(scene)

	sm.Update(testTickDelta)
	if scene.updateCalls != 1 {
		t.Errorf("Update calls: got %d, want 1", scene.updateCalls)
	}
	if scene.deltaTime != testTickDelta {
		t.Errorf("Expected deltaTime %v, got %v", testTickDelta, scene.deltaTime)
	}

	sm.Draw(nil)
	if !scene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

func TestSceneManagerSwitchBetweenScenes(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &mockScene{}
	scene2 := &mockScene{}

	sm.SwitchTo(scene1)
	sm.Update(testTickDelta)

	sm.SwitchTo(scene2)
	sm.Update(testTickDelta)

	if scene1.updateCalls != 1 {
		t.Errorf("Scene1 updates: got %d, want 1", scene1.updateCalls)
	}
	if scene2.updateCalls != 1 {
		t.Errorf("Scene2 updates: got %d, want 1", scene2.updateCalls)
	}
	if sm.CurrentScene() != Scene(scene2) {
		t.Error("CurrentScene should be scene2")
	}
}
