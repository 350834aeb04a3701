package ecs

import "testing"

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

func TestCreateEntity(t *testing.T) {
	store := NewEntityStore[testPositionComponent]()
	id1 := store.CreateEntity(testPositionComponent{})
	id2 := store.CreateEntity(testPositionComponent{})

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}

	if store.Len() != 2 {
		t.Errorf("Expected 2 live entities, got %d", store.Len())
	}
}

func TestGetReturnsMutablePointer(t *testing.T) {
	store := NewEntityStore[testPositionComponent]()
	id := store.CreateEntity(testPositionComponent{X: 100, Y: 200})

	pos, found := store.Get(id)
	if !found {
		t.Fatal("Entity should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}

	pos.X = 5
	again, _ := store.Get(id)
	if again.X != 5 {
		t.Errorf("Mutation through pointer lost, got X=%f", again.X)
	}
}

func TestDestroyEntityTombstones(t *testing.T) {
	store := NewEntityStore[testPositionComponent]()
	id := store.CreateEntity(testPositionComponent{})

	if !store.DestroyEntity(id) {
		t.Fatal("First destroy should succeed")
	}

	// 墓碑后立即不可见
	if store.IsAlive(id) {
		t.Error("Destroyed entity should not be alive")
	}
	if store.Len() != 0 {
		t.Errorf("Expected 0 live entities, got %d", store.Len())
	}

	// 重复销毁返回 false
	if store.DestroyEntity(id) {
		t.Error("Second destroy should report false")
	}

	store.RemoveMarkedEntities()
	if _, ok := store.Get(id); ok {
		t.Error("Entity should be removed after cleanup")
	}
}

func TestDestroyDuringEach(t *testing.T) {
	store := NewEntityStore[testPositionComponent]()
	var ids []EntityID
	for i := 0; i < 5; i++ {
		ids = append(ids, store.CreateEntity(testPositionComponent{X: float64(i)}))
	}

	visited := 0
	store.Each(func(id EntityID, pos *testPositionComponent) bool {
		visited++
		if int(pos.X)%2 == 0 {
			store.DestroyEntity(id)
		}
		return true
	})

	if visited != 5 {
		t.Errorf("Expected to visit 5 entities, visited %d", visited)
	}
	if store.Len() != 2 {
		t.Errorf("Expected 2 survivors, got %d", store.Len())
	}

	store.RemoveMarkedEntities()

	// 压缩后保持插入顺序，且索引仍然正确
	got := store.IDs()
	want := []EntityID{ids[1], ids[3]}
	if len(got) != len(want) {
		t.Fatalf("Expected ids %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Position %d: expected %d, got %d", i, want[i], got[i])
		}
		pos, ok := store.Get(want[i])
		if !ok {
			t.Fatalf("Entity %d lost after compaction", want[i])
		}
		if int(pos.X) != i*2+1 {
			t.Errorf("Entity %d has wrong data after compaction: %f", want[i], pos.X)
		}
	}
}

func TestEachStopsEarly(t *testing.T) {
	store := NewEntityStore[testPositionComponent]()
	for i := 0; i < 3; i++ {
		store.CreateEntity(testPositionComponent{})
	}

	visited := 0
	store.Each(func(EntityID, *testPositionComponent) bool {
		visited++
		return false
	})

	if visited != 1 {
		t.Errorf("Expected traversal to stop after 1, visited %d", visited)
	}
}

func TestClearKeepsIDsUnique(t *testing.T) {
	store := NewEntityStore[testPositionComponent]()
	first := store.CreateEntity(testPositionComponent{})
	store.Clear()

	if store.Len() != 0 {
		t.Errorf("Expected empty store after Clear, got %d", store.Len())
	}

	next := store.CreateEntity(testPositionComponent{})
	if next == first {
		t.Error("IDs must not be reused after Clear")
	}
	if store.IsAlive(first) {
		t.Error("Cleared entity should not be alive")
	}
}
