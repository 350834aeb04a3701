package ecs

// EntityID 是实体的唯一标识符
// 0 保留为无效 ID，因此零值可以表示"无目标"
type EntityID uint64

// InvalidEntity 无效实体 ID
const InvalidEntity EntityID = 0

// entitySlot 存储槽位：实体 ID、数据和存活标记（墓碑）
type entitySlot[T any] struct {
	id    EntityID
	value T
	alive bool
}

// EntityStore 以连续数组 + 索引的方式管理同一类实体
//
// 架构说明：
//   - 销毁实体时只打墓碑（alive=false），不立即移动数组元素，
//     遍历过程中销毁实体是安全的
//   - RemoveMarkedEntities 在一帧结束时统一压缩数组，保持插入顺序
//   - Get 返回的指针在下一次 CreateEntity 或 RemoveMarkedEntities 之前有效
type EntityStore[T any] struct {
	nextID uint64
	slots  []entitySlot[T]
	// 实体ID -> 槽位下标
	index map[EntityID]int
	// 已打墓碑、等待压缩的实体ID列表
	entitiesToDestroy []EntityID
	live              int
}

// NewEntityStore 创建一个新的 EntityStore 实例
func NewEntityStore[T any]() *EntityStore[T] {
	return &EntityStore[T]{
		nextID:            1, // ID从1开始,0保留为无效ID
		slots:             make([]entitySlot[T], 0),
		index:             make(map[EntityID]int),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 存入实体数据并返回唯一ID
func (s *EntityStore[T]) CreateEntity(value T) EntityID {
	id := EntityID(s.nextID)
	s.nextID++
	s.index[id] = len(s.slots)
	s.slots = append(s.slots, entitySlot[T]{id: id, value: value, alive: true})
	s.live++
	return id
}

// DestroyEntity 给实体打墓碑(不立即删除)
// 返回 false 表示实体不存在或已被销毁
func (s *EntityStore[T]) DestroyEntity(id EntityID) bool {
	i, ok := s.index[id]
	if !ok || !s.slots[i].alive {
		return false
	}
	s.slots[i].alive = false
	s.live--
	s.entitiesToDestroy = append(s.entitiesToDestroy, id)
	return true
}

// Get 获取存活实体的数据指针
func (s *EntityStore[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok || !s.slots[i].alive {
		return nil, false
	}
	return &s.slots[i].value, true
}

// IsAlive 检查实体是否存活
func (s *EntityStore[T]) IsAlive(id EntityID) bool {
	_, ok := s.Get(id)
	return ok
}

// Len 返回存活实体数量
func (s *EntityStore[T]) Len() int {
	return s.live
}

// Each 按插入顺序遍历存活实体
// 回调返回 false 时停止遍历。回调中允许调用 DestroyEntity，
// 但不应调用 CreateEntity（新实体本轮不会被遍历到）。
func (s *EntityStore[T]) Each(fn func(id EntityID, value *T) bool) {
	n := len(s.slots)
	for i := 0; i < n; i++ {
		slot := &s.slots[i]
		if !slot.alive {
			continue
		}
		if !fn(slot.id, &slot.value) {
			return
		}
	}
}

// IDs 返回所有存活实体ID（插入顺序）
func (s *EntityStore[T]) IDs() []EntityID {
	result := make([]EntityID, 0, s.live)
	s.Each(func(id EntityID, _ *T) bool {
		result = append(result, id)
		return true
	})
	return result
}

// RemoveMarkedEntities 清理所有打了墓碑的实体并压缩数组
func (s *EntityStore[T]) RemoveMarkedEntities() {
	if len(s.entitiesToDestroy) == 0 {
		return
	}
	for _, id := range s.entitiesToDestroy {
		delete(s.index, id)
	}
	s.entitiesToDestroy = s.entitiesToDestroy[:0] // 清空切片

	kept := s.slots[:0]
	for _, slot := range s.slots {
		if slot.alive {
			s.index[slot.id] = len(kept)
			kept = append(kept, slot)
		}
	}
	// 清除尾部残留引用
	var zero entitySlot[T]
	for i := len(kept); i < len(s.slots); i++ {
		s.slots[i] = zero
	}
	s.slots = kept
}

// Clear 移除所有实体（ID 计数器不重置，旧 ID 不会被复用）
func (s *EntityStore[T]) Clear() {
	s.slots = s.slots[:0]
	s.index = make(map[EntityID]int)
	s.entitiesToDestroy = s.entitiesToDestroy[:0]
	s.live = 0
}
