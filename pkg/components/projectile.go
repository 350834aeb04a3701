package components

import "github.com/decker502/idletower/pkg/ecs"

// ProjectileComponent 子弹数据
//
// Target 是对敌人存储的弱引用：每帧通过 ID 重新查询，
// 目标已死亡或已移除时子弹直接丢弃，不产生效果。
type ProjectileComponent struct {
	Target   ecs.EntityID // 目标敌人
	Damage   float64      // 命中伤害
	Position Vec2         // 世界坐标
	Speed    float64      // 飞行速度（世界单位/秒）
}
