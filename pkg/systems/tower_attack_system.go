package systems

import (
	"github.com/decker502/idletower/pkg/components"
	"github.com/decker502/idletower/pkg/config"
	"github.com/decker502/idletower/pkg/ecs"
	"github.com/decker502/idletower/pkg/game"
)

// TowerAttackSystem 塔攻击系统
//
// 每隔 AttackInterval 秒（模拟时间）发射一次：
// 目标为射程内找到的第一个存活敌人（按生成顺序），没有目标时本次攻击作废。
type TowerAttackSystem struct {
	enemies     *EnemyStore
	projectiles *ProjectileStore
	run         *game.RunState

	nextAttackTime float64
}

// NewTowerAttackSystem 创建塔攻击系统
func NewTowerAttackSystem(enemies *EnemyStore, projectiles *ProjectileStore, run *game.RunState) *TowerAttackSystem {
	return &TowerAttackSystem{
		enemies:     enemies,
		projectiles: projectiles,
		run:         run,
	}
}

// Update 攻击冷却结束时向目标发射一颗子弹
func (s *TowerAttackSystem) Update(clock float64, result *TickResult) {
	if clock < s.nextAttackTime {
		return
	}
	s.nextAttackTime = clock + s.run.AttackInterval()

	target, ok := s.findTarget()
	if !ok {
		return
	}

	s.projectiles.CreateEntity(components.ProjectileComponent{
		Target:   target,
		Damage:   s.run.Damage,
		Position: TowerPosition,
		Speed:    config.ProjectileSpeed,
	})
	result.ShotsFired++
}

// findTarget 返回射程内第一个存活敌人
func (s *TowerAttackSystem) findTarget() (ecs.EntityID, bool) {
	towerRange := s.run.TowerRange()
	target := ecs.InvalidEntity
	s.enemies.Each(func(id ecs.EntityID, enemy *components.EnemyComponent) bool {
		if enemy.Alive && enemy.Position.DistanceTo(TowerPosition) <= towerRange {
			target = id
			return false
		}
		return true
	})
	return target, target != ecs.InvalidEntity
}
