package systems

import (
	"github.com/decker502/idletower/pkg/components"
	"github.com/decker502/idletower/pkg/ecs"
)

// ProjectileSystem 子弹系统
//
// 子弹每帧朝目标当前位置飞行；本帧移动距离足以到达时命中并移除。
// 目标已死亡或已移除时子弹直接丢弃，不产生任何效果。
type ProjectileSystem struct {
	enemies     *EnemyStore
	projectiles *ProjectileStore
}

// NewProjectileSystem 创建子弹系统
func NewProjectileSystem(enemies *EnemyStore, projectiles *ProjectileStore) *ProjectileSystem {
	return &ProjectileSystem{
		enemies:     enemies,
		projectiles: projectiles,
	}
}

// Update 推进所有子弹并结算命中
func (s *ProjectileSystem) Update(dt float64, result *TickResult) {
	s.projectiles.Each(func(id ecs.EntityID, projectile *components.ProjectileComponent) bool {
		target, ok := s.enemies.Get(projectile.Target)
		if !ok || !target.Alive {
			s.projectiles.DestroyEntity(id)
			return true
		}

		move := projectile.Speed * dt
		if move < projectile.Position.DistanceTo(target.Position) {
			projectile.Position = projectile.Position.MoveTowards(target.Position, move)
			return true
		}

		// 命中
		s.projectiles.DestroyEntity(id)
		result.ProjectileHits++
		target.HP -= projectile.Damage
		if target.HP <= 0 {
			target.Alive = false
			s.enemies.DestroyEntity(projectile.Target)
			result.Deaths = append(result.Deaths, EnemyDeath{
				Enemy:      projectile.Target,
				Cause:      components.DeathByProjectile,
				CashReward: target.CashReward,
				IsBoss:     target.IsBoss,
			})
		}
		return true
	})
}
