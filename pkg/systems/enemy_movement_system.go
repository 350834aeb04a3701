package systems

import (
	"log"

	"github.com/decker502/idletower/pkg/components"
	"github.com/decker502/idletower/pkg/config"
	"github.com/decker502/idletower/pkg/ecs"
	"github.com/decker502/idletower/pkg/game"
)

// EnemyMovementSystem 敌人移动系统
//
// 敌人沿直线朝塔移动（无寻路、无避让），
// 进入到达半径后对塔造成伤害、承受反伤并被移出战场。
type EnemyMovementSystem struct {
	enemies *EnemyStore
	run     *game.RunState

	verbose bool
}

// NewEnemyMovementSystem 创建敌人移动系统
func NewEnemyMovementSystem(enemies *EnemyStore, run *game.RunState) *EnemyMovementSystem {
	return &EnemyMovementSystem{
		enemies: enemies,
		run:     run,
	}
}

// Update 所有存活敌人朝塔移动 moveSpeed × dt，不越过塔的位置
func (s *EnemyMovementSystem) Update(dt float64) {
	s.enemies.Each(func(_ ecs.EntityID, enemy *components.EnemyComponent) bool {
		if enemy.Alive {
			enemy.Position = enemy.Position.MoveTowards(TowerPosition, enemy.MoveSpeed*dt)
		}
		return true
	})
}

// ResolveArrivals 处理到达塔的敌人
//
// 塔受到 max(0, 伤害 × (1-防御率) - 绝对防御) 的伤害，生命值不低于 0；
// 敌人承受 最大生命 × 反伤比例 的伤害，因此死亡时记为反伤击杀（有奖励），
// 否则记为突破（无奖励）。无论结果如何敌人都会被移除。
func (s *EnemyMovementSystem) ResolveArrivals(result *TickResult) {
	s.enemies.Each(func(id ecs.EntityID, enemy *components.EnemyComponent) bool {
		if !enemy.Alive || enemy.Position.DistanceTo(TowerPosition) > config.ReachRadius {
			return true
		}

		damage := max(0, enemy.DamageToTower*(1-s.run.DefensePercent())-s.run.AbsoluteDefense())
		s.run.TowerHealth = max(0, s.run.TowerHealth-damage)
		result.DamageTaken += damage

		enemy.HP -= enemy.MaxHP * ReflectDamagePercent(enemy.IsBoss)
		cause := components.DeathByBreach
		if enemy.HP <= 0 {
			cause = components.DeathByReflect
		}
		enemy.Alive = false
		s.enemies.DestroyEntity(id)

		result.Deaths = append(result.Deaths, EnemyDeath{
			Enemy:      id,
			Cause:      cause,
			CashReward: enemy.CashReward,
			IsBoss:     enemy.IsBoss,
		})

		if s.verbose {
			log.Printf("[EnemyMovementSystem] Enemy %d reached tower: damage=%.2f, cause=%s, tower=%.1f/%.1f",
				id, damage, cause, s.run.TowerHealth, s.run.TowerMaxHealth)
		}
		return true
	})
}
