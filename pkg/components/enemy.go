package components

// EnemyComponent 敌人数据
// 由生成系统根据难度模型创建，死亡或到达塔时销毁
// 注意：遵循 ECS 原则，组件仅存储数据，不包含方法
type EnemyComponent struct {
	MaxHP float64 // 最大生命值
	HP    float64 // 当前生命值（<= MaxHP）

	DamageToTower float64 // 到达塔时造成的伤害
	CashReward    float64 // 被击杀时奖励的现金
	IsBoss        bool    // 是否为 Boss

	Position  Vec2    // 世界坐标
	MoveSpeed float64 // 移动速度（世界单位/秒）

	// Alive 是否存活
	// 死亡或到达后置为 false，等待从存储中清理
	Alive bool
}

// DeathCause 敌人移出战场的原因
type DeathCause int

const (
	// DeathByProjectile 被子弹击杀，发放现金奖励
	DeathByProjectile DeathCause = iota
	// DeathByReflect 到达塔时被反伤击杀，发放现金奖励
	DeathByReflect
	// DeathByBreach 到达塔后存活移除，无奖励
	DeathByBreach
)

// String 返回原因名称（用于日志）
func (c DeathCause) String() string {
	switch c {
	case DeathByProjectile:
		return "projectile"
	case DeathByReflect:
		return "reflect"
	case DeathByBreach:
		return "breach"
	}
	return "unknown"
}

// Rewarded 该原因是否发放击杀奖励
func (c DeathCause) Rewarded() bool {
	return c == DeathByProjectile || c == DeathByReflect
}
