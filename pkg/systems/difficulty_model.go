package systems

import (
	"math"

	"github.com/decker502/idletower/pkg/config"
)

// 难度模型常量（第 1 波、第 1 级的普通敌人基准）
const (
	// BossWaveInterval 每隔多少波出现一次 Boss
	BossWaveInterval = 10

	baseEnemyHP          = 15.0
	baseEnemyDamage      = 2.0
	baseEnemyMoveSpeed   = 2.5
	baseEnemyCashReward  = 3.0
	minEnemyHP           = 1.0
	minEnemyDamage       = 0.5
	minEnemyCashReward   = 0.5
	bossHPMultiplier     = 12.0
	bossDamageMultiplier = 4.0
	bossCashMultiplier   = 5.0
	bossMoveSpeedFactor  = 0.7
	bossSpawnInterval    = 999.0
	minSpawnInterval     = 0.3
	normalReflectPercent = 0.01
	bossReflectPercent   = 0.5
	minSpawnCount        = 3
	maxSpawnCount        = 25
)

// tierCoinMultipliers 难度等级金币倍率表，下标为 tier-1
// 超出表长的等级沿用最后一项
var tierCoinMultipliers = [...]float64{1, 1.8, 2.6, 3.4, 4.2, 5, 5.8, 6.6, 7.5, 8.7, 10.3, 12.2, 14.7, 17.6}

// EnemyStats 一个敌人的生成属性
type EnemyStats struct {
	MaxHP         float64
	DamageToTower float64
	MoveSpeed     float64
	CashReward    float64
	IsBoss        bool
}

// IsBossWave 判断是否为 Boss 波（10、20、30...）
func IsBossWave(wave int) bool {
	return wave > 0 && wave%BossWaveInterval == 0
}

// EnemyMaxHP 计算敌人最大生命值
// 公式: max(1, 15 × (1+(wave-1)×0.08) × (1+(tier-1)×0.25))，Boss 再 ×12
func EnemyMaxHP(wave, tier int, isBoss bool) float64 {
	waveFactor := 1 + float64(wave-1)*0.08
	tierFactor := 1 + float64(tier-1)*0.25
	hp := math.Max(minEnemyHP, baseEnemyHP*waveFactor*tierFactor)
	if isBoss {
		hp *= bossHPMultiplier
	}
	return hp
}

// EnemyDamageToTower 计算敌人到达塔时的伤害
// 公式: max(0.5, 2 × (1+(wave-1)×0.06) × (1+(tier-1)×0.2))，Boss 再 ×4
func EnemyDamageToTower(wave, tier int, isBoss bool) float64 {
	waveFactor := 1 + float64(wave-1)*0.06
	tierFactor := 1 + float64(tier-1)*0.2
	damage := math.Max(minEnemyDamage, baseEnemyDamage*waveFactor*tierFactor)
	if isBoss {
		damage *= bossDamageMultiplier
	}
	return damage
}

// EnemyMoveSpeed 计算敌人移动速度（已乘世界缩放），Boss 稍慢
// tier 不影响移动速度，保留参数以统一签名
func EnemyMoveSpeed(wave, tier int, isBoss bool) float64 {
	waveFactor := 1 + float64(wave-1)*0.01
	factor := 1.0
	if isBoss {
		factor = bossMoveSpeedFactor
	}
	return baseEnemyMoveSpeed * waveFactor * factor * config.WorldScale
}

// EnemyCashReward 计算击杀敌人的现金奖励
// 公式: max(0.5, 3 × (1+wave×0.04) × 等级金币倍率/1级倍率)，Boss 再 ×5
func EnemyCashReward(wave, tier int, isBoss bool) float64 {
	waveFactor := 1 + float64(wave)*0.04
	tierFactor := TierCoinMultiplier(tier) / math.Max(1, TierCoinMultiplier(1))
	reward := math.Max(minEnemyCashReward, baseEnemyCashReward*waveFactor*tierFactor)
	if isBoss {
		reward *= bossCashMultiplier
	}
	return reward
}

// SpawnCount 返回本波生成的敌人数量
// Boss 波只生成 1 个，否则为 clamp(3+wave/2, 3, 25)
func SpawnCount(wave int) int {
	if IsBossWave(wave) {
		return 1
	}
	count := minSpawnCount + wave/2
	if count < minSpawnCount {
		return minSpawnCount
	}
	if count > maxSpawnCount {
		return maxSpawnCount
	}
	return count
}

// SpawnInterval 返回本波生成间隔（秒）
// Boss 波间隔为 999 秒，即只生成一次
func SpawnInterval(wave int) float64 {
	if IsBossWave(wave) {
		return bossSpawnInterval
	}
	return math.Max(minSpawnInterval, 0.8-float64(wave)*0.01)
}

// ReflectDamagePercent 敌人到达塔时自身承受的反伤比例（按最大生命值）
func ReflectDamagePercent(isBoss bool) float64 {
	if isBoss {
		return bossReflectPercent
	}
	return normalReflectPercent
}

// TierCoinMultiplier 返回难度等级的金币倍率
//
// 倍率表只覆盖 1~14 级，更高等级沿用 14 级的值；
// tier <= 0 按 1 级处理。
func TierCoinMultiplier(tier int) float64 {
	index := tier - 1
	if index < 0 {
		index = 0
	}
	if index >= len(tierCoinMultipliers) {
		index = len(tierCoinMultipliers) - 1
	}
	return tierCoinMultipliers[index]
}

// WaveCoinReward 完成一波获得的永久金币：round(2 × 等级金币倍率)
func WaveCoinReward(tier int) int64 {
	return int64(math.Round(2 * TierCoinMultiplier(tier)))
}

// CalculateEnemyStats 汇总指定波次、等级下敌人的全部生成属性
func CalculateEnemyStats(wave, tier int) EnemyStats {
	isBoss := IsBossWave(wave)
	return EnemyStats{
		MaxHP:         EnemyMaxHP(wave, tier, isBoss),
		DamageToTower: EnemyDamageToTower(wave, tier, isBoss),
		MoveSpeed:     EnemyMoveSpeed(wave, tier, isBoss),
		CashReward:    EnemyCashReward(wave, tier, isBoss),
		IsBoss:        isBoss,
	}
}
