package config

// 世界坐标常量
//
// 所有距离都以"世界单位"计，并已乘以 WorldScale（整体缩放 1/5）。
const (
	// WorldScale 世界整体缩放
	WorldScale = 0.2

	// TowerX, TowerY 塔的世界坐标（Y 轴抬高 0.5）
	TowerX = 0.0
	TowerY = 0.5

	// SpawnRadius 敌人出生圆半径（以塔为圆心）
	SpawnRadius = 10.0 * WorldScale

	// ReachRadius 敌人到达塔的判定距离
	ReachRadius = 0.8 * WorldScale

	// ProjectileSpeed 子弹飞行速度（世界单位/秒）
	ProjectileSpeed = 8.0
)

// 塔属性常量
const (
	// BaseTowerRange 基础射程（未缩放）
	BaseTowerRange = 5.0
	// RangePerLevel 每级射程增量（未缩放）
	RangePerLevel = 0.4

	// BaseAttacksPerSecond 基础每秒攻击次数
	BaseAttacksPerSecond = 2.0
	// AttackSpeedPerLevel 每级攻速加成
	AttackSpeedPerLevel = 0.04
	// MinAttacksPerSecond 计算攻击间隔时的攻速下限
	MinAttacksPerSecond = 0.05

	// DefensePercentPerLevel 每级防御率
	DefensePercentPerLevel = 0.005
	// CriticalChancePerLevel 每级暴击率（百分比，仅用于显示）
	CriticalChancePerLevel = 0.5
	// CashBonusPerLevel 每级现金加成倍率（仅用于显示）
	CashBonusPerLevel = 0.05
)

// 游戏速度与难度等级范围
const (
	MinGameSpeed  = 0.5
	MaxGameSpeed  = 5.0
	GameSpeedStep = 0.5

	MinTier = 1
	MaxTier = 21
)
