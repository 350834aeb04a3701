package components

import "math"

// Vec2 二维世界坐标
type Vec2 struct {
	X, Y float64
}

// Add 向量相加
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 向量相减
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale 数乘
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len 向量长度
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// DistanceTo 两点间距离
func (v Vec2) DistanceTo(o Vec2) float64 {
	return o.Sub(v).Len()
}

// MoveTowards 朝目标点直线移动至多 maxStep 距离，不会越过目标
//
// 参数：
//
//	target - 目标点
//	maxStep - 本次最大移动距离（<= 0 时不移动）
//
// 返回：
//
//	移动后的位置
func (v Vec2) MoveTowards(target Vec2, maxStep float64) Vec2 {
	if maxStep <= 0 {
		return v
	}
	delta := target.Sub(v)
	dist := delta.Len()
	if dist <= maxStep || dist == 0 {
		return target
	}
	return v.Add(delta.Scale(maxStep / dist))
}
