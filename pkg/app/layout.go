package app

import (
	"github.com/decker502/idletower/pkg/components"
	"github.com/decker502/idletower/pkg/config"
	"github.com/decker502/idletower/pkg/utils"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 960
	ScreenHeight = 600
)

// 战场区域（塔位于中心）
const (
	battlefieldCenterX = 330.0
	battlefieldCenterY = 320.0
	// pixelsPerUnit 每个世界单位对应的像素数
	pixelsPerUnit = 130.0
)

// 升级列表区域
const (
	upgradeListX     = 640
	upgradeListY     = 110
	upgradeListWidth = 310
	upgradeRowHeight = 22
)

// WorldToScreen 将世界坐标转换为屏幕坐标（Y 轴向上，塔在战场中心）
func WorldToScreen(p components.Vec2) (float64, float64) {
	x := battlefieldCenterX + (p.X-config.TowerX)*pixelsPerUnit
	y := battlefieldCenterY - (p.Y-config.TowerY)*pixelsPerUnit
	return x, y
}

// WorldLengthToScreen 将世界长度转换为像素
func WorldLengthToScreen(length float64) float64 {
	return length * pixelsPerUnit
}

// upgradeList 返回升级列表的点击区域
// 移动端使用更高的行以便触摸
func upgradeList(count int, mobile bool) utils.RowList {
	return utils.RowList{
		X:         upgradeListX,
		Y:         upgradeListY,
		Width:     upgradeListWidth,
		RowHeight: utils.TouchRowHeight(upgradeRowHeight, mobile),
		Count:     count,
	}
}
