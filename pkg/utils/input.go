// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// RowList 纵向等高的列表区域（如升级列表）
type RowList struct {
	X, Y      int
	Width     int
	RowHeight int
	Count     int
}

// HitTest 返回坐标所在的行下标，不在列表内返回 -1
func (l RowList) HitTest(x, y int) int {
	if l.RowHeight <= 0 || l.Count <= 0 {
		return -1
	}
	if x < l.X || x >= l.X+l.Width || y < l.Y {
		return -1
	}
	row := (y - l.Y) / l.RowHeight
	if row >= l.Count {
		return -1
	}
	return row
}

// RowTop 返回第 row 行顶部的 Y 坐标
func (l RowList) RowTop(row int) int {
	return l.Y + row*l.RowHeight
}
