package utils

import "os"

// MobileEmulateEnv 设置为 1 时在桌面上模拟移动端布局
const MobileEmulateEnv = "IDLETOWER_MOBILE_EMULATE"

// MinTouchRowHeight 移动端可点击列表行的最小高度（逻辑像素）
const MinTouchRowHeight = 34

// IsMobile 检测当前是否使用移动端布局
// 移动端编译（-tags mobile）时总是返回 true
func IsMobile() bool {
	return mobileBuild || os.Getenv(MobileEmulateEnv) == "1"
}

// TouchRowHeight 返回列表行高
// 移动端行高不低于 MinTouchRowHeight，桌面端保持原值
func TouchRowHeight(rowHeight int, mobile bool) int {
	if mobile {
		return max(rowHeight, MinTouchRowHeight)
	}
	return rowHeight
}
