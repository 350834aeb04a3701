package app

import (
	"fmt"
	"image/color"

	"github.com/decker502/idletower/pkg/config"
	"github.com/decker502/idletower/pkg/game"
	"github.com/decker502/idletower/pkg/systems"
	"github.com/decker502/idletower/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	backgroundColor  = color.RGBA{R: 24, G: 28, B: 40, A: 255}
	spawnCircleColor = color.RGBA{R: 70, G: 70, B: 90, A: 255}
	rangeCircleColor = color.RGBA{R: 80, G: 160, B: 220, A: 255}
	towerColor       = color.RGBA{R: 90, G: 200, B: 250, A: 255}
	enemyColor       = color.RGBA{R: 230, G: 90, B: 80, A: 255}
	bossColor        = color.RGBA{R: 200, G: 60, B: 200, A: 255}
	projectileColor  = color.RGBA{R: 250, G: 230, B: 90, A: 255}
	hpBackColor      = color.RGBA{R: 60, G: 20, B: 20, A: 255}
	hpFillColor      = color.RGBA{R: 90, G: 220, B: 90, A: 255}
	textColor        = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	dimTextColor     = color.RGBA{R: 130, G: 130, B: 140, A: 255}
	buyableTextColor = color.RGBA{R: 140, G: 240, B: 140, A: 255}
)

const (
	towerRadius      = 14
	enemyRadius      = 6
	bossRadius       = 10
	projectileRadius = 3
	hudX             = 12
	hudLineHeight    = 16
	hudWrapWidth     = 300
)

// drawBattlefield 绘制出生圆、射程、塔、敌人和子弹
func (a *App) drawBattlefield(screen *ebiten.Image, run RunSnapshot) {
	cx, cy := WorldToScreen(systems.TowerPosition)

	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(WorldLengthToScreen(config.SpawnRadius)), 1, spawnCircleColor, true)

	if run.Phase == game.RunActive {
		towerRange := a.session.Run().TowerRange()
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(WorldLengthToScreen(towerRange)), 1, rangeCircleColor, true)
	}
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), towerRadius, towerColor, true)

	for _, enemy := range run.Enemies {
		ex, ey := WorldToScreen(enemy.Position)
		radius := float32(enemyRadius)
		clr := enemyColor
		if enemy.IsBoss {
			radius = bossRadius
			clr = bossColor
		}
		vector.DrawFilledCircle(screen, float32(ex), float32(ey), radius, clr, true)

		// 血条
		barWidth := radius * 2
		barX := float32(ex) - radius
		barY := float32(ey) - radius - 5
		vector.DrawFilledRect(screen, barX, barY, barWidth, 3, hpBackColor, false)
		vector.DrawFilledRect(screen, barX, barY, barWidth*float32(enemy.HPFraction), 3, hpFillColor, false)
	}

	for _, position := range run.Projectiles {
		px, py := WorldToScreen(position)
		vector.DrawFilledCircle(screen, float32(px), float32(py), projectileRadius, projectileColor, true)
	}
}

// drawHUD 绘制左上角的局内状态和大厅信息
func (a *App) drawHUD(screen *ebiten.Image, run RunSnapshot, progression ProgressionSnapshot) {
	lines := []string{
		fmt.Sprintf("Coins %s  Gems %d  Stones %d", progression.CoinsText, progression.Gems, progression.PowerStones),
		fmt.Sprintf("Tier %d (x%.2f coins)  Best wave %d", progression.Tier, progression.TierCoinMultiplier, progression.HighestWave),
	}

	switch run.Phase {
	case game.RunActive:
		lines = append(lines,
			fmt.Sprintf("Wave %d  %s %d/%d", run.Wave, run.WavePhase, run.SpawnedInWave, run.ScheduledCount),
			fmt.Sprintf("Cash %.0f  Speed x%.1f", run.Cash, run.GameSpeed),
			fmt.Sprintf("Health %.0f/%.0f  Regen %.2f/s", run.TowerHealth, run.TowerMaxHealth, run.HealthRegenPerSec),
			fmt.Sprintf("Damage %.0f", run.Damage),
		)
	case game.RunEnded:
		lines = append(lines, fmt.Sprintf("Run over at wave %d. Press Space to start again.", run.Wave))
	default:
		lines = append(lines, "Press Space to start a run. Up/Down changes tier, 1-9 buys permanent upgrades.")
	}

	y := 8
	for _, line := range lines {
		for _, wrapped := range utils.WrapText(line, a.face, hudWrapWidth) {
			a.drawText(screen, wrapped, hudX, y, textColor)
			y += hudLineHeight
		}
	}
}

// drawUpgradeList 绘制右侧升级列表
func (a *App) drawUpgradeList(screen *ebiten.Image, title string, views []UpgradeView) {
	list := upgradeList(len(a.upgradeIDs), a.mobile)
	a.drawText(screen, title, list.X, list.Y-24, textColor)

	for i, view := range views {
		clr := dimTextColor
		if view.Purchasable {
			clr = buyableTextColor
		}
		cost := fmt.Sprintf("%d", view.NextCost)
		if view.Maxed {
			cost = maxLevelText
		}
		line := fmt.Sprintf("%d %-14s %-8s %s", i+1, view.DisplayName, view.Value, cost)
		a.drawText(screen, line, list.X, list.RowTop(i)+4, clr)
	}
}

// permanentViews 按列表顺序挑出九种模拟升级的永久视图
func permanentViews(progression ProgressionSnapshot, ids []string) []UpgradeView {
	byID := make(map[string]UpgradeView, len(progression.Upgrades))
	for _, view := range progression.Upgrades {
		byID[view.ID] = view
	}
	views := make([]UpgradeView, 0, len(ids))
	for _, id := range ids {
		views = append(views, byID[id])
	}
	return views
}

// drawText 在左上角坐标 (x, y) 绘制一行文本
func (a *App) drawText(screen *ebiten.Image, str string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, a.face, op)
}
