package app

import (
	"errors"
	"log"

	"github.com/decker502/idletower/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// BattleScene 战斗场景
//
// 每帧先处理命令（购买、调速、退出），再推进一次模拟；
// 局结束（主动退出或塔被摧毁）后回到大厅。
type BattleScene struct {
	app *App
}

// NewBattleScene 创建战斗场景
func NewBattleScene(app *App) *BattleScene {
	return &BattleScene{app: app}
}

// Update 处理局内命令并推进模拟
func (s *BattleScene) Update(deltaTime float64) {
	session := s.app.session

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		session.ExitRun()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		session.SpeedUp()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		session.SpeedDown()
	}

	if row, _ := s.app.pressedUpgradeRow(); row >= 0 {
		id := s.app.upgradeIDs[row]
		if !session.BuyUpgrade(id) && s.app.verbose {
			log.Printf("[BattleScene] Cannot buy %s", id)
		}
	}

	if _, err := session.Tick(deltaTime); err != nil && !errors.Is(err, systems.ErrRunNotActive) {
		s.app.err = err
		return
	}

	if !session.Run().IsActive() {
		s.app.sceneManager.SwitchTo(s.app.lobby)
	}
}

// Draw 绘制战场、状态栏和局内升级列表
func (s *BattleScene) Draw(screen *ebiten.Image) {
	a := s.app
	screen.Fill(backgroundColor)

	run := a.session.RunSnapshot()
	progression := a.session.ProgressionSnapshot()

	a.drawBattlefield(screen, run)
	a.drawHUD(screen, run, progression)
	a.drawUpgradeList(screen, "Upgrades (cash)", run.Upgrades)
}
