package app

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// LobbyScene 大厅场景
//
// 两局之间的界面：购买永久升级、调整难度等级、开始新的一局。
// 背景保留上一局结束时的战场画面。
type LobbyScene struct {
	app *App
}

// NewLobbyScene 创建大厅场景
func NewLobbyScene(app *App) *LobbyScene {
	return &LobbyScene{app: app}
}

// Update 处理大厅命令
func (s *LobbyScene) Update(deltaTime float64) {
	session := s.app.session

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		s.startRun()
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		session.ChangeTier(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		session.ChangeTier(-1)
	}

	row, clicked := s.app.pressedUpgradeRow()
	if row >= 0 {
		id := s.app.upgradeIDs[row]
		if !session.BuyPermanentUpgrade(id) {
			log.Printf("[LobbyScene] Cannot buy permanent %s", id)
		}
	} else if clicked && s.app.mobile {
		// 移动端点击战场开局
		s.startRun()
	}
}

// startRun 开局并切换到战斗场景
func (s *LobbyScene) startRun() {
	if s.app.session.StartRun() {
		s.app.sceneManager.SwitchTo(s.app.battle)
	}
}

// Draw 绘制大厅
func (s *LobbyScene) Draw(screen *ebiten.Image) {
	a := s.app
	screen.Fill(backgroundColor)

	run := a.session.RunSnapshot()
	progression := a.session.ProgressionSnapshot()

	a.drawBattlefield(screen, run)
	a.drawHUD(screen, run, progression)
	a.drawUpgradeList(screen, "Workshop (coins)", permanentViews(progression, a.upgradeIDs))
}
