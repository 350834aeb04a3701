// Package app 提供游戏应用的核心包装器
//
// Session 是与界面无关的会话层，命令行模拟器和 ebiten 宿主共用；
// App 把 Session 包装为 ebiten.Game，桌面端通过 main.go 调用 NewApp()，
// 移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/idletower/pkg/config"
	"github.com/decker502/idletower/pkg/game"
	"github.com/decker502/idletower/pkg/types"
	"github.com/decker502/idletower/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 会话配置覆盖文件，为空则使用内置默认值
	ConfigPath string
	// Seed 非 0 时覆盖配置中的随机数种子
	Seed int64
}

// digitKeys 升级购买快捷键，依次对应九种模拟升级
var digitKeys = [types.UpgradeCount]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3,
	ebiten.Key4, ebiten.Key5, ebiten.Key6,
	ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	session      *Session
	sceneManager *SceneManager
	lobby        *LobbyScene
	battle       *BattleScene

	face    text.Face
	mobile  bool
	verbose bool

	// tickDelta 每次 Update 推进的固定时间步长
	tickDelta float64

	// upgradeIDs 列表中九种模拟升级的目录 ID（按目录顺序）
	upgradeIDs []string

	// err 场景中出现的致命错误，由 Update 返回以结束游戏循环
	err error

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 存储打开失败时不会返回错误，进度只保存在内存中。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sessionConfig, err := config.LoadSessionConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("会话配置加载失败: %w", err)
	}
	sessionConfig.Verbose = sessionConfig.Verbose || cfg.Verbose
	if cfg.Seed != 0 {
		sessionConfig.Seed = cfg.Seed
	}

	catalog, err := config.LoadUpgradeCatalog(config.DefaultUpgradeCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("升级目录加载失败: %w", err)
	}
	log.Printf("[Config] 成功加载 %d 个升级条目", catalog.Len())

	gdataManager, err := utils.OpenStorage(sessionConfig.AppName, game.ProgressionObject)
	if err != nil {
		log.Printf("[App] Warning: %v (progression will not be saved)", err)
		gdataManager = nil
	}

	session := NewSession(sessionConfig, catalog, gdataManager)
	ebiten.SetTPS(sessionConfig.TicksPerSecond)

	a := &App{
		session:   session,
		face:      text.NewGoXFace(basicfont.Face7x13),
		mobile:    utils.IsMobile(),
		verbose:   sessionConfig.Verbose,
		tickDelta: sessionConfig.TickDelta(),
	}
	for _, kind := range types.AllUpgradeIDs() {
		if entry, ok := catalog.EntryFor(kind); ok {
			a.upgradeIDs = append(a.upgradeIDs, entry.ID)
		}
	}

	a.sceneManager = NewSceneManager()
	a.lobby = NewLobbyScene(a)
	a.battle = NewBattleScene(a)
	a.sceneManager.SwitchTo(a.lobby)

	log.Printf("[App] Initialized (tps=%d, mobile=%v)", sessionConfig.TicksPerSecond, a.mobile)
	return a, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次，当前场景推进固定步长的模拟
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.sceneManager.Update(a.tickDelta)
	return a.err
}

// pressedUpgradeRow 返回本帧通过数字键或点击选中的升级行，没有时返回 -1
// clicked 表示本帧是否发生了点击（无论是否落在列表内）
func (a *App) pressedUpgradeRow() (row int, clicked bool) {
	for i, key := range digitKeys {
		if i < len(a.upgradeIDs) && inpututil.IsKeyJustPressed(key) {
			return i, false
		}
	}

	clicked, x, y := utils.IsJustTouchedOrClicked()
	if !clicked {
		return -1, false
	}
	return upgradeList(len(a.upgradeIDs), a.mobile).HitTest(x, y), true
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Session 返回游戏会话
// 用于在游戏关闭时保存进度
func (a *App) Session() *Session {
	return a.session
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
