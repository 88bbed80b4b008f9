// Package app 提供参数滑块编辑器的应用包装器
//
// 该包把配置加载、参数存储和场景创建从命令行入口中提取出来，
// cmd/paramslider 的 run 子命令通过 NewApp() 和 Run() 启动窗口。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/paramslider/pkg/config"
	"github.com/gonewx/paramslider/pkg/editor"
	"github.com/gonewx/paramslider/pkg/game"
	"github.com/gonewx/paramslider/pkg/params"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// DefaultAppName gdata 存储使用的默认应用名
const DefaultAppName = "paramslider"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 编辑器配置文件（YAML），为空则使用内置演示配置
	ConfigPath string
	// AppName gdata 存储目录名，为空则使用 DefaultAppName
	AppName string
	// NoPersist 不读写参数值和窗口状态
	NoPersist bool
}

// App 是编辑器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	editorConfig *config.EditorConfig
	sceneManager *game.SceneManager
	store        *params.Store
	stateManager *game.EditorStateManager
	verbose      bool
}

// NewApp 创建并初始化编辑器应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	editorConfig, err := LoadEditorConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	var gdataManager *gdata.Manager
	if !cfg.NoPersist {
		gdataManager = openGdata(cfg.AppName)
	}

	store := params.NewStore(gdataManager)
	if err := editor.RegisterParams(store, editorConfig.Params); err != nil {
		return nil, fmt.Errorf("参数注册失败: %w", err)
	}
	// 存档损坏不影响启动，使用默认值
	if err := store.Load(); err != nil {
		log.Printf("[App] Warning: failed to load saved params: %v (using defaults)", err)
	}

	scene, err := editor.NewScene(editorConfig, store)
	if err != nil {
		return nil, fmt.Errorf("编辑器场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	stateManager := game.NewEditorStateManager(gdataManager, game.EditorState{
		WindowWidth:  editorConfig.Window.Width,
		WindowHeight: editorConfig.Window.Height,
	})

	return &App{
		editorConfig: editorConfig,
		sceneManager: sceneManager,
		store:        store,
		stateManager: stateManager,
		verbose:      cfg.Verbose,
	}, nil
}

// LoadEditorConfig 加载编辑器配置，path 为空时返回内置演示配置
func LoadEditorConfig(path string) (*config.EditorConfig, error) {
	if path == "" {
		return config.DefaultEditorConfig(), nil
	}
	cfg, err := config.LoadEditorConfig(path)
	if err != nil {
		return nil, fmt.Errorf("编辑器配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载编辑器配置: %s (%d params, %d sliders)", path, len(cfg.Params), len(cfg.Sliders))
	return cfg, nil
}

// openGdata 打开 gdata 存储，失败时返回 nil（降级模式，不持久化）
func openGdata(appName string) *gdata.Manager {
	if appName == "" {
		appName = DefaultAppName
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (values will not be persisted)", err)
		return nil
	}
	return manager
}

// Run 打开窗口并运行主循环，窗口关闭时保存参数值和窗口状态
func (a *App) Run() error {
	state := a.stateManager.GetState()
	ebiten.SetWindowSize(state.WindowWidth, state.WindowHeight)
	ebiten.SetWindowTitle(a.editorConfig.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(state.Fullscreen)
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(a)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update 更新编辑器逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.saveOnExit()
		return ebiten.Termination
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.stateManager.SetFullscreen(fullscreen)
	}

	if !ebiten.IsFullscreen() {
		a.stateManager.SetWindowSize(ebiten.WindowSize())
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// saveOnExit 保存当前场景和窗口状态
func (a *App) saveOnExit() {
	if !a.sceneManager.SaveCurrent() {
		log.Printf("[App] Warning: scene state not saved")
	}
	if err := a.stateManager.Save(); err != nil {
		log.Printf("[App] Warning: failed to save editor state: %v", err)
	}
}

// Draw 绘制编辑器画面
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

// Layout 返回编辑器的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.editorConfig.Window.Width, a.editorConfig.Window.Height
}

// Store 返回参数存储
func (a *App) Store() *params.Store {
	return a.store
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
