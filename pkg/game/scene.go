package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 由 SceneManager 驱动的编辑器界面（目前只有参数滑块面板 editor.Scene）
type Scene interface {
	// Update 推进一帧，deltaTime 单位为秒
	Update(deltaTime float64)

	// Draw 绘制到屏幕
	Draw(screen *ebiten.Image)
}

// Saveable 退出前需要收尾的场景
//
// SceneManager.SaveCurrent 在窗口关闭时调用 SaveOnExit：
// 先结束未完成的参数手势，再把参数值写入存档。
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败，程序仍会退出
	SaveOnExit() bool
}
