package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// EditorState 编辑器窗口状态（跨会话保存）
type EditorState struct {
	WindowWidth  int  `yaml:"windowWidth"`
	WindowHeight int  `yaml:"windowHeight"`
	Fullscreen   bool `yaml:"fullscreen"` // 启动时是否全屏
}

// EditorStateManager 编辑器状态管理器
// 负责窗口状态的加载、保存和内存管理
type EditorStateManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	defaults     EditorState
	state        *EditorState
}

// 存储路径常量
const (
	editorStateObject   = "editor"
	editorStateProperty = "window"
)

// NewEditorStateManager 创建编辑器状态管理器并尝试加载已保存的状态
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存状态）
//   - defaults: 没有存档或存档损坏时使用的状态
func NewEditorStateManager(gdataManager *gdata.Manager, defaults EditorState) *EditorStateManager {
	sm := &EditorStateManager{
		gdataManager: gdataManager,
		defaults:     defaults,
	}
	sm.resetToDefaults()

	// 加载失败不是致命错误，使用默认状态
	if err := sm.Load(); err != nil {
		log.Printf("[EditorStateManager] Warning: Failed to load editor state: %v (using defaults)", err)
	}
	return sm
}

func (sm *EditorStateManager) resetToDefaults() {
	state := sm.defaults
	sm.state = &state
}

// Load 从 gdata 加载状态
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认状态
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误
func (sm *EditorStateManager) Load() error {
	if sm.gdataManager == nil {
		sm.resetToDefaults()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(editorStateObject, editorStateProperty) {
		sm.resetToDefaults()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(editorStateObject, editorStateProperty)
	if err != nil {
		sm.resetToDefaults()
		return fmt.Errorf("failed to load editor state: %w", err)
	}

	loaded := sm.defaults
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.resetToDefaults()
		return fmt.Errorf("failed to unmarshal editor state: %w", err)
	}

	// 存档中的尺寸无效时回退到默认尺寸
	if loaded.WindowWidth <= 0 || loaded.WindowHeight <= 0 {
		loaded.WindowWidth, loaded.WindowHeight = sm.defaults.WindowWidth, sm.defaults.WindowHeight
	}

	sm.state = &loaded
	log.Printf("[EditorStateManager] Editor state loaded: %dx%d", loaded.WindowWidth, loaded.WindowHeight)
	return nil
}

// Save 保存状态到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *EditorStateManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.state)
	if err != nil {
		return fmt.Errorf("failed to marshal editor state: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(editorStateObject, editorStateProperty, data); err != nil {
		return fmt.Errorf("failed to save editor state: %w", err)
	}

	log.Printf("[EditorStateManager] Editor state saved")
	return nil
}

// GetState 获取当前状态
func (sm *EditorStateManager) GetState() *EditorState {
	return sm.state
}

// SetWindowSize 记录窗口尺寸，非正值被忽略
//
// 注意：仅修改内存中的状态，需调用 Save() 方法持久化
func (sm *EditorStateManager) SetWindowSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	sm.state.WindowWidth = width
	sm.state.WindowHeight = height
}

// SetFullscreen 设置全屏模式
//
// 注意：仅修改内存中的状态，需调用 Save() 方法持久化
func (sm *EditorStateManager) SetFullscreen(enabled bool) {
	sm.state.Fullscreen = enabled
}
