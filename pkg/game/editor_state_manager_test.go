package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

var testDefaults = EditorState{WindowWidth: 480, WindowHeight: 320}

// newTestGdataManager 在临时目录中创建 gdata manager
func newTestGdataManager(t *testing.T) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: "test_editor_state",
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

// TestNewEditorStateManager 测试没有存档时使用默认状态
func TestNewEditorStateManager(t *testing.T) {
	sm := NewEditorStateManager(newTestGdataManager(t), testDefaults)

	state := sm.GetState()
	if state == nil {
		t.Fatal("GetState() returned nil after initialization")
	}
	if *state != testDefaults {
		t.Errorf("Initial state: got %+v, want %+v", *state, testDefaults)
	}
}

// TestEditorStateManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestEditorStateManagerNilGdata(t *testing.T) {
	sm := NewEditorStateManager(nil, testDefaults)

	sm.SetWindowSize(800, 600)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() with nil gdata should not fail, got %v", err)
	}
	if got := sm.GetState().WindowWidth; got != 800 {
		t.Errorf("WindowWidth: got %d, want 800", got)
	}
}

// TestEditorStateManagerSaveAndLoad 测试保存后重新加载
func TestEditorStateManagerSaveAndLoad(t *testing.T) {
	gdataManager := newTestGdataManager(t)

	sm := NewEditorStateManager(gdataManager, testDefaults)
	sm.SetWindowSize(1024, 768)
	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewEditorStateManager(gdataManager, testDefaults)
	want := EditorState{WindowWidth: 1024, WindowHeight: 768, Fullscreen: true}
	if got := *reloaded.GetState(); got != want {
		t.Errorf("Reloaded state: got %+v, want %+v", got, want)
	}
}

// TestEditorStateManagerCorruptedData 测试存档损坏时回退到默认状态
func TestEditorStateManagerCorruptedData(t *testing.T) {
	gdataManager := newTestGdataManager(t)
	if err := gdataManager.SaveObjectProp(editorStateObject, editorStateProperty, []byte("windowWidth: [")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := &EditorStateManager{gdataManager: gdataManager, defaults: testDefaults}
	sm.resetToDefaults()
	if err := sm.Load(); err == nil {
		t.Error("Load() should fail on corrupted data")
	}
	if *sm.GetState() != testDefaults {
		t.Errorf("State after corrupted load: got %+v, want defaults", *sm.GetState())
	}
}

// TestEditorStateManagerInvalidSize 测试存档中无效尺寸回退到默认尺寸
func TestEditorStateManagerInvalidSize(t *testing.T) {
	gdataManager := newTestGdataManager(t)
	if err := gdataManager.SaveObjectProp(editorStateObject, editorStateProperty, []byte("windowWidth: 0\nwindowHeight: -5\nfullscreen: true\n")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewEditorStateManager(gdataManager, testDefaults)
	state := sm.GetState()
	if state.WindowWidth != 480 || state.WindowHeight != 320 {
		t.Errorf("Window size: got %dx%d, want 480x320", state.WindowWidth, state.WindowHeight)
	}
	if !state.Fullscreen {
		t.Error("Fullscreen should be loaded from saved state")
	}
}

// TestEditorStateManagerIgnoresInvalidWindowSize 测试 SetWindowSize 忽略非正值
func TestEditorStateManagerIgnoresInvalidWindowSize(t *testing.T) {
	sm := NewEditorStateManager(nil, testDefaults)
	sm.SetWindowSize(0, 100)
	sm.SetWindowSize(100, -1)
	if *sm.GetState() != testDefaults {
		t.Errorf("State changed on invalid size: %+v", *sm.GetState())
	}
}
