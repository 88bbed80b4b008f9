package systems

import (
	"testing"

	"github.com/gonewx/paramslider/pkg/components"
	"github.com/gonewx/paramslider/pkg/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPointerInput 用于测试的 mock 指针输入
type mockPointerInput struct {
	x, y    int
	pressed bool
	cancel  bool
}

func (m *mockPointerInput) CursorPosition() (int, int) { return m.x, m.y }
func (m *mockPointerInput) IsPointerPressed() bool     { return m.pressed }
func (m *mockPointerInput) IsCancelPressed() bool      { return m.cancel }

// mockWheelInput 用于测试的 mock 滚轮输入
type mockWheelInput struct {
	x, y   int
	dx, dy float64
	unit   components.ScrollUnit
}

func (m *mockWheelInput) CursorPosition() (int, int) { return m.x, m.y }
func (m *mockWheelInput) Wheel() (float64, float64, components.ScrollUnit) {
	return m.dx, m.dy, m.unit
}

// placeSlider 把滑槽容器放在 (100, 100)，手柄放在 (100, 100) 20x20
func placeSlider(t *testing.T, f *sliderFixture, parts components.ParamSliderParts) {
	t.Helper()
	bar, _ := ecs.GetComponent[*components.NodeComponent](f.em, parts.BarContainer)
	bar.SetRect(100, 100, 200, 20)
	handle, _ := ecs.GetComponent[*components.NodeComponent](f.em, parts.Handle)
	handle.SetRect(100, 100, 20, 20)
}

func dragState(t *testing.T, f *sliderFixture, parts components.ParamSliderParts) *components.DraggableComponent {
	t.Helper()
	d, ok := ecs.GetComponent[*components.DraggableComponent](f.em, parts.Handle)
	require.True(t, ok)
	return d
}

func uiState(f *sliderFixture, parts components.ParamSliderParts) components.UIState {
	ui, _ := ecs.GetComponent[*components.UIComponent](f.em, parts.Handle)
	return ui.State
}

func TestParamSliderPointerSystem_DragLifecycle(t *testing.T) {
	f := newSliderFixture(t)
	_, parts := f.addSlider(t, "gain", components.DefaultParamSliderConfig(), 0.5, 200, 20)
	placeSlider(t, f, parts)

	input := &mockPointerInput{x: 110, y: 110}
	sys := NewParamSliderPointerSystemWithInput(f.em, input)

	// 悬停
	sys.Update(0)
	assert.Equal(t, components.DragInactive, dragState(t, f, parts).State)
	assert.Equal(t, components.UIHovered, uiState(f, parts))

	// 按下
	f.clearFlags()
	input.pressed = true
	sys.Update(0)
	d := dragState(t, f, parts)
	assert.Equal(t, components.DragMaybeDragged, d.State)
	assert.True(t, d.Changed)
	assert.Equal(t, components.UIClicked, uiState(f, parts))

	// 按住不动
	f.clearFlags()
	sys.Update(0)
	assert.Equal(t, components.DragMaybeDragged, d.State)
	assert.False(t, d.Changed)

	// 首次移动
	f.clearFlags()
	input.x = 130
	sys.Update(0)
	assert.Equal(t, components.DragStart, d.State)
	require.NotNil(t, d.Diff)
	assert.Equal(t, components.Vec2{X: 20, Y: 0}, *d.Diff)

	// 拖出手柄范围仍然继续
	f.clearFlags()
	input.x, input.y = 400, 300
	sys.Update(0)
	assert.Equal(t, components.Dragging, d.State)
	assert.Equal(t, components.Vec2{X: 270, Y: 190}, *d.Diff)

	// 松开
	f.clearFlags()
	input.pressed = false
	sys.Update(0)
	assert.Equal(t, components.DragEnd, d.State)
	assert.Nil(t, d.Diff)

	f.clearFlags()
	sys.Update(0)
	assert.Equal(t, components.DragInactive, d.State)
	assert.Equal(t, components.UINormal, uiState(f, parts))
}

func TestParamSliderPointerSystem_ClickWithoutMove(t *testing.T) {
	f := newSliderFixture(t)
	_, parts := f.addSlider(t, "gain", components.DefaultParamSliderConfig(), 0.5, 200, 20)
	placeSlider(t, f, parts)

	input := &mockPointerInput{x: 110, y: 110, pressed: true}
	sys := NewParamSliderPointerSystemWithInput(f.em, input)
	sys.Update(0)
	f.clearFlags()
	input.pressed = false
	sys.Update(0)

	assert.Equal(t, components.DragInactive, dragState(t, f, parts).State)
}

func TestParamSliderPointerSystem_Cancel(t *testing.T) {
	f := newSliderFixture(t)
	_, parts := f.addSlider(t, "gain", components.DefaultParamSliderConfig(), 0.5, 200, 20)
	placeSlider(t, f, parts)

	input := &mockPointerInput{x: 110, y: 110, pressed: true}
	sys := NewParamSliderPointerSystemWithInput(f.em, input)
	sys.Update(0)
	input.x = 120
	sys.Update(0)
	require.Equal(t, components.DragStart, dragState(t, f, parts).State)

	f.clearFlags()
	input.cancel = true
	sys.Update(0)
	assert.Equal(t, components.DragCanceled, dragState(t, f, parts).State)

	// 继续按住不会重新开始拖拽
	f.clearFlags()
	input.cancel = false
	input.x = 140
	sys.Update(0)
	assert.Equal(t, components.DragInactive, dragState(t, f, parts).State)
	sys.Update(0)
	assert.Equal(t, components.DragInactive, dragState(t, f, parts).State)
}

func TestParamSliderPointerSystem_PressOutsideHandle(t *testing.T) {
	f := newSliderFixture(t)
	_, parts := f.addSlider(t, "gain", components.DefaultParamSliderConfig(), 0.5, 200, 20)
	placeSlider(t, f, parts)

	input := &mockPointerInput{x: 250, y: 110, pressed: true}
	sys := NewParamSliderPointerSystemWithInput(f.em, input)
	sys.Update(0)

	// 按住移动到手柄上也不会开始拖拽
	input.x = 110
	sys.Update(0)

	assert.Equal(t, components.DragInactive, dragState(t, f, parts).State)
	assert.Equal(t, components.UIHovered, uiState(f, parts))
}

func TestParamSliderPointerSystem_SingleDragAcrossSliders(t *testing.T) {
	f := newSliderFixture(t)
	_, a := f.addSlider(t, "gain", components.DefaultParamSliderConfig(), 0.5, 200, 20)
	_, b := f.addSlider(t, "mix", components.DefaultParamSliderConfig(), 0.5, 200, 20)
	placeSlider(t, f, a)
	placeSlider(t, f, b)

	input := &mockPointerInput{x: 110, y: 110, pressed: true}
	NewParamSliderPointerSystemWithInput(f.em, input).Update(0)

	assert.Equal(t, components.DragMaybeDragged, dragState(t, f, a).State)
	assert.Equal(t, components.DragInactive, dragState(t, f, b).State)
}

func TestParamSliderWheelSystem(t *testing.T) {
	tests := []struct {
		name       string
		x, y       int
		dx, dy     float64
		wantHandle bool
		wantBar    bool
		wantAxis   components.ScrollAxis
	}{
		{name: "手柄优先", x: 110, y: 110, dy: 1, wantHandle: true, wantAxis: components.ScrollVertical},
		{name: "滑槽容器", x: 250, y: 110, dy: -1, wantBar: true, wantAxis: components.ScrollVertical},
		{name: "只有水平滚动", x: 250, y: 110, dx: 1, wantBar: true, wantAxis: components.ScrollHorizontal},
		{name: "指针不在滑块上", x: 10, y: 10, dy: 1},
		{name: "没有滚动", x: 110, y: 110},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSliderFixture(t)
			_, parts := f.addSlider(t, "gain", components.DefaultParamSliderConfig(), 0.5, 200, 20)
			placeSlider(t, f, parts)

			input := &mockWheelInput{x: tt.x, y: tt.y, dx: tt.dx, dy: tt.dy, unit: components.ScrollLine}
			NewParamSliderWheelSystemWithInput(f.em, input).Update(0)

			handle, _ := ecs.GetComponent[*components.ScrollableComponent](f.em, parts.Handle)
			bar, _ := ecs.GetComponent[*components.ScrollableComponent](f.em, parts.BarContainer)
			assert.Equal(t, tt.wantHandle, handle.Changed)
			assert.Equal(t, tt.wantBar, bar.Changed)

			for _, s := range []*components.ScrollableComponent{handle, bar} {
				if s.Changed {
					assert.Equal(t, tt.wantAxis, s.LastChange.Axis)
					assert.Equal(t, components.ScrollLine, s.LastChange.Unit)
				}
			}
		})
	}
}

func TestParamSliderLayoutSystem_Horizontal(t *testing.T) {
	f := newSliderFixture(t)
	id, parts := f.addSlider(t, "gain", components.HorizontalSlider("Gain", 0, 100, true), 0.5, 0, 0)
	pos, _ := ecs.GetComponent[*components.PositionComponent](f.em, id)
	pos.X, pos.Y = 10, 20
	ecs.AddComponent(f.em, id, &components.ParamSliderLayoutComponent{Length: 300})

	theme := testTheme()
	NewParamSliderLayoutSystem(f.em, theme).Update(0)

	bar, _ := ecs.GetComponent[*components.NodeComponent](f.em, parts.BarContainer)
	assert.Equal(t, float32(10+72+8), bar.X)
	assert.Equal(t, float32(20), bar.Y)
	assert.Equal(t, float32(300), bar.Width)
	assert.Equal(t, float32(16+2*8), bar.Height)
	assert.True(t, bar.Changed)

	handle, _ := ecs.GetComponent[*components.NodeComponent](f.em, parts.Handle)
	assert.Equal(t, float32(16), handle.Width)
	assert.Equal(t, float32(28), handle.Y)

	readout, _ := ecs.GetComponent[*components.NodeComponent](f.em, parts.ReadoutContainer)
	assert.Equal(t, float32(90+300+8), readout.X)
	assert.Equal(t, float32(56), readout.Width)

	root, _ := ecs.GetComponent[*components.NodeComponent](f.em, id)
	assert.Equal(t, float32(72+8+300+8+56), root.Width)

	// 尺寸不变时不再标记变化
	f.clearFlags()
	NewParamSliderLayoutSystem(f.em, theme).Update(0)
	assert.False(t, bar.Changed)
}

func TestParamSliderLayoutSystem_VerticalWithoutLabel(t *testing.T) {
	f := newSliderFixture(t)
	id, parts := f.addSlider(t, "mix", components.VerticalSlider("", 0, 1, false), 0.5, 0, 0)

	NewParamSliderLayoutSystem(f.em, testTheme()).Update(0)

	bar, _ := ecs.GetComponent[*components.NodeComponent](f.em, parts.BarContainer)
	assert.Equal(t, float32(0), bar.Y)
	assert.Equal(t, DefaultParamSliderLength, bar.Height)
	assert.Equal(t, float32(56), bar.Width)

	label, _ := ecs.GetComponent[*components.NodeComponent](f.em, parts.Label)
	assert.Zero(t, label.Height)

	root, _ := ecs.GetComponent[*components.NodeComponent](f.em, id)
	assert.Equal(t, DefaultParamSliderLength+8, root.Height)
}
