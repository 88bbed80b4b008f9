package systems

import (
	"fmt"
	"testing"

	"github.com/gonewx/paramslider/pkg/components"
	"github.com/gonewx/paramslider/pkg/config"
	"github.com/gonewx/paramslider/pkg/ecs"
	"github.com/gonewx/paramslider/pkg/entities"
	"github.com/gonewx/paramslider/pkg/params"
	"github.com/stretchr/testify/require"
)

// sliderFixture 一个已经完成布局的滑块及其宿主
type sliderFixture struct {
	em     *ecs.EntityManager
	store  *params.Store
	events *params.EventQueue
	lock   *params.GestureLock

	// 宿主收到的调用，例如 "begin gain" / "set gain 0.40" / "end gain"
	host []string
}

func newSliderFixture(t *testing.T) *sliderFixture {
	t.Helper()

	f := &sliderFixture{
		em:     ecs.NewEntityManager(),
		store:  params.NewStore(nil),
		events: params.NewEventQueue(),
	}
	f.lock = params.NewGestureLock(f.store)
	f.store.Subscribe(func(c params.Change) {
		switch c.Kind {
		case params.ChangeSet:
			f.host = append(f.host, fmt.Sprintf("set %s %.2f", c.ParamID, c.Value))
		default:
			f.host = append(f.host, fmt.Sprintf("%s %s", c.Kind, c.ParamID))
		}
	})
	return f
}

// addSlider 创建滑块并直接设置几何尺寸（不经过布局系统）
//
// track 是滑槽容器沿主轴的长度，handle 是手柄边长。
func (f *sliderFixture) addSlider(t *testing.T, paramID string, cfg components.ParamSliderConfig, ratio, track, handle float32) (ecs.EntityID, components.ParamSliderParts) {
	t.Helper()

	p := params.NewFloatParam(paramID, paramID, 0, 1, ratio)
	require.NoError(t, f.store.Add(p))

	id, parts, err := entities.NewParamSliderEntity(f.em, cfg, p, components.PositionComponent{})
	require.NoError(t, err)

	bar, _ := ecs.GetComponent[*components.NodeComponent](f.em, parts.BarContainer)
	h, _ := ecs.GetComponent[*components.NodeComponent](f.em, parts.Handle)
	if cfg.Axis == components.AxisVertical {
		bar.Width, bar.Height = handle, track
	} else {
		bar.Width, bar.Height = track, handle
	}
	h.Width, h.Height = handle, handle

	return id, parts
}

func (f *sliderFixture) slider(t *testing.T, id ecs.EntityID) *components.ParamSliderComponent {
	t.Helper()
	s, ok := ecs.GetComponent[*components.ParamSliderComponent](f.em, id)
	require.True(t, ok)
	return s
}

// drag 直接设置手柄的拖拽状态（模拟指针系统的输出）
func (f *sliderFixture) drag(t *testing.T, parts components.ParamSliderParts, state components.DragState, diff *components.Vec2) {
	t.Helper()
	d, ok := ecs.GetComponent[*components.DraggableComponent](f.em, parts.Handle)
	require.True(t, ok)
	d.SetState(state, diff)
}

// clearFlags 模拟帧末清除
func (f *sliderFixture) clearFlags() {
	NewChangeResetSystem(f.em).Update(0)
}

func vec(x, y float32) *components.Vec2 {
	return &components.Vec2{X: x, Y: y}
}

func testTheme() config.ThemeConfig {
	return config.DefaultTheme()
}
