package systems

import (
	"github.com/gonewx/paramslider/pkg/components"
	"github.com/gonewx/paramslider/pkg/ecs"
	"github.com/gonewx/paramslider/pkg/utils"
)

// WheelInput 滚轮输入接口
// 用于依赖注入，支持测试时 mock
type WheelInput interface {
	CursorPosition() (int, int)
	// Wheel 本帧滚动量和单位，向上/向右为正
	Wheel() (dx, dy float64, unit components.ScrollUnit)
}

// ebitenWheelInput Ebitengine 默认实现
type ebitenWheelInput struct{}

func (e *ebitenWheelInput) CursorPosition() (int, int) {
	return utils.GetPointerPosition()
}

func (e *ebitenWheelInput) Wheel() (float64, float64, components.ScrollUnit) {
	dx, dy := utils.GetWheel()
	return dx, dy, components.ScrollLine
}

var defaultWheelInput WheelInput = &ebitenWheelInput{}

// ParamSliderWheelSystem 把滚轮输入投递给指针下方的可滚动节点
//
// 手柄优先于滑槽容器；每帧最多投递给一个节点。
// 垂直滚动优先，只有水平滚动时按水平方向投递（由滚动系统忽略）。
type ParamSliderWheelSystem struct {
	entityManager *ecs.EntityManager
	input         WheelInput
}

// NewParamSliderWheelSystem 创建滚轮输入系统
func NewParamSliderWheelSystem(em *ecs.EntityManager) *ParamSliderWheelSystem {
	return &ParamSliderWheelSystem{
		entityManager: em,
		input:         defaultWheelInput,
	}
}

// NewParamSliderWheelSystemWithInput 创建带自定义输入的滚轮系统（用于测试）
func NewParamSliderWheelSystemWithInput(em *ecs.EntityManager, input WheelInput) *ParamSliderWheelSystem {
	return &ParamSliderWheelSystem{
		entityManager: em,
		input:         input,
	}
}

// Update 投递本帧的滚动
func (s *ParamSliderWheelSystem) Update(deltaTime float64) {
	dx, dy, unit := s.input.Wheel()
	if dx == 0 && dy == 0 {
		return
	}

	change := components.ScrollChange{Axis: components.ScrollVertical, Diff: float32(dy), Unit: unit}
	if dy == 0 {
		change = components.ScrollChange{Axis: components.ScrollHorizontal, Diff: float32(dx), Unit: unit}
	}

	cx, cy := s.input.CursorPosition()
	target, ok := s.hitTest(float32(cx), float32(cy))
	if !ok {
		return
	}

	scroll, _ := ecs.GetComponent[*components.ScrollableComponent](s.entityManager, target)
	scroll.Deliver(change)
}

// hitTest 查找指针下方的手柄，其次是滑槽容器
func (s *ParamSliderWheelSystem) hitTest(x, y float32) (ecs.EntityID, bool) {
	handles := ecs.GetEntitiesWith3[
		*components.ScrollableComponent,
		*components.NodeComponent,
		*components.ParamSliderHandleComponent,
	](s.entityManager)
	if id, ok := s.firstContaining(handles, x, y); ok {
		return id, true
	}

	bars := ecs.GetEntitiesWith3[
		*components.ScrollableComponent,
		*components.NodeComponent,
		*components.ParamSliderBarComponent,
	](s.entityManager)
	return s.firstContaining(bars, x, y)
}

func (s *ParamSliderWheelSystem) firstContaining(ids []ecs.EntityID, x, y float32) (ecs.EntityID, bool) {
	for _, id := range ids {
		node, _ := ecs.GetComponent[*components.NodeComponent](s.entityManager, id)
		if node.Contains(x, y) {
			return id, true
		}
	}
	return ecs.InvalidEntity, false
}
