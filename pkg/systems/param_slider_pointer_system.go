package systems

import (
	"github.com/gonewx/paramslider/pkg/components"
	"github.com/gonewx/paramslider/pkg/ecs"
	"github.com/gonewx/paramslider/pkg/utils"
)

// PointerInput 指针输入接口
// 用于依赖注入，支持测试时 mock
type PointerInput interface {
	CursorPosition() (int, int)
	IsPointerPressed() bool
	// IsCancelPressed 本帧是否按下了取消键
	IsCancelPressed() bool
}

// ebitenPointerInput Ebitengine 默认实现
type ebitenPointerInput struct{}

func (e *ebitenPointerInput) CursorPosition() (int, int) {
	return utils.GetPointerPosition()
}

func (e *ebitenPointerInput) IsPointerPressed() bool {
	// 使用支持触摸的按下检测
	return utils.IsPointerPressed()
}

func (e *ebitenPointerInput) IsCancelPressed() bool {
	return utils.IsCancelJustPressed()
}

// defaultPointerInput 默认指针输入实例
var defaultPointerInput PointerInput = &ebitenPointerInput{}

// ParamSliderPointerSystem 把指针输入翻译成手柄的拖拽状态
//
// 职责：
//   - 按下时检测指针是否在手柄上（使用上一帧布局的节点矩形）
//   - 维护 DraggableComponent 的状态机并写入每帧位移
//   - 更新手柄的 UIComponent 悬停/按下状态
//
// 数值计算和手势协议由 ParamSliderDragSystem 处理。
type ParamSliderPointerSystem struct {
	entityManager *ecs.EntityManager
	input         PointerInput

	// 上一帧指针是否按下，用于检测"刚按下"
	wasPressed bool
}

// NewParamSliderPointerSystem 创建指针拖拽输入系统
func NewParamSliderPointerSystem(em *ecs.EntityManager) *ParamSliderPointerSystem {
	return &ParamSliderPointerSystem{
		entityManager: em,
		input:         defaultPointerInput,
	}
}

// NewParamSliderPointerSystemWithInput 创建带自定义输入的指针系统（用于测试）
func NewParamSliderPointerSystemWithInput(em *ecs.EntityManager, input PointerInput) *ParamSliderPointerSystem {
	return &ParamSliderPointerSystem{
		entityManager: em,
		input:         input,
	}
}

// Update 更新所有手柄的拖拽状态
func (s *ParamSliderPointerSystem) Update(deltaTime float64) {
	cx, cy := s.input.CursorPosition()
	cursor := components.Vec2{X: float32(cx), Y: float32(cy)}
	pressed := s.input.IsPointerPressed()
	justPressed := pressed && !s.wasPressed
	cancel := s.input.IsCancelPressed()
	s.wasPressed = pressed

	entities := ecs.GetEntitiesWith3[
		*components.DraggableComponent,
		*components.NodeComponent,
		*components.ParamSliderHandleComponent,
	](s.entityManager)

	// 同一时刻只允许一个手柄进入拖拽
	claimed := false
	for _, entityID := range entities {
		drag, _ := ecs.GetComponent[*components.DraggableComponent](s.entityManager, entityID)
		if drag.State != components.DragInactive {
			claimed = true
			break
		}
	}

	for _, entityID := range entities {
		drag, _ := ecs.GetComponent[*components.DraggableComponent](s.entityManager, entityID)
		node, _ := ecs.GetComponent[*components.NodeComponent](s.entityManager, entityID)

		hovered := node.Contains(cursor.X, cursor.Y)

		switch drag.State {
		case components.DragEnd, components.DragCanceled:
			drag.SetState(components.DragInactive, nil)
			claimed = false

		case components.DragInactive:
			if justPressed && hovered && !claimed {
				drag.Origin = cursor
				drag.Position = cursor
				drag.SetState(components.DragMaybeDragged, nil)
				claimed = true
			}

		case components.DragMaybeDragged:
			switch {
			case !pressed:
				// 按下后没有移动就松开，不算拖拽
				drag.SetState(components.DragInactive, nil)
			case cursor != drag.Position:
				diff := s.advance(drag, cursor)
				drag.SetState(components.DragStart, diff)
			}

		case components.DragStart, components.Dragging:
			switch {
			case cancel:
				drag.Position = cursor
				drag.SetState(components.DragCanceled, nil)
			case !pressed:
				diff := s.advance(drag, cursor)
				drag.SetState(components.DragEnd, diff)
			case cursor != drag.Position:
				diff := s.advance(drag, cursor)
				drag.SetState(components.Dragging, diff)
			}
		}

		s.updateUIState(entityID, drag, hovered)
	}
}

// advance 计算相对上一帧的位移并记录当前位置，没有位移时返回 nil
func (s *ParamSliderPointerSystem) advance(drag *components.DraggableComponent, cursor components.Vec2) *components.Vec2 {
	diff := components.Vec2{X: cursor.X - drag.Position.X, Y: cursor.Y - drag.Position.Y}
	drag.Position = cursor
	if diff.X == 0 && diff.Y == 0 {
		return nil
	}
	return &diff
}

// updateUIState 根据拖拽和悬停状态更新手柄颜色状态
func (s *ParamSliderPointerSystem) updateUIState(entityID ecs.EntityID, drag *components.DraggableComponent, hovered bool) {
	ui, ok := ecs.GetComponent[*components.UIComponent](s.entityManager, entityID)
	if !ok {
		return
	}

	switch {
	case drag.State == components.DragMaybeDragged ||
		drag.State == components.DragStart ||
		drag.State == components.Dragging:
		ui.State = components.UIClicked
	case hovered:
		ui.State = components.UIHovered
	default:
		ui.State = components.UINormal
	}
}
