package systems

import (
	"github.com/gonewx/paramslider/pkg/components"
	"github.com/gonewx/paramslider/pkg/ecs"
	"github.com/gonewx/paramslider/pkg/params"
)

// ParamSliderDragSystem 把手柄的拖拽状态转换成 Ratio 变化和手势事件
//
// 状态处理：
//   - DragStart: 记录 Ratio 快照，发出 Begin，有位移时按 Dragging 处理
//   - Dragging: 按位移更新 Ratio，发出 Set
//   - DragEnd: 按 Dragging 处理，然后发出 End 并清除快照
//   - DragCanceled: 恢复快照，发出 Set 和 End
//
// 位移换算：Ratio 变化 = 轴向位移 / (滑槽长度 - 手柄长度)，垂直方向向上为正。
// 可移动距离不为正或轴向位移为 0 时不改变 Ratio，也不发出 Set。
type ParamSliderDragSystem struct {
	entityManager *ecs.EntityManager
	events        *params.EventQueue
}

// NewParamSliderDragSystem 创建拖拽系统
func NewParamSliderDragSystem(em *ecs.EntityManager, events *params.EventQueue) *ParamSliderDragSystem {
	return &ParamSliderDragSystem{
		entityManager: em,
		events:        events,
	}
}

// Update 处理本帧拖拽状态发生变化的手柄
func (s *ParamSliderDragSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[
		*components.DraggableComponent,
		*components.ParamSliderHandleComponent,
	](s.entityManager)

	for _, entityID := range entities {
		drag, _ := ecs.GetComponent[*components.DraggableComponent](s.entityManager, entityID)
		if !drag.Changed {
			continue
		}
		handle, _ := ecs.GetComponent[*components.ParamSliderHandleComponent](s.entityManager, entityID)

		sliderID := handle.Slider
		slider, ok := ecs.GetComponent[*components.ParamSliderComponent](s.entityManager, sliderID)
		if !ok {
			continue
		}

		switch drag.State {
		case components.DragInactive, components.DragMaybeDragged:
			continue

		case components.DragCanceled:
			if slider.BaseRatio != nil {
				slider.SetRatio(*slider.BaseRatio)
				slider.ClearDrag()
				s.events.Send(
					params.SetEvent(sliderID, slider.Ratio),
					params.EndEvent(sliderID),
				)
			}
			continue

		case components.DragStart:
			slider.BeginDrag()
			s.events.Send(params.BeginEvent(sliderID))
		}

		// DragStart / Dragging / DragEnd
		if s.applyDiff(slider, entityID, drag.Diff) {
			s.events.Send(params.SetEvent(sliderID, slider.Ratio))
		}

		if drag.State == components.DragEnd {
			slider.ClearDrag()
			s.events.Send(params.EndEvent(sliderID))
		}
	}
}

// applyDiff 按位移更新 Ratio，返回是否发生了更新
func (s *ParamSliderDragSystem) applyDiff(slider *components.ParamSliderComponent, handleID ecs.EntityID, diff *components.Vec2) bool {
	if diff == nil {
		return false
	}

	barNode, ok := ecs.GetComponent[*components.NodeComponent](s.entityManager, slider.Parts.BarContainer)
	if !ok {
		return false
	}
	handleNode, ok := ecs.GetComponent[*components.NodeComponent](s.entityManager, handleID)
	if !ok {
		return false
	}

	var travel, delta float32
	if slider.Config.Axis == components.AxisVertical {
		travel = barNode.Height - handleNode.Height
		delta = -diff.Y
	} else {
		travel = barNode.Width - handleNode.Width
		delta = diff.X
	}

	if travel <= 0 || delta == 0 {
		return false
	}

	slider.SetRatio(slider.Ratio + delta/travel)
	return true
}
