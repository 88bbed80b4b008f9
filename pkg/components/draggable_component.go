package components

import "fmt"

// Vec2 二维向量（像素）
type Vec2 struct {
	X, Y float32
}

// DragState 拖拽状态
//
// 正常流程：Inactive → MaybeDragged（按下）→ DragStart（首次移动）
// → Dragging（持续移动）→ DragEnd（松开）→ Inactive；
// 拖拽中按下取消键进入 DragCanceled，下一帧回到 Inactive。
type DragState int

const (
	DragInactive DragState = iota
	DragMaybeDragged
	DragStart
	Dragging
	DragEnd
	DragCanceled
)

func (s DragState) String() string {
	switch s {
	case DragInactive:
		return "Inactive"
	case DragMaybeDragged:
		return "MaybeDragged"
	case DragStart:
		return "DragStart"
	case Dragging:
		return "Dragging"
	case DragEnd:
		return "DragEnd"
	case DragCanceled:
		return "DragCanceled"
	default:
		return fmt.Sprintf("DragState(%d)", int(s))
	}
}

// DraggableComponent 可拖拽节点的每帧拖拽状态
type DraggableComponent struct {
	State DragState

	// 本帧指针位移，没有位移时为 nil
	Diff *Vec2

	// 拖拽起点和上一帧的指针位置
	Origin   Vec2
	Position Vec2

	// 本帧状态发生了变化（输入系统设置，帧末清除）
	Changed bool
}

// SetState 更新状态和位移并标记变化
func (d *DraggableComponent) SetState(state DragState, diff *Vec2) {
	d.State = state
	d.Diff = diff
	d.Changed = true
}
