package params

import (
	"fmt"

	"github.com/gonewx/paramslider/pkg/ecs"
)

// Action 参数事件动作
type Action int

const (
	ActionBegin Action = iota
	ActionSet
	ActionEnd
)

func (a Action) String() string {
	switch a {
	case ActionBegin:
		return "begin"
	case ActionSet:
		return "set"
	case ActionEnd:
		return "end"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// ParamEvent 滑块发给手势协议的事件
type ParamEvent struct {
	ID     ecs.EntityID // 滑块根实体
	Action Action
	Value  float32 // 仅 ActionSet 使用，归一化值
}

// BeginEvent 创建 Begin 事件
func BeginEvent(id ecs.EntityID) ParamEvent {
	return ParamEvent{ID: id, Action: ActionBegin}
}

// SetEvent 创建 Set 事件
func SetEvent(id ecs.EntityID, normalized float32) ParamEvent {
	return ParamEvent{ID: id, Action: ActionSet, Value: normalized}
}

// EndEvent 创建 End 事件
func EndEvent(id ecs.EntityID) ParamEvent {
	return ParamEvent{ID: id, Action: ActionEnd}
}

func (e ParamEvent) String() string {
	if e.Action == ActionSet {
		return fmt.Sprintf("%s(%d, %.4f)", e.Action, e.ID, e.Value)
	}
	return fmt.Sprintf("%s(%d)", e.Action, e.ID)
}

// EventQueue 单帧内的参数事件队列
//
// 输入系统按发送顺序写入，手势系统在同一帧内一次性取出处理。
type EventQueue struct {
	events []ParamEvent
}

// NewEventQueue 创建空队列
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Send 追加事件
func (q *EventQueue) Send(events ...ParamEvent) {
	q.events = append(q.events, events...)
}

// Len 队列中未处理的事件数量
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Drain 按发送顺序取出全部事件并清空队列
func (q *EventQueue) Drain() []ParamEvent {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}
