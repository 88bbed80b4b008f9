package params

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gonewx/paramslider/pkg/ecs"
)

// ErrProtocolViolation 手势协议违规（errors.Is 匹配所有 *ProtocolViolation）
var ErrProtocolViolation = errors.New("gesture protocol violation")

// ErrParamNotBound 事件指向的实体没有绑定参数
var ErrParamNotBound = errors.New("entity has no bound parameter")

// ProtocolViolation 手势协议违规
//
// 出现在以下情况：
//   - 已有手势进行中时再次 Begin（无论是哪个滑块）
//   - 没有手势或手势属于其他滑块时 Set / End
//
// 违规事件被拒绝，锁状态保持不变。
type ProtocolViolation struct {
	Action Action
	Slider ecs.EntityID // 发出事件的滑块
	Holder ecs.EntityID // 当前持有锁的滑块，空闲时为 ecs.InvalidEntity
}

func (e *ProtocolViolation) Error() string {
	switch {
	case e.Action == ActionBegin:
		return fmt.Sprintf("cannot begin gesture for slider %d: slider %d is already being modified", e.Slider, e.Holder)
	case e.Holder == ecs.InvalidEntity:
		return fmt.Sprintf("cannot %s slider %d without starting a gesture", e.Action, e.Slider)
	default:
		return fmt.Sprintf("cannot %s slider %d during gesture of slider %d", e.Action, e.Slider, e.Holder)
	}
}

// Is 让 errors.Is(err, ErrProtocolViolation) 成立
func (e *ProtocolViolation) Is(target error) bool {
	return target == ErrProtocolViolation
}

// GestureLock 全局手势锁
//
// 同一时刻所有滑块中最多只有一个处于 Active 状态；
// 对宿主的 BeginEdit/SetNormalized/EndEdit 只能经由这里发出。
type GestureLock struct {
	mu      sync.Mutex
	ctx     GuiContext
	owner   ecs.EntityID
	session EditSession
}

// NewGestureLock 创建空闲状态的手势锁
func NewGestureLock(ctx GuiContext) *GestureLock {
	return &GestureLock{ctx: ctx}
}

// Owner 返回当前持有锁的滑块
func (l *GestureLock) Owner() (ecs.EntityID, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.owner, l.owner != ecs.InvalidEntity
}

// Begin Idle → Active(id)，并通知宿主开始编辑 p
func (l *GestureLock) Begin(id ecs.EntityID, p Param) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.owner != ecs.InvalidEntity {
		return &ProtocolViolation{Action: ActionBegin, Slider: id, Holder: l.owner}
	}

	session, err := l.ctx.BeginEdit(p)
	if err != nil {
		return fmt.Errorf("begin edit for slider %d: %w", id, err)
	}

	l.owner = id
	l.session = session
	return nil
}

// Set 在 Active(id) 中写入归一化值
//
// value 由调用方限制在 0~1，这里不再处理。
func (l *GestureLock) Set(id ecs.EntityID, value float32) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.owner == ecs.InvalidEntity || l.owner != id {
		return &ProtocolViolation{Action: ActionSet, Slider: id, Holder: l.owner}
	}

	if err := l.ctx.SetNormalized(l.session, value); err != nil {
		return fmt.Errorf("set value for slider %d: %w", id, err)
	}
	return nil
}

// End Active(id) → Idle，并通知宿主结束编辑
//
// 宿主返回错误时锁仍然会被释放，避免后续手势全部被拒绝。
func (l *GestureLock) End(id ecs.EntityID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.owner == ecs.InvalidEntity || l.owner != id {
		return &ProtocolViolation{Action: ActionEnd, Slider: id, Holder: l.owner}
	}

	err := l.ctx.EndEdit(l.session)
	l.owner = ecs.InvalidEntity
	l.session = EditSession{}
	if err != nil {
		return fmt.Errorf("end edit for slider %d: %w", id, err)
	}
	return nil
}
