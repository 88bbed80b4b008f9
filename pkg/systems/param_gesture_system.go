package systems

import (
	"errors"
	"fmt"
	"log"

	"github.com/gonewx/paramslider/pkg/components"
	"github.com/gonewx/paramslider/pkg/ecs"
	"github.com/gonewx/paramslider/pkg/params"
)

// ParamGestureSystem 按发送顺序把本帧的参数事件交给全局手势锁
//
// 违规事件被拒绝并记录警告，不影响后续事件；
// Update 返回本帧所有错误（errors.Join），调用方可以用 errors.Is 检查
// params.ErrProtocolViolation。
type ParamGestureSystem struct {
	entityManager *ecs.EntityManager
	events        *params.EventQueue
	lock          *params.GestureLock
}

// NewParamGestureSystem 创建手势系统
func NewParamGestureSystem(em *ecs.EntityManager, events *params.EventQueue, lock *params.GestureLock) *ParamGestureSystem {
	return &ParamGestureSystem{
		entityManager: em,
		events:        events,
		lock:          lock,
	}
}

// Update 处理本帧全部事件
func (s *ParamGestureSystem) Update(deltaTime float64) error {
	var errs []error
	for _, event := range s.events.Drain() {
		if err := s.apply(event); err != nil {
			log.Printf("[ParamGestureSystem] Warning: rejected %s: %v", event, err)
			errs = append(errs, fmt.Errorf("%s: %w", event, err))
		}
	}
	return errors.Join(errs...)
}

func (s *ParamGestureSystem) apply(event params.ParamEvent) error {
	switch event.Action {
	case params.ActionBegin:
		// 只有 Begin 需要参数句柄；Set/End 使用锁里的编辑会话，
		// 滑块在手势中被销毁时仍然可以结束手势
		binding, ok := ecs.GetComponent[*components.ParamBindingComponent](s.entityManager, event.ID)
		if !ok || binding.Param == nil {
			return fmt.Errorf("slider %d: %w", event.ID, params.ErrParamNotBound)
		}
		return s.lock.Begin(event.ID, binding.Param)
	case params.ActionSet:
		return s.lock.Set(event.ID, event.Value)
	case params.ActionEnd:
		return s.lock.End(event.ID)
	default:
		return fmt.Errorf("unknown action %s", event.Action)
	}
}
