package systems

import (
	"log"

	"github.com/gonewx/paramslider/pkg/components"
	"github.com/gonewx/paramslider/pkg/ecs"
	"github.com/gonewx/paramslider/pkg/params"
)

const (
	// scrollLinePixels 一行滚动对应的像素数
	scrollLinePixels float32 = 5
	// scrollPixelsPerTrack 滚动多少像素对应整个滑块范围
	scrollPixelsPerTrack float32 = 100
)

// GestureOwner 查询当前持有编辑手势的滑块（*params.GestureLock 实现）
type GestureOwner interface {
	Owner() (ecs.EntityID, bool)
}

// ParamSliderScrollSystem 把滚动输入转换成 Ratio 变化
//
// 每次滚动是一个完整手势：Begin, Set, End 在同一帧发出。
// 只处理垂直滚动，向上滚动减小 Ratio。
// 任意滑块持有手势时滚动被忽略，Ratio 不变。
type ParamSliderScrollSystem struct {
	entityManager *ecs.EntityManager
	events        *params.EventQueue
	gestures      GestureOwner
}

// NewParamSliderScrollSystem 创建滚动系统
func NewParamSliderScrollSystem(em *ecs.EntityManager, events *params.EventQueue, gestures GestureOwner) *ParamSliderScrollSystem {
	return &ParamSliderScrollSystem{
		entityManager: em,
		events:        events,
		gestures:      gestures,
	}
}

// Update 处理本帧收到滚动的滑槽容器和手柄
func (s *ParamSliderScrollSystem) Update(deltaTime float64) {
	for _, entityID := range ecs.GetEntitiesWith1[*components.ScrollableComponent](s.entityManager) {
		scroll, _ := ecs.GetComponent[*components.ScrollableComponent](s.entityManager, entityID)
		if !scroll.Changed || scroll.LastChange == nil {
			continue
		}

		sliderID, ok := s.owningSlider(entityID)
		if !ok {
			continue
		}
		slider, ok := ecs.GetComponent[*components.ParamSliderComponent](s.entityManager, sliderID)
		if !ok {
			continue
		}

		s.apply(sliderID, slider, *scroll.LastChange)
	}
}

// owningSlider 滑槽容器或手柄所属的滑块
func (s *ParamSliderScrollSystem) owningSlider(entityID ecs.EntityID) (ecs.EntityID, bool) {
	if bar, ok := ecs.GetComponent[*components.ParamSliderBarComponent](s.entityManager, entityID); ok {
		return bar.Slider, true
	}
	if handle, ok := ecs.GetComponent[*components.ParamSliderHandleComponent](s.entityManager, entityID); ok {
		return handle.Slider, true
	}
	return ecs.InvalidEntity, false
}

func (s *ParamSliderScrollSystem) apply(sliderID ecs.EntityID, slider *components.ParamSliderComponent, change components.ScrollChange) {
	if change.Axis == components.ScrollHorizontal {
		return
	}

	// 拖拽手势进行中，滚动手势会被协议拒绝并打断拖拽
	if slider.IsDragging() {
		log.Printf("[ParamSliderScrollSystem] Ignoring scroll on slider %d during drag", sliderID)
		return
	}
	if owner, active := s.gestures.Owner(); active {
		log.Printf("[ParamSliderScrollSystem] Ignoring scroll on slider %d, gesture held by slider %d", sliderID, owner)
		return
	}

	offset := -change.Diff
	if change.Unit == components.ScrollLine {
		offset *= scrollLinePixels
	}

	slider.SetRatio(slider.Ratio + offset/scrollPixelsPerTrack)

	s.events.Send(
		params.BeginEvent(sliderID),
		params.SetEvent(sliderID, slider.Ratio),
		params.EndEvent(sliderID),
	)
}
