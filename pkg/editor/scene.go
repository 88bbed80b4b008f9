package editor

import (
	"fmt"
	"image/color"
	"log"

	"github.com/gonewx/paramslider/pkg/components"
	"github.com/gonewx/paramslider/pkg/config"
	"github.com/gonewx/paramslider/pkg/ecs"
	"github.com/gonewx/paramslider/pkg/entities"
	"github.com/gonewx/paramslider/pkg/params"
	"github.com/gonewx/paramslider/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// backgroundColor 编辑器背景色
var backgroundColor = color.RGBA{R: 24, G: 24, B: 32, A: 255}

// Option 编辑器场景选项
type Option func(*options)

type options struct {
	pointer systems.PointerInput
	wheel   systems.WheelInput
}

// WithPointerInput 替换指针输入（用于测试）
func WithPointerInput(input systems.PointerInput) Option {
	return func(o *options) { o.pointer = input }
}

// WithWheelInput 替换滚轮输入（用于测试）
func WithWheelInput(input systems.WheelInput) Option {
	return func(o *options) { o.wheel = input }
}

// Scene 参数滑块编辑器场景
//
// 持有实体管理器、宿主参数存储和全局手势锁，每帧按以下顺序执行系统：
// 指针拖拽输入、滚轮输入、布局、滚动、拖拽、手势协议、滑槽尺寸监听、
// 手柄同步、读数同步、清除变化标记。
type Scene struct {
	entityManager *ecs.EntityManager
	store         *params.Store
	events        *params.EventQueue
	lock          *params.GestureLock

	pipeline     *Pipeline
	renderSystem *systems.ParamSliderRenderSystem

	// 参数ID -> 滑块根实体
	sliders map[string]ecs.EntityID

	// 累计被拒绝的手势事件帧数
	rejectedFrames int
	lastErr        error
}

// NewScene 根据配置创建编辑器场景
//
// 参数必须已经注册到 store（见 RegisterParams）；
// 滑块引用的参数不存在或不是连续浮点类型时返回错误。
func NewScene(cfg *config.EditorConfig, store *params.Store, opts ...Option) (*Scene, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Scene{
		entityManager: ecs.NewEntityManager(),
		store:         store,
		events:        params.NewEventQueue(),
		sliders:       make(map[string]ecs.EntityID),
	}
	s.lock = params.NewGestureLock(store)

	for i, sc := range cfg.Sliders {
		p, ok := store.Get(sc.Param)
		if !ok {
			return nil, fmt.Errorf("sliders[%d]: %w: %s", i, params.ErrUnknownParam, sc.Param)
		}

		id, _, err := entities.NewParamSliderEntity(
			s.entityManager,
			SliderConfigFromConfig(sc),
			p,
			components.PositionComponent{X: sc.X, Y: sc.Y},
		)
		if err != nil {
			return nil, fmt.Errorf("sliders[%d]: %w", i, err)
		}
		ecs.AddComponent(s.entityManager, id, &components.ParamSliderLayoutComponent{Length: sc.Length})
		s.sliders[sc.Param] = id
	}

	pointer := systems.NewParamSliderPointerSystem(s.entityManager)
	if o.pointer != nil {
		pointer = systems.NewParamSliderPointerSystemWithInput(s.entityManager, o.pointer)
	}
	wheel := systems.NewParamSliderWheelSystem(s.entityManager)
	if o.wheel != nil {
		wheel = systems.NewParamSliderWheelSystemWithInput(s.entityManager, o.wheel)
	}
	gesture := systems.NewParamGestureSystem(s.entityManager, s.events, s.lock)

	s.pipeline = NewPipeline(
		System("pointer", pointer),
		System("wheel", wheel),
		System("layout", systems.NewParamSliderLayoutSystem(s.entityManager, cfg.Theme)),
		System("scroll", systems.NewParamSliderScrollSystem(s.entityManager, s.events, s.lock)),
		System("drag", systems.NewParamSliderDragSystem(s.entityManager, s.events)),
		Step{Name: "gesture", Update: gesture.Update},
		System("bar-change", systems.NewParamSliderBarChangeSystem(s.entityManager)),
		System("handle", systems.NewParamSliderHandleSystem(s.entityManager)),
		System("readout", systems.NewParamSliderReadoutSystem(s.entityManager)),
		System("reset", systems.NewChangeResetSystem(s.entityManager)),
	)
	s.renderSystem = systems.NewParamSliderRenderSystem(s.entityManager)

	log.Printf("[Editor] Scene created with %d sliders", len(s.sliders))
	return s, nil
}

// Update 执行一帧
//
// 被拒绝的手势事件已由手势系统记录，这里只统计并保留最后一次错误。
func (s *Scene) Update(deltaTime float64) {
	if err := s.pipeline.Update(deltaTime); err != nil {
		s.rejectedFrames++
		s.lastErr = err
	}
}

// Draw 绘制所有滑块
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.renderSystem.Draw(screen)
}

// SaveOnExit 退出时保存参数值
func (s *Scene) SaveOnExit() bool {
	// 手势进行中退出时先结束手势，宿主不会留下打开的编辑会话
	if owner, active := s.lock.Owner(); active {
		if err := s.lock.End(owner); err != nil {
			log.Printf("[Editor] Warning: failed to end gesture of slider %d on exit: %v", owner, err)
		}
	}

	if err := s.store.Save(); err != nil {
		log.Printf("[Editor] Warning: failed to save params: %v", err)
		return false
	}
	return true
}

// EntityManager 返回场景的实体管理器
func (s *Scene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Slider 按参数ID查找滑块根实体
func (s *Scene) Slider(paramID string) (ecs.EntityID, bool) {
	id, ok := s.sliders[paramID]
	return id, ok
}

// SliderPart 按名称查找滑块的子元素（供通用样式代码使用）
func (s *Scene) SliderPart(paramID, part string) (ecs.EntityID, error) {
	id, ok := s.sliders[paramID]
	if !ok {
		return ecs.InvalidEntity, fmt.Errorf("%w: %s", params.ErrUnknownParam, paramID)
	}
	slider, ok := ecs.GetComponent[*components.ParamSliderComponent](s.entityManager, id)
	if !ok {
		return ecs.InvalidEntity, fmt.Errorf("slider %d has no slider component", id)
	}
	return slider.Parts.Part(part)
}

// GestureOwner 当前持有手势锁的滑块
func (s *Scene) GestureOwner() (ecs.EntityID, bool) {
	return s.lock.Owner()
}

// LastError 最近一次被拒绝的手势事件，没有时为 nil
func (s *Scene) LastError() error {
	return s.lastErr
}

// RejectedFrames 出现过被拒绝事件的帧数
func (s *Scene) RejectedFrames() int {
	return s.rejectedFrames
}

// PipelineSteps 返回每帧执行的步骤名称
func (s *Scene) PipelineSteps() []string {
	return s.pipeline.Steps()
}
