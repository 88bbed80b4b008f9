package entities

import (
	"errors"
	"fmt"
	"log"

	"github.com/gonewx/paramslider/pkg/components"
	"github.com/gonewx/paramslider/pkg/ecs"
	"github.com/gonewx/paramslider/pkg/params"
)

// ErrUnsupportedParamKind 参数类型不能用滑块编辑
var ErrUnsupportedParamKind = errors.New("parameter type not supported by slider")

// ErrNilParam 没有传入参数句柄
var ErrNilParam = errors.New("slider requires a parameter handle")

// UnsupportedParamKindError 参数不是连续浮点类型
type UnsupportedParamKindError struct {
	ParamID string
	Kind    params.Kind
}

func (e *UnsupportedParamKindError) Error() string {
	return fmt.Sprintf("parameter %q of kind %s not supported by slider", e.ParamID, e.Kind)
}

// Is 让 errors.Is(err, ErrUnsupportedParamKind) 成立
func (e *UnsupportedParamKindError) Is(target error) bool {
	return target == ErrUnsupportedParamKind
}

// NewParamSliderEntity 创建参数滑块
//
// 实体结构：
//
//	根节点 (ParamSliderComponent + ParamBindingComponent)
//	├── 标签
//	├── 滑槽容器 (可滚动)
//	│   └── 滑槽
//	│       └── 手柄 (可拖拽、可滚动)
//	└── 读数容器
//	    └── 读数
//
// 参数：
//   - em: 实体管理器
//   - cfg: 滑块配置（Min 必须小于 Max）
//   - param: 宿主参数句柄，必须是 params.KindFloat
//   - pos: 根节点在屏幕上的位置
//
// 返回：
//   - ecs.EntityID: 根实体ID
//   - components.ParamSliderParts: 各子元素实体ID
//   - error: 参数类型不支持或配置无效时返回错误，此时不会创建任何实体
func NewParamSliderEntity(
	em *ecs.EntityManager,
	cfg components.ParamSliderConfig,
	param params.Param,
	pos components.PositionComponent,
) (ecs.EntityID, components.ParamSliderParts, error) {
	var parts components.ParamSliderParts

	if param == nil {
		return ecs.InvalidEntity, parts, ErrNilParam
	}
	if param.Kind() != params.KindFloat {
		return ecs.InvalidEntity, parts, &UnsupportedParamKindError{ParamID: param.ID(), Kind: param.Kind()}
	}
	if err := cfg.Validate(); err != nil {
		return ecs.InvalidEntity, parts, fmt.Errorf("slider for %q: %w", param.ID(), err)
	}

	name := "Slider"
	if cfg.HasLabel() {
		name = fmt.Sprintf("Slider [%s]", cfg.Label)
	}

	sliderID := em.CreateEntity()

	// 标签
	parts.Label = newNode(em, "Label")
	ecs.AddComponent(em, parts.Label, &components.TextComponent{Text: cfg.Label})
	ecs.AddComponent(em, parts.Label, &components.VisibilityComponent{Visible: cfg.HasLabel()})

	// 滑槽容器：接收滚动
	parts.BarContainer = newNode(em, "Bar Container")
	ecs.AddComponent(em, parts.BarContainer, &components.ParamSliderBarComponent{Slider: sliderID})
	ecs.AddComponent(em, parts.BarContainer, &components.ScrollableComponent{})

	parts.Bar = newNode(em, "Slider Bar")

	// 手柄：接收拖拽和滚动
	parts.Handle = newNode(em, "Handle")
	ecs.AddComponent(em, parts.Handle, &components.StyleComponent{})
	ecs.AddComponent(em, parts.Handle, &components.UIComponent{State: components.UINormal})
	ecs.AddComponent(em, parts.Handle, &components.ParamSliderHandleComponent{Slider: sliderID})
	ecs.AddComponent(em, parts.Handle, &components.DraggableComponent{})
	ecs.AddComponent(em, parts.Handle, &components.ScrollableComponent{})

	// 读数
	parts.ReadoutContainer = newNode(em, "Readout")
	ecs.AddComponent(em, parts.ReadoutContainer, &components.VisibilityComponent{Visible: cfg.ShowReadout})
	parts.Readout = newNode(em, "Readout Text")
	ecs.AddComponent(em, parts.Readout, &components.TextComponent{})

	// 根节点
	ecs.AddComponent(em, sliderID, &components.NameComponent{Name: name})
	ecs.AddComponent(em, sliderID, &components.NodeComponent{})
	ecs.AddComponent(em, sliderID, &components.PositionComponent{X: pos.X, Y: pos.Y})
	ecs.AddComponent(em, sliderID, &components.ParamBindingComponent{Param: param})
	ecs.AddComponent(em, sliderID, &components.ParamSliderComponent{
		Ratio:  param.Normalized(),
		Config: cfg,
		Parts:  parts,
		// 首帧需要计算手柄位置和读数
		Changed: true,
	})

	log.Printf("[UI Factory] Created %s (ID: %d) for param %q, axis=%s, ratio=%.3f",
		name, sliderID, param.ID(), cfg.Axis, param.Normalized())

	return sliderID, parts, nil
}

// newNode 创建带名称和节点矩形的子元素
func newNode(em *ecs.EntityManager, name string) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.NameComponent{Name: name})
	ecs.AddComponent(em, id, &components.NodeComponent{})
	return id
}
