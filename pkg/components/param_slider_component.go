package components

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/gonewx/paramslider/pkg/ecs"
)

// ParamSliderAxis 滑块方向
type ParamSliderAxis int

const (
	// AxisHorizontal 水平滑块，向右增大
	AxisHorizontal ParamSliderAxis = iota
	// AxisVertical 垂直滑块，向上增大
	AxisVertical
)

func (a ParamSliderAxis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return fmt.Sprintf("ParamSliderAxis(%d)", int(a))
	}
}

// ParamSliderConfig 滑块配置，创建后不再修改
type ParamSliderConfig struct {
	Label       string // 为空时不显示标签
	Min         float32
	Max         float32
	ShowReadout bool // 是否显示当前值
	Axis        ParamSliderAxis
}

// DefaultParamSliderConfig 默认配置：0~1，水平，无标签，无读数
func DefaultParamSliderConfig() ParamSliderConfig {
	return ParamSliderConfig{Min: 0, Max: 1, Axis: AxisHorizontal}
}

// HorizontalSlider 水平滑块配置
func HorizontalSlider(label string, min, max float32, showReadout bool) ParamSliderConfig {
	return ParamSliderConfig{Label: label, Min: min, Max: max, ShowReadout: showReadout, Axis: AxisHorizontal}
}

// VerticalSlider 垂直滑块配置
func VerticalSlider(label string, min, max float32, showReadout bool) ParamSliderConfig {
	return ParamSliderConfig{Label: label, Min: min, Max: max, ShowReadout: showReadout, Axis: AxisVertical}
}

// ErrInvalidRange 配置的 Min >= Max
var ErrInvalidRange = errors.New("slider min must be less than max")

// Validate 检查 Min < Max
func (c ParamSliderConfig) Validate() error {
	if !(c.Min < c.Max) {
		return fmt.Errorf("%w: min=%v max=%v", ErrInvalidRange, c.Min, c.Max)
	}
	return nil
}

// HasLabel 是否显示标签
func (c ParamSliderConfig) HasLabel() bool {
	return c.Label != ""
}

// 子元素名称，供通用的主题/样式层按名称定位
const (
	PartLabel            = "Label"
	PartBarContainer     = "BarContainer"
	PartBar              = "Bar"
	PartHandle           = "Handle"
	PartReadoutContainer = "ReadoutContainer"
	PartReadout          = "Readout"
)

// ErrUnknownPart Part() 收到未知名称
var ErrUnknownPart = errors.New("unknown slider part")

// ParamSliderParts 滑块各子元素的实体ID
type ParamSliderParts struct {
	Label            ecs.EntityID
	BarContainer     ecs.EntityID
	Bar              ecs.EntityID
	Handle           ecs.EntityID
	ReadoutContainer ecs.EntityID
	Readout          ecs.EntityID
}

// PartNames 返回所有子元素名称（按布局顺序）
func PartNames() []string {
	return []string{PartLabel, PartBarContainer, PartBar, PartHandle, PartReadoutContainer, PartReadout}
}

// Part 按名称查找子元素
//
// 只给需要对所有控件通用处理的样式层使用，其余代码直接访问字段。
func (p ParamSliderParts) Part(name string) (ecs.EntityID, error) {
	switch name {
	case PartLabel:
		return p.Label, nil
	case PartBarContainer:
		return p.BarContainer, nil
	case PartBar:
		return p.Bar, nil
	case PartHandle:
		return p.Handle, nil
	case PartReadoutContainer:
		return p.ReadoutContainer, nil
	case PartReadout:
		return p.Readout, nil
	default:
		return ecs.InvalidEntity, fmt.Errorf("%w: %q (possible parts: %v)", ErrUnknownPart, name, PartNames())
	}
}

// ErrValueOutOfRange SetValue 收到 [Min, Max] 以外的值
var ErrValueOutOfRange = errors.New("slider value out of range")

// OutOfRangeError SetValue 越界
type OutOfRangeError struct {
	Value    float32
	Min, Max float32
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("value %v outside of slider range [%v, %v]", e.Value, e.Min, e.Max)
}

// Is 让 errors.Is(err, ErrValueOutOfRange) 成立
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrValueOutOfRange
}

// ParamSliderComponent 参数滑块组件（挂在滑块根实体上）
//
// Ratio 是显示值的唯一来源，只由拖拽/滚动系统以及取消拖拽时的恢复逻辑修改；
// 视觉同步系统只读取它。
type ParamSliderComponent struct {
	// 当前归一化位置（0.0 - 1.0）
	Ratio float32

	Config ParamSliderConfig
	Parts  ParamSliderParts

	// 拖拽开始时 Ratio 的快照，用于取消时恢复；没有拖拽手势时为 nil
	BaseRatio *float32

	// 本帧 Ratio 或几何尺寸发生了变化，帧末清除
	Changed bool
}

// Value 返回 Ratio 映射到 [Min, Max] 的实际值
//
// Ratio 为 0 和 1 时分别精确返回 Min 和 Max。
func (s *ParamSliderComponent) Value() float32 {
	r := s.Ratio
	return s.Config.Min*(1-r) + s.Config.Max*r
}

// SetValue 设置实际值
//
// 越界（包括 NaN）时不修改 Ratio，记录警告并返回 *OutOfRangeError。
func (s *ParamSliderComponent) SetValue(v float32) error {
	if !(v >= s.Config.Min && v <= s.Config.Max) {
		err := &OutOfRangeError{Value: v, Min: s.Config.Min, Max: s.Config.Max}
		log.Printf("[ParamSlider] Warning: tried to set slider value outside of range: %v", err)
		return err
	}

	s.Ratio = (v - s.Config.Min) / (s.Config.Max - s.Config.Min)
	s.Changed = true
	return nil
}

// SetRatio 设置 Ratio（限制在 0~1）并标记变化，NaN 被忽略
func (s *ParamSliderComponent) SetRatio(r float32) {
	if math.IsNaN(float64(r)) {
		return
	}
	s.Ratio = clampRatio(r)
	s.Changed = true
}

// BeginDrag 记录拖拽前的 Ratio 快照
func (s *ParamSliderComponent) BeginDrag() {
	base := s.Ratio
	s.BaseRatio = &base
	s.Changed = true
}

// IsDragging 是否存在拖拽快照
func (s *ParamSliderComponent) IsDragging() bool {
	return s.BaseRatio != nil
}

// ClearDrag 清除拖拽快照
func (s *ParamSliderComponent) ClearDrag() {
	s.BaseRatio = nil
}

func clampRatio(r float32) float32 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
