package systems

import (
	"github.com/gonewx/paramslider/pkg/components"
	"github.com/gonewx/paramslider/pkg/config"
	"github.com/gonewx/paramslider/pkg/ecs"
)

const (
	// DefaultParamSliderLength 没有 ParamSliderLayoutComponent 时的滑槽长度
	DefaultParamSliderLength float32 = 200

	// textRowHeight 标签和读数的行高（7x13 位图字体加留白）
	textRowHeight float32 = 16
)

// ParamSliderLayoutSystem 计算滑块各子元素的节点矩形
//
// 水平滑块：标签 | 滑槽容器 | 读数，从左到右排列。
// 垂直滑块：读数在上，滑槽容器居中，标签在下。
// 手柄矩形包含 StyleComponent 的偏移，只用于命中测试和渲染；
// 尺寸变化时由 NodeComponent.SetRect 标记 Changed。
type ParamSliderLayoutSystem struct {
	entityManager *ecs.EntityManager
	theme         config.ThemeConfig
}

// NewParamSliderLayoutSystem 创建布局系统
func NewParamSliderLayoutSystem(em *ecs.EntityManager, theme config.ThemeConfig) *ParamSliderLayoutSystem {
	return &ParamSliderLayoutSystem{
		entityManager: em,
		theme:         theme,
	}
}

// Update 重新计算所有滑块的布局
func (s *ParamSliderLayoutSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith3[
		*components.ParamSliderComponent,
		*components.PositionComponent,
		*components.NodeComponent,
	](s.entityManager)

	for _, entityID := range entities {
		slider, _ := ecs.GetComponent[*components.ParamSliderComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
		root, _ := ecs.GetComponent[*components.NodeComponent](s.entityManager, entityID)

		length := DefaultParamSliderLength
		if l, ok := ecs.GetComponent[*components.ParamSliderLayoutComponent](s.entityManager, entityID); ok && l.Length > 0 {
			length = l.Length
		}

		x, y := float32(pos.X), float32(pos.Y)
		if slider.Config.Axis == components.AxisVertical {
			s.layoutVertical(slider, root, x, y, length)
		} else {
			s.layoutHorizontal(slider, root, x, y, length)
		}
	}
}

func (s *ParamSliderLayoutSystem) layoutHorizontal(slider *components.ParamSliderComponent, root *components.NodeComponent, x, y, length float32) {
	t := s.theme
	parts := slider.Parts
	rowH := t.HandleSize + 2*t.Gap

	var labelW float32
	barX := x
	if slider.Config.HasLabel() {
		labelW = t.LabelSize
		barX = x + labelW + t.Gap
	}
	s.setRect(parts.Label, x, y, labelW, rowH)

	s.setRect(parts.BarContainer, barX, y, length, rowH)
	s.setRect(parts.Bar, barX, y+(rowH-t.BarThickness)/2, length, t.BarThickness)

	var left float32
	if style, ok := ecs.GetComponent[*components.StyleComponent](s.entityManager, parts.Handle); ok {
		left = style.Left
	}
	s.setRect(parts.Handle, barX+left, y+(rowH-t.HandleSize)/2, t.HandleSize, t.HandleSize)

	readoutX := barX + length + t.Gap
	var readoutW float32
	if slider.Config.ShowReadout {
		readoutW = t.ReadoutSize
	}
	s.setRect(parts.ReadoutContainer, readoutX, y, readoutW, rowH)
	s.setRect(parts.Readout, readoutX, y+(rowH-textRowHeight)/2, readoutW, textRowHeight)

	root.SetRect(x, y, readoutX+readoutW-x, rowH)
}

func (s *ParamSliderLayoutSystem) layoutVertical(slider *components.ParamSliderComponent, root *components.NodeComponent, x, y, length float32) {
	t := s.theme
	parts := slider.Parts
	colW := max(t.HandleSize+2*t.Gap, t.ReadoutSize)

	var readoutH float32
	barY := y
	if slider.Config.ShowReadout {
		readoutH = textRowHeight
		barY = y + readoutH + t.Gap
	}
	s.setRect(parts.ReadoutContainer, x, y, colW, readoutH)
	s.setRect(parts.Readout, x, y, colW, readoutH)

	s.setRect(parts.BarContainer, x, barY, colW, length)
	s.setRect(parts.Bar, x+(colW-t.BarThickness)/2, barY, t.BarThickness, length)

	var top float32
	if style, ok := ecs.GetComponent[*components.StyleComponent](s.entityManager, parts.Handle); ok {
		top = style.Top
	}
	s.setRect(parts.Handle, x+(colW-t.HandleSize)/2, barY+top, t.HandleSize, t.HandleSize)

	labelY := barY + length + t.Gap
	var labelH float32
	if slider.Config.HasLabel() {
		labelH = textRowHeight
	}
	s.setRect(parts.Label, x, labelY, colW, labelH)

	root.SetRect(x, y, colW, labelY+labelH-y)
}

func (s *ParamSliderLayoutSystem) setRect(id ecs.EntityID, x, y, w, h float32) {
	if node, ok := ecs.GetComponent[*components.NodeComponent](s.entityManager, id); ok {
		node.SetRect(x, y, w, h)
	}
}
