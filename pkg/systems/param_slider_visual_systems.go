package systems

import (
	"fmt"

	"github.com/gonewx/paramslider/pkg/components"
	"github.com/gonewx/paramslider/pkg/ecs"
)

// ParamSliderBarChangeSystem 滑槽容器尺寸变化时标记所属滑块需要重新同步
type ParamSliderBarChangeSystem struct {
	entityManager *ecs.EntityManager
}

// NewParamSliderBarChangeSystem 创建滑槽尺寸监听系统
func NewParamSliderBarChangeSystem(em *ecs.EntityManager) *ParamSliderBarChangeSystem {
	return &ParamSliderBarChangeSystem{entityManager: em}
}

// Update 检查本帧尺寸变化的滑槽容器
func (s *ParamSliderBarChangeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.ParamSliderBarComponent, *components.NodeComponent](s.entityManager)
	for _, entityID := range entities {
		node, _ := ecs.GetComponent[*components.NodeComponent](s.entityManager, entityID)
		if !node.Changed {
			continue
		}
		bar, _ := ecs.GetComponent[*components.ParamSliderBarComponent](s.entityManager, entityID)
		if slider, ok := ecs.GetComponent[*components.ParamSliderComponent](s.entityManager, bar.Slider); ok {
			slider.Changed = true
		}
	}
}

// ParamSliderHandleSystem 把 Ratio 同步到手柄偏移
//
// 水平：Left = (滑槽宽 - 手柄宽) * Ratio
// 垂直：Top = (滑槽高 - 手柄高) * (1 - Ratio)，Ratio 为 1 时手柄在顶端
//
// 只有滑块或相关节点本帧发生变化时才重新计算，值未变化时不写入。
type ParamSliderHandleSystem struct {
	entityManager *ecs.EntityManager
}

// NewParamSliderHandleSystem 创建手柄同步系统
func NewParamSliderHandleSystem(em *ecs.EntityManager) *ParamSliderHandleSystem {
	return &ParamSliderHandleSystem{entityManager: em}
}

// Update 同步所有需要更新的手柄
func (s *ParamSliderHandleSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.ParamSliderComponent, *components.NodeComponent](s.entityManager)
	for _, entityID := range entities {
		slider, _ := ecs.GetComponent[*components.ParamSliderComponent](s.entityManager, entityID)
		root, _ := ecs.GetComponent[*components.NodeComponent](s.entityManager, entityID)

		barNode, ok := ecs.GetComponent[*components.NodeComponent](s.entityManager, slider.Parts.BarContainer)
		if !ok {
			continue
		}
		handleNode, ok := ecs.GetComponent[*components.NodeComponent](s.entityManager, slider.Parts.Handle)
		if !ok {
			continue
		}
		style, ok := ecs.GetComponent[*components.StyleComponent](s.entityManager, slider.Parts.Handle)
		if !ok {
			continue
		}

		if !slider.Changed && !root.Changed && !barNode.Changed && !handleNode.Changed {
			continue
		}

		if slider.Config.Axis == components.AxisVertical {
			top := max(barNode.Height-handleNode.Height, 0) * (1 - slider.Ratio)
			if style.Top != top {
				style.Top = top
			}
		} else {
			left := max(barNode.Width-handleNode.Width, 0) * slider.Ratio
			if style.Left != left {
				style.Left = left
			}
		}
	}
}

// ParamSliderReadoutSystem 把滑块的实际值写入读数文字
type ParamSliderReadoutSystem struct {
	entityManager *ecs.EntityManager
}

// NewParamSliderReadoutSystem 创建读数同步系统
func NewParamSliderReadoutSystem(em *ecs.EntityManager) *ParamSliderReadoutSystem {
	return &ParamSliderReadoutSystem{entityManager: em}
}

// Update 更新本帧变化且显示读数的滑块
func (s *ParamSliderReadoutSystem) Update(deltaTime float64) {
	for _, entityID := range ecs.GetEntitiesWith1[*components.ParamSliderComponent](s.entityManager) {
		slider, _ := ecs.GetComponent[*components.ParamSliderComponent](s.entityManager, entityID)
		if !slider.Changed || !slider.Config.ShowReadout {
			continue
		}

		readout, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, slider.Parts.Readout)
		if !ok {
			continue
		}
		text := fmt.Sprintf("%.1f", slider.Value())
		if readout.Text != text {
			readout.Text = text
		}
	}
}

// ChangeResetSystem 帧末清除所有变化标记和本帧的输入
type ChangeResetSystem struct {
	entityManager *ecs.EntityManager
}

// NewChangeResetSystem 创建变化标记清除系统
func NewChangeResetSystem(em *ecs.EntityManager) *ChangeResetSystem {
	return &ChangeResetSystem{entityManager: em}
}

// Update 清除变化标记
func (s *ChangeResetSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.ParamSliderComponent](s.entityManager) {
		slider, _ := ecs.GetComponent[*components.ParamSliderComponent](s.entityManager, id)
		slider.Changed = false
	}
	for _, id := range ecs.GetEntitiesWith1[*components.NodeComponent](s.entityManager) {
		node, _ := ecs.GetComponent[*components.NodeComponent](s.entityManager, id)
		node.Changed = false
	}
	for _, id := range ecs.GetEntitiesWith1[*components.DraggableComponent](s.entityManager) {
		drag, _ := ecs.GetComponent[*components.DraggableComponent](s.entityManager, id)
		drag.Changed = false
		drag.Diff = nil
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ScrollableComponent](s.entityManager) {
		scroll, _ := ecs.GetComponent[*components.ScrollableComponent](s.entityManager, id)
		scroll.Changed = false
		scroll.LastChange = nil
	}
}
