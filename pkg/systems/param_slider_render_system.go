package systems

import (
	"image/color"

	"github.com/gonewx/paramslider/pkg/components"
	"github.com/gonewx/paramslider/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// 滑块视觉常量
var (
	// 滑槽颜色
	sliderBarColor = color.RGBA{R: 70, G: 70, B: 80, A: 255}

	// 滑槽已填充部分颜色
	sliderFillColor = color.RGBA{R: 120, G: 120, B: 200, A: 255}

	// 手柄正常/悬停/按下颜色
	handleNormalColor  = color.RGBA{R: 180, G: 180, B: 255, A: 255}
	handleHoveredColor = color.RGBA{R: 210, G: 210, B: 255, A: 255}
	handleClickedColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	// 手柄边框颜色
	handleBorderColor = color.RGBA{R: 30, G: 30, B: 40, A: 255}

	// 文字颜色（浅蓝紫色）和阴影颜色
	sliderTextColor   = color.RGBA{R: 180, G: 180, B: 255, A: 255}
	sliderShadowColor = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

// ParamSliderRenderSystem 滑块渲染系统
//
// 只读取布局结果和 Ratio，不修改任何组件。
type ParamSliderRenderSystem struct {
	entityManager *ecs.EntityManager
	face          text.Face
}

// NewParamSliderRenderSystem 创建滑块渲染系统
func NewParamSliderRenderSystem(em *ecs.EntityManager) *ParamSliderRenderSystem {
	return &ParamSliderRenderSystem{
		entityManager: em,
		face:          text.NewGoXFace(basicfont.Face7x13),
	}
}

// Draw 绘制所有滑块
func (s *ParamSliderRenderSystem) Draw(screen *ebiten.Image) {
	for _, entityID := range ecs.GetEntitiesWith1[*components.ParamSliderComponent](s.entityManager) {
		slider, _ := ecs.GetComponent[*components.ParamSliderComponent](s.entityManager, entityID)
		s.drawSlider(screen, slider)
	}
}

func (s *ParamSliderRenderSystem) drawSlider(screen *ebiten.Image, slider *components.ParamSliderComponent) {
	parts := slider.Parts

	// 滑槽和已填充部分
	if bar, ok := ecs.GetComponent[*components.NodeComponent](s.entityManager, parts.Bar); ok {
		vector.DrawFilledRect(screen, bar.X, bar.Y, bar.Width, bar.Height, sliderBarColor, true)
		if slider.Config.Axis == components.AxisVertical {
			fill := bar.Height * slider.Ratio
			vector.DrawFilledRect(screen, bar.X, bar.Y+bar.Height-fill, bar.Width, fill, sliderFillColor, true)
		} else {
			vector.DrawFilledRect(screen, bar.X, bar.Y, bar.Width*slider.Ratio, bar.Height, sliderFillColor, true)
		}
	}

	// 手柄
	if handle, ok := ecs.GetComponent[*components.NodeComponent](s.entityManager, parts.Handle); ok {
		clr := handleNormalColor
		if ui, ok := ecs.GetComponent[*components.UIComponent](s.entityManager, parts.Handle); ok {
			switch ui.State {
			case components.UIHovered:
				clr = handleHoveredColor
			case components.UIClicked:
				clr = handleClickedColor
			}
		}
		vector.DrawFilledRect(screen, handle.X, handle.Y, handle.Width, handle.Height, clr, true)
		vector.StrokeRect(screen, handle.X, handle.Y, handle.Width, handle.Height, 1, handleBorderColor, true)
	}

	s.drawText(screen, parts.Label, parts.Label)
	s.drawText(screen, parts.ReadoutContainer, parts.Readout)
}

// drawText 可见时在节点左上角绘制文字（带阴影效果）
func (s *ParamSliderRenderSystem) drawText(screen *ebiten.Image, visibilityID, textID ecs.EntityID) {
	if vis, ok := ecs.GetComponent[*components.VisibilityComponent](s.entityManager, visibilityID); ok && !vis.Visible {
		return
	}
	txt, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, textID)
	if !ok || txt.Text == "" {
		return
	}
	node, ok := ecs.GetComponent[*components.NodeComponent](s.entityManager, textID)
	if !ok {
		return
	}

	x, y := float64(node.X), float64(node.Y)

	shadowOp := &text.DrawOptions{}
	shadowOp.GeoM.Translate(x+1, y+1)
	shadowOp.ColorScale.ScaleWithColor(sliderShadowColor)
	text.Draw(screen, txt.Text, s.face, shadowOp)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(sliderTextColor)
	text.Draw(screen, txt.Text, s.face, op)
}
