package components

import "github.com/gonewx/paramslider/pkg/ecs"

// ParamSliderBarComponent 挂在滑槽容器上，指回所属滑块
type ParamSliderBarComponent struct {
	Slider ecs.EntityID
}

// ParamSliderHandleComponent 挂在拖拽手柄上，指回所属滑块
type ParamSliderHandleComponent struct {
	Slider ecs.EntityID
}
