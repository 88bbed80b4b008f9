package editor

import (
	"fmt"

	"github.com/gonewx/paramslider/pkg/components"
	"github.com/gonewx/paramslider/pkg/config"
	"github.com/gonewx/paramslider/pkg/params"
)

// ParamFromConfig 根据配置创建宿主参数
func ParamFromConfig(c config.ParamConfig) (params.Param, error) {
	switch c.Kind {
	case "float":
		return params.NewFloatParam(c.ID, c.Name, float32(c.Min), float32(c.Max), float32(c.Default)).WithUnit(c.Unit), nil
	case "int":
		return params.NewIntParam(c.ID, c.Name, int32(c.Min), int32(c.Max), int32(c.Default)), nil
	case "bool":
		return params.NewBoolParam(c.ID, c.Name, c.Default != 0), nil
	default:
		return nil, fmt.Errorf("param %q: unknown kind %q", c.ID, c.Kind)
	}
}

// SliderConfigFromConfig 把 YAML 滑块定义转换成组件配置
func SliderConfigFromConfig(c config.SliderConfig) components.ParamSliderConfig {
	axis := components.AxisHorizontal
	if c.Axis == "vertical" {
		axis = components.AxisVertical
	}
	return components.ParamSliderConfig{
		Label:       c.Label,
		Min:         c.Min,
		Max:         c.Max,
		ShowReadout: c.ShowReadout,
		Axis:        axis,
	}
}

// RegisterParams 创建配置中的全部参数并注册到 store
func RegisterParams(store *params.Store, cfgs []config.ParamConfig) error {
	for _, c := range cfgs {
		p, err := ParamFromConfig(c)
		if err != nil {
			return err
		}
		if err := store.Add(p); err != nil {
			return err
		}
	}
	return nil
}
