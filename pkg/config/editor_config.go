package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 默认窗口尺寸（逻辑像素）
const (
	DefaultWindowWidth  = 480
	DefaultWindowHeight = 320
)

// EditorConfig 编辑器配置（editor.yaml）
type EditorConfig struct {
	Window  WindowConfig   `yaml:"window"`
	Theme   ThemeConfig    `yaml:"theme"`
	Params  []ParamConfig  `yaml:"params"`
	Sliders []SliderConfig `yaml:"sliders"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// ThemeConfig 滑块布局尺寸（像素）
type ThemeConfig struct {
	HandleSize   float32 `yaml:"handleSize"`   // 手柄边长
	BarThickness float32 `yaml:"barThickness"` // 滑槽粗细
	Gap          float32 `yaml:"gap"`          // 子元素间距
	LabelSize    float32 `yaml:"labelSize"`    // 水平滑块标签宽度 / 垂直滑块标签高度
	ReadoutSize  float32 `yaml:"readoutSize"`  // 读数区域宽度 / 高度
}

// ParamConfig 宿主参数定义
type ParamConfig struct {
	ID      string  `yaml:"id"`
	Name    string  `yaml:"name"`
	Kind    string  `yaml:"kind"` // float | int | bool
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Default float64 `yaml:"default"`
	Unit    string  `yaml:"unit"`
}

// SliderConfig 滑块定义
type SliderConfig struct {
	Param       string  `yaml:"param"` // 绑定的参数ID
	Label       string  `yaml:"label"`
	Min         float32 `yaml:"min"`
	Max         float32 `yaml:"max"`
	ShowReadout bool    `yaml:"showReadout"`
	Axis        string  `yaml:"axis"` // horizontal | vertical，默认 horizontal
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Length      float32 `yaml:"length"` // 滑槽容器沿主轴的长度
}

// DefaultTheme 默认布局尺寸
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		HandleSize:   16,
		BarThickness: 6,
		Gap:          8,
		LabelSize:    72,
		ReadoutSize:  56,
	}
}

// DefaultEditorConfig 内置的演示配置：一个水平增益滑块和一个垂直混合滑块
func DefaultEditorConfig() *EditorConfig {
	return &EditorConfig{
		Window: WindowConfig{Title: "paramslider", Width: DefaultWindowWidth, Height: DefaultWindowHeight},
		Theme:  DefaultTheme(),
		Params: []ParamConfig{
			{ID: "gain", Name: "Gain", Kind: "float", Min: 0, Max: 100, Default: 50, Unit: "%"},
			{ID: "mix", Name: "Mix", Kind: "float", Min: 0, Max: 1, Default: 1},
			{ID: "bypass", Name: "Bypass", Kind: "bool"},
		},
		Sliders: []SliderConfig{
			{Param: "gain", Label: "Number 1", Min: 0, Max: 100, ShowReadout: true, Axis: "horizontal", X: 40, Y: 40, Length: 360},
			{Param: "mix", Label: "Mix", Min: 0, Max: 100, ShowReadout: true, Axis: "vertical", X: 200, Y: 100, Length: 200},
		},
	}
}

// LoadEditorConfig 从 YAML 文件加载编辑器配置
func LoadEditorConfig(filePath string) (*EditorConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read editor config file: %w", err)
	}
	return ParseEditorConfig(data)
}

// ParseEditorConfig 解析 YAML 编辑器配置，缺省字段使用默认值
func ParseEditorConfig(data []byte) (*EditorConfig, error) {
	cfg := EditorConfig{
		Window: WindowConfig{Title: "paramslider", Width: DefaultWindowWidth, Height: DefaultWindowHeight},
		Theme:  DefaultTheme(),
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse editor config YAML: %w", err)
	}

	if err := validateEditorConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid editor config: %w", err)
	}
	return &cfg, nil
}

// validateEditorConfig 验证配置的有效性
func validateEditorConfig(cfg *EditorConfig) error {
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Theme.HandleSize <= 0 {
		return fmt.Errorf("theme.handleSize must be > 0, got %v", cfg.Theme.HandleSize)
	}

	ids := make(map[string]bool, len(cfg.Params))
	for i, p := range cfg.Params {
		if p.ID == "" {
			return fmt.Errorf("params[%d]: id cannot be empty", i)
		}
		if ids[p.ID] {
			return fmt.Errorf("params[%d]: duplicate id %q", i, p.ID)
		}
		ids[p.ID] = true

		switch p.Kind {
		case "float", "int":
			if !(p.Min < p.Max) {
				return fmt.Errorf("params[%d] (%s): min must be less than max, got [%v, %v]", i, p.ID, p.Min, p.Max)
			}
			if p.Default < p.Min || p.Default > p.Max {
				return fmt.Errorf("params[%d] (%s): default %v outside of [%v, %v]", i, p.ID, p.Default, p.Min, p.Max)
			}
		case "bool":
		default:
			return fmt.Errorf("params[%d] (%s): unknown kind %q", i, p.ID, p.Kind)
		}
	}

	for i, s := range cfg.Sliders {
		if !ids[s.Param] {
			return fmt.Errorf("sliders[%d]: unknown param %q", i, s.Param)
		}
		if !(s.Min < s.Max) {
			return fmt.Errorf("sliders[%d] (%s): min must be less than max, got [%v, %v]", i, s.Param, s.Min, s.Max)
		}
		if s.Axis != "" && s.Axis != "horizontal" && s.Axis != "vertical" {
			return fmt.Errorf("sliders[%d] (%s): axis must be horizontal or vertical, got %q", i, s.Param, s.Axis)
		}
		if s.Length <= cfg.Theme.HandleSize {
			return fmt.Errorf("sliders[%d] (%s): length %v must exceed handle size %v", i, s.Param, s.Length, cfg.Theme.HandleSize)
		}
	}

	return nil
}
