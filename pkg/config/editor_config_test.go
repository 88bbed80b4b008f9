package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEditorConfigIsValid(t *testing.T) {
	cfg := DefaultEditorConfig()
	require.NoError(t, validateEditorConfig(cfg))
	assert.Len(t, cfg.Sliders, 2)
	assert.Equal(t, "vertical", cfg.Sliders[1].Axis)
}

func TestParseEditorConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		errContains string
		validate    func(*testing.T, *EditorConfig)
	}{
		{
			name: "valid config",
			yamlContent: `
window:
  title: demo
  width: 640
  height: 480
theme:
  handleSize: 20
params:
  - id: cutoff
    name: Cutoff
    kind: float
    min: 20
    max: 20000
    default: 1000
    unit: Hz
sliders:
  - param: cutoff
    label: Cutoff
    min: 20
    max: 20000
    showReadout: true
    axis: vertical
    x: 10
    y: 20
    length: 200
`,
			validate: func(t *testing.T, cfg *EditorConfig) {
				assert.Equal(t, "demo", cfg.Window.Title)
				assert.Equal(t, 640, cfg.Window.Width)
				assert.Equal(t, float32(20), cfg.Theme.HandleSize)
				// 未指定的主题字段保留默认值
				assert.Equal(t, DefaultTheme().BarThickness, cfg.Theme.BarThickness)
				require.Len(t, cfg.Sliders, 1)
				assert.Equal(t, "vertical", cfg.Sliders[0].Axis)
				assert.True(t, cfg.Sliders[0].ShowReadout)
				assert.Equal(t, "Hz", cfg.Params[0].Unit)
			},
		},
		{
			name: "defaults when empty",
			yamlContent: `
params: []
`,
			validate: func(t *testing.T, cfg *EditorConfig) {
				assert.Equal(t, DefaultWindowWidth, cfg.Window.Width)
				assert.Equal(t, DefaultTheme(), cfg.Theme)
			},
		},
		{
			name: "slider with unknown param",
			yamlContent: `
sliders:
  - param: ghost
    min: 0
    max: 1
    length: 100
`,
			errContains: `unknown param "ghost"`,
		},
		{
			name: "slider min not less than max",
			yamlContent: `
params:
  - {id: gain, kind: float, min: 0, max: 1}
sliders:
  - {param: gain, min: 1, max: 1, length: 100}
`,
			errContains: "min must be less than max",
		},
		{
			name: "bad axis",
			yamlContent: `
params:
  - {id: gain, kind: float, min: 0, max: 1}
sliders:
  - {param: gain, min: 0, max: 1, length: 100, axis: diagonal}
`,
			errContains: "axis must be horizontal or vertical",
		},
		{
			name: "slider shorter than handle",
			yamlContent: `
params:
  - {id: gain, kind: float, min: 0, max: 1}
sliders:
  - {param: gain, min: 0, max: 1, length: 10}
`,
			errContains: "must exceed handle size",
		},
		{
			name: "duplicate param id",
			yamlContent: `
params:
  - {id: gain, kind: float, min: 0, max: 1}
  - {id: gain, kind: bool}
`,
			errContains: `duplicate id "gain"`,
		},
		{
			name: "unknown kind",
			yamlContent: `
params:
  - {id: mode, kind: enum}
`,
			errContains: `unknown kind "enum"`,
		},
		{
			name: "default outside range",
			yamlContent: `
params:
  - {id: gain, kind: float, min: 0, max: 1, default: 2}
`,
			errContains: "default 2 outside of [0, 1]",
		},
		{
			name:        "malformed yaml",
			yamlContent: "window: [",
			errContains: "failed to parse editor config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseEditorConfig([]byte(tt.yamlContent))
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadEditorConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "editor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
params:
  - {id: gain, kind: float, min: 0, max: 10, default: 5}
sliders:
  - {param: gain, label: Gain, min: 0, max: 10, length: 120}
`), 0o644))

	cfg, err := LoadEditorConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Gain", cfg.Sliders[0].Label)

	_, err = LoadEditorConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read editor config file")
}
