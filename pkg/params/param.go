// Package params 实现宿主参数存储以及滑块写入参数时使用的手势协议
//
// 所有来自 UI 的写入都必须经过 GestureLock：
// BeginEdit → SetNormalized* → EndEdit，且同一时刻全局最多只有一个手势。
package params

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Kind 参数类型
type Kind int

const (
	// KindFloat 连续浮点参数（滑块唯一支持的类型）
	KindFloat Kind = iota
	// KindInt 离散整数参数
	KindInt
	// KindBool 开关参数
	KindBool
)

// String 返回参数类型名称
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Param 宿主参数句柄
//
// 句柄由 Store 创建，滑块创建时绑定、之后不再更换。
// 归一化值使用原子操作存取，音频线程可以无锁读取。
type Param interface {
	ID() string
	Name() string
	Kind() Kind
	// DefaultNormalized 返回默认值（0~1），滑块创建时用它初始化 ratio
	DefaultNormalized() float32
	// Normalized 返回当前值（0~1）
	Normalized() float32
	// Format 把归一化值格式化为带单位的文本
	Format(normalized float32) string

	setNormalized(v float32)
}

// paramBase 各类参数共享的字段
type paramBase struct {
	id          string
	name        string
	defaultNorm float32
	value       atomic.Uint32 // float32 bits
}

func (p *paramBase) ID() string                 { return p.id }
func (p *paramBase) Name() string               { return p.name }
func (p *paramBase) DefaultNormalized() float32 { return p.defaultNorm }

func (p *paramBase) Normalized() float32 {
	return math.Float32frombits(p.value.Load())
}

func (p *paramBase) setNormalized(v float32) {
	p.value.Store(math.Float32bits(clamp01(v)))
}

// FloatParam 连续浮点参数
type FloatParam struct {
	paramBase
	Min  float32
	Max  float32
	Unit string

	formatFunc func(plain float32) string
}

// NewFloatParam 创建浮点参数，def 为 [min, max] 范围内的默认值
func NewFloatParam(id, name string, min, max, def float32) *FloatParam {
	p := &FloatParam{
		paramBase: paramBase{id: id, name: name},
		Min:       min,
		Max:       max,
	}
	p.defaultNorm = p.Normalize(def)
	p.setNormalized(p.defaultNorm)
	return p
}

// WithUnit 设置单位（用于 Format）
func (p *FloatParam) WithUnit(unit string) *FloatParam {
	p.Unit = unit
	return p
}

// WithFormatter 设置自定义格式化函数
func (p *FloatParam) WithFormatter(format func(plain float32) string) *FloatParam {
	p.formatFunc = format
	return p
}

func (p *FloatParam) Kind() Kind { return KindFloat }

// Normalize 把实际值转换为 0~1
func (p *FloatParam) Normalize(plain float32) float32 {
	if p.Max <= p.Min {
		return 0
	}
	return clamp01((plain - p.Min) / (p.Max - p.Min))
}

// Denormalize 把 0~1 转换为实际值
func (p *FloatParam) Denormalize(normalized float32) float32 {
	return p.Min + normalized*(p.Max-p.Min)
}

// Plain 返回当前实际值
func (p *FloatParam) Plain() float32 {
	return p.Denormalize(p.Normalized())
}

func (p *FloatParam) Format(normalized float32) string {
	plain := p.Denormalize(normalized)
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}
	if p.Unit != "" {
		return fmt.Sprintf("%.2f %s", plain, p.Unit)
	}
	return fmt.Sprintf("%.2f", plain)
}

// IntParam 离散整数参数
type IntParam struct {
	paramBase
	Min int32
	Max int32
}

// NewIntParam 创建整数参数
func NewIntParam(id, name string, min, max, def int32) *IntParam {
	p := &IntParam{
		paramBase: paramBase{id: id, name: name},
		Min:       min,
		Max:       max,
	}
	if max > min {
		p.defaultNorm = clamp01(float32(def-min) / float32(max-min))
	}
	p.setNormalized(p.defaultNorm)
	return p
}

func (p *IntParam) Kind() Kind { return KindInt }

// Value 返回当前整数值（四舍五入到最近的步进）
func (p *IntParam) Value() int32 {
	span := float64(p.Max - p.Min)
	return p.Min + int32(math.Round(float64(p.Normalized())*span))
}

func (p *IntParam) Format(normalized float32) string {
	span := float64(p.Max - p.Min)
	return fmt.Sprintf("%d", p.Min+int32(math.Round(float64(normalized)*span)))
}

// BoolParam 开关参数
type BoolParam struct {
	paramBase
}

// NewBoolParam 创建开关参数
func NewBoolParam(id, name string, def bool) *BoolParam {
	p := &BoolParam{paramBase: paramBase{id: id, name: name}}
	if def {
		p.defaultNorm = 1
	}
	p.setNormalized(p.defaultNorm)
	return p
}

func (p *BoolParam) Kind() Kind { return KindBool }

// Enabled 当前是否开启
func (p *BoolParam) Enabled() bool {
	return p.Normalized() >= 0.5
}

func (p *BoolParam) Format(normalized float32) string {
	if normalized >= 0.5 {
		return "On"
	}
	return "Off"
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
