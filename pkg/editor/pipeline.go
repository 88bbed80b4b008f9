// Package editor 把参数滑块的各个系统组装成每帧执行的管线和可运行的编辑器场景
package editor

import (
	"errors"
	"fmt"
)

// Updater 每帧更新且不会失败的系统
type Updater interface {
	Update(deltaTime float64)
}

// Step 管线中的一个步骤
type Step struct {
	Name   string
	Update func(deltaTime float64) error
}

// System 把普通系统包装成管线步骤
func System(name string, sys Updater) Step {
	return Step{
		Name: name,
		Update: func(deltaTime float64) error {
			sys.Update(deltaTime)
			return nil
		},
	}
}

// Pipeline 按固定顺序执行的系统列表
//
// 某个步骤返回错误时继续执行后续步骤，所有错误在帧末合并返回，
// 保证帧末清除等步骤总能执行。
type Pipeline struct {
	steps []Step
}

// NewPipeline 创建管线
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Steps 返回步骤名称（按执行顺序）
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}
	return names
}

// Update 执行一帧
func (p *Pipeline) Update(deltaTime float64) error {
	var errs []error
	for _, step := range p.steps {
		if err := step.Update(deltaTime); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", step.Name, err))
		}
	}
	return errors.Join(errs...)
}
