package params

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GuiContext 宿主参数存储对 UI 暴露的写入接口
//
// 调用约束（由 GestureLock 保证）：
//   - SetNormalized 只能在 BeginEdit / EndEdit 之间调用
//   - EndEdit 必须消费 BeginEdit 返回的同一个 EditSession
//   - 不允许多个线程并发调用
type GuiContext interface {
	BeginEdit(p Param) (EditSession, error)
	SetNormalized(s EditSession, value float32) error
	EndEdit(s EditSession) error
}

// EditSession 一次编辑会话的令牌，由 BeginEdit 返回并由 EndEdit 消费
type EditSession struct {
	param  Param
	serial uint64
}

// Param 返回会话对应的参数
func (s EditSession) Param() Param { return s.param }

// Valid 会话是否由 BeginEdit 创建
func (s EditSession) Valid() bool { return s.param != nil && s.serial != 0 }

// 存储层错误
var (
	ErrUnknownParam     = errors.New("unknown parameter")
	ErrEditAlreadyOpen  = errors.New("edit already open for parameter")
	ErrEditNotOpen      = errors.New("no open edit for parameter")
	ErrDuplicateParamID = errors.New("duplicate parameter id")
)

// ChangeKind 参数变化通知类型
type ChangeKind int

const (
	ChangeBegin ChangeKind = iota
	ChangeSet
	ChangeEnd
	ChangeLoad
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeBegin:
		return "begin"
	case ChangeSet:
		return "set"
	case ChangeEnd:
		return "end"
	case ChangeLoad:
		return "load"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change 参数变化通知
type Change struct {
	ParamID string
	Kind    ChangeKind
	Value   float32 // 归一化值
}

// Store 宿主参数存储
//
// 保存所有参数句柄并实现 GuiContext；
// 可选地通过 gdata 持久化归一化值（YAML 格式），gdataManager 为 nil 时仅保存在内存中。
type Store struct {
	mu       sync.RWMutex
	params   map[string]Param
	order    []string
	sessions map[string]uint64 // 参数ID -> 打开中的会话序号
	serial   uint64

	listeners []func(Change)

	gdataManager *gdata.Manager
}

// 存储路径常量
const (
	paramsObject   = "params"
	paramsProperty = "values"
)

// NewStore 创建参数存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，不持久化）
func NewStore(gdataManager *gdata.Manager) *Store {
	return &Store{
		params:       make(map[string]Param),
		sessions:     make(map[string]uint64),
		gdataManager: gdataManager,
	}
}

// Add 注册参数，ID 重复时返回 ErrDuplicateParamID
func (s *Store) Add(params ...Param) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range params {
		if _, exists := s.params[p.ID()]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateParamID, p.ID())
		}
		s.params[p.ID()] = p
		s.order = append(s.order, p.ID())
	}
	return nil
}

// Get 按 ID 查找参数
func (s *Store) Get(id string) (Param, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.params[id]
	return p, ok
}

// All 按注册顺序返回所有参数
func (s *Store) All() []Param {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Param, len(s.order))
	for i, id := range s.order {
		result[i] = s.params[id]
	}
	return result
}

// Subscribe 注册变化监听（在调用 BeginEdit/SetNormalized/EndEdit 的线程上同步回调）
func (s *Store) Subscribe(listener func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// IsEditing 参数当前是否有打开的编辑会话
func (s *Store) IsEditing(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// BeginEdit 打开编辑会话
func (s *Store) BeginEdit(p Param) (EditSession, error) {
	s.mu.Lock()
	if _, ok := s.params[p.ID()]; !ok {
		s.mu.Unlock()
		return EditSession{}, fmt.Errorf("%w: %s", ErrUnknownParam, p.ID())
	}
	if _, open := s.sessions[p.ID()]; open {
		s.mu.Unlock()
		return EditSession{}, fmt.Errorf("%w: %s", ErrEditAlreadyOpen, p.ID())
	}
	s.serial++
	session := EditSession{param: p, serial: s.serial}
	s.sessions[p.ID()] = session.serial
	s.mu.Unlock()

	s.notify(Change{ParamID: p.ID(), Kind: ChangeBegin, Value: p.Normalized()})
	return session, nil
}

// SetNormalized 在会话内写入归一化值（宿主侧再次限制在 0~1）
func (s *Store) SetNormalized(session EditSession, value float32) error {
	if err := s.checkSession(session); err != nil {
		return err
	}
	session.param.setNormalized(value)
	s.notify(Change{ParamID: session.param.ID(), Kind: ChangeSet, Value: session.param.Normalized()})
	return nil
}

// EndEdit 关闭编辑会话
func (s *Store) EndEdit(session EditSession) error {
	if err := s.checkSession(session); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.sessions, session.param.ID())
	s.mu.Unlock()

	s.notify(Change{ParamID: session.param.ID(), Kind: ChangeEnd, Value: session.param.Normalized()})
	return nil
}

func (s *Store) checkSession(session EditSession) error {
	if !session.Valid() {
		return ErrEditNotOpen
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	serial, open := s.sessions[session.param.ID()]
	if !open || serial != session.serial {
		return fmt.Errorf("%w: %s", ErrEditNotOpen, session.param.ID())
	}
	return nil
}

func (s *Store) notify(c Change) {
	s.mu.RLock()
	listeners := slices.Clone(s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l(c)
	}
}

// Load 从 gdata 加载已保存的归一化值
//
// 未知参数ID会被忽略；gdataManager 为 nil 或没有存档时直接返回 nil
func (s *Store) Load() error {
	if s.gdataManager == nil {
		return nil
	}
	if !s.gdataManager.ObjectPropExists(paramsObject, paramsProperty) {
		return nil
	}

	data, err := s.gdataManager.LoadObjectProp(paramsObject, paramsProperty)
	if err != nil {
		return fmt.Errorf("failed to load params: %w", err)
	}

	var values map[string]float32
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to unmarshal params: %w", err)
	}

	loaded := 0
	for id, v := range values {
		p, ok := s.Get(id)
		if !ok {
			log.Printf("[ParamStore] Warning: ignoring saved value for unknown param %q", id)
			continue
		}
		p.setNormalized(v)
		s.notify(Change{ParamID: id, Kind: ChangeLoad, Value: p.Normalized()})
		loaded++
	}

	log.Printf("[ParamStore] Loaded %d param values", loaded)
	return nil
}

// Save 把当前归一化值保存到 gdata
//
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (s *Store) Save() error {
	if s.gdataManager == nil {
		return nil
	}

	values := make(map[string]float32)
	for _, p := range s.All() {
		values[p.ID()] = p.Normalized()
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}

	if err := s.gdataManager.SaveObjectProp(paramsObject, paramsProperty, data); err != nil {
		return fmt.Errorf("failed to save params: %w", err)
	}

	log.Printf("[ParamStore] Saved %d param values", len(values))
	return nil
}
