package state

import (
	"errors"
	"sync"
)

// Status 房间状态。judging 不是独立状态：评审阶段折叠在 playing 里，
// 由 judgingIndex 和各玩家的提交标记共同决定。
type Status string

const (
	StatusWaiting Status = "waiting"
	StatusSetup   Status = "setup"
	StatusPlaying Status = "playing"
)

// ErrTransitionNotAllowed is returned when a status transition is not allowed.
var ErrTransitionNotAllowed = errors.New("status transition not allowed")

// transitions fromStatus -> allowed toStatus set
var transitions = map[Status]map[Status]bool{
	StatusWaiting: {StatusPlaying: true},
	StatusSetup:   {StatusWaiting: true, StatusPlaying: true},
	StatusPlaying: {StatusWaiting: true, StatusPlaying: true},
}

// 状态机
type Machine struct {
	current Status
	mutex   sync.RWMutex
}

// NewMachine 初始为 waiting
func NewMachine() *Machine {
	return &Machine{current: StatusWaiting}
}

func (m *Machine) Current() Status {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.current
}

func (m *Machine) Is(status Status) bool {
	return m.Current() == status
}

// Transition 校验并切换状态
func (m *Machine) Transition(to Status) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if allowed, exists := transitions[m.current]; !exists || !allowed[to] {
		return ErrTransitionNotAllowed
	}
	m.current = to
	return nil
}

// Force 无条件切换。requestReplay 和 updateSettings 在任意状态下都会
// 重置房间状态，对应这里。
func (m *Machine) Force(to Status) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.current = to
}
