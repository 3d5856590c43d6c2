package screen

// Manager keeps the stack of open screens; only the top one receives input.
type Manager struct {
	stack []Screen
}

// NewManager creates an empty screen manager.
func NewManager() *Manager {
	return &Manager{}
}

// Push opens s on top of the current screen.
func (m *Manager) Push(s Screen) {
	if s == nil {
		return
	}
	m.stack = append(m.stack, s)
}

// Pop closes the top screen and returns it, or nil when none is open.
func (m *Manager) Pop() Screen {
	if len(m.stack) == 0 {
		return nil
	}
	top := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return top
}

// Remove closes s wherever it sits in the stack.
func (m *Manager) Remove(s Screen) {
	for i := len(m.stack) - 1; i >= 0; i-- {
		if m.stack[i] == s {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			return
		}
	}
}

// Replace swaps the top screen for s; a nil s closes it.
func (m *Manager) Replace(s Screen) {
	m.Pop()
	m.Push(s)
}

// Current returns the top screen, or nil.
func (m *Manager) Current() Screen {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// IsActive reports whether any screen is open.
func (m *Manager) IsActive() bool {
	return len(m.stack) > 0
}

// Type returns the type of the top screen, or TypeNone.
func (m *Manager) Type() Type {
	if s := m.Current(); s != nil {
		return s.Type()
	}
	return TypeNone
}

// Clear closes every screen.
func (m *Manager) Clear() {
	m.stack = m.stack[:0]
}
