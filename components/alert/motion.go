package alert

import "sync"

// Frame is the overlay a Motion supplies for the current transition frame.
type Frame struct {
	Class string
	Style string
	// Removed is set once the leave transition has completed and the element
	// should no longer be rendered.
	Removed bool
}

// Motion sequences the exit transition of a dismissed alert. The alert only
// tells it the current visibility; the motion owns the timing.
type Motion interface {
	Frame(visible bool) Frame
	// Leave starts the exit transition. done runs once when it completes.
	Leave(done func())
	// Finish reports that the transition has completed.
	Finish()
}

type motionPhase int

const (
	phaseVisible motionPhase = iota
	phaseLeaving
	phaseLeft
)

// CSSMotion drives a class based transition that runs in the browser. The
// host calls Finish when the client reports the transition end.
type CSSMotion struct {
	Name string

	mu    sync.Mutex
	phase motionPhase
	done  func()
}

func NewCSSMotion(name string) *CSSMotion {
	return &CSSMotion{Name: name}
}

func (m *CSSMotion) Frame(visible bool) Frame {
	m.mu.Lock()
	defer m.mu.Unlock()

	if visible {
		return Frame{}
	}
	switch m.phase {
	case phaseLeft:
		return Frame{Removed: true}
	case phaseLeaving:
		return Frame{Class: m.Name + "-leave " + m.Name + "-leave-active"}
	default:
		return Frame{Class: m.Name + "-leave " + m.Name + "-leave-start"}
	}
}

func (m *CSSMotion) Leave(done func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != phaseVisible {
		return
	}
	m.phase = phaseLeaving
	m.done = done
}

func (m *CSSMotion) Finish() {
	m.mu.Lock()
	if m.phase != phaseLeaving {
		m.mu.Unlock()
		return
	}
	m.phase = phaseLeft
	done := m.done
	m.done = nil
	m.mu.Unlock()

	if done != nil {
		done()
	}
}

// NoMotion completes the leave transition immediately.
type NoMotion struct {
	mu   sync.Mutex
	left bool
}

func (m *NoMotion) Frame(visible bool) Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Frame{Removed: !visible && m.left}
}

func (m *NoMotion) Leave(done func()) {
	m.mu.Lock()
	if m.left {
		m.mu.Unlock()
		return
	}
	m.left = true
	m.mu.Unlock()

	if done != nil {
		done()
	}
}

func (m *NoMotion) Finish() {}
