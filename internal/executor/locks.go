package executor

import "sync"

// Control names the UI element (button, form) that triggered a request
type Control string

// Controls used by the terminal page and the command line
const (
	ControlTestKey  Control = "test-key"
	ControlProfile  Control = "profile"
	ControlPhones   Control = "phones"
	ControlRecords  Control = "records"
	ControlQuickSMS Control = "quick-sms"
	ControlSMSForm  Control = "sms-form"
	ControlVoice    Control = "voice-form"
	ControlStartup  Control = "startup-phones"
)

// Locks grants exclusive access per control.
// Holding one control never blocks another.
type Locks struct {
	mu        sync.Mutex
	held      map[Control]struct{}
	onRelease func(Control)
}

// NewLocks creates an empty lock table. onRelease, when set, runs once for
// every released token, after the control is free again.
func NewLocks(onRelease func(Control)) *Locks {
	return &Locks{
		held:      make(map[Control]struct{}),
		onRelease: onRelease,
	}
}

// Acquire takes the control. It returns false when the control is already held.
func (l *Locks) Acquire(c Control) (*Token, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[c]; busy {
		return nil, false
	}
	l.held[c] = struct{}{}
	return &Token{locks: l, control: c}, true
}

// Busy reports whether the control has a request in flight
func (l *Locks) Busy(c Control) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, busy := l.held[c]
	return busy
}

// Held returns the number of controls currently held
func (l *Locks) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}

func (l *Locks) release(c Control) {
	l.mu.Lock()
	delete(l.held, c)
	l.mu.Unlock()

	if l.onRelease != nil {
		l.onRelease(c)
	}
}

// Token is exclusive access to one control
type Token struct {
	locks   *Locks
	control Control
	once    sync.Once
}

// Control returns the control this token holds
func (t *Token) Control() Control {
	return t.control
}

// Release frees the control. Calling it again is a no-op.
func (t *Token) Release() {
	t.once.Do(func() {
		t.locks.release(t.control)
	})
}
