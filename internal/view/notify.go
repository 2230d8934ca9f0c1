package view

import (
	"sync"
	"time"
)

// Notice is a transient message
type Notice struct {
	ID       int
	Text     string
	Duration time.Duration
}

// Notifier holds the notices currently on screen
type Notifier struct {
	mu sync.Mutex

	duration time.Duration
	nextID   int
	notices  []Notice
}

// NewNotifier creates a notifier whose notices last d
func NewNotifier(d time.Duration) *Notifier {
	return &Notifier{duration: d}
}

// Show adds a notice. The caller schedules Dismiss after notice.Duration.
func (n *Notifier) Show(text string) Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	notice := Notice{ID: n.nextID, Text: text, Duration: n.duration}
	n.notices = append(n.notices, notice)
	return notice
}

// Dismiss removes one notice; unknown ids are ignored
func (n *Notifier) Dismiss(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, notice := range n.notices {
		if notice.ID == id {
			n.notices = append(n.notices[:i], n.notices[i+1:]...)
			return
		}
	}
}

// Active returns the notices still shown, oldest first
func (n *Notifier) Active() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notice(nil), n.notices...)
}
