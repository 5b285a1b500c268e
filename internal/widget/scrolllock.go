package widget

import "sync"

// ScrollLock is a reference-counted page scroll lock shared by every overlay
// group. The page is locked while the count is positive.
type ScrollLock struct {
	mu       sync.Mutex
	count    int
	onChange func(locked bool)
}

// NewScrollLock returns an unlocked lock. onChange, if set, is called on the
// 0->1 and 1->0 transitions with the lock held.
func NewScrollLock(onChange func(locked bool)) *ScrollLock {
	return &ScrollLock{onChange: onChange}
}

// Acquire takes one reference.
func (l *ScrollLock) Acquire() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count++
	if l.count == 1 && l.onChange != nil {
		l.onChange(true)
	}
}

// Release drops one reference. Releasing an unheld lock is a no-op.
func (l *ScrollLock) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count == 0 {
		return
	}
	l.count--
	if l.count == 0 && l.onChange != nil {
		l.onChange(false)
	}
}

// Locked reports whether any reference is held.
func (l *ScrollLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count > 0
}

// Holders returns the current reference count.
func (l *ScrollLock) Holders() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
