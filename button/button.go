package button

import (
	"sync"

	"github.com/moyoez/imgup/tool"
)

// Button is the control that starts an upload.
type Button interface {
	Disable()
	Enable()
	Disabled() bool
}

// Trigger is a Button safe for use from several goroutines.
type Trigger struct {
	mu       sync.Mutex
	disabled bool
	// OnChange is called with the new state after every transition, outside the lock.
	OnChange func(disabled bool)
}

func New() *Trigger {
	return &Trigger{}
}

func (t *Trigger) Disable() {
	t.set(true)
}

func (t *Trigger) Enable() {
	t.set(false)
}

func (t *Trigger) Disabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.disabled
}

// TryDisable disables the trigger and reports true only if it was enabled.
func (t *Trigger) TryDisable() bool {
	t.mu.Lock()
	if t.disabled {
		t.mu.Unlock()
		return false
	}
	t.disabled = true
	t.mu.Unlock()
	t.changed(true)
	return true
}

func (t *Trigger) set(disabled bool) {
	t.mu.Lock()
	if t.disabled == disabled {
		t.mu.Unlock()
		return
	}
	t.disabled = disabled
	t.mu.Unlock()
	t.changed(disabled)
}

func (t *Trigger) changed(disabled bool) {
	if disabled {
		tool.DefaultLogger.Debug("Upload button disabled")
	} else {
		tool.DefaultLogger.Debug("Upload button enabled")
	}
	if t.OnChange != nil {
		t.OnChange(disabled)
	}
}
