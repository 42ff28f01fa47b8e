package notify

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/moyoez/imgup/types"
)

var (
	baseStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	successStyle = baseStyle.Foreground(lipgloss.Color("10"))
	warnStyle    = baseStyle.Foreground(lipgloss.Color("11"))
	errorStyle   = baseStyle.Foreground(lipgloss.Color("9"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
)

// Terminal prints alerts to Out. With Acknowledge set it then waits for a line on In.
type Terminal struct {
	Out         io.Writer
	In          io.Reader
	Acknowledge bool

	mu    sync.Mutex
	start sync.Once
	acks  chan error
}

func NewTerminal(out io.Writer, in io.Reader, acknowledge bool) *Terminal {
	return &Terminal{Out: out, In: in, Acknowledge: acknowledge}
}

func (t *Terminal) Alert(ctx context.Context, n types.Notification) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := fmt.Fprintln(t.Out, styleFor(n.Type).Render(n.Message)); err != nil {
		return fmt.Errorf("failed to write alert: %v", err)
	}
	if !t.Acknowledge || t.In == nil {
		return nil
	}

	if _, err := fmt.Fprint(t.Out, hintStyle.Render("press Enter to continue")); err != nil {
		return fmt.Errorf("failed to write alert: %v", err)
	}
	t.start.Do(t.readLines)

	select {
	case err, ok := <-t.acks:
		_, _ = fmt.Fprintln(t.Out)
		if ok && err != nil && err != io.EOF {
			return fmt.Errorf("failed to read acknowledgement: %v", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// readLines is the only reader of In. A line read while no alert is waiting
// is held until the next alert takes it; the channel is closed once In fails.
func (t *Terminal) readLines() {
	t.acks = make(chan error)
	go func() {
		defer close(t.acks)
		r := bufio.NewReader(t.In)
		for {
			_, err := r.ReadString('\n')
			t.acks <- err
			if err != nil {
				return
			}
		}
	}()
}

func styleFor(notifyType string) lipgloss.Style {
	switch notifyType {
	case types.NotifyTypeSuccess:
		return successStyle
	case types.NotifyTypeNoSelection, types.NotifyTypeSizeLimit:
		return warnStyle
	case types.NotifyTypeFailed:
		return errorStyle
	default:
		return baseStyle
	}
}
