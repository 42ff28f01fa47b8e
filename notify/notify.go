// Package notify delivers user-facing alerts. Every Notifier blocks until the
// alert was shown (and acknowledged, where the channel supports it).
package notify

import (
	"context"
	"errors"

	"github.com/moyoez/imgup/types"
)

type Notifier interface {
	Alert(ctx context.Context, n types.Notification) error
}

// Func adapts a plain function to a Notifier.
type Func func(ctx context.Context, n types.Notification) error

func (f Func) Alert(ctx context.Context, n types.Notification) error {
	return f(ctx, n)
}

// Multi delivers to every notifier in order and joins their errors.
type Multi []Notifier

func (m Multi) Alert(ctx context.Context, n types.Notification) error {
	var errs []error
	for _, notifier := range m {
		if notifier == nil {
			continue
		}
		if err := notifier.Alert(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
