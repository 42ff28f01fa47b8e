package transfer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/moyoez/imgup/types"
)

var (
	ErrNoSelection = errors.New("no file selected")
	ErrTransport   = errors.New("upload request could not be completed")
	ErrSizeLimit   = errors.New("upload rejected: payload too large")
	ErrUpload      = errors.New("upload rejected")
)

// Classify maps how a request settled onto the error taxonomy. A 2xx response yields nil.
func Classify(resp *http.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if resp == nil {
		return fmt.Errorf("%w: no response", ErrTransport)
	}
	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	case resp.StatusCode == http.StatusRequestEntityTooLarge:
		return fmt.Errorf("%w: %s", ErrSizeLimit, resp.Status)
	default:
		return fmt.Errorf("%w: %s", ErrUpload, resp.Status)
	}
}

// outcomeOf returns the outcome name and notification type for a classified error.
func outcomeOf(err error) (outcome, notifyType string) {
	switch {
	case err == nil:
		return types.OutcomeSuccess, types.NotifyTypeSuccess
	case errors.Is(err, ErrNoSelection):
		return types.OutcomeNoSelection, types.NotifyTypeNoSelection
	case errors.Is(err, ErrSizeLimit):
		return types.OutcomeSizeLimit, types.NotifyTypeSizeLimit
	default:
		return types.OutcomeFailed, types.NotifyTypeFailed
	}
}

func messageFor(msgs types.Messages, outcome string) string {
	switch outcome {
	case types.OutcomeSuccess:
		return msgs.Success
	case types.OutcomeNoSelection:
		return msgs.NoSelection
	case types.OutcomeSizeLimit:
		return msgs.SizeLimit
	default:
		return msgs.Failed
	}
}
