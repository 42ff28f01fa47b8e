package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/moyoez/imgup/button"
	"github.com/moyoez/imgup/notify"
	"github.com/moyoez/imgup/picker"
	"github.com/moyoez/imgup/tool"
	"github.com/moyoez/imgup/types"
)

// Handler wires a file input and a trigger button to one multipart POST per press.
type Handler struct {
	input     picker.FileInput
	trigger   button.Button
	notifier  notify.Notifier
	client    *http.Client
	endpoint  string
	fieldName string
	messages  types.Messages
}

// maxDrain bounds how much of a response body is discarded before closing it.
const maxDrain = 64 * 1024

type Option func(*Handler)

func WithClient(c *http.Client) Option {
	return func(h *Handler) {
		if c != nil {
			h.client = c
		}
	}
}

// WithEndpoint sets the absolute upload URL, normally built by tool.BuildUploadURL.
func WithEndpoint(endpoint string) Option {
	return func(h *Handler) {
		h.endpoint = endpoint
	}
}

func WithFieldName(name string) Option {
	return func(h *Handler) {
		if name != "" {
			h.fieldName = name
		}
	}
}

func WithMessages(m types.Messages) Option {
	return func(h *Handler) {
		h.messages = m
	}
}

// New builds a Handler. Without options it posts to http://localhost:3000/api/upload
// under the single-file field name. A nil trigger is replaced by a private one.
func New(input picker.FileInput, trigger button.Button, notifier notify.Notifier, opts ...Option) *Handler {
	if trigger == nil {
		trigger = button.New()
	}
	h := &Handler{
		input:     input,
		trigger:   trigger,
		notifier:  notifier,
		client:    tool.NewHTTPClient(tool.DefaultTimeout),
		endpoint:  "http://localhost:3000" + types.UploadPath,
		fieldName: types.FieldNameSingle,
		messages:  types.DefaultMessages(10),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// attempt is a validated selection packed into a request body.
type attempt struct {
	id          string
	files       int
	body        []byte
	contentType string
}

// Upload runs one attempt to completion. It never returns an error: every
// failure is reported through the notifier and the returned result, and the
// trigger is always enabled again before Upload returns.
func (h *Handler) Upload(ctx context.Context) types.UploadResult {
	a, res := h.prepare(ctx)
	if a == nil {
		return res
	}
	h.trigger.Disable()
	return h.send(ctx, a)
}

// Trigger is the non-blocking press of the button. Selection checks and
// disabling happen on the caller's goroutine; the request runs on its own.
// It reports false without doing anything while the trigger is disabled.
func (h *Handler) Trigger(ctx context.Context) (<-chan types.UploadResult, bool) {
	if h.trigger.Disabled() {
		tool.DefaultLogger.Debug("Upload already in progress, ignoring trigger")
		return nil, false
	}

	done := make(chan types.UploadResult, 1)
	a, res := h.prepare(ctx)
	if a == nil {
		done <- res
		close(done)
		return done, true
	}

	if !h.disable() {
		tool.DefaultLogger.Debug("Upload already in progress, ignoring trigger")
		return nil, false
	}
	go func() {
		defer close(done)
		done <- h.send(ctx, a)
	}()
	return done, true
}

func (h *Handler) disable() bool {
	if t, ok := h.trigger.(interface{ TryDisable() bool }); ok {
		return t.TryDisable()
	}
	if h.trigger.Disabled() {
		return false
	}
	h.trigger.Disable()
	return true
}

// prepare reads and validates the selection. A nil attempt means the result is final.
func (h *Handler) prepare(ctx context.Context) (*attempt, types.UploadResult) {
	var files []types.SelectedFile
	if h.input != nil {
		files = h.input.Files()
	}
	if len(files) == 0 {
		return nil, h.finish(ctx, types.UploadResult{}, ErrNoSelection)
	}

	body, contentType, err := BuildForm(h.fieldName, files)
	if err != nil {
		tool.DefaultLogger.Errorf("Failed to build upload form: %v", err)
		return nil, h.finish(ctx, types.UploadResult{Files: len(files)}, fmt.Errorf("%w: %v", ErrUpload, err))
	}
	return &attempt{
		id:          tool.GenerateRandomUUID(),
		files:       len(files),
		body:        body,
		contentType: contentType,
	}, types.UploadResult{}
}

// send posts the attempt and enables the trigger again once it settles.
func (h *Handler) send(ctx context.Context, a *attempt) types.UploadResult {
	defer h.trigger.Enable()

	res := types.UploadResult{RequestID: a.id, Files: a.files}
	log := tool.DefaultLogger.With("requestId", a.id)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(a.body))
	if err != nil {
		return h.finish(ctx, res, fmt.Errorf("%w: failed to create upload request: %v", ErrTransport, err))
	}
	req.Header.Set("Content-Type", a.contentType)
	req.Header.Set("X-Request-Id", a.id)
	// the image server refuses bodies without a Content-Length
	req.ContentLength = int64(len(a.body))

	log.Infof("Uploading %d file(s), %d bytes to %s", a.files, len(a.body), h.endpoint)
	resp, err := h.client.Do(req)
	if resp != nil {
		res.StatusCode = resp.StatusCode
		defer func() {
			// drain so the connection can be reused
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
			if err := resp.Body.Close(); err != nil {
				log.Errorf("Failed to close response body: %v", err)
			}
		}()
	}
	return h.finish(ctx, res, Classify(resp, err))
}

// finish logs the outcome and shows its notification.
func (h *Handler) finish(ctx context.Context, res types.UploadResult, err error) types.UploadResult {
	outcome, notifyType := outcomeOf(err)
	res.Outcome = outcome
	res.Message = messageFor(h.messages, outcome)
	res.Err = err

	switch outcome {
	case types.OutcomeSuccess:
		tool.DefaultLogger.Infof("Upload succeeded: %d file(s), status %d", res.Files, res.StatusCode)
	case types.OutcomeNoSelection:
		tool.DefaultLogger.Warn("Upload skipped: no file selected")
	default:
		tool.DefaultLogger.Errorf("Upload failed: %v", err)
	}

	if h.notifier != nil {
		n := types.Notification{
			Type:    notifyType,
			Title:   "Upload",
			Message: res.Message,
			Data: map[string]any{
				"files": res.Files,
			},
		}
		if res.RequestID != "" {
			n.Data["requestId"] = res.RequestID
		}
		if res.StatusCode != 0 {
			n.Data["statusCode"] = res.StatusCode
		}
		if nerr := h.notifier.Alert(ctx, n); nerr != nil {
			tool.DefaultLogger.Warnf("Failed to deliver notification: %v", nerr)
		}
	}
	return res
}
