package types

import (
	"fmt"
	"strings"
)

// Mode selects how many files the picker keeps and which form field they go under.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeMulti  Mode = "multi"
)

const (
	UploadPath      = "/api/upload"
	FieldNameSingle = "image"
	FieldNameMulti  = "images"
)

// ParseMode accepts "single" or "multi", case-insensitive. Empty means single.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSingle:
		return ModeSingle, nil
	case ModeMulti:
		return ModeMulti, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want single or multi)", s)
	}
}

// FieldName returns the multipart field used by the mode.
func (m Mode) FieldName() string {
	if m == ModeMulti {
		return FieldNameMulti
	}
	return FieldNameSingle
}

// Messages are the user-facing strings for each outcome.
type Messages struct {
	NoSelection string
	Success     string
	SizeLimit   string
	Failed      string
}

func DefaultMessages(sizeLimitMB int) Messages {
	if sizeLimitMB <= 0 {
		sizeLimitMB = 10
	}
	return Messages{
		NoSelection: "Please select an image file.",
		Success:     "Image uploaded successfully.",
		SizeLimit:   fmt.Sprintf("Failed to upload image: size is limited to %dMB.", sizeLimitMB),
		Failed:      "Failed to upload image.",
	}
}

// UploadResult is what a single attempt settled to.
type UploadResult struct {
	RequestID  string `json:"requestId,omitempty"`
	Outcome    string `json:"outcome"`
	StatusCode int    `json:"statusCode,omitempty"`
	Files      int    `json:"files"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (r UploadResult) OK() bool {
	return r.Outcome == OutcomeSuccess
}

const (
	OutcomeNoSelection = "no_selection"
	OutcomeSuccess     = "success"
	OutcomeSizeLimit   = "size_limit"
	OutcomeFailed      = "failed"
)
