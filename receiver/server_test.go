package receiver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyoez/imgup/button"
	"github.com/moyoez/imgup/notify"
	"github.com/moyoez/imgup/picker"
	"github.com/moyoez/imgup/transfer"
	"github.com/moyoez/imgup/types"
)

func setupRouter(sizeLimitMB int, fieldName string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewServer(":0", sizeLimitMB, fieldName).Router()
}

func formRequest(t *testing.T, fieldName string, files ...types.SelectedFile) *http.Request {
	t.Helper()
	body, contentType, err := transfer.BuildForm(fieldName, files)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, types.UploadPath, bytes.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	return req
}

func png(name string) types.SelectedFile {
	return types.SelectedFile{Name: name, ContentType: "image/png", Data: []byte("png")}
}

func TestHandleUploadAccepts(t *testing.T) {
	router := setupRouter(10, types.FieldNameMulti)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, formRequest(t, types.FieldNameMulti,
		png("a.png"),
		types.SelectedFile{Name: "b.jpg", ContentType: "image/jpeg", Data: []byte("jpg")},
	))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var response struct {
		Status   string   `json:"status"`
		Received int      `json:"received"`
		Files    []string `json:"files"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, 2, response.Received)
	assert.Equal(t, []string{"a.png", "b.jpg"}, response.Files)
}

func TestHandleUploadRejects(t *testing.T) {
	router := setupRouter(1, types.FieldNameSingle)

	tests := []struct {
		name string
		req  func() *http.Request
		code int
	}{
		{
			name: "unsupported type",
			req: func() *http.Request {
				return formRequest(t, types.FieldNameSingle, types.SelectedFile{Name: "a.gif", ContentType: "image/gif", Data: []byte("gif")})
			},
			code: http.StatusUnsupportedMediaType,
		},
		{
			name: "wrong field",
			req:  func() *http.Request { return formRequest(t, "other", png("a.png")) },
			code: http.StatusBadRequest,
		},
		{
			name: "not a form",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, types.UploadPath, strings.NewReader("{}"))
			},
			code: http.StatusBadRequest,
		},
		{
			name: "too large",
			req: func() *http.Request {
				return formRequest(t, types.FieldNameSingle, types.SelectedFile{
					Name: "big.png", ContentType: "image/png", Data: bytes.Repeat([]byte{1}, 1024*1024+1),
				})
			},
			code: http.StatusRequestEntityTooLarge,
		},
		{
			name: "no content length",
			req: func() *http.Request {
				req := formRequest(t, types.FieldNameSingle, png("a.png"))
				req.ContentLength = -1
				return req
			},
			code: http.StatusLengthRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, tt.req())
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

// TestHandlerAgainstStub runs the real upload handler against the stub.
func TestHandlerAgainstStub(t *testing.T) {
	srv := httptest.NewServer(setupRouter(1, types.FieldNameMulti))
	defer srv.Close()

	var mu sync.Mutex
	var alerts []string
	notifier := notify.Func(func(_ context.Context, n types.Notification) error {
		mu.Lock()
		alerts = append(alerts, n.Message)
		mu.Unlock()
		return nil
	})

	msgs := types.DefaultMessages(1)
	sel := picker.New(types.ModeMulti)
	trig := button.New()
	h := transfer.New(sel, trig, notifier,
		transfer.WithEndpoint(srv.URL+types.UploadPath),
		transfer.WithFieldName(types.FieldNameMulti),
		transfer.WithMessages(msgs),
	)

	sel.SetFiles(png("a.png"), png("b.png"))
	assert.Equal(t, types.OutcomeSuccess, h.Upload(context.Background()).Outcome)

	sel.SetFiles(types.SelectedFile{Name: "big.png", ContentType: "image/png", Data: bytes.Repeat([]byte{1}, 2*1024*1024)})
	res := h.Upload(context.Background())
	assert.Equal(t, types.OutcomeSizeLimit, res.Outcome)
	assert.Equal(t, http.StatusRequestEntityTooLarge, res.StatusCode)

	sel.SetFiles(types.SelectedFile{Name: "a.gif", ContentType: "image/gif", Data: []byte("gif")})
	assert.Equal(t, types.OutcomeFailed, h.Upload(context.Background()).Outcome)

	sel.Clear()
	assert.Equal(t, types.OutcomeNoSelection, h.Upload(context.Background()).Outcome)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{msgs.Success, msgs.SizeLimit, msgs.Failed, msgs.NoSelection}, alerts)
	assert.False(t, trig.Disabled())
}
