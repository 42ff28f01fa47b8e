package notify

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyoez/imgup/types"
)

func TestTerminalPrintsMessage(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(&out, nil, true)

	err := term.Alert(context.Background(), types.Notification{Type: types.NotifyTypeSuccess, Message: "Image uploaded successfully."})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Image uploaded successfully.")
	assert.NotContains(t, out.String(), "press Enter")
}

func TestTerminalWaitsForAcknowledgement(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(&out, strings.NewReader("\n\n"), true)

	for i := 0; i < 2; i++ {
		err := term.Alert(context.Background(), types.Notification{Type: types.NotifyTypeFailed, Message: "Failed to upload image."})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, strings.Count(out.String(), "press Enter"))
}

func TestTerminalAcknowledgementHonoursContext(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	term := NewTerminal(io.Discard, pr, true)

	errc := make(chan error, 1)
	go func() {
		errc <- term.Alert(ctx, types.Notification{Message: "waiting"})
	}()
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("alert did not return after cancel")
	}
}

func TestTerminalAcknowledgesAfterCancelledAlert(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	term := NewTerminal(io.Discard, pr, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := term.Alert(ctx, types.Notification{Message: "first"})
	require.ErrorIs(t, err, context.Canceled)

	errc := make(chan error, 1)
	go func() {
		errc <- term.Alert(context.Background(), types.Notification{Message: "second"})
	}()
	_, err = pw.Write([]byte("\n"))
	require.NoError(t, err)

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("second alert was not acknowledged")
	}
}

func TestMultiJoinsErrors(t *testing.T) {
	var calls []string
	first := Func(func(_ context.Context, n types.Notification) error {
		calls = append(calls, "first:"+n.Message)
		return errors.New("first failed")
	})
	second := Func(func(_ context.Context, n types.Notification) error {
		calls = append(calls, "second:"+n.Message)
		return nil
	})

	err := Multi{first, nil, second}.Alert(context.Background(), types.Notification{Message: "hi"})
	assert.EqualError(t, err, "first failed")
	assert.Equal(t, []string{"first:hi", "second:hi"}, calls)

	assert.NoError(t, Multi{second}.Alert(context.Background(), types.Notification{}))
}

// serveOnce accepts one frame on a Unix socket and answers with reply.
func serveOnce(t *testing.T, reply string) (string, <-chan types.Notification) {
	t.Helper()
	dir, err := os.MkdirTemp("", "imgup")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	path := filepath.Join(dir, "n.sock")

	ln, err := net.Listen("unix", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	got := make(chan types.Notification, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		var size [4]byte
		if _, err := io.ReadFull(conn, size[:]); err != nil {
			return
		}
		payload := make([]byte, binary.LittleEndian.Uint32(size[:]))
		if _, err := io.ReadFull(conn, payload); err != nil {
			return
		}
		var n types.Notification
		if err := json.Unmarshal(payload, &n); err == nil {
			got <- n
		}
		_, _ = conn.Write([]byte(reply))
	}()
	return path, got
}

func TestSocketSendsFrame(t *testing.T) {
	path, got := serveOnce(t, `{"status":"ok"}`)

	err := NewSocket(path).Alert(context.Background(), types.Notification{
		Type:    types.NotifyTypeSizeLimit,
		Message: "too big",
		Data:    map[string]any{"statusCode": 413},
	})
	require.NoError(t, err)

	select {
	case n := <-got:
		assert.Equal(t, types.NotifyTypeSizeLimit, n.Type)
		assert.Equal(t, "too big", n.Message)
		assert.EqualValues(t, 413, n.Data["statusCode"])
	case <-time.After(5 * time.Second):
		t.Fatal("no frame received")
	}
}

func TestSocketReportsHelperError(t *testing.T) {
	path, _ := serveOnce(t, `{"error":"dialog unavailable"}`)

	err := NewSocket(path).Alert(context.Background(), types.Notification{Message: "x"})
	assert.ErrorContains(t, err, "dialog unavailable")
}

func TestSocketMissing(t *testing.T) {
	err := NewSocket(filepath.Join(t.TempDir(), "absent.sock")).Alert(context.Background(), types.Notification{Message: "x"})
	assert.ErrorContains(t, err, "unix socket not found")
}

func TestSocketRejectsOversizedPayload(t *testing.T) {
	path, _ := serveOnce(t, `{}`)

	err := NewSocket(path).Alert(context.Background(), types.Notification{Message: strings.Repeat("x", NotifyWriteChunkSize)})
	assert.ErrorContains(t, err, "too large")
}
