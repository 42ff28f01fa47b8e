package notify

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/bytedance/sonic"

	"github.com/moyoez/imgup/tool"
	"github.com/moyoez/imgup/types"
)

// NotifyWriteChunkSize is the chunk size when writing payload to Unix socket (avoid large single write).
const NotifyWriteChunkSize = 32 * 1024 // 32KB

var (
	// DefaultUnixSocketPath is the default Unix socket path for IPC
	DefaultUnixSocketPath = "/tmp/imgup-notify.sock"
	// UnixSocketTimeout bounds dialing and each read/write on the socket
	UnixSocketTimeout = 3 * time.Second
)

// Socket sends every alert to a desktop helper listening on a Unix domain socket.
// Frames are a 4-byte little-endian length followed by the JSON notification;
// the helper answers with a JSON object that may carry an "error" field.
type Socket struct {
	Path    string
	Timeout time.Duration
}

func NewSocket(path string) *Socket {
	if path == "" {
		path = DefaultUnixSocketPath
	}
	return &Socket{Path: path, Timeout: UnixSocketTimeout}
}

func (s *Socket) Alert(ctx context.Context, n types.Notification) error {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = UnixSocketTimeout
	}

	// Check if socket file exists
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return fmt.Errorf("unix socket not found: %s (is the notification helper running?)", s.Path)
	}

	payload, err := sonic.Marshal(&n)
	if err != nil {
		return fmt.Errorf("failed to serialize notification data: %v", err)
	}
	if len(payload) > NotifyWriteChunkSize {
		return fmt.Errorf("notification payload too large: %d bytes (max %d)", len(payload), NotifyWriteChunkSize)
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "unix", s.Path)
	if err != nil {
		return fmt.Errorf("failed to connect to Unix socket %s: %v", s.Path, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close Unix socket connection: %v", err)
		}
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		tool.DefaultLogger.Errorf("Failed to set write deadline: %v", err)
	}

	frame := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(frame, uint32(len(payload)))
	copy(frame[4:], payload)
	if _, err := conn.Write(frame); err != nil {
		return fmt.Errorf("failed to write notification to Unix socket: %v", err)
	}
	tool.DefaultLogger.Debugf("Sending notification to Unix socket (len=%d): %s", len(payload), payload)

	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		tool.DefaultLogger.Errorf("Failed to set read deadline: %v", err)
	}

	buf := make([]byte, 4096)
	nr, err := conn.Read(buf)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read response from Unix socket: %v", err)
	}

	if nr > 0 {
		var response map[string]any
		if err := sonic.Unmarshal(buf[:nr], &response); err != nil {
			tool.DefaultLogger.Debugf("Unix socket response (raw): %s", buf[:nr])
		} else if errMsg, ok := response["error"].(string); ok && errMsg != "" {
			return fmt.Errorf("notification helper returned error: %s", errMsg)
		}
	}

	tool.DefaultLogger.Infof("[UnixSocket] Notification sent: %s - %s", n.Type, n.Message)
	return nil
}
