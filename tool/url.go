package tool

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/moyoez/imgup/types"
)

// BuildUploadURL joins the server base URL with the fixed upload path.
func BuildUploadURL(server string) (string, error) {
	server = strings.TrimSpace(server)
	if server == "" {
		return "", fmt.Errorf("server must not be empty")
	}
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("failed to parse server URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("server URL has no host: %s", server)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + types.UploadPath
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}
