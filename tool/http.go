package tool

import (
	"net/http"
	"time"
)

// DefaultTimeout is zero: an upload runs until the server settles it.
var DefaultTimeout time.Duration

// NewHTTPClient creates the client used for uploads. A zero timeout means none.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
		DisableKeepAlives:   false,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
