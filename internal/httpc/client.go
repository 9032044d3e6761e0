// Package httpc supplies HTTP clients with timeouts set, so callers
// never reach for http.DefaultClient and hang forever on a dead peer.
package httpc

import (
	"net"
	"net/http"
	"time"
)

// DefaultTimeout bounds a whole request through the shared Client.
const DefaultTimeout = 30 * time.Second

// Client is the process-wide client. Suitable for one-shot REST calls;
// build a dedicated client with NewClient when a different overall
// timeout is needed.
var Client = NewClient(DefaultTimeout)

// NewClient returns a client with connection-level timeouts tuned for
// talking to nearby services.
func NewClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext:           dialer.DialContext,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: time.Second,
		},
	}
}
