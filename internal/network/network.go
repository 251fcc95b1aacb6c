// Package network builds the http clients used to talk to remote apis.
package network

import (
	"net"
	"net/http"
	"time"
)

const userAgent = "hosp-tui"

// NewHTTPClient returns a client bounded by timeout for the whole request. No transport stage
// waits longer than timeout either.
func NewHTTPClient(timeout time.Duration) *http.Client {
	stage := min(10*time.Second, timeout)

	return &http.Client{
		Timeout: timeout,
		Transport: &userAgentTransport{
			next: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           (&net.Dialer{Timeout: stage}).DialContext,
				TLSHandshakeTimeout:   stage,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: time.Second,
				MaxIdleConnsPerHost:   2,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
}

// userAgentTransport sets a User-Agent on requests that do not carry one.
type userAgentTransport struct {
	next http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", userAgent)

	return t.next.RoundTrip(clone)
}
