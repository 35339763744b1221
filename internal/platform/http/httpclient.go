// Package http constructs outbound HTTP clients for upstream source calls.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewClient creates an HTTP client configured for the exchange data
// sources. timeout bounds the whole request including body read; upstream
// fetches are blocking with no retry at this layer, so the timeout is the
// only thing standing between a stalled source and a stalled sync run.
//
// http.DefaultClient has no timeout, so a custom client is always used.
func NewClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
