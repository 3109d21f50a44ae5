package pixiv

import (
	"errors"
	"net/http"
	"time"
)

const (
	// DefaultUserAgent is a desktop browser identification string
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
	// DefaultReferer is the feed's own ranking page
	DefaultReferer = "https://www.pixiv.net/ranking.php"
)

// HTTPOptions configures the shared client
type HTTPOptions struct {
	UserAgent string
	Referer   string
	// Timeout caps a whole request including the body; 0 means none
	Timeout time.Duration
	// MaxIdleConnsPerHost should be at least the worker count
	MaxIdleConnsPerHost int
	// Base is the underlying RoundTripper; nil uses a tuned *http.Transport
	Base http.RoundTripper
}

// headerTransport fills in browser headers the caller did not set
type headerTransport struct {
	base      http.RoundTripper
	userAgent string
	referer   string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	r := req.Clone(req.Context())
	if r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", t.userAgent)
	}
	if r.Header.Get("Referer") == "" {
		r.Header.Set("Referer", t.referer)
	}
	return t.base.RoundTrip(r)
}

// NewHTTPClient builds the client shared by the feed client and the asset downloader
func NewHTTPClient(o HTTPOptions) *http.Client {
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Referer == "" {
		o.Referer = DefaultReferer
	}
	if o.MaxIdleConnsPerHost <= 0 {
		o.MaxIdleConnsPerHost = 32
	}
	base := o.Base
	if base == nil {
		base = &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			MaxIdleConns:          o.MaxIdleConnsPerHost * 2,
			MaxIdleConnsPerHost:   o.MaxIdleConnsPerHost,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
		}
	}
	return &http.Client{
		Transport: &headerTransport{base: base, userAgent: o.UserAgent, referer: o.Referer},
		Timeout:   o.Timeout,
	}
}
