package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc builds the proxy selector for LLM HTTP clients. Explicit
// httpProxy/httpsProxy URLs win over the process environment; hosts listed
// in noProxy (comma-separated, suffix match) connect directly.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	var skip []string
	for _, h := range strings.Split(noProxy, ",") {
		if h = strings.TrimSpace(h); h != "" {
			skip = append(skip, h)
		}
	}

	return func(req *http.Request) (*url.URL, error) {
		host := req.URL.Hostname()
		for _, h := range skip {
			if host == h || strings.HasSuffix(host, "."+h) {
				return nil, nil
			}
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
