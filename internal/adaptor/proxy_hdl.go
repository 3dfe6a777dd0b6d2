package adaptor

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"game-platform/pkg/utils"

	"go.uber.org/zap"
)

// apiPrefix is stripped before requests reach a downstream service
const apiPrefix = "/api"

// ProxyHandler forwards gateway requests to one downstream service
type ProxyHandler struct {
	name  string
	proxy *httputil.ReverseProxy
	log   *zap.Logger
}

// NewProxyHandler proxies to target. name is used in the fallback message,
// e.g. "User service".
func NewProxyHandler(name, target string, transport http.RoundTripper, log *zap.Logger) (*ProxyHandler, error) {
	upstream, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse %s url %q: %w", name, target, err)
	}
	if upstream.Scheme == "" || upstream.Host == "" {
		return nil, fmt.Errorf("%s url %q must be absolute", name, target)
	}

	h := &ProxyHandler{
		name: name,
		log:  log.With(zap.String("upstream", name)),
	}
	h.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Path = stripAPIPrefix(pr.Out.URL.Path)
			if pr.Out.URL.RawPath != "" {
				pr.Out.URL.RawPath = stripAPIPrefix(pr.Out.URL.RawPath)
			}
			pr.SetURL(upstream)
			pr.SetXForwarded()
		},
		Transport:    transport,
		ErrorHandler: h.fallback,
	}
	return h, nil
}

func (h *ProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.proxy.ServeHTTP(w, r)
}

// fallback answers when the upstream cannot be reached
func (h *ProxyHandler) fallback(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Warn("Upstream unavailable",
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	utils.ResponseFailure(w, r, http.StatusServiceUnavailable, utils.CodeUnavailable,
		h.name+" is currently unavailable. Please try again later.", nil)
}

func stripAPIPrefix(path string) string {
	if path == apiPrefix {
		return "/"
	}
	if strings.HasPrefix(path, apiPrefix+"/") {
		return path[len(apiPrefix):]
	}
	return path
}
