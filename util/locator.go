package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/openmapkit/deployment-repo/common/rcontext"
)

// RequestLocator builds absolute URLs that point back at this server, as seen
// by the client that made the current request.
type RequestLocator struct{}

func (RequestLocator) ApiUrl(ctx rcontext.RequestContext, relPath string) string {
	return MakeUrl(BaseUrl(ctx), ctx.Config.Urls.ApiPrefix, EscapePath(relPath))
}

func (RequestLocator) PublicDirFileUrl(ctx rcontext.RequestContext, relDir string, name string) string {
	return MakeUrl(BaseUrl(ctx), ctx.Config.Urls.PublicPrefix, EscapePath(relDir), EscapePath(name))
}

// BaseUrl returns scheme://host for the request. A configured publicBaseUrl
// always wins. Without a request (offline tools) the bind address is used.
func BaseUrl(ctx rcontext.RequestContext) string {
	if ctx.Config.Urls.PublicBaseUrl != "" {
		return strings.TrimRight(ctx.Config.Urls.PublicBaseUrl, "/")
	}

	r := ctx.Request
	if r == nil {
		host := ctx.Config.General.BindAddress
		if host == "" || host == "0.0.0.0" || host == "::" {
			host = "localhost"
		}
		return "http://" + net.JoinHostPort(host, strconv.Itoa(ctx.Config.General.Port))
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if ctx.Config.General.TrustAnyForward || ctx.Config.General.UseForwardedHost {
		if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
			scheme = proto
		}
	}

	host := r.Host
	if ctx.Config.General.UseForwardedHost && r.Header.Get("X-Forwarded-Host") != "" {
		host = r.Header.Get("X-Forwarded-Host")
	}

	return scheme + "://" + host
}
