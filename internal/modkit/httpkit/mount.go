package httpkit

import (
	"net/http"
	"path"
	"strings"
)

// Middlewares is an ordered middleware stack
type Middlewares = []func(http.Handler) http.Handler

// MountUnder scopes mw and the routes added by mount to prefix
func MountUnder(r Router, prefix string, mw Middlewares, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		sub.Use(mw...)
		mount(sub)
	})
}

// MountAPI mounts under /api/<version>, for example
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(), func(api httpkit.Router) {
//		query.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw Middlewares, mount func(Router)) {
	MountUnder(r, path.Join("/api", strings.Trim(version, "/")), mw, mount)
}

// MountAPIV1 mounts under /api/v1
func MountAPIV1(r Router, mw Middlewares, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
