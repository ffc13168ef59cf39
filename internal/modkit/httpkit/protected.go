package httpkit

import "logzq/internal/platform/net/middleware"

// Protected groups routes behind p. A nil port mounts them unguarded
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		if p != nil {
			gr.Use(Auth(p))
		}
		fn(gr)
	})
}
