package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func header(k string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set(k, "1")
			next.ServeHTTP(w, req)
		})
	}
}

func TestAdaptChi_RootGroupRouteAndMux(t *testing.T) {
	t.Parallel()

	m := chi.NewRouter()
	r := AdaptChi(m)
	r.Use(header("X-Root"))

	r.Get("/root", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = w.Write([]byte("root")) })

	r.Group(func(gr Router) {
		gr.Use(header("X-Group"))
		if gr.Mux() == nil {
			t.Fatalf("group Mux() returned nil")
		}
		gr.Get("/g/ping", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = w.Write([]byte("g")) })
	})

	r.Route("/api", func(sr Router) {
		sr.Use(header("X-Route"))
		sr.Post("/echo", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(stdhttp.StatusCreated) })
		sr.Route("/v1", func(v1 Router) {
			v1.Handle("/raw", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
				w.WriteHeader(stdhttp.StatusAccepted)
			}))
		})
		sr.Group(func(g Router) {
			g.Get("/grouped", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(stdhttp.StatusTeapot) })
		})
	})

	if r.Mux() != m {
		t.Fatalf("root Mux() should be the chi mux")
	}

	cases := []struct {
		method, path string
		status       int
		headers      []string
	}{
		{stdhttp.MethodGet, "/root", 200, []string{"X-Root"}},
		{stdhttp.MethodGet, "/g/ping", 200, []string{"X-Root", "X-Group"}},
		{stdhttp.MethodPost, "/api/echo", 201, []string{"X-Root", "X-Route"}},
		{stdhttp.MethodGet, "/api/v1/raw", 202, []string{"X-Route"}},
		{stdhttp.MethodGet, "/api/grouped", 418, []string{"X-Route"}},
		{stdhttp.MethodGet, "/api/echo", 405, nil},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		m.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		if rr.Code != tc.status {
			t.Fatalf("%s %s: status %d want %d", tc.method, tc.path, rr.Code, tc.status)
		}
		for _, h := range tc.headers {
			if rr.Header().Get(h) != "1" {
				t.Fatalf("%s %s: missing header %s", tc.method, tc.path, h)
			}
		}
	}
}
