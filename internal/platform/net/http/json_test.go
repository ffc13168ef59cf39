package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

type inDTO struct {
	N int `json:"n" validate:"min=1"`
}

func TestJSONHandler_Success(t *testing.T) {
	t.Parallel()

	h := JSONHandler[inDTO](func(_ *http.Request, in inDTO) (any, error) {
		return map[string]int{"doubled": in.N * 2}, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(`{"n":7}`))
	rr := httptest.NewRecorder()
	h(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"doubled":14`) {
		t.Fatalf("body %q missing doubled result", rr.Body.String())
	}
}

func TestJSONHandler_BindAndValidationErrors(t *testing.T) {
	t.Parallel()

	h := JSONHandler[inDTO](func(_ *http.Request, in inDTO) (any, error) { return in, nil })
	cases := map[string]int{
		`{"n":`:     http.StatusBadRequest,
		`{"n":0}`:   http.StatusBadRequest,
		`{"m":1}`:   http.StatusBadRequest,
		`{"n":"x"}`: http.StatusBadRequest,
	}
	for body, want := range cases {
		rr := httptest.NewRecorder()
		h(rr, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body)))
		if rr.Code != want {
			t.Fatalf("%s: status %d want %d", body, rr.Code, want)
		}
	}
}

func TestJSONHandler_HandlerErrorAndResponse(t *testing.T) {
	t.Parallel()

	fail := JSONHandler[inDTO](func(*http.Request, inDTO) (any, error) { return nil, errors.New("x") })
	rr := httptest.NewRecorder()
	fail(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"n":1}`)))
	if rr.Code != 500 {
		t.Fatalf("status %d", rr.Code)
	}

	custom := JSONHandler[inDTO](func(*http.Request, inDTO) (any, error) { return NoContent(), nil })
	rr = httptest.NewRecorder()
	custom(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"n":1}`)))
	if rr.Code != 204 {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestSugar_Mounts(t *testing.T) {
	t.Parallel()

	m := chi.NewRouter()
	r := AdaptChi(m)
	GetJSON(r, "/get", func(*http.Request) (any, error) { return "g", nil })
	PostJSON(r, "/post", func(_ *http.Request, in inDTO) (any, error) { return in.N, nil })

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/get", nil))
	if rr.Code != 200 || !strings.Contains(rr.Body.String(), `"data":"g"`) {
		t.Fatalf("get: %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/post", strings.NewReader(`{"n":5}`)))
	if rr.Code != 200 || !strings.Contains(rr.Body.String(), `"data":5`) {
		t.Fatalf("post: %d %s", rr.Code, rr.Body.String())
	}
}
