package http

import (
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	perr "logzq/internal/platform/errors"
	pnet "logzq/internal/platform/net"
	"logzq/internal/platform/testkit"

	"github.com/go-json-experiment/json"
)

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatalf("body is not json: %v (%q)", err, rr.Body.String())
	}
	return m
}

func TestHandle_OKEnvelope(t *testing.T) {
	h := Handle(func(*stdhttp.Request) Response { return OK(map[string]int{"count": 3}) })
	req := httptest.NewRequest(stdhttp.MethodGet, "/", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-1"))
	rr := httptest.NewRecorder()
	h(rr, req)

	if rr.Code != 200 {
		t.Fatalf("status %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type %q", ct)
	}
	m := decodeEnvelope(t, rr)
	if m["request_id"] != "rid-1" || m["status"] != "OK" {
		t.Fatalf("envelope %v", m)
	}
	if _, has := m["code"]; has {
		t.Fatalf("code must be omitted on success: %v", m)
	}
	testkit.MustContain(t, rr.Body.String(), `"data":{"count":3}`)
}

func TestHandle_ErrorEnvelope(t *testing.T) {
	h := Handle(func(*stdhttp.Request) Response {
		return Error(perr.WithField(perr.New(perr.ErrorCodeSearch, "bad query"), "query"))
	})
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(stdhttp.MethodGet, "/", nil))

	if rr.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status %d", rr.Code)
	}
	m := decodeEnvelope(t, rr)
	if m["error"] != "bad query" || m["field"] != "query" {
		t.Fatalf("envelope %v", m)
	}
	if m["code"] != float64(perr.ErrorCodeSearch) {
		t.Fatalf("code %v", m["code"])
	}
}

func TestHandle_PlainErrorIs500(t *testing.T) {
	h := Handle(func(*stdhttp.Request) Response { return Error(errors.New("boom")) })
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
	if rr.Code != 500 {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestHandle_NoContentAndHeaders(t *testing.T) {
	h := Handle(func(*stdhttp.Request) Response {
		resp := NoContent()
		resp.Header = stdhttp.Header{"X-Extra": []string{"a"}}
		return resp
	})
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(stdhttp.MethodDelete, "/", nil))
	if rr.Code != 204 || rr.Body.Len() != 0 || rr.Header().Get("X-Extra") != "a" {
		t.Fatalf("unexpected %d %q %v", rr.Code, rr.Body.String(), rr.Header())
	}
}
