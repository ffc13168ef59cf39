package swaggerkit

import (
	"net/http"
	"slices"
	"strings"
	"sync"

	"logzq/internal/services/api/docs"

	"github.com/go-json-experiment/json"
)

// SpecMutator adjusts the parsed document before it is served
type SpecMutator func(map[string]any)

var (
	mu       sync.Mutex
	mutators []SpecMutator
)

var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// Register adds m to every served document
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	mutators = append(mutators, m)
}

// Reset drops registered mutators
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	mutators = nil
}

func serveDocJSON() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureServers(spec, "/api/v1")
		ensureErrorSchema(spec)
		addDefaultResponse(spec, "500", "Internal Server Error")
		addDefaultResponse(spec, "400", "Bad Request")

		mu.Lock()
		ms := append([]SpecMutator(nil), mutators...)
		mu.Unlock()
		for _, m := range ms {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.MarshalWrite(w, spec)
	}
}

// ensureServers pins the document to OpenAPI 3.0.3, which the UI renders, and sets servers
func ensureServers(spec map[string]any, url string) {
	delete(spec, "swagger")
	spec["openapi"] = "3.0.3"
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// ensureErrorSchema describes the error envelope every route can return
func ensureErrorSchema(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// addDefaultResponse gives every operation a status response referencing
// ErrorResponse unless it already documents one
func addDefaultResponse(spec map[string]any, status, desc string) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	resp := map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, o := range node {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			rs := child(op, "responses")
			if _, ok := rs[status]; !ok {
				rs[status] = resp
			}
		}
	}
}

// APIKeySecurity marks the given path prefixes as requiring an API key
func APIKeySecurity(prefixes ...string) SpecMutator {
	return func(spec map[string]any) {
		child(child(spec, "components"), "securitySchemes")["apiKey"] = map[string]any{
			"type": "apiKey",
			"in":   "header",
			"name": "X-API-Key",
		}
		paths, _ := spec["paths"].(map[string]any)
		for path, p := range paths {
			if !slices.ContainsFunc(prefixes, func(pre string) bool { return strings.HasPrefix(path, pre) }) {
				continue
			}
			node, _ := p.(map[string]any)
			for _, o := range node {
				if op, ok := o.(map[string]any); ok {
					op["security"] = []any{map[string]any{"apiKey": []any{}}}
				}
			}
		}
	}
}

// Version overrides info.version
func Version(v string) SpecMutator {
	return func(spec map[string]any) {
		if v != "" {
			child(spec, "info")["version"] = v
		}
	}
}
