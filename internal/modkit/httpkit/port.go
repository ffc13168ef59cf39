package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	perrs "logzq/internal/platform/errors"
	"logzq/internal/platform/net/middleware"
)

// KeyPort implements middleware.AuthPort against a fixed set of API keys
type KeyPort struct {
	keys [][]byte
}

// NewKeyPort builds an AuthPort accepting any of keys
// it returns nil when no non-empty key is given so callers can skip the guard
func NewKeyPort(keys ...string) middleware.AuthPort {
	p := &KeyPort{}
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			p.keys = append(p.keys, []byte(k))
		}
	}
	if len(p.keys) == 0 {
		return nil
	}
	return p
}

// Parse reads the key from "Authorization: Bearer <key>" or X-API-Key
// the principal is "key:<n>" where n is the index of the matching key
func (p *KeyPort) Parse(r *http.Request) (string, error) {
	raw := presented(r)
	if raw == "" {
		return "", perrs.Unauthorizedf("missing api key")
	}
	got := []byte(raw)
	match := -1
	for i, k := range p.keys {
		// no early exit on match
		if subtle.ConstantTimeCompare(got, k) == 1 && match < 0 {
			match = i
		}
	}
	if match < 0 {
		return "", perrs.Unauthorizedf("invalid api key")
	}
	return "key:" + strconv.Itoa(match), nil
}

func presented(r *http.Request) string {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer"
	if len(s) > len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		if tok := strings.TrimSpace(s[len(prefix):]); tok != "" {
			return tok
		}
	}
	return strings.TrimSpace(r.Header.Get("X-API-Key"))
}
