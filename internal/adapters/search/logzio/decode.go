package logzio

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const maxExcerptSize = 2048

var maxBodyBytes int64 = 512 << 20

var errBodyTooLarge = errors.New("logzio response body exceeds limit")

// decoded wraps the response body in a decompressor matching Content-Encoding
func decoded(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip", "x-gzip":
		return gzip.NewReader(resp.Body)
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}

// readBody reads the full decoded body. A truncated stream is an error, and so
// is a body past maxBodyBytes
func readBody(resp *http.Response) ([]byte, error) {
	rc, err := decoded(resp)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	b, err := io.ReadAll(io.LimitReader(rc, maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > maxBodyBytes {
		return nil, errBodyTooLarge
	}
	return b, nil
}

// excerpt returns up to maxExcerptSize bytes of the body for diagnostics
func excerpt(resp *http.Response) string {
	rc, err := decoded(resp)
	if err != nil {
		return ""
	}
	defer func() { _ = rc.Close() }()
	b, _ := io.ReadAll(io.LimitReader(rc, maxExcerptSize))
	return strings.TrimSpace(string(b))
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
