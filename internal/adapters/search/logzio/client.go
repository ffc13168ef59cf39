// Package logzio provides the HTTP transport to the Logz.io Kibana _msearch proxy
package logzio

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	perr "logzq/internal/platform/errors"
	"logzq/internal/platform/logger"
	"logzq/internal/services/retrieval/domain"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

const (
	baseURLDefault       = "https://app.logz.io"
	pathDefault          = "/kibana/elasticsearch/_msearch"
	kibanaVersionDefault = "5.5.3"
	defaultTimeout       = 60 * time.Second
	defaultUA            = "logzq"
	defaultRetryBase     = 500 * time.Millisecond
	maxRetryInterval     = 30 * time.Second
)

// Options configures the Client
type Options struct {
	BaseURL       string
	Path          string
	Token         string
	KibanaVersion string
	UserAgent     string
	Timeout       time.Duration

	// PinAddr sends every dial to this ip or ip:port while TLS and Host
	// keep using the BaseURL hostname
	PinAddr string

	// Retry config for transport faults only; statuses and search errors are final
	MaxRetries int
	RetryBase  time.Duration
}

// Client executes _msearch bodies against one endpoint. It is safe for concurrent use
type Client struct {
	http *http.Client
	opts Options
	url  string
	log  logger.Logger
	now  func() time.Time
}

var _ domain.Transport = (*Client)(nil)

// NewClient creates a new Client with defaults filled in
func NewClient(o Options) (*Client, error) {
	if strings.TrimSpace(o.Token) == "" {
		return nil, perr.WithField(perr.InvalidArgf("logzio: api token is required"), "token")
	}
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Path == "" {
		o.Path = pathDefault
	}
	if !strings.HasPrefix(o.Path, "/") {
		o.Path = "/" + o.Path
	}
	if o.KibanaVersion == "" {
		o.KibanaVersion = kibanaVersionDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}

	tr, err := newTransport(o.Timeout, o.PinAddr)
	if err != nil {
		return nil, err
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout, Transport: tr},
		opts: o,
		url:  o.BaseURL + o.Path,
		log:  *logger.Named("logzio"),
		now:  time.Now,
	}, nil
}

// Execute posts body and decodes the multi-search response. Transport faults
// are retried up to MaxRetries times with exponential backoff
func (c *Client) Execute(ctx context.Context, body []byte) (domain.MultiSearchResponse, error) {
	var (
		out     domain.MultiSearchResponse
		attempt int
	)

	op := func() error {
		res, err := c.do(ctx, body, attempt)
		attempt++
		if err != nil {
			if perr.Retryable(err) && ctx.Err() == nil {
				return err
			}
			return backoff.Permanent(err)
		}
		out = res
		return nil
	}

	notify := func(err error, wait time.Duration) {
		logger.C(ctx).Warn().Err(err).Dur("retry_in", wait).Int("attempt", attempt).Msg("logzio transport fault retrying")
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(c.policy(), ctx), notify); err != nil {
		if _, ours := perr.As(err); !ours && ctx.Err() != nil {
			return domain.MultiSearchResponse{}, canceled(ctx.Err())
		}
		return domain.MultiSearchResponse{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, body []byte, attempt int) (domain.MultiSearchResponse, error) {
	var out domain.MultiSearchResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return out, perr.Wrapf(err, perr.ErrorCodeUnknown, "logzio new request failed")
	}
	c.setHeaders(req)

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		if ctx.Err() != nil {
			return out, canceled(ctx.Err())
		}
		return out, fault(err)
	}
	defer func() { _ = drainAndClose(resp.Body) }()

	if resp.StatusCode != http.StatusOK {
		se := &domain.StatusError{Status: resp.StatusCode, Body: excerpt(resp)}
		logger.C(ctx).Debug().
			Int("status", resp.StatusCode).
			Int("attempt", attempt).
			Dur("latency", lat).
			Msg("logzio unexpected status")
		return out, perr.Wrapf(se, perr.ErrorCodeUpstream, "logzio status %d", resp.StatusCode)
	}

	raw, err := readBody(resp)
	if err != nil {
		if errors.Is(err, errBodyTooLarge) {
			return out, perr.Wrapf(err, perr.ErrorCodeUpstream, "logzio response over %d bytes", maxBodyBytes)
		}
		if ctx.Err() != nil {
			return out, canceled(ctx.Err())
		}
		return out, fault(err)
	}

	logger.C(ctx).Debug().
		Int("status", resp.StatusCode).
		Int("attempt", attempt).
		Dur("latency", lat).
		Int("bytes", len(raw)).
		Str("encoding", resp.Header.Get("Content-Encoding")).
		Msg("logzio http response")

	// documents are opaque; duplicate keys and bad utf-8 in _source pass through
	if err := json.Unmarshal(raw, &out, jsontext.AllowDuplicateNames(true), jsontext.AllowInvalidUTF8(true)); err != nil {
		return domain.MultiSearchResponse{}, perr.Wrap(err, perr.ErrorCodeJSON, "logzio response is not valid json")
	}
	return out, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("x-auth-token", c.opts.Token)
	req.Header.Set("kbn-version", c.opts.KibanaVersion)
	req.Header.Set("Content-Type", "application/x-ndjson")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", c.opts.UserAgent)
}

func (c *Client) policy() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.opts.RetryBase
	b.MaxInterval = maxRetryInterval
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithMaxRetries(b, uint64(c.opts.MaxRetries))
}

func fault(err error) error {
	return perr.Wrap(&domain.FaultError{Err: err}, perr.ErrorCodeUnavailable, "logzio transport fault")
}

func canceled(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return perr.Wrap(err, perr.ErrorCodeCanceled, "logzio request deadline exceeded")
	}
	return perr.Wrap(err, perr.ErrorCodeCanceled, "logzio request canceled")
}
