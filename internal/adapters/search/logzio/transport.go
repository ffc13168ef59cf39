package logzio

import (
	"context"
	"net"
	"net/http"
	"time"

	perr "logzq/internal/platform/errors"
)

// newTransport builds a pooled transport. With pin set every dial is
// redirected to that address, proxies are bypassed, and the port of the
// original target is kept unless pin names one
func newTransport(timeout time.Duration, pin string) (*http.Transport, error) {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	dial := dialer.DialContext

	if pin != "" {
		host, port, err := splitPin(pin)
		if err != nil {
			return nil, err
		}
		dial = func(ctx context.Context, network, addr string) (net.Conn, error) {
			_, origPort, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			p := port
			if p == "" {
				p = origPort
			}
			return dialer.DialContext(ctx, network, net.JoinHostPort(host, p))
		}
	}

	tr := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		DialContext:           dial,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if pin == "" {
		tr.Proxy = http.ProxyFromEnvironment
	}
	return tr, nil
}

// splitPin accepts ip, ip:port or [ipv6]:port
func splitPin(pin string) (host, port string, err error) {
	if ip := net.ParseIP(pin); ip != nil {
		return ip.String(), "", nil
	}
	host, port, err = net.SplitHostPort(pin)
	if err != nil || net.ParseIP(host) == nil {
		return "", "", perr.WithField(perr.InvalidArgf("logzio: pin address %q must be an ip or ip:port", pin), "pin_addr")
	}
	return host, port, nil
}
