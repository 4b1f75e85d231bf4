// Package fetcher retrieves upstream JSON through an ordered chain of
// CORS proxies. Proxies are tried one at a time, in order, and the first
// 2xx response that decodes wins. There is no retry within a proxy, no
// backoff and no memory of which proxy worked last time.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/itchan-dev/tgchan/shared/logger"
)

// ErrExhausted is returned when every proxy in the chain failed.
var ErrExhausted = errors.New("all proxies failed")

const maxBodySize = 16 << 20

// StatusError is a non-2xx answer from a proxy or the upstream behind it.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// DecodeError means a 2xx body that was not the expected JSON
// (typically an HTML error page served by a proxy).
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "invalid json: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decoder consumes a successful response body. A non-nil error makes the
// chain move on to the next proxy.
type Decoder func(body []byte) error

// Into decodes into a fresh T and stores it in out only on success, so a
// half-decoded body from one proxy never leaks into the next attempt.
func Into[T any](out *T) Decoder {
	return func(body []byte) error {
		var v T
		if err := json.Unmarshal(body, &v); err != nil {
			return err
		}
		*out = v
		return nil
	}
}

// Result describes a successful fetch.
type Result struct {
	Proxy    string // name of the proxy that answered
	Attempts int
}

type Config struct {
	Proxies        []Proxy
	AttemptTimeout time.Duration // applied to each attempt independently; 0 disables
	UserAgent      string
}

type Fetcher struct {
	client         *http.Client
	proxies        []Proxy
	attemptTimeout time.Duration
	userAgent      string
}

func New(client *http.Client, cfg Config) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		client:         client,
		proxies:        append([]Proxy(nil), cfg.Proxies...),
		attemptTimeout: cfg.AttemptTimeout,
		userAgent:      cfg.UserAgent,
	}
}

// Proxies returns the chain in the order it is tried.
func (f *Fetcher) Proxies() []Proxy {
	return append([]Proxy(nil), f.proxies...)
}

// Fetch walks the proxy chain for target. Per-attempt failures are logged
// and skipped. When all attempts fail the returned error wraps ErrExhausted
// together with every attempt's error. Cancelling ctx stops the chain.
func (f *Fetcher) Fetch(ctx context.Context, target string, decode Decoder) (Result, error) {
	var errs []error
	for i, p := range f.proxies {
		if err := ctx.Err(); err != nil {
			return Result{Attempts: i}, fmt.Errorf("fetch %s: %w", target, err)
		}

		start := time.Now()
		err := f.attempt(ctx, p, target, decode)
		outcome := classify(err)
		observe(p.Name, outcome, time.Since(start))

		if err == nil {
			logger.Log.Debug("proxy attempt succeeded",
				"component", "fetcher",
				"proxy", p.Name,
				"target", target,
				"attempt", i+1)
			return Result{Proxy: p.Name, Attempts: i + 1}, nil
		}
		if ctx.Err() != nil {
			return Result{Attempts: i + 1}, fmt.Errorf("fetch %s: %w", target, ctx.Err())
		}

		logger.Log.Warn("proxy attempt failed",
			"component", "fetcher",
			"proxy", p.Name,
			"target", target,
			"attempt", i+1,
			"outcome", outcome,
			"error", err)
		errs = append(errs, fmt.Errorf("proxy %s: %w", p.Name, err))
	}

	if len(errs) == 0 {
		return Result{}, fmt.Errorf("%w for %s: no proxies configured", ErrExhausted, target)
	}
	return Result{Attempts: len(f.proxies)}, fmt.Errorf("%w for %s: %w", ErrExhausted, target, errors.Join(errs...))
}

func (f *Fetcher) attempt(ctx context.Context, p Proxy, target string, decode Decoder) error {
	if f.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.attemptTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL(target), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	if !p.direct() {
		// cors-anywhere style proxies refuse requests without it
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := decode(body); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

func classify(err error) string {
	if err == nil {
		return outcomeOK
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return outcomeStatus
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return outcomeDecode
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return outcomeTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return outcomeTimeout
	}
	return outcomeNetwork
}
