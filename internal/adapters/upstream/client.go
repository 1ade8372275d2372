// Package upstream builds the resty clients the store adapters talk through:
// client-side rate limiting, a fixed user agent, outbound metrics, and a
// uniform mapping of non-2xx responses to errors. It never retries.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"storereviews/internal/adapters/observability"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

var ErrNotFound = errors.New("upstream: not found")

// StatusError is returned for any non-2xx response other than 404.
type StatusError struct {
	Service string
	Status  int
	Body    string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: bad status %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s: bad status %d: %s", e.Service, e.Status, e.Body)
}

type Options struct {
	Service   string // metrics label, e.g. "playstore"
	BaseURL   string
	Timeout   time.Duration
	RPS       int
	UserAgent string
}

func New(o Options) *resty.Client {
	if o.RPS <= 0 {
		o.RPS = 5
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}

	c := resty.New().
		SetBaseURL(o.BaseURL).
		SetTimeout(o.Timeout).
		SetHeader("User-Agent", o.UserAgent)

	// burst == rps so concurrent requests queue instead of failing
	rl := rate.NewLimiter(rate.Limit(o.RPS), o.RPS)
	c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rl.Wait(req.Context())
	})
	c.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		ep := endpointOf(res.Request.Context())
		observability.ObserveExternal(o.Service, ep, res.StatusCode(), res.Time())
		log.Debug().
			Str("service", o.Service).
			Str("endpoint", ep).
			Int("status", res.StatusCode()).
			Dur("duration", res.Time()).
			Msg("upstream_request")
		return nil
	})
	c.OnError(func(req *resty.Request, err error) {
		// transport failures never reach OnAfterResponse
		var re *resty.ResponseError
		if errors.As(err, &re) {
			return
		}
		var dur time.Duration
		if !req.Time.IsZero() { // zero when a before-request hook failed
			dur = time.Since(req.Time)
		}
		observability.ObserveExternal(o.Service, endpointOf(req.Context()), 0, dur)
	})
	return c
}

// Check maps a response to ErrNotFound, a *StatusError, or nil on 2xx.
func Check(service string, res *resty.Response) error {
	switch {
	case res.IsSuccess():
		return nil
	case res.StatusCode() == 404:
		return fmt.Errorf("%s: %w", service, ErrNotFound)
	default:
		body := strings.TrimSpace(res.String())
		if len(body) > 512 {
			body = body[:512]
		}
		return &StatusError{Service: service, Status: res.StatusCode(), Body: body}
	}
}

type endpointKey struct{}

// WithEndpoint tags ctx with a low-cardinality endpoint name for metrics.
func WithEndpoint(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, endpointKey{}, name)
}

func endpointOf(ctx context.Context) string {
	if s, ok := ctx.Value(endpointKey{}).(string); ok {
		return s
	}
	return "unknown"
}
