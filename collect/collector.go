// Package collect samples cookie values from a target URL over repeated
// request cycles and appends them to per-cookie CSV files.
//
// Each cycle uses a fresh session (new cookie jar), optionally POSTs an
// authentication payload to the target first, then GETs it and records every
// cookie the session ended up with. Sampling the same endpoint repeatedly is
// what produces the per-cookie value streams the encoder consumes.
package collect

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/driftlab/cookietrail/errs"
	"github.com/driftlab/cookietrail/internal/options"
	"github.com/driftlab/cookietrail/internal/registry"
	"github.com/driftlab/cookietrail/store"
)

const (
	// DefaultRequests is the number of request cycles when none is configured.
	DefaultRequests = 50

	// DefaultTimeout bounds each HTTP request so a dead endpoint cannot hang
	// the whole collection run.
	DefaultTimeout = 15 * time.Second

	// ThrottleInterval is the delay between cycles when throttling is on,
	// useful when cookie values rotate slower than the sampling rate.
	ThrottleInterval = 500 * time.Millisecond
)

// Collector drives the request cycles against one target URL.
type Collector struct {
	target   *url.URL
	payload  url.Values
	requests int
	throttle time.Duration
	timeout  time.Duration

	st     *store.Store
	reg    *registry.Registry
	logger *slog.Logger
}

// Option configures a Collector.
type Option = options.Option[*Collector]

// WithPayload sets the form payload POSTed to the target before each GET,
// typically login credentials.
func WithPayload(payload url.Values) Option {
	return options.NoError(func(c *Collector) {
		c.payload = payload
	})
}

// WithRequests sets the number of request cycles.
func WithRequests(n int) Option {
	return options.New(func(c *Collector) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidRequestCount, n)
		}
		c.requests = n

		return nil
	})
}

// WithThrottle inserts a delay between request cycles; zero disables it.
func WithThrottle(interval time.Duration) Option {
	return options.NoError(func(c *Collector) {
		c.throttle = interval
	})
}

// WithTimeout replaces the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return options.NoError(func(c *Collector) {
		c.timeout = timeout
	})
}

// WithLogger replaces the collector's logger.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Collector) {
		c.logger = logger
	})
}

// New creates a collector writing to st.
func New(target string, st *store.Store, opts ...Option) (*Collector, error) {
	if target == "" {
		return nil, errs.ErrMissingURL
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMissingURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", errs.ErrMissingURL, u.Scheme)
	}

	c := &Collector{
		target:   u,
		requests: DefaultRequests,
		timeout:  DefaultTimeout,
		st:       st,
		reg:      registry.New(),
		logger:   slog.Default(),
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Registry returns the registry of cookie names observed so far.
func (c *Collector) Registry() *registry.Registry {
	return c.reg
}

// Run performs the configured number of request cycles.
//
// A network failure aborts the run: there is no point sampling an endpoint
// that stopped responding, and already-collected rows remain usable. Cookie
// values observed in earlier cycles are preserved in the store either way.
func (c *Collector) Run(ctx context.Context) error {
	c.logger.Info("collecting cookies",
		"url", c.target.String(),
		"requests", c.requests,
		"authenticated", c.payload != nil,
		"throttle", c.throttle)

	for i := 0; i < c.requests; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := c.cycle(ctx); err != nil {
			return fmt.Errorf("request cycle %d/%d failed: %w", i+1, c.requests, err)
		}

		if c.throttle > 0 && i < c.requests-1 {
			select {
			case <-time.After(c.throttle):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return nil
}

// cycle runs one session: fresh jar, optional auth POST, GET, then record
// every cookie held by the session.
func (c *Collector) cycle(ctx context.Context) error {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return fmt.Errorf("failed to create cookie jar: %w", err)
	}
	client := &http.Client{Jar: jar, Timeout: c.timeout}

	if c.payload != nil {
		if err := c.do(ctx, client, http.MethodPost, strings.NewReader(c.payload.Encode())); err != nil {
			return err
		}
	}
	if err := c.do(ctx, client, http.MethodGet, nil); err != nil {
		return err
	}

	now := time.Now()
	for _, cookie := range jar.Cookies(c.target) {
		if _, err := c.reg.Track(cookie.Name); err != nil {
			// Name-keyed files still work; the collision only affects
			// hash-keyed snapshot IDs.
			c.logger.Warn("cookie name not registered", "cookie", cookie.Name, "error", err)
		}
		if err := c.st.Append(cookie.Name, now, cookie.Value); err != nil {
			return err
		}
	}

	return nil
}

func (c *Collector) do(ctx context.Context, client *http.Client, method string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, method, c.target.String(), body)
	if err != nil {
		return err
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	// Drain so the connection can be reused within the cycle.
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.Body.Close()
}

// LoadPayload parses an authentication payload file: one "field,value" pair
// per line, split on the first comma (the value may contain commas). Blank
// lines are skipped.
func LoadPayload(path string) (url.Values, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open payload file: %w", err)
	}
	defer f.Close()

	payload := url.Values{}
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		field, value, found := strings.Cut(text, ",")
		if !found {
			return nil, fmt.Errorf("%w: line %d has no comma", errs.ErrInvalidPayload, line)
		}
		payload.Set(field, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidPayload, err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: no fields", errs.ErrInvalidPayload)
	}

	return payload, nil
}

// OutputDir derives the default output directory name for a collection run:
// the target's registrable domain label plus a ddmmyy_HHMMSS timestamp.
func OutputDir(target string, now time.Time) string {
	name := "cookies"
	if u, err := url.Parse(target); err == nil && u.Hostname() != "" {
		name = u.Hostname()
		// IP hosts have no registrable domain; EffectiveTLDPlusOne would
		// treat the last octet as the public suffix and mangle the name.
		if net.ParseIP(name) == nil {
			if etld1, err := publicsuffix.EffectiveTLDPlusOne(name); err == nil {
				name, _, _ = strings.Cut(etld1, ".")
			}
		}
	}

	return name + "_" + now.Format("020106_150405")
}
