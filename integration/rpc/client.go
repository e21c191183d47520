package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/dmitrymomot/itemdesk/core/logger"
)

const maxErrorBody = 64 << 10

// Observer receives one observation per call.
type Observer interface {
	ObserveRPC(service, method, code string, d time.Duration)
}

type noopObserver struct{}

func (noopObserver) ObserveRPC(string, string, string, time.Duration) {}

// Client issues unary Connect calls with the JSON codec.
type Client struct {
	baseURL  string
	http     *http.Client
	attempts uint
	interval time.Duration
	observer Observer
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithObserver reports call latency and result codes.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New validates cfg.BaseURL and builds a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrMissingBaseURL
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}

	attempts := cfg.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}

	c := &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: cfg.Timeout},
		attempts: attempts,
		interval: cfg.RetryInterval,
		observer: noopObserver{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type callOptions struct {
	idempotent bool
	token      string
}

// CallOption configures a single call.
type CallOption func(*callOptions)

// Idempotent allows the call to be retried on unavailable and transport
// errors. Never use it for mutations.
func Idempotent() CallOption {
	return func(o *callOptions) { o.idempotent = true }
}

// BearerToken sets the Authorization header. An empty token sends none.
func BearerToken(token string) CallOption {
	return func(o *callOptions) { o.token = token }
}

// Call posts req as JSON to {baseURL}/{service}/{method} and decodes the
// reply into resp. resp may be nil when the reply is empty. Failures
// reported by the service are returned as *Error.
func (c *Client) Call(ctx context.Context, service, method string, req, resp any, opts ...CallOption) error {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}

	if req == nil {
		req = struct{}{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return errors.Join(ErrEncodeRequest, err)
	}
	endpoint := c.baseURL + "/" + service + "/" + method

	start := time.Now()
	attempts := uint(1)
	if co.idempotent {
		attempts = c.attempts
	}

	err = retry.Do(
		func() error { return c.do(ctx, endpoint, body, co.token, resp) },
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(c.interval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			c.logger.WarnContext(ctx, "retrying remote call",
				logger.Component("rpc"),
				slog.String("service", service),
				slog.String("method", method),
				logger.RetryCount(int(n)+1),
				logger.Error(err),
			)
		}),
	)

	code := CodeOf(err)
	c.observer.ObserveRPC(service, method, string(code), time.Since(start))
	if err != nil {
		c.logger.DebugContext(ctx, "remote call failed",
			logger.Component("rpc"),
			slog.String("service", service),
			slog.String("method", method),
			slog.String("code", string(code)),
			logger.Error(err),
		)
	}
	return err
}

func (c *Client) do(ctx context.Context, endpoint string, body []byte, token string, resp any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Join(ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Connect-Protocol-Version", "1")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxError(ctxErr)
		}
		return errors.Join(ErrTransport, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return decodeError(httpResp)
	}

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return errors.Join(ErrTransport, err)
	}
	if resp == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, resp); err != nil {
		return errors.Join(ErrDecodeResponse, err)
	}
	return nil
}

func decodeError(httpResp *http.Response) error {
	rerr := &Error{HTTPStatus: httpResp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(httpResp.Body, maxErrorBody))
	if err := json.Unmarshal(data, rerr); err != nil || rerr.Code == "" {
		rerr.Code = codeFromHTTPStatus(httpResp.StatusCode)
	}
	return rerr
}

func ctxError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Code: CodeDeadlineExceeded, Message: "The request timed out."}
	}
	return &Error{Code: CodeCanceled, Message: "The request was canceled."}
}

func retryable(err error) bool {
	return errors.Is(err, ErrTransport) || CodeOf(err) == CodeUnavailable
}
