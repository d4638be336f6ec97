// Package client sends analysis requests to the threat classifier.
package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"

	"threatscope/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client wraps fasthttp.Client for the classifier's analyze route. Only one
// analysis may be in flight per Client.
type Client struct {
	client    *fasthttp.Client
	url       string
	timeout   time.Duration
	userAgent string
	busy      atomic.Bool
}

// Options configures the client
type Options struct {
	URL       string
	Timeout   time.Duration
	UserAgent string
}

// OptionsFromConfig builds client options from the application config.
func OptionsFromConfig(cfg *models.Config) *Options {
	return &Options{
		URL:       cfg.AnalyzeURL(),
		Timeout:   cfg.Client.Timeout,
		UserAgent: cfg.Client.UserAgent,
	}
}

func New(opts *Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return &Client{
		client: &fasthttp.Client{
			MaxConnsPerHost:     4,
			MaxIdleConnDuration: 30 * time.Second,
			ReadTimeout:         opts.Timeout,
			WriteTimeout:        opts.Timeout,
		},
		url:       opts.URL,
		timeout:   opts.Timeout,
		userAgent: opts.UserAgent,
	}
}

// Busy reports whether an analysis is in flight.
func (c *Client) Busy() bool {
	return c.busy.Load()
}

// Analyze validates req, posts it and decodes the classifier's answer.
// Empty input fails with ErrEmptyInput without touching the network.
func (c *Client) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	req = models.NewAnalysisRequest(req.InputText, req.InputType)
	if req.Empty() {
		return nil, ErrEmptyInput
	}
	if !req.InputType.Valid() {
		return nil, fmt.Errorf("invalid input type %v", req.InputType)
	}

	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer c.busy.Store(false)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	status, body, err := c.post(ctx, payload)
	if err != nil {
		log.Printf("analyze %s: %v", c.url, err)
		return nil, &TransportError{Err: err}
	}
	if status < 200 || status > 299 {
		log.Printf("analyze %s: HTTP %d: %s", c.url, status, truncate(body, 200))
		return nil, &TransportError{StatusCode: status, Err: fmt.Errorf("unexpected status %d", status)}
	}

	result, err := decodeResponse(body)
	if err != nil {
		var serverErr *ServerError
		if !errors.As(err, &serverErr) {
			log.Printf("analyze %s: %v", c.url, err)
		}
		return nil, err
	}
	return result, nil
}

// post sends the JSON body and returns the status and a copy of the
// response body. ctx cancels the wait; the deadline is the earlier of
// ctx's deadline and the client timeout.
func (c *Client) post(ctx context.Context, payload []byte) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return 0, nil, context.DeadlineExceeded
	}

	freq := fasthttp.AcquireRequest()
	fresp := fasthttp.AcquireResponse()

	freq.SetRequestURI(c.url)
	freq.Header.SetMethod(fasthttp.MethodPost)
	freq.Header.SetContentType("application/json")
	freq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		freq.Header.SetUserAgent(c.userAgent)
	}
	freq.SetBody(payload)

	done := make(chan error, 1)
	go func() {
		done <- c.client.DoTimeout(freq, fresp, timeout)
	}()

	select {
	case <-ctx.Done():
		// release once fasthttp is finished with the buffers
		go func() {
			<-done
			fasthttp.ReleaseRequest(freq)
			fasthttp.ReleaseResponse(fresp)
		}()
		return 0, nil, ctx.Err()
	case err := <-done:
		defer fasthttp.ReleaseRequest(freq)
		defer fasthttp.ReleaseResponse(fresp)
		if err != nil {
			return 0, nil, err
		}
		// body buffer is reused after release
		body := make([]byte, len(fresp.Body()))
		copy(body, fresp.Body())
		return fresp.StatusCode(), body, nil
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
