package sse

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"graphcast/pkg/logging"
	"graphcast/pkg/metrics"
)

// EventFunc receives one decoded JSON payload per well-formed event.
type EventFunc func(data json.RawMessage)

// Client reads server-sent-event responses and delivers decoded JSON frames.
//
// One read loop is active per call to Stream; cancellation is driven by the
// caller's context. The client itself applies no timeout: chat and upload
// streams are open-ended by contract.
type Client struct {
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient creates a stream client. A nil logger disables logging.
func NewClient(logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Client{
		// No Timeout: it would cap the whole stream, not a single read.
		httpClient: &http.Client{},
		logger:     logger.With(logging.Component("sse")),
	}
}

// SetHTTPClient replaces the underlying HTTP client (used by tests).
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// Stream issues the request and invokes fn once per successfully parsed
// event, in arrival order, until the stream ends or ctx is cancelled.
//
// A response without a readable body fails with ErrStreamUnavailable. A frame
// whose data payload is not valid JSON is logged and skipped; it never
// terminates the stream.
func (c *Client) Stream(ctx context.Context, req *http.Request, fn EventFunc) error {
	req = req.WithContext(ctx)
	endpoint := req.URL.String()
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.DefaultRegistry().RecordStreamOpen(endpoint, "error")
		return &StreamError{Op: "open", Endpoint: endpoint, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.DefaultRegistry().RecordStreamOpen(endpoint, "error")
		return &StreamError{Op: "open", Endpoint: endpoint, Status: resp.StatusCode, Cause: ErrRequestFailed}
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		metrics.DefaultRegistry().RecordStreamOpen(endpoint, "error")
		return &StreamError{Op: "open", Endpoint: endpoint, Cause: ErrStreamUnavailable}
	}
	metrics.DefaultRegistry().RecordStreamOpen(endpoint, "ok")
	metrics.DefaultRegistry().IncStreamsInFlight()
	defer metrics.DefaultRegistry().DecStreamsInFlight()

	parser := NewParser()
	buf := make([]byte, 4096)

	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			for _, ev := range parser.Feed(buf[:n]) {
				c.deliver(ev, fn)
			}
		}
		if readErr == io.EOF {
			c.logger.Debug("stream complete",
				logging.Endpoint(endpoint),
				logging.Latency(time.Since(start)))
			return nil
		}
		if readErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &StreamError{Op: "read", Endpoint: endpoint, Cause: readErr}
		}
	}
}

// deliver validates one event's JSON payload and hands it to the callback.
func (c *Client) deliver(ev Event, fn EventFunc) {
	if !json.Valid([]byte(ev.Data)) {
		// One bad frame must not kill the stream.
		metrics.DefaultRegistry().RecordEventDecoded("skipped")
		c.logger.Warn("skipping malformed event frame",
			logging.EventKind(ev.Name),
			logging.Int("bytes", len(ev.Data)))
		return
	}
	metrics.DefaultRegistry().RecordEventDecoded("ok")
	fn(json.RawMessage(ev.Data))
}

// Events is the iterator form of Stream: it runs the read loop in a goroutine
// and yields decoded payloads on the returned channel. The channel is closed
// when the stream ends; the error channel then reports the terminal result.
func (c *Client) Events(ctx context.Context, req *http.Request) (<-chan json.RawMessage, <-chan error) {
	out := make(chan json.RawMessage)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		err := c.Stream(ctx, req, func(data json.RawMessage) {
			select {
			case out <- data:
			case <-ctx.Done():
			}
		})
		errc <- err
	}()

	return out, errc
}
