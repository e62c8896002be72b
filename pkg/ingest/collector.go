package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"graphcast/pkg/bus"
	"graphcast/pkg/logging"
	"graphcast/pkg/metrics"
	"graphcast/pkg/sse"
)

// ErrIngestFailed is returned when the backend reported a FAILED stage; the
// timeline carries which stage broke.
var ErrIngestFailed = errors.New("ingest: pipeline reported failure")

const collectPath = "/api/knowledge/collect"

type stageEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (e stageEvent) note() string {
	if len(e.Data) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Data, &s); err == nil {
		return s
	}
	return string(e.Data)
}

type urlRequest struct {
	SourceType string `json:"source_type"`
	URL        string `json:"url"`
}

// Collector submits uploads to the collect endpoint and feeds the streamed
// stage events into a Timeline. After a clean completion it publishes one
// graph-refetch request on the bus.
type Collector struct {
	baseURL string
	stream  *sse.Client
	events  *bus.Bus
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewCollector creates a collector against the given backend base URL.
func NewCollector(baseURL string, stream *sse.Client, events *bus.Bus, logger logging.Logger) *Collector {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Collector{
		baseURL: baseURL,
		stream:  stream,
		events:  events,
		logger:  logger.With(logging.Component("ingest")),
		metrics: metrics.DefaultRegistry(),
	}
}

// CollectFile uploads one file as multipart form data and tracks its
// pipeline on the timeline.
func (c *Collector) CollectFile(ctx context.Context, filename string, content io.Reader, tl *Timeline) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, content); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+collectPath, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.run(req, tl, filename)
}

// CollectURL submits a link for ingestion and tracks its pipeline on the
// timeline.
func (c *Collector) CollectURL(ctx context.Context, url string, tl *Timeline) error {
	payload, err := json.Marshal(urlRequest{SourceType: "url", URL: url})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+collectPath, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.run(req, tl, url)
}

func (c *Collector) run(req *http.Request, tl *Timeline, source string) error {
	tl.Reset()

	err := c.stream.Stream(req.Context(), req, func(data json.RawMessage) {
		var ev stageEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			c.logger.Warn("unrecognized ingest event", logging.Error(err))
			return
		}
		tl.Apply(ev.Type, ev.note())
	})
	if err != nil {
		tl.Abort()
		c.logger.Error("ingest stream failed",
			logging.String("source", source),
			logging.Error(err))
		return err
	}
	if tl.Failed() {
		c.logger.Warn("ingest pipeline failed", logging.String("source", source))
		return ErrIngestFailed
	}

	tl.CloseOut()
	c.metrics.RecordIngestRefetch()
	if c.events != nil {
		c.events.Publish(bus.TopicGraphRefetch, bus.RefetchRequested{Reason: "ingest"})
	}
	c.logger.Info("ingest completed", logging.String("source", source))
	return nil
}
