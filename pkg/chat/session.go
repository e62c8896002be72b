package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"graphcast/pkg/logging"
	"graphcast/pkg/metrics"
	"graphcast/pkg/sse"
)

// ErrSendInFlight is returned when Send is called while a previous send is
// still streaming. Callers disable the send control instead of queueing.
var ErrSendInFlight = errors.New("chat: send already in flight")

// Event discriminator values recognized in the chat stream payload.
const (
	eventContent    = "RunContent"
	eventReferences = "RunReferences"
)

// failureMessage is the synthetic assistant turn appended when the request
// rejects before any content arrives. No automatic retry.
const failureMessage = "Sorry, I couldn't reach the knowledge base. Please try again."

type streamEvent struct {
	Event      string      `json:"event"`
	Content    string      `json:"content"`
	References []Reference `json:"references"`
}

type sendRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

// Session holds one conversation: an opaque session id, the finalized
// transcript, and the assistant turn currently streaming, if any. It runs
// on the UI goroutine and is not safe for concurrent use.
type Session struct {
	id      string
	baseURL string
	stream  *sse.Client
	logger  logging.Logger
	metrics *metrics.Registry

	turns   []Turn
	current *Turn
	loading bool
}

// NewSession creates a session with a fresh random id.
func NewSession(baseURL string, stream *sse.Client, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	id := uuid.NewString()
	return &Session{
		id:      id,
		baseURL: baseURL,
		stream:  stream,
		logger:  logger.With(logging.Component("chat"), logging.SessionID(id)),
		metrics: metrics.DefaultRegistry(),
	}
}

// ID returns the opaque session identifier sent with every query.
func (s *Session) ID() string {
	return s.id
}

// Turns returns the finalized transcript in order.
func (s *Session) Turns() []Turn {
	return s.turns
}

// Streaming returns the in-progress assistant turn, if one is streaming.
func (s *Session) Streaming() (Turn, bool) {
	if s.current == nil {
		return Turn{}, false
	}
	return *s.current, true
}

// Loading reports whether a send is in flight.
func (s *Session) Loading() bool {
	return s.loading
}

// Send posts the query and streams the assistant reply. Content deltas
// accumulate into the in-progress turn; a references event attaches its
// hits once. On clean completion the turn is finalized into the transcript.
// A failure before any content arrived appends a synthetic failure turn
// instead. Send blocks until the stream ends.
func (s *Session) Send(ctx context.Context, query string) error {
	if s.loading {
		return ErrSendInFlight
	}
	s.loading = true
	defer func() { s.loading = false }()

	s.turns = append(s.turns, Turn{Role: RoleUser, Content: query})
	s.metrics.RecordChatTurn(RoleUser.String())

	body, err := json.Marshal(sendRequest{SessionID: s.id, Query: query})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	cur := &Turn{Role: RoleAssistant}
	s.current = cur
	defer func() { s.current = nil }()

	streamErr := s.stream.Stream(ctx, req, func(data json.RawMessage) {
		var ev streamEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			s.logger.Warn("unrecognized chat event", logging.Error(err))
			return
		}
		switch ev.Event {
		case eventContent:
			cur.Content += ev.Content
		case eventReferences:
			if cur.References == nil {
				cur.References = ev.References
			}
		default:
			s.logger.Debug("ignoring chat event", logging.EventKind(ev.Event))
		}
	})

	if streamErr != nil {
		s.metrics.RecordChatError()
		if cur.Content == "" {
			s.turns = append(s.turns, Turn{Role: RoleAssistant, Content: failureMessage})
			s.logger.Error("chat request failed", logging.Error(streamErr))
			return streamErr
		}
		// Content already arrived; keep the partial answer rather than
		// dropping what the user has seen.
		s.turns = append(s.turns, *cur)
		s.logger.Warn("chat stream ended early", logging.Error(streamErr))
		return streamErr
	}

	s.turns = append(s.turns, *cur)
	s.metrics.RecordChatTurn(RoleAssistant.String())
	s.logger.Info("assistant turn finalized",
		logging.Count(len(cur.References)),
		logging.Int("content_bytes", len(cur.Content)))
	return nil
}

// ReferenceNodeIDs maps a turn's citations to graph node ids for the
// citation-pin flow, preferring the knowledge item id when present.
func ReferenceNodeIDs(refs []Reference) []string {
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		switch {
		case r.MetaData.KnowledgeItemID != "":
			ids = append(ids, r.MetaData.KnowledgeItemID)
		case r.ID != "":
			ids = append(ids, r.ID)
		}
	}
	return ids
}
