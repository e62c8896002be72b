package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphcast/pkg/logging"
	"graphcast/pkg/sse"
)

func chatServer(t *testing.T, frames ...string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)

		var body struct {
			SessionID string `json:"session_id"`
			Query     string `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotEmpty(t, body.SessionID)
		assert.NotEmpty(t, body.Query)

		w.Header().Set("Content-Type", "text/event-stream")
		flusher, _ := w.(http.Flusher)
		for _, f := range frames {
			w.Write([]byte(f))
			if flusher != nil {
				flusher.Flush()
			}
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSendStreamsAndFinalizesTurn(t *testing.T) {
	server := chatServer(t,
		"data: {\"event\":\"RunContent\",\"content\":\"The \"}\n\n",
		"data: {\"event\":\"RunContent\",\"content\":\"answer.\"}\n\n",
		"data: {\"event\":\"RunReferences\",\"references\":[{\"id\":\"ref-1\",\"document\":\"rfc6749.pdf\",\"similarity\":0.91,\"distance\":0.09}]}\n\n",
	)

	s := NewSession(server.URL, sse.NewClient(logging.NewNopLogger()), logging.NewNopLogger())
	require.NoError(t, s.Send(context.Background(), "What is X?"))

	turns := s.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, "What is X?", turns[0].Content)

	final := turns[1]
	assert.Equal(t, RoleAssistant, final.Role)
	assert.Equal(t, "The answer.", final.Content)
	require.Len(t, final.References, 1)
	assert.Equal(t, "ref-1", final.References[0].ID)
	assert.Equal(t, 91, final.References[0].ConfidencePercent())

	_, streaming := s.Streaming()
	assert.False(t, streaming, "no in-progress turn after completion")
	assert.False(t, s.Loading())
}

func TestSendReferencesAttachOnlyOnce(t *testing.T) {
	server := chatServer(t,
		"data: {\"event\":\"RunContent\",\"content\":\"ok\"}\n\n",
		"data: {\"event\":\"RunReferences\",\"references\":[{\"id\":\"a\"}]}\n\n",
		"data: {\"event\":\"RunReferences\",\"references\":[{\"id\":\"b\"},{\"id\":\"c\"}]}\n\n",
	)

	s := NewSession(server.URL, sse.NewClient(logging.NewNopLogger()), logging.NewNopLogger())
	require.NoError(t, s.Send(context.Background(), "q"))

	turns := s.Turns()
	require.Len(t, turns, 2)
	require.Len(t, turns[1].References, 1)
	assert.Equal(t, "a", turns[1].References[0].ID)
}

func TestSendRejectionAppendsSyntheticFailureTurn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	s := NewSession(server.URL, sse.NewClient(logging.NewNopLogger()), logging.NewNopLogger())
	err := s.Send(context.Background(), "q")
	require.Error(t, err)

	turns := s.Turns()
	require.Len(t, turns, 2, "user turn plus one synthetic failure turn")
	assert.Equal(t, RoleAssistant, turns[1].Role)
	assert.Equal(t, failureMessage, turns[1].Content)
	assert.Empty(t, turns[1].References)
}

func TestSendUnknownEventsIgnored(t *testing.T) {
	server := chatServer(t,
		"data: {\"event\":\"RunStarted\"}\n\n",
		"data: {\"event\":\"RunContent\",\"content\":\"hi\"}\n\n",
		"data: {\"event\":\"RunCompleted\"}\n\n",
	)

	s := NewSession(server.URL, sse.NewClient(logging.NewNopLogger()), logging.NewNopLogger())
	require.NoError(t, s.Send(context.Background(), "q"))

	turns := s.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "hi", turns[1].Content)
}

func TestSendGuardsAgainstOverlappingSends(t *testing.T) {
	s := NewSession("http://backend", sse.NewClient(logging.NewNopLogger()), logging.NewNopLogger())
	s.loading = true

	err := s.Send(context.Background(), "second")
	assert.ErrorIs(t, err, ErrSendInFlight)
	assert.Empty(t, s.Turns(), "guard rejects before appending the user turn")
}

func TestReferenceNodeIDs(t *testing.T) {
	refs := []Reference{
		{ID: "chunk-1", MetaData: ReferenceMeta{KnowledgeItemID: "item-9"}},
		{ID: "chunk-2"},
		{},
	}
	assert.Equal(t, []string{"item-9", "chunk-2"}, ReferenceNodeIDs(refs))
}

func TestHotWordListFormats(t *testing.T) {
	assert.Equal(t, []string{"oauth", "token"},
		ReferenceMeta{HotWords: `["oauth","token"]`}.HotWordList())
	assert.Equal(t, []string{"oauth", "token"},
		ReferenceMeta{HotWords: "oauth, token"}.HotWordList())
	assert.Nil(t, ReferenceMeta{}.HotWordList())
}
