package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphcast/pkg/logging"
)

func TestFetchCluster(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/knowledge/cluster", r.URL.Path)
		w.Write([]byte(`{
			"big_hot_words_with_hot_words": [
				{"id": "cat-1", "word": "Security", "hot_words": [
					{"id": "top-1", "word": "OAuth", "knowledge_items": [
						{"id": "doc-1", "source_type": "file", "title": "rfc6749.pdf"}
					]}
				]}
			],
			"associations": [{"word1_id": "top-1", "word2_id": "top-1", "similarity_score": 0.5}]
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, logging.NewNopLogger())
	cluster, err := c.FetchCluster(context.Background())
	require.NoError(t, err)

	require.Len(t, cluster.Categories, 1)
	assert.Equal(t, "Security", cluster.Categories[0].Word)
	require.Len(t, cluster.Categories[0].HotWords, 1)
	assert.Equal(t, "rfc6749.pdf", cluster.Categories[0].HotWords[0].KnowledgeItems[0].Title)
	require.Len(t, cluster.Associations, 1)
	assert.Equal(t, 0.5, cluster.Associations[0].SimilarityScore)
}

func TestFetchClusterBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient(server.URL, logging.NewNopLogger())
	_, err := c.FetchCluster(context.Background())
	assert.ErrorContains(t, err, "502")
}

func TestNodeDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/knowledge/doc-1", r.URL.Path)
		w.Write([]byte(`{"id":"doc-1","extracted_text":"body","metadata":{"original_filename":"notes.md"}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, logging.NewNopLogger())
	detail := c.NodeDetail(context.Background(), "doc-1")
	assert.Empty(t, detail.Error)
	assert.Equal(t, "body", detail.ExtractedText)
	assert.Equal(t, "notes.md", detail.DisplayTitle())
}

func TestNodeDetailFailureIsInlineError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL, logging.NewNopLogger())
	detail := c.NodeDetail(context.Background(), "doc-404")
	assert.NotEmpty(t, detail.Error, "lookup failure renders inline, not as a Go error")
	assert.Empty(t, detail.ExtractedText)
}

func TestTopicDetailPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/knowledge/by-hot-word/top-1", r.URL.Path)
		w.Write([]byte(`{"id":"top-1","name":"OAuth"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, logging.NewNopLogger())
	detail := c.TopicDetail(context.Background(), "top-1")
	assert.Equal(t, "OAuth", detail.DisplayTitle())
}

func TestPodcastsAndDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/podcasts/":
			w.Write([]byte(`{"total":1,"podcasts":[{"podcast_id":"p-1","knowledge_item_id":"doc-1","audio_available":true,"generation_status":"completed"}]}`))
		case "/api/podcasts/doc-1/details":
			w.Write([]byte(`{"segments":[{"person":"Host","text":"Welcome.","speed":1.0}],"total_segments":1}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := NewClient(server.URL, logging.NewNopLogger())

	list, err := c.Podcasts(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Podcasts, 1)
	assert.True(t, list.Podcasts[0].AudioAvailable)

	details, err := c.PodcastDetails(context.Background(), "doc-1")
	require.NoError(t, err)
	require.Len(t, details.Segments, 1)
	assert.Equal(t, "Host", details.Segments[0].Person)

	assert.Equal(t, server.URL+"/api/podcasts/doc-1/audio", c.PodcastAudioURL("doc-1"))
}

func TestShareKnowledge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/share/knowledge/doc-1", r.URL.Path)

		var share ShareRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&share))
		assert.Equal(t, []string{"u-1", "u-2"}, share.UserIDs)
		assert.True(t, share.GenerateAudio)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient(server.URL, logging.NewNopLogger())
	err := c.ShareKnowledge(context.Background(), "doc-1", ShareRequest{
		UserIDs:       []string{"u-1", "u-2"},
		GenerateAudio: true,
	})
	require.NoError(t, err)
}

func TestShareKnowledgeBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	c := NewClient(server.URL, logging.NewNopLogger())
	err := c.ShareKnowledge(context.Background(), "doc-1", ShareRequest{UserIDs: []string{"u-1"}})
	assert.ErrorContains(t, err, "403")
}
