// Package chat manages an in-memory conversation transcript against the
// knowledge base, streaming assistant replies incrementally and collecting
// the retrieval references cited by each answer.
package chat

import (
	"encoding/json"
	"math"
	"strings"
)

// Role identifies who authored a transcript turn.
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
	RoleSystem
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	case RoleSystem:
		return "system"
	default:
		return "unknown"
	}
}

// ReferenceMeta carries the retrieval metadata attached to a citation hit.
// All fields are optional on the wire.
type ReferenceMeta struct {
	SourceType      string `json:"source_type,omitempty"`
	Page            int    `json:"page,omitempty"`
	Chunk           int    `json:"chunk,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	Name            string `json:"name,omitempty"`
	ContentID       string `json:"content_id,omitempty"`
	HotWords        string `json:"hot_words,omitempty"`
	ChunkSize       int    `json:"chunk_size,omitempty"`
	KnowledgeItemID string `json:"knowledge_item_id,omitempty"`
	ContentHash     string `json:"content_hash,omitempty"`
}

// HotWordList parses the hot_words field, which the backend serializes
// either as a JSON string array or as a plain comma-separated string.
func (m ReferenceMeta) HotWordList() []string {
	if m.HotWords == "" {
		return nil
	}
	var parsed []string
	if err := json.Unmarshal([]byte(m.HotWords), &parsed); err == nil {
		return parsed
	}
	var words []string
	for _, w := range strings.Split(m.HotWords, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// Reference is one retrieval hit cited by an assistant turn. Citation
// markers in the rendered answer are 1-indexed into the turn's reference
// slice and are only stable for the lifetime of that turn.
type Reference struct {
	ID         string        `json:"id"`
	Document   string        `json:"document"`
	Score      float64       `json:"score"`
	Similarity float64       `json:"similarity"`
	Distance   float64       `json:"distance"`
	MetaData   ReferenceMeta `json:"meta_data"`
}

// ConfidencePercent rounds similarity into the 0-100 scale shown next to
// each citation.
func (r Reference) ConfidencePercent() int {
	return int(math.Round(r.Similarity * 100))
}

// Turn is one entry in the transcript.
type Turn struct {
	Role       Role
	Content    string
	References []Reference
}
