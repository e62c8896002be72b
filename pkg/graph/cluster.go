package graph

// Wire types for the backend knowledge-cluster endpoint. The nesting is
// category → hot word (topic) → knowledge item; associations are a separate
// flat list of topic-to-topic similarities.

// ClusterResponse is the GET /knowledge/cluster payload.
type ClusterResponse struct {
	Categories   []ClusterCategory `json:"big_hot_words_with_hot_words"`
	Associations []Association     `json:"associations"`
}

// ClusterCategory is a hub topic cluster.
type ClusterCategory struct {
	ID       string         `json:"id"`
	Word     string         `json:"word"`
	HotWords []ClusterTopic `json:"hot_words"`
}

// ClusterTopic is a keyword under a category.
type ClusterTopic struct {
	ID             string        `json:"id"`
	Word           string        `json:"word"`
	KnowledgeItems []ClusterItem `json:"knowledge_items"`
}

// ClusterItem is an ingested document or link attached to a topic.
type ClusterItem struct {
	ID            string       `json:"id"`
	SourceType    string       `json:"source_type"`
	Title         string       `json:"title"`
	SourceContent string       `json:"source_content"`
	ItemMetadata  ItemMetadata `json:"item_metadata"`
}

// ItemMetadata carries upload metadata for file items.
type ItemMetadata struct {
	OriginalFilename string `json:"original_filename"`
}

// Association is a topic-to-topic similarity edge.
type Association struct {
	Word1ID         string  `json:"word1_id"`
	Word2ID         string  `json:"word2_id"`
	SimilarityScore float64 `json:"similarity_score"`
}

// DisplayName picks the item label the way the product renders it:
// original filename, else title, else the raw source content.
func (i ClusterItem) DisplayName() string {
	if i.ItemMetadata.OriginalFilename != "" {
		return i.ItemMetadata.OriginalFilename
	}
	if i.Title != "" {
		return i.Title
	}
	return i.SourceContent
}

// Link weights by provenance; rendered as stroke thickness only.
const (
	categoryTopicWeight = 1.0
	topicItemWeight     = 0.8
)

// FromClusterResponse flattens a cluster snapshot into a Model.
//
// Node identity is the backend id, never the display name: two topics sharing
// a word under different categories stay distinct, while a topic re-listed
// under a second category is deduplicated. Associations whose endpoints are
// missing from the snapshot are dropped to keep every link resolvable.
func FromClusterResponse(raw ClusterResponse) *Model {
	m := NewModel()

	for _, cat := range raw.Categories {
		m.AddNode(&Node{ID: cat.ID, Name: cat.Word, Kind: KindCategory})
	}

	for _, cat := range raw.Categories {
		for _, topic := range cat.HotWords {
			if _, exists := m.Node(topic.ID); !exists {
				m.AddNode(&Node{ID: topic.ID, Name: topic.Word, Kind: KindTopic})
			}
			m.AddLink(cat.ID, topic.ID, categoryTopicWeight)

			for _, item := range topic.KnowledgeItems {
				if _, exists := m.Node(item.ID); !exists {
					m.AddNode(&Node{
						ID:   item.ID,
						Name: item.DisplayName(),
						Kind: KindFromSourceType(item.SourceType),
					})
				}
				m.AddLink(topic.ID, item.ID, topicItemWeight)
			}
		}
	}

	for _, assoc := range raw.Associations {
		m.AddLink(assoc.Word1ID, assoc.Word2ID, assoc.SimilarityScore)
	}

	return m
}
