package apiclient

// NodeDetail is the payload behind a double-clicked graph node. Fetch
// failures surface through the Error field so the detail dialog renders
// them inline instead of aborting.
type NodeDetail struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Name          string         `json:"name"`
	ExtractedText string         `json:"extracted_text"`
	Metadata      DetailMetadata `json:"metadata"`
	Error         string         `json:"error,omitempty"`
}

type DetailMetadata struct {
	OriginalFilename string `json:"original_filename,omitempty"`
	SourceType       string `json:"source_type,omitempty"`
}

// DisplayTitle resolves the dialog heading the same way the detail view
// does: title, then original filename, then node name.
func (d NodeDetail) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	if d.Metadata.OriginalFilename != "" {
		return d.Metadata.OriginalFilename
	}
	return d.Name
}

// PodcastSegment is one speaker turn in a generated episode script.
type PodcastSegment struct {
	Person   string  `json:"person"`
	Text     string  `json:"text"`
	VoiceID  string  `json:"voice_id"`
	Emotion  string  `json:"emotion"`
	Speed    float64 `json:"speed"`
	Language string  `json:"language"`
}

// PodcastDetails is the parsed script plus any parse diagnostics.
type PodcastDetails struct {
	Segments      []PodcastSegment `json:"segments"`
	TotalSegments int              `json:"total_segments"`
	MindMap       string           `json:"mind_map,omitempty"`
	ParseError    string           `json:"parse_error,omitempty"`
	RawContent    string           `json:"raw_content,omitempty"`
}

// PodcastItem is one row in the episode list.
type PodcastItem struct {
	PodcastID          string   `json:"podcast_id"`
	KnowledgeItemID    string   `json:"knowledge_item_id"`
	KnowledgeTitle     string   `json:"knowledge_title"`
	EstimatedDuration  float64  `json:"estimated_duration"`
	AudioAvailable     bool     `json:"audio_available"`
	GenerationStatus   string   `json:"generation_status"`
	CreatedAt          string   `json:"created_at"`
	CompletedAt        string   `json:"completed_at"`
	ProgressPercentage *float64 `json:"progress_percentage"`
}

// PodcastList is the episode listing response.
type PodcastList struct {
	Total    int           `json:"total"`
	Podcasts []PodcastItem `json:"podcasts"`
}

// ShareRequest shares a knowledge item with other users, optionally
// generating an audio version with an intro card.
type ShareRequest struct {
	UserIDs       []string `json:"user_ids"`
	GenerateAudio bool     `json:"generate_audio,omitempty"`
	AddIntro      bool     `json:"add_intro,omitempty"`
	SendCard      bool     `json:"send_card,omitempty"`
}
