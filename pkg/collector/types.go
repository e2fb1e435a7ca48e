package collector

// Article is a raw news item collected from any source, before
// classification. Fields are normalized across the API and RSS sources.
type Article struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Country     string `json:"country,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	Content     string `json:"content,omitempty"` // full text when extraction is enabled
}
