package core

import "time"

// Article represents one piece of fetched content with provenance, extracted
// text, and metadata derived during a single run. Articles are never persisted
// across runs.
type Article struct {
	ID              string     `json:"id"`               // Unique identifier for the article
	Title           string     `json:"title"`            // Article title
	URL             string     `json:"url"`              // Original article URL, unique within a run
	Text            string     `json:"text"`             // Extracted body text
	ImageURL        string     `json:"image_url"`        // Lead image URL (optional)
	PublishDate     *time.Time `json:"publish_date"`     // Publication timestamp, nil when unknown
	DateUnparsable  bool       `json:"date_unparsable"`  // The feed supplied a date we could not parse
	SourceCategory  string     `json:"source_category"`  // Feed group the article came from
	SourceFeed      string     `json:"source_feed"`      // Feed URL or API name
	Category        string     `json:"category"`         // Assigned category, one of categories.Names()
	PopularityScore float64    `json:"popularity_score"` // Heuristic ranking score, never negative
	Upvotes         int        `json:"upvotes"`          // Engagement count (Hacker News), 0 when unknown
	Comments        int        `json:"comments"`         // Engagement count (Hacker News), 0 when unknown
	Shares          int        `json:"shares"`           // Engagement count, 0 when unknown
	Image           *ImageInfo `json:"image_info,omitempty"`
}

// ImageInfo holds the result of the optional image enrichment step.
type ImageInfo struct {
	URL    string `json:"url"`
	Alt    string `json:"alt,omitempty"`
	Source string `json:"source"` // "article" or "og" depending on where the URL came from
}

// SummaryBlock is one formatted summary tied to the article it was generated
// from. The ArticleID association is authoritative; consumers must never rely
// on positional alignment with an article slice.
type SummaryBlock struct {
	ArticleID string `json:"article_id"`
	Category  string `json:"category"`
	Markdown  string `json:"markdown"`
	Fallback  bool   `json:"fallback"` // true when every LLM backend failed and a stock summary was used
}

// EditorsTake is a short editorial comment generated only for high-scoring
// articles.
type EditorsTake struct {
	ArticleID string `json:"article_id"`
	Title     string `json:"title"`
	Take      string `json:"take"`
}

// GenerationInfo records provenance for one newsletter run.
type GenerationInfo struct {
	BackendUsed   string    `json:"backend_used"`
	Timestamp     time.Time `json:"timestamp"`
	TotalArticles int       `json:"total_articles"`
	Summaries     int       `json:"summaries"`
	EditorsTakes  int       `json:"editors_takes"`
	Categories    []string  `json:"categories"`
}

// NewsletterContent is the assembled newsletter for one run. It is built once,
// handed to one or more renderers, and discarded at process exit.
type NewsletterContent struct {
	Intro                string                    `json:"intro"`
	Articles             []Article                 `json:"articles"`
	Summaries            []SummaryBlock            `json:"summaries"`
	CategorizedSummaries map[string][]SummaryBlock `json:"categorized_summaries"`
	EditorsTakes         []EditorsTake             `json:"editors_takes"`
	Info                 GenerationInfo            `json:"generation_info"`
}

// SummaryFor returns the summary block for the given article ID, if one was
// produced.
func (c *NewsletterContent) SummaryFor(articleID string) (SummaryBlock, bool) {
	for _, s := range c.Summaries {
		if s.ArticleID == articleID {
			return s, true
		}
	}
	return SummaryBlock{}, false
}

// ArticleByID returns the article with the given ID, if present.
func (c *NewsletterContent) ArticleByID(id string) (Article, bool) {
	for _, a := range c.Articles {
		if a.ID == id {
			return a, true
		}
	}
	return Article{}, false
}
