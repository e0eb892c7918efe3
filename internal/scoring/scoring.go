// Package scoring implements the multi-factor popularity heuristic used to
// rank articles before curation.
package scoring

import (
	"net/url"
	"strings"
	"time"

	"github.com/nivcodes/ainews/internal/core"
	"github.com/nivcodes/ainews/internal/relevance"
)

// CredibleSources are domains whose articles receive a trust bonus.
var CredibleSources = []string{
	"arxiv.org", "openai.com", "anthropic.com", "ai.googleblog.com",
	"techcrunch.com", "venturebeat.com", "technologyreview.com",
}

// Engagement weights.
const (
	upvoteWeight  = 0.3
	commentWeight = 0.2
	shareWeight   = 0.25
)

// Keyword bonuses per distinct hit.
const (
	highImpactBonus = 15
	aiKeywordBonus  = 5
)

// Scorer computes popularity scores. Now is injectable so that recency
// contributions are reproducible in tests; it defaults to time.Now.
type Scorer struct {
	Now func() time.Time
}

// NewScorer returns a Scorer using wall-clock time.
func NewScorer() *Scorer {
	return &Scorer{Now: time.Now}
}

// Score computes the popularity score for an article. The result is a
// weighted sum of engagement counts, keyword hits, recency, source
// credibility, and body length, floor-clamped at zero.
func (s *Scorer) Score(a core.Article) float64 {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	score := float64(a.Upvotes)*upvoteWeight +
		float64(a.Comments)*commentWeight +
		float64(a.Shares)*shareWeight

	content := a.Title + " " + a.Text
	score += float64(relevance.CountMatches(content, relevance.HighImpactKeywords)) * highImpactBonus
	score += float64(relevance.CountMatches(content, relevance.AIKeywords)) * aiKeywordBonus

	if a.DateUnparsable {
		score -= 5
	} else {
		score += recencyBonus(a.PublishDate, now())
	}

	if isCredibleSource(a.URL) {
		score += 10
	}

	switch {
	case len(a.Text) > 1000:
		score += 10
	case len(a.Text) > 500:
		score += 5
	}

	if score < 0 {
		return 0
	}
	return score
}

// recencyBonus rewards fresh articles on a 24/48/72-hour ladder. A nil
// publish date contributes nothing; a date in the future counts as fresh.
func recencyBonus(publishDate *time.Time, now time.Time) float64 {
	if publishDate == nil {
		return 0
	}
	age := now.Sub(*publishDate)
	switch {
	case age <= 24*time.Hour:
		return 25
	case age <= 48*time.Hour:
		return 15
	case age <= 72*time.Hour:
		return 5
	}
	return 0
}

func isCredibleSource(articleURL string) bool {
	parsed, err := url.Parse(articleURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, domain := range CredibleSources {
		if strings.Contains(host, domain) {
			return true
		}
	}
	return false
}
