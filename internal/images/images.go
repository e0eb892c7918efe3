// Package images enriches articles with a lead image when extraction did not
// find one, by looking up Open Graph and Twitter card metadata.
package images

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/nivcodes/ainews/internal/core"
	"github.com/nivcodes/ainews/internal/logger"
)

// Enricher resolves lead images for articles.
type Enricher struct {
	client *http.Client
}

// NewEnricher creates an enricher with a bounded per-request timeout.
func NewEnricher(timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Enricher{client: &http.Client{Timeout: timeout}}
}

// EnrichAll fills Image for each article in place. Articles that already have
// an extracted image keep it; lookups that fail are skipped with a log line.
func (e *Enricher) EnrichAll(ctx context.Context, articles []core.Article) []core.Article {
	logger.Info("🖼️ Fetching images for articles", "count", len(articles))
	for i := range articles {
		if err := ctx.Err(); err != nil {
			break
		}
		a := &articles[i]
		if a.ImageURL != "" {
			a.Image = &core.ImageInfo{URL: a.ImageURL, Source: "article"}
			continue
		}
		info, err := e.lookup(ctx, a.URL)
		if err != nil {
			logger.Debug("no image found for article", "url", a.URL, "error", err.Error())
			continue
		}
		a.Image = info
	}
	return articles
}

// lookup fetches the article page and reads og:image / twitter:image meta
// tags.
func (e *Enricher) lookup(ctx context.Context, pageURL string) (*core.ImageInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}
	return ImageFromDocument(doc)
}

// ImageFromDocument extracts the best meta image from a parsed document.
func ImageFromDocument(doc *goquery.Document) (*core.ImageInfo, error) {
	selectors := []string{
		`meta[property="og:image"]`,
		`meta[name="twitter:image"]`,
		`meta[name="twitter:image:src"]`,
	}
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok && content != "" {
			alt, _ := doc.Find(`meta[property="og:image:alt"]`).First().Attr("content")
			return &core.ImageInfo{URL: content, Alt: alt, Source: "og"}, nil
		}
	}
	return nil, fmt.Errorf("no meta image tags present")
}
