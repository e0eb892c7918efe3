// Package fetch retrieves raw articles from RSS feeds and the Hacker News
// API, extracts their bodies, and enriches them with scores and categories.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/nivcodes/ainews/internal/categories"
	"github.com/nivcodes/ainews/internal/config"
	"github.com/nivcodes/ainews/internal/core"
	"github.com/nivcodes/ainews/internal/logger"
	"github.com/nivcodes/ainews/internal/relevance"
	"github.com/nivcodes/ainews/internal/scoring"
)

// rawArticle is a feed or API entry before content extraction.
type rawArticle struct {
	Title          string
	URL            string
	SourceCategory string
	SourceFeed     string
	PublishDate    *time.Time
	DateUnparsable bool
	Upvotes        int
	Comments       int
}

// Fetcher orchestrates retrieval, extraction, filtering, scoring, and
// categorization. All requests go through a shared rate limiter so sources
// are not hammered.
type Fetcher struct {
	cfg     *config.Config
	client  *http.Client
	parser  *gofeed.Parser
	scorer  *scoring.Scorer
	limiter *rate.Limiter
}

// NewFetcher creates a fetcher from configuration.
func NewFetcher(cfg *config.Config) *Fetcher {
	client := &http.Client{Timeout: cfg.Feeds.Timeout}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = cfg.Feeds.UserAgent

	delay := cfg.Feeds.RequestDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}

	return &Fetcher{
		cfg:     cfg,
		client:  client,
		parser:  parser,
		scorer:  scoring.NewScorer(),
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

// FetchAll retrieves articles from every configured source, processes them,
// and returns the enriched list. Per-source and per-article failures are
// logged and skipped; the only error returned is context cancellation.
func (f *Fetcher) FetchAll(ctx context.Context) ([]core.Article, error) {
	logger.Info("🚀 Starting article fetching")

	raw := f.fetchRSS(ctx)
	if f.cfg.Feeds.HackerNews.Enabled {
		raw = append(raw, f.fetchHackerNews(ctx)...)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	articles, err := f.process(ctx, raw)
	if err != nil {
		return nil, err
	}
	logger.Info("🎯 Processed AI-related articles", "count", len(articles))
	return articles, nil
}

// fetchRSS pulls entries from each configured feed, grouped by source
// category. Failed feeds are skipped.
func (f *Fetcher) fetchRSS(ctx context.Context) []rawArticle {
	logger.Info("🔍 Fetching articles from RSS feeds")
	var raw []rawArticle

	for category, feeds := range f.cfg.Feeds.RSS {
		logger.Info("📡 Fetching category feeds", "category", category, "feeds", len(feeds))
		for _, feedURL := range feeds {
			if err := f.limiter.Wait(ctx); err != nil {
				return raw
			}
			feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
			if err != nil {
				logger.Error("failed to fetch feed", err, "feed", feedURL)
				continue
			}

			items := feed.Items
			if max := f.cfg.Feeds.ArticlesPerFeed; max > 0 && len(items) > max {
				items = items[:max]
			}
			for _, item := range items {
				if item.Link == "" {
					continue
				}
				raw = append(raw, rawArticle{
					Title:          item.Title,
					URL:            item.Link,
					SourceCategory: category,
					SourceFeed:     feedURL,
					PublishDate:    item.PublishedParsed,
					DateUnparsable: item.Published != "" && item.PublishedParsed == nil,
				})
			}
		}
	}

	logger.Info("✅ Fetched articles from RSS feeds", "count", len(raw))
	return raw
}

// process extracts content and applies the age, length, and relevance gates,
// then enriches survivors with a popularity score and a category.
func (f *Fetcher) process(ctx context.Context, raw []rawArticle) ([]core.Article, error) {
	logger.Info("🔄 Processing articles", "count", len(raw))
	seen := make(map[string]bool)
	var articles []core.Article

	for _, r := range raw {
		if err := ctx.Err(); err != nil {
			return articles, err
		}
		if seen[r.URL] {
			continue
		}
		seen[r.URL] = true

		if !f.isRecent(r.PublishDate) {
			logger.Debug("⏭️ skipping, too old", "title", r.Title)
			continue
		}

		if err := f.limiter.Wait(ctx); err != nil {
			return articles, err
		}
		extracted, err := f.extract(ctx, r.URL)
		if err != nil {
			logger.Warn("❌ failed to extract content", "url", r.URL, "error", err.Error())
			continue
		}
		if len(extracted.TextContent) < f.cfg.Filter.MinArticleLength {
			logger.Debug("⏭️ skipping, too short", "title", r.Title)
			continue
		}

		title := r.Title
		if title == "" {
			title = extracted.Title
		}
		if !relevance.IsAIRelated(title + " " + extracted.TextContent) {
			logger.Debug("⏭️ skipping, not AI-related", "title", title)
			continue
		}

		article := core.Article{
			ID:             uuid.NewString(),
			Title:          title,
			URL:            r.URL,
			Text:           extracted.TextContent,
			ImageURL:       extracted.Image,
			PublishDate:    r.PublishDate,
			DateUnparsable: r.DateUnparsable,
			SourceCategory: r.SourceCategory,
			SourceFeed:     r.SourceFeed,
			Upvotes:        r.Upvotes,
			Comments:       r.Comments,
		}
		article.PopularityScore = f.scorer.Score(article)
		article.Category = categories.Classify(article.Title, article.Text, article.URL)

		articles = append(articles, article)
		logger.Info("✅ Added article",
			"title", title, "score", article.PopularityScore, "category", article.Category)
	}

	return articles, nil
}

// extract downloads a page and runs readability extraction on it.
func (f *Fetcher) extract(ctx context.Context, articleURL string) (readability.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return readability.Article{}, fmt.Errorf("creating request for %s: %w", articleURL, err)
	}
	req.Header.Set("User-Agent", f.cfg.Feeds.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return readability.Article{}, fmt.Errorf("fetching %s: %w", articleURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readability.Article{}, fmt.Errorf("fetching %s: status %d", articleURL, resp.StatusCode)
	}

	parsedURL, err := url.Parse(articleURL)
	if err != nil {
		return readability.Article{}, fmt.Errorf("parsing url %s: %w", articleURL, err)
	}
	article, err := readability.FromReader(resp.Body, parsedURL)
	if err != nil {
		return readability.Article{}, fmt.Errorf("extracting content from %s: %w", articleURL, err)
	}
	return article, nil
}

// isRecent applies the age gate. Articles without a usable date pass; the
// scorer penalizes them instead.
func (f *Fetcher) isRecent(publishDate *time.Time) bool {
	if publishDate == nil {
		return true
	}
	maxAge := time.Duration(f.cfg.Filter.MaxArticleAgeHours) * time.Hour
	if maxAge <= 0 {
		return true
	}
	return time.Since(*publishDate) <= maxAge
}
