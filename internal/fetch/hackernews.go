package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nivcodes/ainews/internal/logger"
	"github.com/nivcodes/ainews/internal/relevance"
)

// hnStory is the subset of the Hacker News item schema the fetcher needs.
type hnStory struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Time        int64  `json:"time"`
}

// fetchHackerNews pulls the top stories list and keeps the ones whose titles
// look AI-related. Engagement counts (points, comments) ride along for the
// popularity scorer. Failures are logged and skipped.
func (f *Fetcher) fetchHackerNews(ctx context.Context) []rawArticle {
	logger.Info("🔥 Fetching from Hacker News")
	hn := f.cfg.Feeds.HackerNews
	var raw []rawArticle

	var ids []int
	if err := f.getJSON(ctx, hn.BaseURL+"/topstories.json", &ids); err != nil {
		logger.Error("failed to fetch Hacker News top stories", err)
		return nil
	}
	if len(ids) > hn.TopStories {
		ids = ids[:hn.TopStories]
	}

	processed := 0
	for _, id := range ids {
		if processed >= hn.MaxProcess {
			break
		}
		if err := f.limiter.Wait(ctx); err != nil {
			break
		}
		processed++

		var story hnStory
		itemURL := fmt.Sprintf("%s/item/%d.json", hn.BaseURL, id)
		if err := f.getJSON(ctx, itemURL, &story); err != nil {
			logger.Warn("error fetching HN story", "id", id, "error", err.Error())
			continue
		}
		if story.Title == "" || story.URL == "" {
			continue
		}
		// Cheap title-only pre-filter; the strict two-hit check runs later
		// against the full body.
		if !relevance.IsLooselyAIRelated(story.Title) {
			continue
		}

		published := time.Unix(story.Time, 0)
		raw = append(raw, rawArticle{
			Title:          story.Title,
			URL:            story.URL,
			SourceCategory: "misc",
			SourceFeed:     "hackernews",
			PublishDate:    &published,
			Upvotes:        story.Score,
			Comments:       story.Descendants,
		})
	}

	logger.Info("✅ Fetched articles from Hacker News", "count", len(raw))
	return raw
}

// getJSON performs a GET request and decodes the JSON body into out.
func (f *Fetcher) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("requesting %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}
