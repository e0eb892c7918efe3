// Package newsletter assembles curated, scored articles into a complete
// newsletter content object via the LLM fallback chain.
package newsletter

import (
	"context"
	"fmt"
	"time"

	"github.com/nivcodes/ainews/internal/core"
	"github.com/nivcodes/ainews/internal/logger"
)

// EditorsTakeThreshold is the minimum popularity score for an article to get
// an Editor's Take. A cost/quality gate, not an error condition.
const EditorsTakeThreshold = 50

// Style selects the summary prompt shape.
type Style string

// Supported newsletter styles.
const (
	StyleEditorial Style = "editorial"
	StyleRundown   Style = "rundown"
	StyleBasic     Style = "basic"
)

// ValidStyle reports whether s names a supported style.
func ValidStyle(s string) bool {
	switch Style(s) {
	case StyleEditorial, StyleRundown, StyleBasic:
		return true
	}
	return false
}

// Generator is the text-generation capability the assembler needs. *llm.Chain
// satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float64) (string, bool)
	LastUsed() string
}

// Assembler turns articles into NewsletterContent. It works strictly
// sequentially, one article at a time, sleeping Delay between generation
// calls to respect backend rate limits.
type Assembler struct {
	gen   Generator
	Delay time.Duration
	Now   func() time.Time
}

// NewAssembler creates an assembler around a generator.
func NewAssembler(gen Generator, delay time.Duration) *Assembler {
	return &Assembler{gen: gen, Delay: delay, Now: time.Now}
}

// Assemble produces the newsletter content for the curated article list.
// Per-article failures are logged and the article is dropped from both
// summaries and takes; the run fails only when zero summaries are produced.
func (as *Assembler) Assemble(ctx context.Context, articles []core.Article, style Style) (*core.NewsletterContent, error) {
	if len(articles) == 0 {
		return nil, fmt.Errorf("no articles to assemble")
	}

	intro, ok := as.gen.Generate(ctx, introPrompt(articles), 0.6)
	if !ok {
		logger.Warn("⚠️ LLM failed for newsletter intro, using fallback")
		intro = fallbackIntro(articles)
	}
	as.pause(ctx)

	content := &core.NewsletterContent{
		Intro:                intro,
		Articles:             articles,
		CategorizedSummaries: map[string][]core.SummaryBlock{},
	}

	for _, article := range articles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		block, err := as.summarize(ctx, article, style)
		if err != nil {
			logger.Error("error summarizing article, skipping", err, "title", article.Title)
			continue
		}
		content.Summaries = append(content.Summaries, block)
		content.CategorizedSummaries[article.Category] = append(content.CategorizedSummaries[article.Category], block)
		as.pause(ctx)

		if article.PopularityScore >= EditorsTakeThreshold {
			logger.Info("✍️ Generating Editor's Take", "title", article.Title)
			take, ok := as.gen.Generate(ctx, editorsTakePrompt(article), 0.8)
			if ok {
				content.EditorsTakes = append(content.EditorsTakes, core.EditorsTake{
					ArticleID: article.ID,
					Title:     article.Title,
					Take:      take,
				})
			}
			as.pause(ctx)
		}
	}

	if len(content.Summaries) == 0 {
		return nil, fmt.Errorf("no summaries generated for %d articles", len(articles))
	}

	var cats []string
	for cat := range content.CategorizedSummaries {
		cats = append(cats, cat)
	}
	backend := as.gen.LastUsed()
	if backend == "" {
		backend = "fallback"
	}
	content.Info = core.GenerationInfo{
		BackendUsed:   backend,
		Timestamp:     as.Now(),
		TotalArticles: len(articles),
		Summaries:     len(content.Summaries),
		EditorsTakes:  len(content.EditorsTakes),
		Categories:    cats,
	}

	logger.Info("✅ Assembled newsletter content",
		"summaries", len(content.Summaries), "takes", len(content.EditorsTakes))
	return content, nil
}

// summarize generates one formatted summary block. For the editorial and
// rundown styles a fully failed chain produces a stock fallback section, so a
// dead LLM setup still yields a (plain) newsletter; the basic style drops the
// article instead.
func (as *Assembler) summarize(ctx context.Context, article core.Article, style Style) (core.SummaryBlock, error) {
	var prompt string
	switch style {
	case StyleRundown:
		prompt = rundownPrompt(article)
	case StyleBasic:
		prompt = basicPrompt(article)
	default:
		prompt = editorialPrompt(article)
	}

	logger.Info("🧠 Generating summary", "title", article.Title, "style", string(style))
	text, ok := as.gen.Generate(ctx, prompt, 0.7)
	if !ok {
		if style == StyleBasic {
			// The basic style has no structured fallback; the article is
			// dropped from the newsletter.
			return core.SummaryBlock{}, fmt.Errorf("all backends failed for %q", article.Title)
		}
		logger.Warn("⚠️ all backends failed, using fallback summary", "title", article.Title)
		return core.SummaryBlock{
			ArticleID: article.ID,
			Category:  article.Category,
			Markdown:  fallbackSummary(article),
			Fallback:  true,
		}, nil
	}

	return core.SummaryBlock{
		ArticleID: article.ID,
		Category:  article.Category,
		Markdown:  text,
	}, nil
}

// pause sleeps the configured inter-request delay, returning early on
// cancellation.
func (as *Assembler) pause(ctx context.Context) {
	if as.Delay <= 0 {
		return
	}
	select {
	case <-time.After(as.Delay):
	case <-ctx.Done():
	}
}
