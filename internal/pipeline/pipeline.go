// Package pipeline wires the full newsletter run: fetch, enrich, curate,
// summarize, render, and optionally deliver.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/nivcodes/ainews/internal/config"
	"github.com/nivcodes/ainews/internal/core"
	"github.com/nivcodes/ainews/internal/curate"
	"github.com/nivcodes/ainews/internal/email"
	"github.com/nivcodes/ainews/internal/fetch"
	"github.com/nivcodes/ainews/internal/images"
	"github.com/nivcodes/ainews/internal/llm"
	"github.com/nivcodes/ainews/internal/logger"
	"github.com/nivcodes/ainews/internal/newsletter"
	"github.com/nivcodes/ainews/internal/render"
)

// Options control one run.
type Options struct {
	MaxArticles int              // Overall curation cap; 0 uses the configured default
	Style       newsletter.Style // Summary style
	OutputDir   string           // Artifact directory; empty uses the configured default
	FetchImages bool             // Whether to run the image enrichment step
	Send        bool             // Whether to email the HTML artifact after writing
	Subject     string           // Custom email subject; empty uses the default
}

// Result is what a completed run produced.
type Result struct {
	Content *core.NewsletterContent
	Files   map[string]string // format name -> written path
}

// Summary renders a short human-readable report, used in logs and admin
// notification emails.
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Articles: %d\n", r.Content.Info.TotalArticles)
	fmt.Fprintf(&b, "Summaries: %d\n", r.Content.Info.Summaries)
	fmt.Fprintf(&b, "Editor's takes: %d\n", r.Content.Info.EditorsTakes)
	fmt.Fprintf(&b, "Categories: %s\n", strings.Join(r.Content.Info.Categories, ", "))
	fmt.Fprintf(&b, "Backend: %s\n", r.Content.Info.BackendUsed)
	for name, path := range r.Files {
		fmt.Fprintf(&b, "%s: %s\n", name, path)
	}
	return b.String()
}

// Pipeline holds the long-lived collaborators for newsletter runs. The LLM
// chain is constructed once and reused so local backends keep their warm
// state across retries within a process.
type Pipeline struct {
	cfg   *config.Config
	chain *llm.Chain
}

// New builds a pipeline from configuration.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		cfg:   cfg,
		chain: llm.NewChainFromConfig(&cfg.LLM),
	}
}

// Run executes the whole pipeline once. Zero fetched articles or zero
// generated summaries fail the run; everything below that granularity is
// logged and skipped.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	logger.Info("🚀 Starting newsletter generation")

	fetcher := fetch.NewFetcher(p.cfg)
	articles, err := fetcher.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("no AI articles found")
	}

	if opts.FetchImages {
		enricher := images.NewEnricher(p.cfg.Feeds.Timeout)
		articles = enricher.EnrichAll(ctx, articles)
	}

	maxArticles := opts.MaxArticles
	if maxArticles <= 0 {
		maxArticles = p.cfg.Curation.MaxArticles
	}
	curated := curate.SelectTop(articles, p.cfg.Curation.MaxArticlesPerCategory, maxArticles)
	logger.Info("🏆 Curated top articles", "selected", len(curated), "from", len(articles))

	if p.chain.Len() == 0 {
		return nil, fmt.Errorf("no LLM backends configured")
	}
	assembler := newsletter.NewAssembler(p.chain, p.cfg.LLM.SummaryDelay)
	content, err := assembler.Assemble(ctx, curated, opts.Style)
	if err != nil {
		return nil, err
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = p.cfg.Output.Directory
	}
	files, err := render.WriteAll(content, outputDir, render.DefaultRenderers())
	if err != nil {
		return nil, err
	}

	result := &Result{Content: content, Files: files}
	if opts.Send {
		if err := p.Send(result.Files["html"], opts.Subject); err != nil {
			return result, err
		}
	}
	return result, nil
}

// Send delivers the given HTML artifact by email. Already-written files stay
// on disk when delivery fails.
func (p *Pipeline) Send(htmlFile, subject string) error {
	if htmlFile == "" {
		return fmt.Errorf("no HTML file to send")
	}
	sender := email.NewSender(p.cfg.Email)
	return sender.SendFile(htmlFile, subject)
}
