package render

import (
	"fmt"
	"strings"

	"github.com/nivcodes/ainews/internal/categories"
	"github.com/nivcodes/ainews/internal/core"
)

// MarkdownRenderer produces the plain markdown newsletter.
type MarkdownRenderer struct{}

func (MarkdownRenderer) Name() string     { return "markdown" }
func (MarkdownRenderer) Filename() string { return "newsletter.md" }

// Render writes the intro, then each category section in declaration order,
// then the Editor's Takes. Summaries are looked up per category; the article
// association lives inside each block.
func (MarkdownRenderer) Render(content *core.NewsletterContent) (string, error) {
	var b strings.Builder

	date := content.Info.Timestamp.Format("January 2, 2006")
	b.WriteString(fmt.Sprintf("# 🧠 Your AI News Digest – %s\n\n", date))
	b.WriteString(content.Intro)
	b.WriteString("\n\n---\n\n")

	for _, cat := range categories.All() {
		blocks := content.CategorizedSummaries[cat.Name]
		if len(blocks) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("# %s %s\n\n", cat.Emoji, cat.Title))
		for _, block := range blocks {
			b.WriteString(block.Markdown)
			b.WriteString("\n\n")
		}
	}

	if len(content.EditorsTakes) > 0 {
		b.WriteString("# ✍️ Editor's Takes\n\n")
		for _, take := range content.EditorsTakes {
			b.WriteString(fmt.Sprintf("**%s**\n\n%s\n\n", take.Title, take.Take))
		}
	}

	b.WriteString("---\n\n")
	b.WriteString(fmt.Sprintf("*Generated by %s on %s — %d stories across %d categories.*\n",
		content.Info.BackendUsed,
		content.Info.Timestamp.Format("2006-01-02 15:04"),
		content.Info.Summaries,
		len(content.Info.Categories)))

	return b.String(), nil
}
