package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nivcodes/ainews/internal/categories"
	"github.com/nivcodes/ainews/internal/core"
)

// InlineHTMLRenderer produces an email-safe HTML document with all styling
// inline, since email clients strip <style> blocks inconsistently.
type InlineHTMLRenderer struct{}

func (InlineHTMLRenderer) Name() string     { return "html" }
func (InlineHTMLRenderer) Filename() string { return "newsletter.html" }

var (
	linkPattern   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	boldPattern   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	headerPattern = regexp.MustCompile(`(?m)^##\s+(.+)$`)
)

// summaryToHTML converts the constrained markdown grammar the summarizer
// emits (## headers, **bold**, bullet lines, [text](url) links) into HTML
// paragraphs. It is not a general markdown converter.
func summaryToHTML(md string) string {
	escaped := html.EscapeString(md)

	escaped = headerPattern.ReplaceAllString(escaped,
		`<h2 style="color:#1a1a2e;font-size:20px;margin:24px 0 8px;">$1</h2>`)
	escaped = boldPattern.ReplaceAllString(escaped, "<strong>$1</strong>")
	escaped = linkPattern.ReplaceAllString(escaped,
		`<a href="$2" style="color:#2563eb;text-decoration:none;">$1</a>`)

	var out strings.Builder
	for _, line := range strings.Split(escaped, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || trimmed == "---":
			continue
		case strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "- "):
			item := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(trimmed, "•"), "- "))
			out.WriteString(fmt.Sprintf(`<p style="margin:4px 0 4px 16px;">• %s</p>`, item))
		case strings.HasPrefix(trimmed, "<h2"):
			out.WriteString(trimmed)
		default:
			out.WriteString(fmt.Sprintf(`<p style="margin:8px 0;line-height:1.6;">%s</p>`, trimmed))
		}
		out.WriteString("\n")
	}
	return out.String()
}

// Render builds the full inline-styled document.
func (InlineHTMLRenderer) Render(content *core.NewsletterContent) (string, error) {
	var b strings.Builder

	date := content.Info.Timestamp.Format("January 2, 2006")
	b.WriteString(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="margin:0;padding:0;background-color:#f4f4f7;font-family:system-ui,-apple-system,'Segoe UI',Roboto,sans-serif;color:#1a1a2e;">
<div style="max-width:640px;margin:0 auto;background-color:#ffffff;">
`)
	b.WriteString(fmt.Sprintf(`<div style="background-color:#1a1a2e;color:#ffffff;padding:32px 24px;text-align:center;">
<h1 style="margin:0;font-size:24px;">🧠 Your AI News Digest</h1>
<p style="margin:8px 0 0;color:#a0a0b8;font-size:14px;">%s</p>
</div>
`, html.EscapeString(date)))

	b.WriteString(fmt.Sprintf(`<div style="padding:24px;border-bottom:1px solid #e5e7eb;">
<p style="margin:0;line-height:1.6;font-size:16px;">%s</p>
</div>
`, html.EscapeString(content.Intro)))

	for _, cat := range categories.All() {
		blocks := content.CategorizedSummaries[cat.Name]
		if len(blocks) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf(`<div style="padding:16px 24px 0;">
<h1 style="font-size:18px;color:#6b7280;text-transform:uppercase;letter-spacing:1px;margin:16px 0 0;">%s %s</h1>
</div>
`, cat.Emoji, html.EscapeString(cat.Title)))
		for _, block := range blocks {
			b.WriteString(`<div style="padding:8px 24px;">` + "\n")
			if article, ok := content.ArticleByID(block.ArticleID); ok && article.Image != nil {
				b.WriteString(fmt.Sprintf(`<img src="%s" alt="%s" style="width:100%%;border-radius:8px;margin:8px 0;">`+"\n",
					html.EscapeString(article.Image.URL), html.EscapeString(article.Image.Alt)))
			}
			b.WriteString(summaryToHTML(block.Markdown))
			b.WriteString("</div>\n")
		}
	}

	if len(content.EditorsTakes) > 0 {
		b.WriteString(`<div style="padding:16px 24px;background-color:#fffbeb;border-top:1px solid #fde68a;">
<h1 style="font-size:18px;margin:8px 0;">✍️ Editor's Takes</h1>
`)
		for _, take := range content.EditorsTakes {
			b.WriteString(fmt.Sprintf(`<p style="margin:12px 0 4px;"><strong>%s</strong></p>
<p style="margin:0 0 12px;line-height:1.6;font-style:italic;">%s</p>
`, html.EscapeString(take.Title), html.EscapeString(take.Take)))
		}
		b.WriteString("</div>\n")
	}

	b.WriteString(fmt.Sprintf(`<div style="padding:24px;text-align:center;color:#9ca3af;font-size:12px;">
<p style="margin:0;">Generated by %s — %d stories across %d categories.</p>
</div>
</div>
</body>
</html>
`, html.EscapeString(content.Info.BackendUsed), content.Info.Summaries, len(content.Info.Categories)))

	return b.String(), nil
}
