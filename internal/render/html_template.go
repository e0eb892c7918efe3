package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/nivcodes/ainews/internal/categories"
	"github.com/nivcodes/ainews/internal/core"
)

// TemplateHTMLRenderer produces a styled standalone HTML page via
// html/template, suitable for browsers rather than email clients.
type TemplateHTMLRenderer struct{}

func (TemplateHTMLRenderer) Name() string     { return "html_styled" }
func (TemplateHTMLRenderer) Filename() string { return "newsletter_styled.html" }

type templateSection struct {
	Emoji   string
	Title   string
	Entries []template.HTML
}

type templateData struct {
	Date     string
	Intro    string
	Sections []templateSection
	Takes    []core.EditorsTake
	Info     core.GenerationInfo
}

var pageTemplate = template.Must(template.New("newsletter").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>AI News Digest – {{.Date}}</title>
<style>
  body { margin: 0; background: #f4f4f7; font-family: system-ui, -apple-system, 'Segoe UI', Roboto, sans-serif; color: #1a1a2e; line-height: 1.6; }
  .container { max-width: 720px; margin: 0 auto; background: #fff; }
  header { background: linear-gradient(135deg, #1a1a2e, #16213e); color: #fff; padding: 40px 32px; text-align: center; }
  header h1 { margin: 0; font-size: 28px; }
  header p { margin: 8px 0 0; color: #a0a0b8; }
  .intro { padding: 32px; font-size: 17px; border-bottom: 1px solid #e5e7eb; }
  section { padding: 8px 32px; }
  section > h2 { font-size: 15px; color: #6b7280; text-transform: uppercase; letter-spacing: 2px; margin: 24px 0 0; }
  .entry { border-bottom: 1px solid #f0f0f5; padding: 8px 0 16px; }
  .entry h2 { font-size: 21px; margin: 16px 0 8px; }
  .entry a { color: #2563eb; text-decoration: none; }
  .takes { background: #fffbeb; border-top: 1px solid #fde68a; padding: 16px 32px 24px; }
  .takes blockquote { margin: 8px 0 16px; font-style: italic; }
  footer { padding: 24px; text-align: center; color: #9ca3af; font-size: 13px; }
</style>
</head>
<body>
<div class="container">
<header>
  <h1>🧠 Your AI News Digest</h1>
  <p>{{.Date}}</p>
</header>
<div class="intro">{{.Intro}}</div>
{{range .Sections}}
<section>
  <h2>{{.Emoji}} {{.Title}}</h2>
  {{range .Entries}}<div class="entry">{{.}}</div>{{end}}
</section>
{{end}}
{{if .Takes}}
<div class="takes">
  <h2>✍️ Editor's Takes</h2>
  {{range .Takes}}
  <p><strong>{{.Title}}</strong></p>
  <blockquote>{{.Take}}</blockquote>
  {{end}}
</div>
{{end}}
<footer>Generated by {{.Info.BackendUsed}} on {{.Info.Timestamp.Format "2006-01-02 15:04"}} — {{.Info.Summaries}} stories.</footer>
</div>
</body>
</html>
`))

// Render fills the page template. Summary markdown is converted with the same
// constrained converter the inline renderer uses; the result is trusted HTML
// because every text fragment was escaped during conversion.
func (TemplateHTMLRenderer) Render(content *core.NewsletterContent) (string, error) {
	data := templateData{
		Date:  content.Info.Timestamp.Format("January 2, 2006"),
		Intro: content.Intro,
		Takes: content.EditorsTakes,
		Info:  content.Info,
	}

	for _, cat := range categories.All() {
		blocks := content.CategorizedSummaries[cat.Name]
		if len(blocks) == 0 {
			continue
		}
		section := templateSection{Emoji: cat.Emoji, Title: cat.Title}
		for _, block := range blocks {
			section.Entries = append(section.Entries, template.HTML(summaryToHTML(block.Markdown)))
		}
		data.Sections = append(data.Sections, section)
	}

	var b strings.Builder
	if err := pageTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to execute newsletter template: %w", err)
	}
	return b.String(), nil
}
