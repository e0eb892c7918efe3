package core

import "testing"

func TestSummaryFor(t *testing.T) {
	content := &NewsletterContent{
		Summaries: []SummaryBlock{
			{ArticleID: "a1", Markdown: "first"},
			{ArticleID: "a2", Markdown: "second"},
		},
	}

	block, ok := content.SummaryFor("a2")
	if !ok || block.Markdown != "second" {
		t.Errorf("SummaryFor(a2) = (%+v, %v)", block, ok)
	}
	if _, ok := content.SummaryFor("missing"); ok {
		t.Error("SummaryFor(missing) reported a hit")
	}
}

func TestArticleByID(t *testing.T) {
	content := &NewsletterContent{
		Articles: []Article{{ID: "a1", Title: "one"}, {ID: "a2", Title: "two"}},
	}

	a, ok := content.ArticleByID("a1")
	if !ok || a.Title != "one" {
		t.Errorf("ArticleByID(a1) = (%+v, %v)", a, ok)
	}
	if _, ok := content.ArticleByID("nope"); ok {
		t.Error("ArticleByID(nope) reported a hit")
	}
}
