package newsletter

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nivcodes/ainews/internal/core"
)

// scriptedGen answers every prompt with a canned response, or fails
// everything when dead is set.
type scriptedGen struct {
	dead     bool
	response string
	prompts  []string
}

func (g *scriptedGen) Generate(ctx context.Context, prompt string, temperature float64) (string, bool) {
	g.prompts = append(g.prompts, prompt)
	if g.dead {
		return "", false
	}
	return g.response, true
}

func (g *scriptedGen) LastUsed() string {
	if g.dead {
		return ""
	}
	return "scripted"
}

func testArticles() []core.Article {
	return []core.Article{
		{ID: "a1", Title: "Model release", URL: "https://example.com/1", Category: "research", PopularityScore: 80},
		{ID: "a2", Title: "Tooling update", URL: "https://example.com/2", Category: "tools", PopularityScore: 30},
	}
}

func TestAssemble_SummariesCarryArticleIDs(t *testing.T) {
	gen := &scriptedGen{response: "## summary"}
	as := NewAssembler(gen, 0)

	content, err := as.Assemble(context.Background(), testArticles(), StyleEditorial)
	if err != nil {
		t.Fatal(err)
	}
	if len(content.Summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(content.Summaries))
	}
	for i, want := range []string{"a1", "a2"} {
		if content.Summaries[i].ArticleID != want {
			t.Errorf("summary %d ArticleID = %q, want %q", i, content.Summaries[i].ArticleID, want)
		}
	}
	if got := content.CategorizedSummaries["research"]; len(got) != 1 || got[0].ArticleID != "a1" {
		t.Errorf("research bucket = %+v, want one block for a1", got)
	}
}

func TestAssemble_TakeOnlyAboveThreshold(t *testing.T) {
	gen := &scriptedGen{response: "generated"}
	as := NewAssembler(gen, 0)

	content, err := as.Assemble(context.Background(), testArticles(), StyleEditorial)
	if err != nil {
		t.Fatal(err)
	}
	if len(content.EditorsTakes) != 1 {
		t.Fatalf("takes = %d, want 1", len(content.EditorsTakes))
	}
	if content.EditorsTakes[0].ArticleID != "a1" {
		t.Errorf("take ArticleID = %q, want a1", content.EditorsTakes[0].ArticleID)
	}
}

func TestAssemble_DeadChainFallsBackForEditorial(t *testing.T) {
	gen := &scriptedGen{dead: true}
	as := NewAssembler(gen, 0)

	content, err := as.Assemble(context.Background(), testArticles(), StyleEditorial)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range content.Summaries {
		if !s.Fallback {
			t.Errorf("summary for %s is not marked fallback", s.ArticleID)
		}
	}
	if len(content.EditorsTakes) != 0 {
		t.Errorf("takes = %d, want 0 when chain is dead", len(content.EditorsTakes))
	}
	if content.Intro == "" {
		t.Error("expected fallback intro")
	}
	if content.Info.BackendUsed != "fallback" {
		t.Errorf("BackendUsed = %q, want fallback", content.Info.BackendUsed)
	}
}

func TestAssemble_DeadChainFailsForBasicStyle(t *testing.T) {
	gen := &scriptedGen{dead: true}
	as := NewAssembler(gen, 0)

	// Basic style drops failed articles instead of substituting; with every
	// article dropped the whole run fails.
	if _, err := as.Assemble(context.Background(), testArticles(), StyleBasic); err == nil {
		t.Fatal("expected error when basic style yields zero summaries")
	}
}

func TestAssemble_EmptyInput(t *testing.T) {
	as := NewAssembler(&scriptedGen{response: "x"}, 0)
	if _, err := as.Assemble(context.Background(), nil, StyleEditorial); err == nil {
		t.Fatal("expected error for empty article list")
	}
}

func TestAssemble_GenerationInfo(t *testing.T) {
	gen := &scriptedGen{response: "generated"}
	as := NewAssembler(gen, 0)
	fixed := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)
	as.Now = func() time.Time { return fixed }

	content, err := as.Assemble(context.Background(), testArticles(), StyleRundown)
	if err != nil {
		t.Fatal(err)
	}
	info := content.Info
	if info.TotalArticles != 2 || info.Summaries != 2 || info.EditorsTakes != 1 {
		t.Errorf("info counts = %+v", info)
	}
	if !info.Timestamp.Equal(fixed) {
		t.Errorf("timestamp = %v, want %v", info.Timestamp, fixed)
	}
	if info.BackendUsed != "scripted" {
		t.Errorf("BackendUsed = %q, want scripted", info.BackendUsed)
	}
	if len(info.Categories) != 2 {
		t.Errorf("categories = %v, want 2 entries", info.Categories)
	}
}

func TestAssemble_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	as := NewAssembler(&scriptedGen{response: "x"}, 0)
	if _, err := as.Assemble(ctx, testArticles(), StyleEditorial); err == nil {
		t.Fatal("expected context error")
	}
}

func TestValidStyle(t *testing.T) {
	for _, s := range []string{"editorial", "rundown", "basic"} {
		if !ValidStyle(s) {
			t.Errorf("ValidStyle(%q) = false", s)
		}
	}
	if ValidStyle("haiku") {
		t.Error("ValidStyle(haiku) = true")
	}
}

func TestFallbackSummary_ContainsTitleAndLink(t *testing.T) {
	a := core.Article{
		Title: "Quiet week for model releases",
		URL:   "https://example.com/story",
		Text:  "Labs spent the week consolidating. Releases slowed across the board.",
	}
	md := fallbackSummary(a)
	if !strings.Contains(md, "Quiet week for model releases") {
		t.Error("fallback summary missing title")
	}
	if !strings.Contains(md, a.URL) {
		t.Error("fallback summary missing link")
	}
	if !strings.Contains(md, "**Why it matters:**") {
		t.Error("fallback summary missing why-it-matters section")
	}
}
