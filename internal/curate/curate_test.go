package curate

import (
	"testing"

	"github.com/nivcodes/ainews/internal/core"
)

func scored(id, category string, score float64) core.Article {
	return core.Article{ID: id, Category: category, PopularityScore: score}
}

func ids(articles []core.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}

func TestSelectTop_SortsDescendingByScore(t *testing.T) {
	in := []core.Article{
		scored("low", "tools", 10),
		scored("high", "tools", 90),
		scored("mid", "tools", 50),
	}
	got := ids(SelectTop(in, 0, 0))
	want := []string{"high", "mid", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSelectTop_PerCategoryCap(t *testing.T) {
	in := []core.Article{
		scored("r1", "research", 80),
		scored("r2", "research", 70),
		scored("r3", "research", 60),
		scored("t1", "tools", 40),
	}
	got := SelectTop(in, 2, 0)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	counts := make(map[string]int)
	for _, a := range got {
		counts[a.Category]++
	}
	if counts["research"] != 2 {
		t.Errorf("research count = %d, want 2", counts["research"])
	}
	for _, a := range got {
		if a.ID == "r3" {
			t.Error("lowest-scoring research article survived the cap")
		}
	}
}

func TestSelectTop_CategoryBalanceThenGlobalTruncate(t *testing.T) {
	in := []core.Article{
		scored("a", "research", 90),
		scored("b", "research", 60),
		scored("c", "tools", 45),
		scored("d", "industry", 30),
		scored("e", "industry", 10),
	}
	// One per category leaves a, c, d; the overall max of 3 keeps all of
	// them, ordered by score.
	got := ids(SelectTop(in, 1, 3))
	want := []string{"a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
}

func TestSelectTop_OverallMaxTruncates(t *testing.T) {
	in := []core.Article{
		scored("a", "tools", 90),
		scored("b", "research", 80),
		scored("c", "industry", 70),
		scored("d", "misc", 60),
	}
	got := SelectTop(in, 0, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("ids = %v, want [a b]", ids(got))
	}
}

func TestSelectTop_NoMinimumPerCategory(t *testing.T) {
	// Every industry article scores below the global cutoff, so the
	// category vanishes from the result.
	in := []core.Article{
		scored("a", "research", 90),
		scored("b", "tools", 80),
		scored("c", "industry", 5),
	}
	got := SelectTop(in, 0, 2)
	for _, a := range got {
		if a.Category == "industry" {
			t.Error("expected industry to be cut entirely")
		}
	}
}

func TestSelectTop_DoesNotMutateInput(t *testing.T) {
	in := []core.Article{
		scored("low", "tools", 10),
		scored("high", "tools", 90),
	}
	SelectTop(in, 1, 1)
	if in[0].ID != "low" || in[1].ID != "high" {
		t.Error("input slice was reordered")
	}
}

func TestSelectTop_Empty(t *testing.T) {
	if got := SelectTop(nil, 3, 10); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}
