package categories

import "testing"

func TestClassify_AlwaysReturnsKnownCategory(t *testing.T) {
	known := map[string]bool{}
	for _, name := range Names() {
		known[name] = true
	}

	cases := []struct {
		title, text, url string
	}{
		{"GPT-5 benchmark results", "new research paper on arxiv", "https://arxiv.org/abs/1234"},
		{"Startup raises $100M", "funding round led by a16z", "https://techcrunch.com/x"},
		{"", "", ""},
		{"random cooking blog", "pasta recipes", "https://example.com/pasta"},
	}
	for _, c := range cases {
		got := Classify(c.title, c.text, c.url)
		if !known[got] {
			t.Errorf("Classify(%q, ...) = %q, not a known category", c.title, got)
		}
	}
}

func TestClassify_ZeroMatchesIsMisc(t *testing.T) {
	got := Classify("sourdough starter tips", "flour and water, mostly", "https://example.com/bread")
	if got != Misc {
		t.Errorf("expected misc for unmatched content, got %q", got)
	}
}

func TestClassify_SourceMatchOutweighsSingleKeyword(t *testing.T) {
	// One tools keyword (10) vs one research source domain (20).
	got := Classify("new tool announced", "", "https://arxiv.org/abs/5678")
	if got != "research" {
		t.Errorf("expected research via source domain, got %q", got)
	}
}

func TestClassify_TieBreaksByDeclarationOrder(t *testing.T) {
	// One research keyword and one tools keyword score 10 each; research is
	// declared first and must win the tie.
	got := Classify("research release", "", "https://example.com/x")
	if got != "research" {
		t.Errorf("expected research on tie, got %q", got)
	}
}

func TestByName_UnknownFallsBackToMisc(t *testing.T) {
	if got := ByName("not-a-category"); got.Name != Misc {
		t.Errorf("expected misc fallback, got %q", got.Name)
	}
}

func TestAll_MiscIsLast(t *testing.T) {
	all := All()
	if all[len(all)-1].Name != Misc {
		t.Errorf("misc must be declared last so every real category wins ties against it")
	}
}
