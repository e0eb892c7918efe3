// Package categories defines the closed set of newsletter categories and the
// keyword/source classifier that assigns exactly one category per article.
package categories

import "strings"

// Misc is the fallback category for articles that match nothing.
const Misc = "misc"

// Category is one topical bucket used for newsletter sectioning.
type Category struct {
	Name     string   // Stable identifier used throughout the pipeline
	Title    string   // Display title used in rendered output
	Emoji    string   // Section emoji
	Keywords []string // Content keywords, matched case-insensitively
	Sources  []string // Source domains, matched as URL substrings
}

// All returns the category set in declaration order. Declaration order is the
// tie-break order for classification: on an exact score tie the
// first-declared category wins.
func All() []Category {
	return []Category{
		{
			Name:  "research",
			Title: "Research & Breakthroughs",
			Emoji: "🔬",
			Keywords: []string{
				"paper", "research", "study", "benchmark", "arxiv",
				"researchers", "breakthrough", "state-of-the-art", "dataset",
				"training", "model architecture",
			},
			Sources: []string{"arxiv.org", "ai.googleblog.com", "technologyreview.com", "nature.com"},
		},
		{
			Name:  "tools",
			Title: "Tools & Products",
			Emoji: "🛠️",
			Keywords: []string{
				"launch", "release", "tool", "api", "sdk", "open source",
				"open-source", "framework", "plugin", "feature", "app",
				"github",
			},
			Sources: []string{"github.com", "producthunt.com", "huggingface.co"},
		},
		{
			Name:  "industry",
			Title: "Industry Moves",
			Emoji: "🏢",
			Keywords: []string{
				"funding", "acquisition", "startup", "raised", "valuation",
				"partnership", "ceo", "lawsuit", "regulation", "investment",
				"ipo", "billion",
			},
			Sources: []string{"techcrunch.com", "venturebeat.com", "bloomberg.com", "reuters.com"},
		},
		{
			Name:  "use-case",
			Title: "AI in Practice",
			Emoji: "💡",
			Keywords: []string{
				"how to", "tutorial", "use case", "workflow", "deployed",
				"in production", "case study", "automation", "customers",
				"healthcare", "finance",
			},
			Sources: []string{"medium.com", "dev.to"},
		},
		{
			Name:     Misc,
			Title:    "Also Worth Knowing",
			Emoji:    "📌",
			Keywords: nil,
			Sources:  nil,
		},
	}
}

// Names returns the category identifiers in declaration order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name
	}
	return names
}

// ByName returns the category with the given name, falling back to misc for
// unrecognized names.
func ByName(name string) Category {
	for _, c := range All() {
		if c.Name == name {
			return c
		}
	}
	return ByName(Misc)
}

// Classify assigns exactly one category to an article based on its combined
// title+body content and its source URL. Each matching keyword contributes 10
// points, each matching source domain 20 points; the highest-scoring category
// wins, with ties broken by declaration order. A zero score across the board
// yields misc.
func Classify(title, text, url string) string {
	content := strings.ToLower(title + " " + text)
	loweredURL := strings.ToLower(url)

	best := Misc
	bestScore := 0
	for _, c := range All() {
		score := 0
		for _, kw := range c.Keywords {
			if strings.Contains(content, strings.ToLower(kw)) {
				score += 10
			}
		}
		for _, src := range c.Sources {
			if strings.Contains(loweredURL, strings.ToLower(src)) {
				score += 20
			}
		}
		if score > bestScore {
			best = c.Name
			bestScore = score
		}
	}
	return best
}
