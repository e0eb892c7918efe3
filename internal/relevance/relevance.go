// Package relevance holds the keyword lists and matchers that decide whether
// fetched content is AI-related at all.
package relevance

import "strings"

// AIKeywords is the general AI vocabulary used for relevance filtering and
// moderate score boosts.
var AIKeywords = []string{
	"AI", "artificial intelligence", "machine learning", "LLM", "GPT",
	"OpenAI", "Anthropic", "deep learning", "neural", "chatbot", "Claude",
	"transformer", "generative AI", "large language model", "computer vision",
	"natural language processing", "NLP", "automation", "robotics",
}

// HighImpactKeywords mark stories that warrant a significant score boost.
var HighImpactKeywords = []string{
	"breakthrough", "GPT-5", "AGI", "superintelligence", "open source",
	"billion", "acquisition", "regulation", "lawsuit", "benchmark record",
	"state-of-the-art", "outperforms",
}

// CountMatches returns how many of the given keywords occur in text,
// case-insensitively. Each keyword counts at most once regardless of how many
// times it appears.
func CountMatches(text string, keywords []string) int {
	lowered := strings.ToLower(text)
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lowered, strings.ToLower(kw)) {
			count++
		}
	}
	return count
}

// IsAIRelated reports whether text qualifies as AI-related. It requires at
// least two distinct AI keyword hits for precision; a single mention of "AI"
// in passing is not enough.
func IsAIRelated(text string) bool {
	return CountMatches(text, AIKeywords) >= 2
}

// IsLooselyAIRelated is the permissive single-hit variant, used for cheap
// pre-filtering of titles before the article body is available.
func IsLooselyAIRelated(text string) bool {
	return CountMatches(text, AIKeywords) >= 1
}
