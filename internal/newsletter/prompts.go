package newsletter

import (
	"fmt"
	"strings"

	"github.com/nivcodes/ainews/internal/categories"
	"github.com/nivcodes/ainews/internal/core"
)

// maxPromptBody caps how much article text goes into a prompt.
const maxPromptBody = 2000

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// editorialPrompt asks for the full structured newsletter section.
func editorialPrompt(a core.Article) string {
	cat := categories.ByName(a.Category)
	return fmt.Sprintf(`You are the editor of a premium AI newsletter read by developers, founders, and researchers. Your audience is technical but values clear, insightful analysis.

Article Details:
- Title: %s
- URL: %s
- Category: %s
- Popularity Score: %.0f

Article Content:
%s

Generate a newsletter section with this EXACT structure:

## %s **[Compelling Headline - max 60 chars]**

**The Rundown:** [One punchy sentence that captures the essence]

• [Key point 1 with specific detail or number]
• [Key point 2 with impact or implication]
• [Key point 3 with context or significance]

**Why it matters:** [2-3 sentences explaining the broader significance for AI developers, founders, or researchers. Focus on practical implications, competitive landscape, or technical advancement.]

[👉 Read more](%s)

---

Style Guidelines:
- Write like a sharp, knowledgeable human editor (think Paul Graham meets Benedict Evans)
- Use specific numbers, percentages, or metrics when available
- Avoid marketing fluff - be direct and insightful
- Make technical concepts accessible but don't dumb them down
- Focus on "so what?" - why should busy professionals care?`,
		a.Title, a.URL, cat.Title, a.PopularityScore,
		truncate(a.Text, maxPromptBody), cat.Emoji, a.URL)
}

// rundownPrompt asks for a tighter, bullet-first section.
func rundownPrompt(a core.Article) string {
	cat := categories.ByName(a.Category)
	return fmt.Sprintf(`You write ultra-concise briefings for busy AI practitioners.

Article: %s
Content: %s

Produce exactly this structure:

## %s **[Headline - max 50 chars]**

• [What happened, one line]
• [Why it matters, one line]
• [What to watch next, one line]

[👉 Read more](%s)`,
		a.Title, truncate(a.Text, 1500), cat.Emoji, a.URL)
}

// basicPrompt is the plain compatibility format.
func basicPrompt(a core.Article) string {
	return fmt.Sprintf(`Summarize this AI article for a tech newsletter:

Title: %s
Content: %s

Format:
**%s**

[2-3 sentence summary of key points and implications]

**Why it matters:** [1-2 sentences on significance for AI community]

[Read more](%s)`,
		a.Title, truncate(a.Text, 1500), a.Title, a.URL)
}

// editorsTakePrompt asks for a short opinionated comment, used only for
// high-scoring articles.
func editorsTakePrompt(a core.Article) string {
	return fmt.Sprintf(`You are a seasoned AI industry analyst writing a hot take on a major development.

Article: %s
Content: %s

Write a brief "Editor's Take" (2-3 sentences max) that provides:
1. Your informed opinion on what this really means
2. A prediction or implication others might miss
3. Context about why this matters in the bigger AI landscape

Style: Confident, insightful, slightly provocative. Think of a smart tweet thread condensed into a paragraph.

Format: Just the take itself, no headers or formatting.`,
		a.Title, truncate(a.Text, 1500))
}

// introPrompt asks for a short opener built from the day's category spread
// and top headlines.
func introPrompt(articles []core.Article) string {
	counts := map[string]int{}
	var order []string
	for _, a := range articles {
		if counts[a.Category] == 0 {
			order = append(order, a.Category)
		}
		counts[a.Category]++
	}

	var catLines []string
	for _, name := range order {
		cat := categories.ByName(name)
		catLines = append(catLines, fmt.Sprintf("%s (%d stories)", cat.Title, counts[name]))
	}

	var titles []string
	for i, a := range articles {
		if i >= 5 {
			break
		}
		titles = append(titles, "• "+a.Title)
	}

	return fmt.Sprintf(`You are writing a crisp executive brief for a premium AI newsletter read by busy developers, founders, and researchers.

Today's top categories: %s

Top story headlines:
%s

Write a sharp, punchy introduction (2-3 sentences max) that:
1. Captures the day's key AI development or trend in one compelling statement
2. Sets up why these stories matter for your technical audience
3. Creates urgency to read on

Style:
- Direct and authoritative (think Wall Street Journal meets TechCrunch)
- No fluff or generic newsletter language
- Lead with the most significant insight or trend
- Sound like a sharp industry insider

Keep it under 75 words total. Start strong.`,
		strings.Join(catLines, ", "), strings.Join(titles, "\n"))
}
