package newsletter

import (
	"fmt"
	"strings"

	"github.com/nivcodes/ainews/internal/categories"
	"github.com/nivcodes/ainews/internal/core"
)

// fallbackSummary builds a stock section from the article itself when every
// LLM backend fails for that article's prompt. It keeps the editorial
// structure so renderers do not need a special case.
func fallbackSummary(a core.Article) string {
	cat := categories.ByName(a.Category)

	headline := a.Title
	if len(headline) > 55 {
		headline = headline[:55] + "..."
	}

	rundown := "New development in AI technology"
	for _, s := range strings.Split(truncate(a.Text, 500), ".") {
		s = strings.TrimSpace(s)
		if len(s) > 20 {
			rundown = s
			break
		}
	}

	return fmt.Sprintf(`## %s **%s**

**The Rundown:** %s.

• Key development in %s
• Significant implications for the AI community
• Worth monitoring for future developments

**Why it matters:** This development represents an important advancement in the AI space that could influence future technology decisions and research directions.

[👉 Read more](%s)

---`,
		cat.Emoji, headline, rundown, strings.ToLower(cat.Title), a.URL)
}

// fallbackIntro builds a stock introduction when the LLM cannot produce one.
func fallbackIntro(articles []core.Article) string {
	counts := map[string]int{}
	var order []string
	for _, a := range articles {
		if counts[a.Category] == 0 {
			order = append(order, a.Category)
		}
		counts[a.Category]++
	}

	intensity := "focused"
	switch {
	case len(articles) >= 8:
		intensity = "packed"
	case len(articles) >= 5:
		intensity = "busy"
	}

	categoriesText := "AI developments"
	switch {
	case len(order) >= 2:
		categoriesText = fmt.Sprintf("%s and %s",
			categories.ByName(order[0]).Title, categories.ByName(order[1]).Title)
	case len(order) == 1:
		categoriesText = categories.ByName(order[0]).Title
	}

	return fmt.Sprintf("Today brings %d key developments in AI, with a %s focus on %s. "+
		"From breakthrough research to industry moves, here's what developers, founders, "+
		"and researchers need to know about the latest advances shaping the AI landscape.",
		len(articles), intensity, categoriesText)
}
