// Package curate selects the bounded, category-balanced subset of scored
// articles that makes it into the newsletter.
package curate

import (
	"sort"

	"github.com/nivcodes/ainews/internal/core"
)

// SelectTop curates the final article set: sort descending by popularity
// score, cap each category at perCategory articles (preserving relative score
// order within the category), re-sort the survivors globally by score, and
// truncate to overallMax. A perCategory or overallMax of zero or less means
// unlimited for that bound.
//
// There is no minimum-per-category guarantee: a category with only
// low-scoring articles can be absent from the result entirely.
func SelectTop(articles []core.Article, perCategory, overallMax int) []core.Article {
	sorted := make([]core.Article, len(articles))
	copy(sorted, articles)
	sortByScore(sorted)

	var curated []core.Article
	if perCategory > 0 {
		taken := make(map[string]int)
		for _, a := range sorted {
			if taken[a.Category] >= perCategory {
				continue
			}
			taken[a.Category]++
			curated = append(curated, a)
		}
	} else {
		curated = sorted
	}

	sortByScore(curated)
	if overallMax > 0 && len(curated) > overallMax {
		curated = curated[:overallMax]
	}
	return curated
}

// sortByScore sorts descending by popularity score. The sort is stable so
// equal-score articles keep their incoming order.
func sortByScore(articles []core.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PopularityScore > articles[j].PopularityScore
	})
}
