package stats

import (
	"sort"

	"github.com/verte-zerg/textcalc/internal/model"
)

// TopWords returns the n most frequent words. Words with equal counts keep the
// order in which they first appear.
func TopWords(words []string, n int) []model.WordCount {
	if n <= 0 || len(words) == 0 {
		return nil
	}
	index := make(map[string]int, len(words))
	items := make([]model.WordCount, 0, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		if i, ok := index[word]; ok {
			items[i].Count++
			continue
		}
		index[word] = len(items)
		items = append(items, model.WordCount{Word: word, Count: 1})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n:n]
}
