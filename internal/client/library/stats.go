package library

import (
	"sort"

	"github.com/mlukyanov/promptstash/internal/client/models"
)

// CategoryCount is one row of the per-category breakdown.
type CategoryCount struct {
	Category string
	Count    int
}

// Stats is a usage snapshot of the catalogue.
type Stats struct {
	TotalPrompts int
	TotalUses    int
	Favorites    int
	Folders      int
	// TopPrompts holds up to five prompts with the highest use count.
	TopPrompts []models.Prompt
	// Categories is sorted by descending count.
	Categories []CategoryCount
}

// Stats computes the usage snapshot.
func (l *Library) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := Stats{
		TotalPrompts: len(l.prompts),
		Folders:      len(l.folders),
	}

	counts := map[string]int{}
	top := make([]models.Prompt, 0, len(l.prompts))
	for _, p := range l.prompts {
		s.TotalUses += p.UseCount
		if p.Starred {
			s.Favorites++
		}
		counts[p.Category]++
		top = append(top, p.Clone())
	}

	sort.SliceStable(top, func(i, j int) bool { return top[i].UseCount > top[j].UseCount })
	if len(top) > 5 {
		top = top[:5]
	}
	s.TopPrompts = top

	for category, count := range counts {
		s.Categories = append(s.Categories, CategoryCount{Category: category, Count: count})
	}
	sort.SliceStable(s.Categories, func(i, j int) bool {
		if s.Categories[i].Count != s.Categories[j].Count {
			return s.Categories[i].Count > s.Categories[j].Count
		}
		return s.Categories[i].Category < s.Categories[j].Category
	})

	return s
}
