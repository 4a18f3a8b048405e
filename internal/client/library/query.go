package library

import (
	"sort"
	"strings"

	"github.com/mlukyanov/promptstash/internal/client/models"
)

// Folder filter values with special meaning; any other value is treated as a
// folder id.
const (
	FilterAll       = "all"
	FilterFavorites = "favorites"
)

// SortMode orders prompt listings.
type SortMode string

const (
	SortDateDesc     SortMode = "dateDesc"
	SortDateAsc      SortMode = "dateAsc"
	SortAlphabetical SortMode = "alphabetical"
	SortCategory     SortMode = "category"
	SortMostUsed     SortMode = "mostUsed"
	SortLastUsed     SortMode = "lastUsed"
)

// ListPrompts returns copies of the prompts matching the folder filter, in
// the collection's natural newest-first order.
func (l *Library) ListPrompts(filter string) []models.Prompt {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Prompt, 0, len(l.prompts))
	for _, p := range l.prompts {
		switch filter {
		case FilterAll:
		case FilterFavorites:
			if !p.Starred {
				continue
			}
		default:
			if p.FolderID != filter {
				continue
			}
		}
		out = append(out, p.Clone())
	}
	return out
}

// Search returns copies of the prompts whose title, body, or any tag contains
// the query, case-insensitively.
func (l *Library) Search(query string) []models.Prompt {
	l.mu.Lock()
	defer l.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Prompt, 0)
	for _, p := range l.prompts {
		if q == "" || promptMatches(p, q) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func promptMatches(p models.Prompt, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Body), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// SortPrompts orders prompts in place according to mode. Prompts that were
// never used sort last under SortLastUsed. An unknown mode leaves the order
// unchanged.
func SortPrompts(prompts []models.Prompt, mode SortMode) {
	switch mode {
	case SortDateDesc:
		sort.SliceStable(prompts, func(i, j int) bool {
			return prompts[i].CreatedAt.After(prompts[j].CreatedAt)
		})
	case SortDateAsc:
		sort.SliceStable(prompts, func(i, j int) bool {
			return prompts[i].CreatedAt.Before(prompts[j].CreatedAt)
		})
	case SortAlphabetical:
		sort.SliceStable(prompts, func(i, j int) bool {
			return strings.ToLower(prompts[i].Title) < strings.ToLower(prompts[j].Title)
		})
	case SortCategory:
		sort.SliceStable(prompts, func(i, j int) bool {
			return strings.ToLower(prompts[i].Category) < strings.ToLower(prompts[j].Category)
		})
	case SortMostUsed:
		sort.SliceStable(prompts, func(i, j int) bool {
			return prompts[i].UseCount > prompts[j].UseCount
		})
	case SortLastUsed:
		sort.SliceStable(prompts, func(i, j int) bool {
			a, b := prompts[i].LastUsedAt, prompts[j].LastUsedAt
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.After(*b)
			}
		})
	}
}
