package utils

import (
	"sort"
	"strings"
)

// Searchable is implemented by models exposing a lowercase haystack for
// free-text filtering.
type Searchable interface {
	SearchText() string
}

// FilterBySearch keeps the items whose haystack contains term,
// case-insensitively. An empty term keeps everything.
func FilterBySearch[T Searchable](items []T, term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(item.SearchText(), term) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// MatchesSearch reports whether a haystack contains term, case-insensitively.
// An empty term matches everything.
func MatchesSearch(haystack, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), term)
}

// SortSlice stable-sorts items by the key function. Order "desc" reverses the
// comparison, anything else sorts ascending. Equal keys keep their incoming
// order.
func SortSlice[T any](items []T, key func(T) string, order string) {
	sort.SliceStable(items, func(i, j int) bool {
		if order == "desc" {
			return key(items[j]) < key(items[i])
		}
		return key(items[i]) < key(items[j])
	})
}

// Paginate slices items down to the requested page. It returns the page plus
// the pre-paging total. Pages past the end come back empty, never nil.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	total := len(items)

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		return items, total
	}

	start := (page - 1) * pageSize
	if start >= total {
		return []T{}, total
	}

	end := start + pageSize
	if end > total {
		end = total
	}

	return items[start:end], total
}
