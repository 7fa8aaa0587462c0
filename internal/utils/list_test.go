package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type searchRow struct {
	name     string
	document string
}

func (r searchRow) SearchText() string {
	return strings.ToLower(r.name + " " + r.document)
}

func TestFilterBySearch(t *testing.T) {
	rows := []searchRow{
		{name: "Ana Torres", document: "12345678"},
		{name: "Luis Mendoza", document: "87654321"},
		{name: "ana maría vega", document: "11223344"},
	}

	testCases := []struct {
		name     string
		term     string
		expected int
	}{
		{name: "empty term keeps all", term: "", expected: 3},
		{name: "case insensitive name match", term: "ANA", expected: 2},
		{name: "document substring match", term: "8765", expected: 1},
		{name: "whitespace trimmed", term: "  luis  ", expected: 1},
		{name: "no match", term: "zzz", expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Len(t, FilterBySearch(rows, tc.term), tc.expected)
		})
	}
}

func TestSortSlice(t *testing.T) {
	type row struct {
		name string
		seq  int
	}
	key := func(r row) string { return r.name }

	testCases := []struct {
		name     string
		input    []row
		order    string
		expected []string
	}{
		{
			name:     "ascending by default",
			input:    []row{{name: "c"}, {name: "a"}, {name: "b"}},
			order:    "asc",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "descending",
			input:    []row{{name: "a"}, {name: "c"}, {name: "b"}},
			order:    "desc",
			expected: []string{"c", "b", "a"},
		},
		{
			name:     "unknown order sorts ascending",
			input:    []row{{name: "b"}, {name: "a"}},
			order:    "sideways",
			expected: []string{"a", "b"},
		},
		{
			name:     "empty slice",
			input:    []row{},
			order:    "asc",
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			SortSlice(tc.input, key, tc.order)

			got := make([]string, 0, len(tc.input))
			for _, r := range tc.input {
				got = append(got, r.name)
			}
			assert.Equal(t, tc.expected, got)
		})
	}

	t.Run("equal keys keep incoming order", func(t *testing.T) {
		rows := []row{{name: "x", seq: 1}, {name: "x", seq: 2}, {name: "a", seq: 3}}
		SortSlice(rows, key, "asc")

		assert.Equal(t, []row{
			{name: "a", seq: 3},
			{name: "x", seq: 1},
			{name: "x", seq: 2},
		}, rows)
	})
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	testCases := []struct {
		name      string
		page      int
		pageSize  int
		expected  []int
		wantTotal int
	}{
		{name: "first page", page: 1, pageSize: 3, expected: []int{1, 2, 3}, wantTotal: 7},
		{name: "middle page", page: 2, pageSize: 3, expected: []int{4, 5, 6}, wantTotal: 7},
		{name: "short last page", page: 3, pageSize: 3, expected: []int{7}, wantTotal: 7},
		{name: "past the end is empty not nil", page: 9, pageSize: 3, expected: []int{}, wantTotal: 7},
		{name: "zero page size returns all", page: 1, pageSize: 0, expected: items, wantTotal: 7},
		{name: "page below one clamps to first", page: 0, pageSize: 2, expected: []int{1, 2}, wantTotal: 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, total := Paginate(items, tc.page, tc.pageSize)
			assert.Equal(t, tc.expected, page)
			assert.Equal(t, tc.wantTotal, total)
		})
	}
}
