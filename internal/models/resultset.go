package models

import (
	"sort"
	"time"
)

// ResultSet is the list of characters currently on screen. It is replaced
// wholesale on every accepted fetch and never merged.
type ResultSet struct {
	Characters []Character `json:"characters"` // Ordered as returned by the catalog
	Total      int         `json:"total"`      // info.count reported by the catalog
	Query      FilterState `json:"query"`      // Filter that produced this set
	LoadedAt   time.Time   `json:"loaded_at"`  // When the set was accepted
}

// NewResultSet builds a result set from a decoded page. A nil page or an
// absent results field yields an empty set.
func NewResultSet(query FilterState, page *Page) *ResultSet {
	rs := &ResultSet{
		Characters: make([]Character, 0),
		Query:      query,
		LoadedAt:   time.Now(),
	}
	if page == nil {
		return rs
	}

	rs.Characters = append(rs.Characters, page.Results...)
	rs.Total = page.Info.Count
	return rs
}

// Len returns the number of characters in the set
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Characters)
}

// IsEmpty reports whether there is nothing to render
func (rs *ResultSet) IsEmpty() bool {
	return rs.Len() == 0
}

// Clone returns a copy that shares no slice memory with rs
func (rs *ResultSet) Clone() *ResultSet {
	if rs == nil {
		return nil
	}
	out := *rs
	out.Characters = append([]Character(nil), rs.Characters...)
	return &out
}

// Tally is a single value/count pair
type Tally struct {
	Value string
	Count int
}

// CountBy groups the set by the given field and returns tallies sorted by
// descending count, then by value.
func (rs *ResultSet) CountBy(field func(Character) string) []Tally {
	if rs.IsEmpty() {
		return nil
	}

	counts := make(map[string]int)
	for _, c := range rs.Characters {
		counts[field(c)]++
	}

	tallies := make([]Tally, 0, len(counts))
	for value, count := range counts {
		tallies = append(tallies, Tally{Value: value, Count: count})
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Count != tallies[j].Count {
			return tallies[i].Count > tallies[j].Count
		}
		return tallies[i].Value < tallies[j].Value
	})
	return tallies
}
