package cards

import (
	"sort"
	"strings"
)

type FilterOptions struct {
	Types     []string
	FreeWords string
}

func containsAny(hay []string, needles []string) bool {
	for _, n := range needles {
		for _, h := range hay {
			if strings.Contains(h, n) {
				return true
			}
		}
	}
	return false
}

// Filter keeps the cards matching opt, in input order.
func Filter(cards []Card, opt FilterOptions) []Card {
	var out []Card
	for _, c := range cards {
		if len(opt.Types) > 0 {
			matched := false
			for _, t := range opt.Types {
				if c.Type == t {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if opt.FreeWords != "" {
			text := strings.ToLower(strings.Join([]string{c.Top, c.Center, c.Bottom}, " "))
			ok := true
			for _, k := range strings.Fields(opt.FreeWords) {
				if !containsAny([]string{text}, []string{strings.ToLower(k)}) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// TypeCount is one category and how many cards carry it.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// UniqueTypes lists the categories used by cards, sorted by name.
func UniqueTypes(cards []Card) []TypeCount {
	counts := map[string]int{}
	for _, c := range cards {
		counts[c.Type]++
	}
	out := make([]TypeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, TypeCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// TypeNames returns just the names from UniqueTypes.
func TypeNames(cards []Card) []string {
	tc := UniqueTypes(cards)
	names := make([]string, len(tc))
	for i, t := range tc {
		names[i] = t.Type
	}
	return names
}
