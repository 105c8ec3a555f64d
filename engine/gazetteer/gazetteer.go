// Package gazetteer tags query tokens with semantic categories using a static
// keyword table. Lookups are case-insensitive, language-scoped, and match
// whole words or fixed multi-word phrases, longest match first so a short
// keyword never shadows a longer compound phrase.
package gazetteer

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
	"github.com/FleetlyAI/fleetly-mvp/pkg/fn"
)

// Tag is one keyword hit in a query. Start and End are byte offsets into the
// original query string.
type Tag struct {
	Start     int             `json:"start"`
	End       int             `json:"end"`
	Keyword   string          `json:"keyword"`
	Category  domain.Category `json:"category"`
	Canonical string          `json:"canonical"`
}

type entry struct {
	keyword   string // lowercased
	category  domain.Category
	canonical string
}

// Table is the immutable keyword table. Safe for concurrent use after New.
type Table struct {
	byLang map[domain.Language][]entry // sorted longest keyword first
}

// New builds a Table from entries. It fails on an empty keyword, an unknown
// category or language, or the same keyword mapped to conflicting categories
// within one language. Exact duplicates are collapsed silently.
func New(entries []domain.GazetteerEntry) (*Table, error) {
	seen := make(map[string]domain.Category)
	byLang := make(map[domain.Language][]entry)

	for _, e := range entries {
		if err := domain.ValidateGazetteerEntry(e); err != nil {
			return nil, fmt.Errorf("gazetteer: %w", err)
		}
		kw := strings.ToLower(strings.TrimSpace(e.Keyword))
		key := string(e.Language) + "\x00" + kw
		if cat, ok := seen[key]; ok {
			if cat != e.Category {
				return nil, fmt.Errorf("gazetteer: %q (%s): %w: %s vs %s",
					kw, e.Language, domain.ErrConflictingKeyword, cat, e.Category)
			}
			continue
		}
		seen[key] = e.Category

		canonical := e.Canonical
		if canonical == "" {
			canonical = kw
		}
		byLang[e.Language] = append(byLang[e.Language], entry{
			keyword:   kw,
			category:  e.Category,
			canonical: canonical,
		})
	}

	for lang := range byLang {
		es := byLang[lang]
		sort.SliceStable(es, func(i, j int) bool {
			return len(es[i].keyword) > len(es[j].keyword)
		})
	}

	return &Table{byLang: byLang}, nil
}

// MustNew is New for known-good literal tables; it panics on error.
func MustNew(entries []domain.GazetteerEntry) *Table {
	t, err := New(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Tag scans a query and returns the keyword hits for the given language in
// query order. Unknown tokens produce no tag. A span claimed by a longer
// phrase is never re-claimed by a shorter keyword inside it.
func (t *Table) Tag(query string, lang domain.Language) []Tag {
	entries := t.byLang[lang]
	if len(entries) == 0 || query == "" {
		return nil
	}

	lower := strings.ToLower(query)
	claimed := make([]bool, len(lower))
	var tags []Tag

	for _, e := range entries {
		from := 0
		for {
			idx := strings.Index(lower[from:], e.keyword)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(e.keyword)
			from = start + 1

			if !wholeWord(lower, start, end) || overlaps(claimed, start, end) {
				continue
			}
			for i := start; i < end; i++ {
				claimed[i] = true
			}
			tags = append(tags, Tag{
				Start:     start,
				End:       end,
				Keyword:   e.keyword,
				Category:  e.category,
				Canonical: e.canonical,
			})
		}
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Start < tags[j].Start })
	return tags
}

// Categories returns the distinct categories present in tags, in query order.
func Categories(tags []Tag) []domain.Category {
	return fn.Unique(fn.Map(tags, func(tg Tag) domain.Category { return tg.Category }))
}

// HasCategory reports whether any tag carries the given category.
func HasCategory(tags []Tag, cat domain.Category) bool {
	for _, tg := range tags {
		if tg.Category == cat {
			return true
		}
	}
	return false
}

func wholeWord(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func overlaps(claimed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}
