package steps

import (
	"sort"
	"strings"

	"github.com/harunnryd/notedesk/internal/catalog"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Rankings counts how many times each step text was picked.
type Rankings struct {
	counts map[string]int
}

type Ranked struct {
	Text     string           `json:"text" yaml:"text"`
	Count    int              `json:"count" yaml:"count"`
	Category catalog.Category `json:"category,omitempty" yaml:"category,omitempty"`
}

func NewRankings(counts map[string]int) *Rankings {
	r := &Rankings{counts: make(map[string]int, len(counts))}
	for k, v := range counts {
		if v > 0 {
			r.counts[k] = v
		}
	}
	return r
}

func (r *Rankings) Increment(text string) int {
	r.counts[text]++
	return r.counts[text]
}

func (r *Rankings) Count(text string) int { return r.counts[text] }

// Snapshot returns a copy of the counters, suitable for persisting.
func (r *Rankings) Snapshot() map[string]int {
	out := make(map[string]int, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out
}

// Totals reports how many distinct steps were used and the sum of uses.
func (r *Rankings) Totals() (distinct, total int) {
	for _, v := range r.counts {
		distinct++
		total += v
	}
	return distinct, total
}

func (r *Rankings) Reset() bool {
	if len(r.counts) == 0 {
		return false
	}
	r.counts = make(map[string]int)
	return true
}

// TopN returns the n most used steps, most used first, ties in text
// order. n <= 0 returns everything.
func (r *Rankings) TopN(n int) []Ranked {
	out := make([]Ranked, 0, len(r.counts))
	for text, count := range r.counts {
		out = append(out, Ranked{Text: text, Count: count})
	}
	SortByUsage(out)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// View lists every catalogue and library step in category filter with
// its count. Library steps shadow catalogue steps with the same text.
func (r *Rankings) View(lib *Library, filter catalog.Category) []Ranked {
	var out []Ranked
	custom := map[string]bool{}
	if lib != nil {
		for _, s := range lib.Steps() {
			custom[s.Text] = true
			if filter == catalog.CategoryAll || filter == catalog.CategoryCustom {
				out = append(out, Ranked{Text: s.Text, Count: r.counts[s.Text], Category: catalog.CategoryCustom})
			}
		}
	}
	for _, s := range catalog.StepsIn(filter) {
		if custom[s.Text] {
			continue
		}
		out = append(out, Ranked{Text: s.Text, Count: r.counts[s.Text], Category: s.Category})
	}
	SortByUsage(out)
	return out
}

// SortByUsage orders by count descending, then by text.
func SortByUsage(items []Ranked) {
	c := collate.New(language.English)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return textLess(c, items[i].Text, items[j].Text)
	})
}

func textLess(c *collate.Collator, a, b string) bool {
	if cmp := c.CompareString(a, b); cmp != 0 {
		return cmp < 0
	}
	return strings.Compare(a, b) < 0
}
