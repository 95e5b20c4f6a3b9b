package steps

import (
	"sort"
	"strings"

	"github.com/harunnryd/notedesk/internal/catalog"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// MinQueryLength is the shortest query the autocomplete reacts to.
const MinQueryLength = 2

type Match struct {
	Text     string           `json:"text" yaml:"text"`
	Category catalog.Category `json:"category" yaml:"category"`
	Count    int              `json:"count" yaml:"count"`
}

// Search finds catalogue and library steps containing query, ignoring
// case. Library steps shadow catalogue steps of the same text. With
// ranked set, results order by use count then text; otherwise by text.
func Search(query string, lib *Library, rankings *Rankings, ranked bool) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []Match
	seen := map[string]bool{}
	if lib != nil {
		for _, s := range lib.Steps() {
			if seen[s.Text] || !strings.Contains(strings.ToLower(s.Text), q) {
				continue
			}
			seen[s.Text] = true
			out = append(out, Match{Text: s.Text, Category: catalog.CategoryCustom})
		}
	}
	for _, s := range catalog.Steps() {
		if seen[s.Text] || !strings.Contains(strings.ToLower(s.Text), q) {
			continue
		}
		seen[s.Text] = true
		out = append(out, Match{Text: s.Text, Category: s.Category})
	}

	if rankings != nil {
		for i := range out {
			out[i].Count = rankings.Count(out[i].Text)
		}
	}

	c := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		if ranked && out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return textLess(c, out[i].Text, out[j].Text)
	})
	return out
}
