package workspace

import (
	"strings"
	"unicode/utf8"

	"github.com/harunnryd/notedesk/internal/catalog"
	"github.com/harunnryd/notedesk/internal/steps"
	"github.com/harunnryd/notedesk/internal/store"
)

func (w *Workspace) Steps() []steps.Step { return w.steps.Steps() }

// EditSteps applies fn to the troubleshooting steps and persists the
// list and the rankings when fn reports a change.
func (w *Workspace) EditSteps(fn func(*steps.List) bool) bool {
	if !fn(w.steps) {
		return false
	}
	w.saveSteps()
	w.saveRankings()
	w.changed(outCaseNotes)
	return true
}

func (w *Workspace) saveSteps() {
	store.SaveJSON(w.kv, KeySteps, w.steps.Steps())
}

func (w *Workspace) saveRankings() {
	store.SaveJSON(w.kv, KeyRankings, w.rankings.Snapshot())
}

func (w *Workspace) saveLibrary() {
	store.SaveJSON(w.kv, KeyCustomSteps, w.library.Steps())
}

// SearchSteps runs the autocomplete. Queries shorter than
// steps.MinQueryLength find nothing. Ordering follows the ranking flag.
func (w *Workspace) SearchSteps(query string) []steps.Match {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < steps.MinQueryLength {
		return nil
	}
	return steps.Search(query, w.library, w.rankings, w.Flag(FlagRanking))
}

func (w *Workspace) Rankings(filter catalog.Category) []steps.Ranked {
	return w.rankings.View(w.library, filter)
}

func (w *Workspace) RankingTotals() (distinct, total int) {
	return w.rankings.Totals()
}

func (w *Workspace) ResetRankings() bool {
	if !w.rankings.Reset() {
		return false
	}
	w.saveRankings()
	return true
}

func (w *Workspace) CustomSteps() []steps.CustomStep { return w.library.Steps() }

func (w *Workspace) AddCustomStep(text string) (steps.CustomStep, error) {
	s, err := w.library.Add(text)
	if err != nil {
		return steps.CustomStep{}, err
	}
	w.saveLibrary()
	return s, nil
}

func (w *Workspace) EditCustomStep(id, text string) (bool, error) {
	ok, err := w.library.Edit(id, text)
	if err != nil || !ok {
		return ok, err
	}
	w.saveLibrary()
	return true, nil
}

func (w *Workspace) DeleteCustomStep(id string) bool {
	if !w.library.Delete(id) {
		return false
	}
	w.saveLibrary()
	return true
}

func (w *Workspace) ExportCustomSteps() ([]byte, error) {
	return w.library.ExportJSON()
}

func (w *Workspace) ImportCustomSteps(data []byte) (int, error) {
	added, err := w.library.Import(data)
	if err != nil {
		return 0, err
	}
	if added > 0 {
		w.saveLibrary()
	}
	return added, nil
}
