// Package steps manages the troubleshooting steps of the current case,
// how often each step has been picked, and the agent's library of saved
// custom steps.
package steps

import (
	"strings"

	"github.com/harunnryd/notedesk/internal/catalog"
	"github.com/harunnryd/notedesk/internal/taglist"
)

type Source string

const (
	SourceUser Source = "user"
	// SourceAuto marks a step added because of the authentication method.
	// Only auto steps are ever removed on a method change.
	SourceAuto Source = "auto"
)

type Step struct {
	Text   string `json:"text"`
	Source Source `json:"source,omitempty"`
}

func (s Step) IsAuto() bool { return s.Source == SourceAuto }

func normalizeStep(s Step) (Step, bool) {
	s.Text = strings.TrimSpace(s.Text)
	if s.Source == "" {
		s.Source = SourceUser
	}
	return s, s.Text != ""
}

// List is the ordered step list of one case. Duplicates are allowed.
type List struct {
	items    *taglist.List[Step]
	rankings *Rankings
}

func NewList(rankings *Rankings) *List {
	if rankings == nil {
		rankings = NewRankings(nil)
	}
	return &List{
		items:    taglist.New(false, normalizeStep),
		rankings: rankings,
	}
}

func (l *List) Rankings() *Rankings { return l.rankings }

// Add appends a step typed by the agent. Rankings are untouched.
func (l *List) Add(text string) bool {
	return l.items.Add(Step{Text: text, Source: SourceUser})
}

// AddFromQuickPick appends a step chosen from the catalogue or the
// autocomplete list and counts the pick.
func (l *List) AddFromQuickPick(text string) bool {
	if !l.items.Add(Step{Text: text, Source: SourceUser}) {
		return false
	}
	l.rankings.Increment(strings.TrimSpace(text))
	return true
}

func (l *List) RemoveAt(i int) bool { return l.items.RemoveAt(i) }

func (l *List) MoveAdjacent(i int, dir taglist.Direction) bool {
	return l.items.MoveAdjacent(i, dir)
}

func (l *List) MoveToPosition(from, to int) bool {
	return l.items.MoveToPosition(from, to)
}

// ReplaceAt edits the text of step i. An edited step belongs to the
// agent from then on.
func (l *List) ReplaceAt(i int, text string) bool {
	return l.items.ReplaceAt(i, Step{Text: text, Source: SourceUser})
}

// ApplyAuthMethod keeps the managed authentication steps in line with
// method: it removes any existing auto steps first, then adds the one
// the method calls for. Repeating the call is harmless.
func (l *List) ApplyAuthMethod(method string) bool {
	changed := false
	for _, text := range []string{catalog.PassphraseUpdatedStep, catalog.AuthorizedUserStep} {
		sentinel := text
		if l.items.RemoveFirst(func(s Step) bool { return s.IsAuto() && s.Text == sentinel }) {
			changed = true
		}
	}

	switch method {
	case catalog.AuthOTP, catalog.AuthPersonalQuestions:
		changed = l.items.Add(Step{Text: catalog.PassphraseUpdatedStep, Source: SourceAuto}) || changed
	case catalog.AuthNotAuthorized:
		changed = l.items.Add(Step{Text: catalog.AuthorizedUserStep, Source: SourceAuto}) || changed
	}
	return changed
}

func (l *List) Len() int { return l.items.Len() }

func (l *List) Steps() []Step { return l.items.Items() }

// Texts returns the step texts in order, as the case notes print them.
func (l *List) Texts() []string {
	items := l.items.Items()
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.Text
	}
	return out
}

func (l *List) Clear() bool { return l.items.Clear() }

func (l *List) Load(steps []Step) {
	cleaned := make([]Step, 0, len(steps))
	for _, s := range steps {
		if n, ok := normalizeStep(s); ok {
			cleaned = append(cleaned, n)
		}
	}
	l.items.Load(cleaned)
}
