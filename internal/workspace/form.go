package workspace

import (
	"slices"
	"strings"

	"github.com/harunnryd/notedesk/internal/catalog"
	"github.com/harunnryd/notedesk/internal/errors"
	"github.com/harunnryd/notedesk/internal/selection"
	"github.com/harunnryd/notedesk/internal/store"
	"github.com/harunnryd/notedesk/internal/taglist"
)

func trimmed(s string) string { return strings.TrimSpace(s) }

func formOutput(f Form) output {
	if f == FormSpins {
		return outSpins
	}
	return outCaseNotes
}

func (w *Workspace) Field(f Form, id string) string {
	return w.fields[f][id]
}

// SetField stores a scalar form value as typed. The two choice fields
// only take their known tokens or "". Picking an authentication method
// also keeps the managed troubleshooting steps in line.
func (w *Workspace) SetField(f Form, id, value string) error {
	if !slices.Contains(formFields[f], id) {
		return errors.InvalidInput("unknown " + string(f) + " field " + id)
	}

	switch id {
	case FieldVerificationCompleted:
		value = trimmed(value)
		if value != "" && value != catalog.VerificationYes && value != catalog.VerificationNo {
			return errors.InvalidInput("verification must be Yes or No")
		}
	case FieldAuthenticationMethod:
		value = trimmed(value)
		if value != "" && !slices.Contains(catalog.AuthMethods(), value) {
			return errors.InvalidInput("unknown authentication method " + value)
		}
	}

	w.fields[f][id] = value
	store.Save(w.kv, f.prefix()+id, value)

	if f == FormSpins {
		w.markSpinsEdited()
	}
	if f == FormCaseNotes && id == FieldAuthenticationMethod && w.steps.ApplyAuthMethod(value) {
		w.saveSteps()
	}

	w.changed(formOutput(f))
	return nil
}

func (w *Workspace) markSpinsEdited() {
	if w.spinsEditedByHand {
		return
	}
	w.spinsEditedByHand = true
	store.SetFlag(w.kv, KeySpinsEditedByHand, true)
}

// AutoPopulateSpins copies the customer details from the case form into
// the SPINS form, unless the SPINS form was already edited by hand.
// Empty sources leave the target alone.
func (w *Workspace) AutoPopulateSpins() bool {
	if w.spinsEditedByHand {
		return false
	}

	cn := w.fields[FormCaseNotes]
	copies := []struct {
		id    string
		value string
	}{
		{FieldCustomerName, trimmed(cn[FieldSpokenTo])},
		{FieldSpinsPhoneNumber, trimmed(cn[FieldPhoneNumber])},
		{FieldSerialNumber, strings.Join(w.lists[ListEquipmentSNs].Items(), ", ")},
		{FieldEquipmentNameModel, strings.Join(w.lists[ListEquipmentModels].Items(), ", ")},
	}

	changed := false
	for _, c := range copies {
		if c.value == "" || w.fields[FormSpins][c.id] == c.value {
			continue
		}
		w.fields[FormSpins][c.id] = c.value
		store.Save(w.kv, spinsPrefix+c.id, c.value)
		changed = true
	}
	if changed {
		w.changed(outSpins)
	}
	return changed
}

func (w *Workspace) list(name ListName) (*taglist.Strings, error) {
	l, ok := w.lists[name]
	if !ok {
		return nil, errors.InvalidInput("unknown list " + string(name))
	}
	return l, nil
}

// List returns a copy of a tag list.
func (w *Workspace) List(name ListName) ([]string, error) {
	l, err := w.list(name)
	if err != nil {
		return nil, err
	}
	return l.Items(), nil
}

// EditList applies fn to a tag list and persists it when fn reports a
// change.
func (w *Workspace) EditList(name ListName, fn func(*taglist.Strings) bool) (bool, error) {
	l, err := w.list(name)
	if err != nil {
		return false, err
	}
	if !fn(l) {
		return false, nil
	}
	store.SaveJSON(w.kv, name.key(), l.Items())
	w.changed(outCaseNotes)
	return true, nil
}

// Selection exposes a selection set for reading. Mutate through
// EditSelection.
func (w *Workspace) Selection(name SelectionName) (*selection.Set, error) {
	s, ok := w.selections[name]
	if !ok {
		return nil, errors.InvalidInput("unknown selection " + string(name))
	}
	return s, nil
}

func (w *Workspace) EditSelection(name SelectionName, fn func(*selection.Set) bool) (bool, error) {
	s, err := w.Selection(name)
	if err != nil {
		return false, err
	}
	if !fn(s) {
		return false, nil
	}
	w.saveSelection(name)

	if name == SelectionReasons {
		w.changed(outCaseNotes)
	} else {
		w.changed(outSpins)
	}
	return true, nil
}

func (w *Workspace) saveSelection(name SelectionName) {
	s := w.selections[name]
	tokensKey, customKey := name.keys()
	store.SaveJSON(w.kv, tokensKey, s.Tokens())
	store.Save(w.kv, customKey, s.Custom())
}

func (w *Workspace) Flag(name string) bool {
	return store.GetFlag(w.kv, name)
}

func (w *Workspace) SetFlag(name string, enabled bool) error {
	if !slices.Contains(Flags(), name) {
		return errors.InvalidInput("unknown flag " + name)
	}
	store.SetFlag(w.kv, name, enabled)
	return nil
}

func (w *Workspace) Theme() string {
	if store.GetString(w.kv, KeyTheme, ThemeLight) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

func (w *Workspace) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return errors.InvalidInput("theme must be light or dark")
	}
	store.Save(w.kv, KeyTheme, theme)
	return nil
}

// ClearSpins empties the SPINS form and its issue and instruction
// selections. The case form is kept, and SPINS counts as untouched again
// so the next auto-population fills it.
func (w *Workspace) ClearSpins() bool {
	changed := w.spinsEditedByHand
	for _, v := range w.fields[FormSpins] {
		if v != "" {
			changed = true
		}
	}
	for _, name := range []SelectionName{SelectionIssues, SelectionInstructions} {
		if w.selections[name].Clear() {
			changed = true
		}
	}

	for _, key := range w.kv.Keys() {
		if strings.HasPrefix(key, spinsPrefix) {
			store.Remove(w.kv, key)
		}
	}
	w.fields[FormSpins] = map[string]string{}
	w.spinsEditedByHand = false

	if changed {
		w.changed(outSpins)
	}
	return changed
}

// Reset clears the case: every case-form and SPINS-form key, the tag
// lists, steps, selections, the session call backs and the scheduler
// draft. Call backs, the custom step library and rankings stay.
func (w *Workspace) Reset() {
	for _, key := range w.kv.Keys() {
		if strings.HasPrefix(key, caseNotesPrefix) || strings.HasPrefix(key, spinsPrefix) {
			store.Remove(w.kv, key)
		}
	}

	for f := range w.fields {
		w.fields[f] = map[string]string{}
	}
	for _, l := range w.lists {
		l.Clear()
	}
	w.steps.Clear()
	for _, s := range w.selections {
		s.Clear()
	}
	w.spinsEditedByHand = false

	w.tracker.ClearSession()
	store.SaveJSON(w.kv, KeySessionCallbacks, []string{})
	w.draft.Reset(w.now())

	w.changed(outCaseNotes | outSpins)
}
