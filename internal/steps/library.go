package steps

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harunnryd/notedesk/internal/errors"

	"github.com/oklog/ulid/v2"
)

const (
	ExportVersion = "1.0"

	DuplicateStepMessage = "This step is already saved!"
)

type CustomStep struct {
	ID        string     `json:"id" yaml:"id"`
	Text      string     `json:"text" yaml:"text"`
	Category  string     `json:"category" yaml:"category"`
	CreatedAt time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

type ExportDocument struct {
	Version    string       `json:"version" yaml:"version"`
	ExportedAt time.Time    `json:"exportedAt" yaml:"exportedAt"`
	Steps      []CustomStep `json:"steps" yaml:"steps"`
}

// Library is the agent's saved custom steps. Texts are unique, compared
// exactly.
type Library struct {
	steps []CustomStep
	now   func() time.Time
}

func NewLibrary(steps []CustomStep, now func() time.Time) *Library {
	if now == nil {
		now = time.Now
	}
	return &Library{steps: append([]CustomStep(nil), steps...), now: now}
}

func (l *Library) Steps() []CustomStep {
	return append([]CustomStep(nil), l.steps...)
}

func (l *Library) Len() int { return len(l.steps) }

func (l *Library) Contains(text string) bool {
	_, ok := l.FindByText(text)
	return ok
}

func (l *Library) Find(id string) (CustomStep, bool) {
	for _, s := range l.steps {
		if s.ID == id {
			return s, true
		}
	}
	return CustomStep{}, false
}

func (l *Library) FindByText(text string) (CustomStep, bool) {
	for _, s := range l.steps {
		if s.Text == text {
			return s, true
		}
	}
	return CustomStep{}, false
}

func (l *Library) newID() string {
	return ulid.MustNew(ulid.Timestamp(l.now()), ulid.DefaultEntropy()).String()
}

// Add saves text as a custom step.
func (l *Library) Add(text string) (CustomStep, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return CustomStep{}, errors.InvalidInput("step text is empty")
	}
	if l.Contains(text) {
		return CustomStep{}, errors.Duplicate(DuplicateStepMessage)
	}

	step := CustomStep{
		ID:        l.newID(),
		Text:      text,
		Category:  "custom",
		CreatedAt: l.now().UTC(),
	}
	l.steps = append(l.steps, step)
	return step, nil
}

// Edit changes the text of step id. A missing id reports false with no
// error.
func (l *Library) Edit(id, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, errors.InvalidInput("step text is empty")
	}
	for i := range l.steps {
		if l.steps[i].ID != id {
			continue
		}
		if other, ok := l.FindByText(text); ok && other.ID != id {
			return false, errors.Duplicate(DuplicateStepMessage)
		}
		now := l.now().UTC()
		l.steps[i].Text = text
		l.steps[i].UpdatedAt = &now
		return true, nil
	}
	return false, nil
}

func (l *Library) Delete(id string) bool {
	for i, s := range l.steps {
		if s.ID == id {
			l.steps = append(l.steps[:i], l.steps[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Library) Export() ExportDocument {
	return ExportDocument{
		Version:    ExportVersion,
		ExportedAt: l.now().UTC(),
		Steps:      l.Steps(),
	}
}

// ExportJSON renders the export document the way it is written to disk.
func (l *Library) ExportJSON() ([]byte, error) {
	if len(l.steps) == 0 {
		return nil, errors.InvalidInput("no custom steps to export")
	}
	return json.MarshalIndent(l.Export(), "", "  ")
}

// Import merges the steps of an export document, skipping texts already
// in the library. It returns how many steps were added.
func (l *Library) Import(data []byte) (int, error) {
	var doc struct {
		Steps json.RawMessage `json:"steps" yaml:"steps"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, errors.InvalidInput("Invalid file format")
	}
	var incoming []CustomStep
	trimmed := strings.TrimSpace(string(doc.Steps))
	if !strings.HasPrefix(trimmed, "[") {
		return 0, errors.InvalidInput("Invalid file format")
	}
	if err := json.Unmarshal(doc.Steps, &incoming); err != nil {
		return 0, errors.InvalidInput(fmt.Sprintf("Invalid file format: %v", err))
	}

	added := 0
	for _, s := range incoming {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text == "" || l.Contains(s.Text) {
			continue
		}
		if s.ID == "" {
			s.ID = l.newID()
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = l.now().UTC()
		}
		s.Category = "custom"
		l.steps = append(l.steps, s)
		added++
	}
	return added, nil
}
