package notes

import (
	"unicode/utf8"

	"github.com/harunnryd/notedesk/internal/config"
)

type Level string

const (
	LevelOK      Level = "ok"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Budget is how much of the SPINS character allowance a text uses.
// Length is never clamped; Percent is.
type Budget struct {
	Length  int     `json:"length"`
	Limit   int     `json:"limit"`
	Percent float64 `json:"percent"`
	Level   Level   `json:"level"`
}

func (b Budget) Over() bool { return b.Length > b.Limit }

func (b Budget) Remaining() int { return b.Limit - b.Length }

type BudgetPolicy struct {
	Limit          int
	WarningPercent int
	DangerPercent  int
}

func DefaultBudgetPolicy() BudgetPolicy {
	return BudgetPolicy{
		Limit:          config.DefaultNotesSpinsBudget,
		WarningPercent: config.DefaultNotesSpinsWarningPercent,
		DangerPercent:  config.DefaultNotesSpinsDangerPercent,
	}
}

// BudgetPolicyFrom reads the notes config, keeping defaults for unset
// values.
func BudgetPolicyFrom(cfg config.NotesConfig) BudgetPolicy {
	p := DefaultBudgetPolicy()
	if cfg.SpinsBudget > 0 {
		p.Limit = cfg.SpinsBudget
	}
	if cfg.SpinsWarningPercent > 0 {
		p.WarningPercent = cfg.SpinsWarningPercent
	}
	if cfg.SpinsDangerPercent > 0 {
		p.DangerPercent = cfg.SpinsDangerPercent
	}
	return p
}

// Measure counts characters, not bytes.
func (p BudgetPolicy) Measure(text string) Budget {
	n := utf8.RuneCountInString(text)
	pct := 0.0
	if p.Limit > 0 {
		pct = float64(n) / float64(p.Limit) * 100
	}
	if pct > 100 {
		pct = 100
	}

	level := LevelOK
	switch {
	case pct >= float64(p.DangerPercent):
		level = LevelDanger
	case pct >= float64(p.WarningPercent):
		level = LevelWarning
	}
	return Budget{Length: n, Limit: p.Limit, Percent: pct, Level: level}
}
