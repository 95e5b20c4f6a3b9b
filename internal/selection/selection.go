// Package selection models the toggle-button pickers for issues,
// instructions and call reasons.
package selection

import (
	"strings"

	"github.com/harunnryd/notedesk/internal/catalog"
)

// Set is a group of toggleable tokens plus one free-text entry. Items
// come out in declaration order, never in the order they were toggled.
type Set struct {
	groups   []catalog.Group
	selected map[string]bool
	custom   string
	empty    string
}

// New builds a set over groups. empty is the placeholder DisplayText
// returns when nothing is chosen.
func New(groups []catalog.Group, empty string) *Set {
	return &Set{
		groups:   groups,
		selected: make(map[string]bool),
		empty:    empty,
	}
}

func NewIssues() *Set {
	return New(catalog.IssueGroups(), catalog.NoIssuesSelected)
}

func NewInstructions() *Set {
	return New(catalog.InstructionGroups(), catalog.NoInstructionsSelected)
}

func NewReasons() *Set {
	return New([]catalog.Group{{Name: "reasons", Tokens: catalog.Reasons()}}, catalog.NoReasonsSelected)
}

func (s *Set) Groups() []catalog.Group { return s.groups }

// Known reports whether token is one of the declared tokens.
func (s *Set) Known(token string) bool {
	for _, g := range s.groups {
		for _, t := range g.Tokens {
			if t == token {
				return true
			}
		}
	}
	return false
}

// Toggle flips token. Unknown tokens are ignored.
func (s *Set) Toggle(token string) bool {
	if !s.Known(token) {
		return false
	}
	if s.selected[token] {
		delete(s.selected, token)
	} else {
		s.selected[token] = true
	}
	return true
}

func (s *Set) IsSelected(token string) bool { return s.selected[token] }

func (s *Set) SetCustom(text string) bool {
	text = strings.TrimSpace(text)
	if text == s.custom {
		return false
	}
	s.custom = text
	return true
}

func (s *Set) Custom() string { return s.custom }

// Selected returns the chosen tokens of group name in declaration order.
func (s *Set) Selected(group string) []string {
	var out []string
	for _, g := range s.groups {
		if g.Name != group {
			continue
		}
		for _, t := range g.Tokens {
			if s.selected[t] {
				out = append(out, t)
			}
		}
	}
	return out
}

// Tokens returns every chosen token in declaration order, without the
// custom entry.
func (s *Set) Tokens() []string {
	var out []string
	for _, g := range s.groups {
		for _, t := range g.Tokens {
			if s.selected[t] {
				out = append(out, t)
			}
		}
	}
	return out
}

// Items is Tokens followed by the custom entry when there is one.
func (s *Set) Items() []string {
	out := s.Tokens()
	if s.custom != "" {
		out = append(out, s.custom)
	}
	return out
}

func (s *Set) Empty() bool { return len(s.selected) == 0 && s.custom == "" }

// Joined is Items joined with ", "; empty when nothing is chosen.
func (s *Set) Joined() string { return strings.Join(s.Items(), ", ") }

// DisplayText is Joined, or the placeholder when nothing is chosen.
func (s *Set) DisplayText() string {
	if s.Empty() {
		return s.empty
	}
	return s.Joined()
}

func (s *Set) Clear() bool {
	if s.Empty() {
		return false
	}
	s.selected = make(map[string]bool)
	s.custom = ""
	return true
}

// Load restores chosen tokens, dropping any no longer declared.
func (s *Set) Load(tokens []string, custom string) {
	s.selected = make(map[string]bool, len(tokens))
	for _, t := range tokens {
		if s.Known(t) {
			s.selected[t] = true
		}
	}
	s.custom = strings.TrimSpace(custom)
}
