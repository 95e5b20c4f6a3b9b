// Package catalog holds the fixed vocabularies the forms are built from:
// built-in troubleshooting steps, issue and instruction tokens, call
// reasons and authentication methods.
package catalog

import (
	"fmt"
	"strings"

	"github.com/harunnryd/notedesk/internal/errors"
)

type Category string

const (
	CategoryInternet Category = "internet"
	CategoryTV       Category = "tv"
	CategoryShawID   Category = "shawid"
	CategoryOther    Category = "other"
	CategoryCustom   Category = "custom"

	// CategoryAll is a filter value only; no step carries it.
	CategoryAll Category = "all"
)

var categoryLabels = map[Category]string{
	CategoryInternet: "Internet",
	CategoryTV:       "TV",
	CategoryShawID:   "Shaw ID & Webmail",
	CategoryOther:    "Other",
	CategoryCustom:   "Custom",
	CategoryAll:      "All",
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// StepCategories lists the categories in display order.
func StepCategories() []Category {
	return []Category{CategoryInternet, CategoryTV, CategoryShawID, CategoryOther, CategoryCustom}
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return CategoryAll, nil
	}
	if _, ok := categoryLabels[c]; !ok {
		return "", errors.InvalidInput(fmt.Sprintf("unknown step category %q", s))
	}
	return c, nil
}

type Step struct {
	Text     string
	Category Category
}

var builtinSteps = []Step{
	{"Checked signal levels", CategoryInternet},
	{"Rebooted modem", CategoryInternet},
	{"Factory reset modem", CategoryInternet},
	{"Checked for outages in the area", CategoryInternet},
	{"Verified modem provisioning", CategoryInternet},
	{"Changed WiFi channel", CategoryInternet},
	{"Confirmed devices connected to the correct network", CategoryInternet},
	{"Ran speed test on wired device", CategoryInternet},
	{"Checked coax connections", CategoryInternet},
	{"Rebooted TV box", CategoryTV},
	{"Refreshed TV box from the back office", CategoryTV},
	{"Checked HDMI connection", CategoryTV},
	{"Verified channel entitlements", CategoryTV},
	{"Re-paired remote", CategoryTV},
	{"Cleared app cache", CategoryTV},
	{"Reset Shaw ID password", CategoryShawID},
	{"Unlocked Shaw ID account", CategoryShawID},
	{"Verified webmail login", CategoryShawID},
	{"Updated recovery email", CategoryShawID},
	{"Checked mailbox storage quota", CategoryShawID},
	{"Advised customer of billing cycle", CategoryOther},
	{"Sent equipment return label", CategoryOther},
	{"Escalated to tier 2", CategoryOther},
	{"Booked technician appointment", CategoryOther},
}

// Steps returns every built-in step in declaration order.
func Steps() []Step {
	out := make([]Step, len(builtinSteps))
	copy(out, builtinSteps)
	return out
}

func StepsIn(c Category) []Step {
	var out []Step
	for _, s := range builtinSteps {
		if c == CategoryAll || s.Category == c {
			out = append(out, s)
		}
	}
	return out
}

// IsBuiltin reports whether text is a catalogue step and which category
// it belongs to.
func IsBuiltin(text string) (Category, bool) {
	for _, s := range builtinSteps {
		if s.Text == text {
			return s.Category, true
		}
	}
	return "", false
}
