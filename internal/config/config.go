package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

type Config struct {
	Log       LogConfig       `koanf:"log" yaml:"log"`
	Store     StoreConfig     `koanf:"store" yaml:"store"`
	Notes     NotesConfig     `koanf:"notes" yaml:"notes"`
	Callbacks CallbacksConfig `koanf:"callbacks" yaml:"callbacks"`
	Loop      LoopConfig      `koanf:"loop" yaml:"loop"`
}

type LogConfig struct {
	Level string `koanf:"level" yaml:"level"`
}

type StoreConfig struct {
	Path         string `koanf:"path" yaml:"path"`
	Profile      string `koanf:"profile" yaml:"profile"`
	LockTimeout  string `koanf:"lock_timeout" yaml:"lock_timeout"`
	LockRetry    string `koanf:"lock_retry" yaml:"lock_retry"`
	LockMaxRetry int    `koanf:"lock_max_retry" yaml:"lock_max_retry"`
}

type NotesConfig struct {
	CaseNotesDebounce   string `koanf:"case_notes_debounce" yaml:"case_notes_debounce"`
	SpinsDebounce       string `koanf:"spins_debounce" yaml:"spins_debounce"`
	CallbackDebounce    string `koanf:"callback_debounce" yaml:"callback_debounce"`
	SpinsBudget         int    `koanf:"spins_budget" yaml:"spins_budget"`
	SpinsWarningPercent int    `koanf:"spins_warning_percent" yaml:"spins_warning_percent"`
	SpinsDangerPercent  int    `koanf:"spins_danger_percent" yaml:"spins_danger_percent"`
}

type CallbacksConfig struct {
	ReminderSchedule string      `koanf:"reminder_schedule" yaml:"reminder_schedule"`
	QuickSchedule    []QuickRule `koanf:"quick_schedule" yaml:"quick_schedule"`
}

// QuickRule maps a quick-schedule offset to a slot and a default reason.
// Rules are evaluated in order; the first rule whose MaxHours is >= the
// offset wins. MaxHours <= 0 matches any offset.
type QuickRule struct {
	MaxHours float64 `koanf:"max_hours" yaml:"max_hours"`
	Slot     string  `koanf:"slot" yaml:"slot"`
	Reason   string  `koanf:"reason" yaml:"reason"`
}

type LoopConfig struct {
	InboxSize int `koanf:"inbox_size" yaml:"inbox_size"`
}

const (
	DefaultLogLevel                 = "info"
	DefaultStoreProfile             = "default"
	DefaultStoreLockTimeout         = "5s"
	DefaultStoreLockRetry           = "50ms"
	DefaultStoreLockMaxRetry        = 100
	DefaultNotesCaseNotesDebounce   = "500ms"
	DefaultNotesSpinsDebounce       = "300ms"
	DefaultNotesCallbackDebounce    = "300ms"
	DefaultNotesSpinsBudget         = 976
	DefaultNotesSpinsWarningPercent = 75
	DefaultNotesSpinsDangerPercent  = 90
	DefaultCallbacksReminderSpec    = "@every 1m"
	DefaultLoopInboxSize            = 64
	DefaultQuickReasonShort         = "Follow Up"
	DefaultQuickReasonLong          = "Customer Request"
)

// DefaultQuickSchedule is the hour-offset to slot table used by quick
// scheduling when the config file does not override it.
func DefaultQuickSchedule() []QuickRule {
	return []QuickRule{
		{MaxHours: 0.5, Slot: "afternoon", Reason: DefaultQuickReasonShort},
		{MaxHours: 4, Slot: "afternoon", Reason: DefaultQuickReasonShort},
		{MaxHours: 24, Slot: "morning", Reason: DefaultQuickReasonLong},
		{MaxHours: 0, Slot: "evening", Reason: DefaultQuickReasonLong},
	}
}

// DefaultRootPath is where profiles and the global config live.
func DefaultRootPath() string {
	return filepath.Join(os.Getenv("HOME"), ".notedesk")
}

func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	// Hardcoded Defaults
	defaults := map[string]interface{}{
		"log.level":                   DefaultLogLevel,
		"store.path":                  filepath.Join(DefaultRootPath(), "profiles"),
		"store.profile":               DefaultStoreProfile,
		"store.lock_timeout":          DefaultStoreLockTimeout,
		"store.lock_retry":            DefaultStoreLockRetry,
		"store.lock_max_retry":        DefaultStoreLockMaxRetry,
		"notes.case_notes_debounce":   DefaultNotesCaseNotesDebounce,
		"notes.spins_debounce":        DefaultNotesSpinsDebounce,
		"notes.callback_debounce":     DefaultNotesCallbackDebounce,
		"notes.spins_budget":          DefaultNotesSpinsBudget,
		"notes.spins_warning_percent": DefaultNotesSpinsWarningPercent,
		"notes.spins_danger_percent":  DefaultNotesSpinsDangerPercent,
		"callbacks.reminder_schedule": DefaultCallbacksReminderSpec,
		"callbacks.quick_schedule":    DefaultQuickSchedule(),
		"loop.inbox_size":             DefaultLoopInboxSize,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	// Config file loading
	configPath := ""
	if cmd != nil {
		if flag := cmd.Flags().Lookup("config"); flag != nil {
			configPath = strings.TrimSpace(flag.Value.String())
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, err
		}
	} else {
		globalPath := filepath.Join(DefaultRootPath(), "config.yaml")
		if err := k.Load(file.Provider(globalPath), yaml.Parser()); err != nil {
			slog.Debug("Global config not found or invalid", "path", globalPath, "error", err)
		}
	}

	// Environment Variables
	k.Load(env.Provider("NOTEDESK_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "NOTEDESK_")), "_", ".", 1)
	}), nil)

	// CLI Flags
	if cmd != nil {
		k.Load(posflag.Provider(cmd.Flags(), ".", k), nil)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	if len(cfg.Callbacks.QuickSchedule) == 0 {
		cfg.Callbacks.QuickSchedule = DefaultQuickSchedule()
	}
	if strings.TrimSpace(cfg.Store.Profile) == "" {
		cfg.Store.Profile = DefaultStoreProfile
	}

	storePath, err := ExpandPath(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}

	return &cfg, nil
}
