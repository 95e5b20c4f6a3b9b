package store

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// LoadJSON decodes the value stored under key into out. Absent keys and
// corrupt payloads both report false; corruption is logged. After a false
// return out may hold a partial decode and must be discarded.
func LoadJSON(kv KV, key string, out any) bool {
	raw, ok := kv.Get(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		slog.Warn("Failed to parse stored value", "key", key, "error", err)
		return false
	}
	return true
}

// SaveJSON encodes v under key. Failures are logged and swallowed.
func SaveJSON(kv KV, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to encode value for storage", "key", key, "error", err)
		return
	}
	Save(kv, key, string(data))
}

// Save writes a raw string under key. Failures are logged and swallowed.
func Save(kv KV, key, value string) {
	if err := kv.Set(key, value); err != nil {
		slog.Error("Failed to persist value", "key", key, "error", err)
	}
}

// Remove deletes key. Failures are logged and swallowed.
func Remove(kv KV, key string) {
	if err := kv.Delete(key); err != nil {
		slog.Error("Failed to delete stored value", "key", key, "error", err)
	}
}

func GetString(kv KV, key, def string) string {
	if v, ok := kv.Get(key); ok {
		return v
	}
	return def
}

// GetFlag reports whether key holds the literal string "true".
func GetFlag(kv KV, key string) bool {
	v, _ := kv.Get(key)
	return v == "true"
}

func SetFlag(kv KV, key string, enabled bool) {
	if enabled {
		Save(kv, key, "true")
		return
	}
	Save(kv, key, "false")
}
