package config

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Loader exposes typed accessors over the raw config key space.
type Loader struct {
	v *viper.Viper
}

func (l *Loader) Has(key string) bool {
	return l.v.IsSet(key)
}

func (l *Loader) GetString(key string) string {
	return cast.ToString(l.v.Get(key))
}

func (l *Loader) GetInt(key string) int {
	return cast.ToInt(l.v.Get(key))
}

func (l *Loader) GetFloat(key string) float64 {
	return cast.ToFloat64(l.v.Get(key))
}

// GetBool treats "true", "1", "yes" and "on" (any case) as true.
func (l *Loader) GetBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(l.GetString(key))) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

// GetStrings parses a JSON array value, falling back to a comma-separated list.
func (l *Loader) GetStrings(key string) []string {
	raw := strings.TrimSpace(l.GetString(key))
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			return items
		}
	}
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
