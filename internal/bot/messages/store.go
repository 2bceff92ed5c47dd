package messages

import (
	"ESBot/internal/core/ports"
	"fmt"
	"sort"
	"strings"
)

// store is a read-only template table.
type store struct {
	templates map[string]string
}

// NewStore copies templates and checks that every required key is present.
func NewStore(templates map[string]string) (ports.MessageStore, error) {
	var missing []string
	for _, key := range RequiredKeys {
		if _, ok := templates[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing message templates: %s", strings.Join(missing, ", "))
	}

	copied := make(map[string]string, len(templates))
	for k, v := range templates {
		copied[k] = v
	}
	return &store{templates: copied}, nil
}

// Lookup formats the template with args. Templates without verbs are returned as-is.
func (s *store) Lookup(key string, args ...any) string {
	tmpl, ok := s.templates[key]
	if !ok {
		// Guarded by NewStore for the bot's own keys.
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
