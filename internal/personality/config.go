// Reference table loading. Tables are optional external JSON files; any
// load failure is recovered by falling back to the built-in defaults,
// logged as a warning, never surfaced as an error.
package personality

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// LoadArchetypeTable reads an archetype table from a JSON file.
func LoadArchetypeTable(path string) ([]Archetype, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archetype table: %w", err)
	}
	var table []Archetype
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse archetype table: %w", err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("archetype table %s is empty", path)
	}
	return table, nil
}

// LoadLocationRules reads a location rule table from a JSON file.
func LoadLocationRules(path string) ([]LocationRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read location rules: %w", err)
	}
	var rules []LocationRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse location rules: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("location rules %s is empty", path)
	}
	return rules, nil
}

// archetypesOrDefault loads the table at path, falling back to the
// built-in table when path is empty or loading fails.
func archetypesOrDefault(path string) []Archetype {
	if path == "" {
		return builtinArchetypes
	}
	table, err := LoadArchetypeTable(path)
	if err != nil {
		slog.Warn("archetype table unavailable, using built-in defaults", "path", path, "error", err)
		return builtinArchetypes
	}
	return table
}

// locationRulesOrDefault loads the rules at path, falling back to the
// built-in rules when path is empty or loading fails.
func locationRulesOrDefault(path string) []LocationRule {
	if path == "" {
		return builtinLocationRules
	}
	rules, err := LoadLocationRules(path)
	if err != nil {
		slog.Warn("location rules unavailable, using built-in defaults", "path", path, "error", err)
		return builtinLocationRules
	}
	return rules
}
