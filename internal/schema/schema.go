// Package schema compiles and caches the JSON schemas used to check data
// crossing the service boundary.
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var cache sync.Map // map[string]*jsonschema.Schema

// Compile returns the compiled schema registered under name, compiling def on
// first use.
func Compile(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := cache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// the compiler wants a plain decoded JSON value
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", name, err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", name, err)
	}

	actual, _ := cache.LoadOrStore(name, compiled)
	return actual.(*jsonschema.Schema), nil
}

// MustCompile is Compile for schemas defined in code.
func MustCompile(name string, def map[string]any) *jsonschema.Schema {
	s, err := Compile(name, def)
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateJSON parses raw and validates it against s.
func ValidateJSON(s *jsonschema.Schema, raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return s.Validate(v)
}

// ActivityRecord matches one element of the activities endpoint.
var ActivityRecord = map[string]any{
	"type":     "object",
	"required": []string{"score", "timeSpent", "timestamp"},
	"properties": map[string]any{
		"subject":   map[string]any{"type": "string"},
		"topic":     map[string]any{"type": []string{"string", "null"}},
		"score":     map[string]any{"type": "number"},
		"timeSpent": map[string]any{"type": "number"},
		"timestamp": map[string]any{"type": "string", "minLength": 1},
		"completed": map[string]any{"type": "boolean"},
	},
}

// TopicProgress matches one element of the progress endpoint.
var TopicProgress = map[string]any{
	"type":     "object",
	"required": []string{"topic", "currentLevel"},
	"properties": map[string]any{
		"topic":        map[string]any{"type": "string"},
		"currentLevel": map[string]any{"type": "number", "minimum": 0, "maximum": 10},
		"improvement":  map[string]any{"type": "number"},
	},
}

// Preferences is the shape check of the stored preference blob.
var Preferences = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"showNotifications": map[string]any{"type": "boolean"},
		"soundEnabled":      map[string]any{"type": "boolean"},
		"theme":             map[string]any{"enum": []string{"light", "dark", "system"}},
	},
}
