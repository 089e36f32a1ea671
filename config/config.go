// Package config parses script files for the writable CLI.
//
// A script describes a session against an integer store: which subscribers
// to attach, which values to set, and which updates to apply. Scripts are
// written in YAML or TOML; the format is chosen from the file extension.
//
// Example script:
//
//	name: count
//	initial: 0
//	steps:
//	  - subscribe: logger
//	  - set: 1
//	  - print: true
//	  - update: "+1"
//	  - unsubscribe: logger
//	  - update: "+100"
//
// The same script in TOML:
//
//	name = "count"
//	initial = 0
//
//	[[steps]]
//	subscribe = "logger"
//
//	[[steps]]
//	set = 1
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	defaultName = "count"

	// maxStepDelay bounds the pause between steps so a typo cannot stall a run.
	maxStepDelay = 10 * time.Second
)

// Format identifies a script file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned when a file extension maps to no [Format].
var ErrUnknownFormat = errors.New("unknown script format")

// Script is the root structure of a script file.
//
// Use [Load] or [Parse] to create a Script.
type Script struct {
	// Name labels the store in output and logs. Defaults to "count".
	Name string `yaml:"name" toml:"name"`

	// Initial is the store's value before the first step.
	Initial int `yaml:"initial" toml:"initial"`

	// StepDelay is an optional pause between steps.
	// Accepts duration strings like "500ms" or "1s".
	StepDelay Duration `yaml:"step_delay" toml:"step_delay"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps" toml:"steps"`
}

// Step is a single action. Exactly one field must be set.
type Step struct {
	// Subscribe attaches a named subscriber that reports every value.
	Subscribe string `yaml:"subscribe" toml:"subscribe"`

	// Unsubscribe revokes the named subscriber. Unknown names are a no-op.
	Unsubscribe string `yaml:"unsubscribe" toml:"unsubscribe"`

	// Set assigns a value.
	Set *int `yaml:"set" toml:"set"`

	// Update applies an arithmetic operation such as "+1" or "*2".
	// It is kept as written and parsed by [Script.Validate].
	Update string `yaml:"update" toml:"update"`

	// Print reports the current value.
	Print bool `yaml:"print" toml:"print"`
}

// Action returns the name of the step's action, or "" if none is set.
// If several are set, the first in declaration order is returned.
func (s Step) Action() string {
	actions := s.actions()
	if len(actions) == 0 {
		return ""
	}
	return actions[0]
}

// Operation parses the step's update expression.
func (s Step) Operation() (Operation, error) {
	return ParseOperation(s.Update)
}

func (s Step) actions() []string {
	var actions []string
	if s.Subscribe != "" {
		actions = append(actions, "subscribe")
	}
	if s.Unsubscribe != "" {
		actions = append(actions, "unsubscribe")
	}
	if s.Set != nil {
		actions = append(actions, "set")
	}
	if s.Update != "" {
		actions = append(actions, "update")
	}
	if s.Print {
		actions = append(actions, "print")
	}
	return actions
}

// Duration wraps time.Duration for YAML and TOML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// FormatFromPath returns the [Format] implied by the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .yaml, .yml, or .toml)", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Load reads and parses a script file.
//
// Environment variables in the file are expanded before parsing.
// Returns an error if the file cannot be read, parsed, or validated.
func Load(path string) (*Script, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}
	return Parse(data, format)
}

// Parse parses script data in the given format.
//
// ${VAR} and ${VAR:-default} references are expanded before decoding, so
// they may appear anywhere in the document, including numeric fields.
// The name defaults to "count".
func Parse(data []byte, format Format) (*Script, error) {
	expanded, err := expandEnvVars(string(data))
	if err != nil {
		return nil, err
	}

	var script Script
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal([]byte(expanded), &script); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(expanded, &script); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if script.Name == "" {
		script.Name = defaultName
	}

	if err := script.Validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

// Validate checks that every step has exactly one action, that update
// expressions parse, and that the step delay is in range.
func (s *Script) Validate() error {
	if s.StepDelay.Duration() < 0 {
		return fmt.Errorf("step_delay cannot be negative, got %s", s.StepDelay.Duration())
	}
	if s.StepDelay.Duration() > maxStepDelay {
		return fmt.Errorf("step_delay must not exceed %s, got %s", maxStepDelay, s.StepDelay.Duration())
	}

	for i, step := range s.Steps {
		actions := step.actions()
		switch len(actions) {
		case 0:
			return fmt.Errorf("steps[%d]: an action is required (subscribe, unsubscribe, set, update, or print)", i)
		case 1:
		default:
			return fmt.Errorf("steps[%d]: only one action allowed, got %s", i, strings.Join(actions, ", "))
		}
		if step.Update != "" {
			if _, err := step.Operation(); err != nil {
				return fmt.Errorf("steps[%d]: update: %w", i, err)
			}
		}
	}
	return nil
}

// Subscribers returns the distinct subscriber names in order of first use.
func (s *Script) Subscribers() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, step := range s.Steps {
		if step.Subscribe == "" {
			continue
		}
		if _, ok := seen[step.Subscribe]; ok {
			continue
		}
		seen[step.Subscribe] = struct{}{}
		names = append(names, step.Subscribe)
	}
	return names
}

// Default returns the built-in count session: a logging subscriber watches a
// counter through a few sets and updates, then unsubscribes before the last
// update.
func Default() *Script {
	one, zero := 1, 0
	return &Script{
		Name:    defaultName,
		Initial: 0,
		Steps: []Step{
			{Subscribe: "logger"},
			{Set: &one},
			{Print: true},
			{Update: "+1"},
			{Print: true},
			{Set: &zero},
			{Update: "-100"},
			{Print: true},
			{Unsubscribe: "logger"},
			{Update: "+100"},
			{Print: true},
		},
	}
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}
