package main

import (
	"strings"
	"testing"
)

func TestRunValidate_ValidScript(t *testing.T) {
	path := writeFile(t, "session.yaml", `
name: count
initial: 5
steps:
  - subscribe: logger
  - subscribe: audit
  - set: 1
  - update: "+1"
  - unsubscribe: logger
`)

	output, _, err := executeCmd(t, "validate", "-c", path)
	if err != nil {
		t.Fatalf("validate command error = %v", err)
	}

	expectedPhrases := []string{
		"Script is valid!",
		"Name:        count",
		"Initial:     5",
		"Steps:       5",
		"Subscribers: logger, audit",
	}

	for _, phrase := range expectedPhrases {
		if !strings.Contains(output, phrase) {
			t.Errorf("output missing %q\nGot: %s", phrase, output)
		}
	}
}

func TestRunValidate_NoSubscribers(t *testing.T) {
	path := writeFile(t, "session.yml", "steps:\n  - set: 1\n")

	output, _, err := executeCmd(t, "validate", "-c", path)
	if err != nil {
		t.Fatalf("validate command error = %v", err)
	}
	if !strings.Contains(output, "Subscribers: none") {
		t.Errorf("output missing 'Subscribers: none'\nGot: %s", output)
	}
}

func TestRunValidate_InvalidScript(t *testing.T) {
	path := writeFile(t, "invalid.yaml", `
steps:
  - subscribe: logger
    set: 1
`)

	_, _, err := executeCmd(t, "validate", "-c", path)
	if err == nil {
		t.Fatal("validate command expected error for invalid script, got nil")
	}

	if !strings.Contains(err.Error(), "only one action allowed") {
		t.Errorf("error should mention 'only one action allowed', got: %v", err)
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	_, _, err := executeCmd(t, "validate", "-c", "/nonexistent/path/session.yaml")
	if err == nil {
		t.Fatal("validate command expected error for missing file, got nil")
	}

	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("error should mention 'failed to read', got: %v", err)
	}
}

func TestRunValidate_UnknownExtension(t *testing.T) {
	path := writeFile(t, "session.json", "{}")

	_, _, err := executeCmd(t, "validate", "-c", path)
	if err == nil {
		t.Fatal("validate command expected error for unknown extension, got nil")
	}
	if !strings.Contains(err.Error(), "unknown script format") {
		t.Errorf("error should mention 'unknown script format', got: %v", err)
	}
}
