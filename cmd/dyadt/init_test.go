package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperpolymath/did-you-actually-do-that/internal/config"
	"github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"
)

func TestRunInit(t *testing.T) {
	resetGlobals(t)
	dir := t.TempDir()

	initOutput = filepath.Join(dir, "claim.json")
	configPath = filepath.Join(dir, ".dyadt", "config.yaml")
	t.Cleanup(func() {
		initOutput = "claim.json"
		initForce = false
		configPath = config.DefaultPath
	})

	var buf bytes.Buffer
	if err := runInit(newTestCmd(&buf), nil); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	// The starter claim must load and validate cleanly.
	c, err := claim.Load(initOutput)
	if err != nil {
		t.Fatalf("starter claim does not load: %v", err)
	}
	if result := claim.Validate(c); !result.Valid() {
		t.Errorf("starter claim fails validation: %v", result.Error())
	}
	if len(c.Evidence) != 2 {
		t.Errorf("starter claim has %d evidence items, want 2", len(c.Evidence))
	}

	// The starter config must parse with the default loader.
	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("starter config does not load: %v", err)
	}
	if loaded.Watch.Interval != "2s" {
		t.Errorf("starter config watch.interval = %q, want 2s", loaded.Watch.Interval)
	}

	out := buf.String()
	if !strings.Contains(out, "Created "+initOutput) {
		t.Errorf("output missing claim creation line:\n%s", out)
	}
	if !strings.Contains(out, "dyadt check") {
		t.Errorf("output missing next-step hint:\n%s", out)
	}
}

func TestRunInitRefusesOverwrite(t *testing.T) {
	resetGlobals(t)
	dir := t.TempDir()

	initOutput = filepath.Join(dir, "claim.json")
	configPath = filepath.Join(dir, ".dyadt", "config.yaml")
	t.Cleanup(func() {
		initOutput = "claim.json"
		initForce = false
		configPath = config.DefaultPath
	})

	writeTestFile(t, initOutput, "{}")

	var buf bytes.Buffer
	err := runInit(newTestCmd(&buf), nil)
	if err == nil {
		t.Fatal("expected error for existing claim file")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error = %v", err)
	}

	// --force overwrites.
	initForce = true
	if err := runInit(newTestCmd(&buf), nil); err != nil {
		t.Fatalf("runInit with --force: %v", err)
	}
	data, err := os.ReadFile(initOutput)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Created the configuration file") {
		t.Errorf("claim file not overwritten: %q", string(data))
	}
}
