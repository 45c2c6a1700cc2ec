package deps

import (
	"os"
	"path/filepath"
	"testing"

	"tvhshrink/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}

	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected result for unset command: %#v", results[2])
	}
}

func TestForListsConfiguredTools(t *testing.T) {
	cfg := config.Default()
	cfg.Detector.Binary = "comskip"
	cfg.Probe.Binary = "ffprobe"
	cfg.Encoder.Binary = "ffmpeg"

	reqs := For(&cfg)
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(reqs))
	}
	commands := map[string]bool{}
	for _, req := range reqs {
		commands[req.Command] = true
	}
	for _, want := range []string{"comskip", "ffprobe", "ffmpeg"} {
		if !commands[want] {
			t.Fatalf("expected requirement for %q, got %+v", want, reqs)
		}
	}

	if reqs := For(nil); reqs != nil {
		t.Fatalf("expected nil requirements for nil config, got %+v", reqs)
	}
}
