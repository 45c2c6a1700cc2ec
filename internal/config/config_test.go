package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tvhshrink/internal/config"
)

func TestLoadDefaultsExpandPathsAndReadEnv(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("TVHEADEND_URL", "http://tvh.local:9981/")
	t.Setenv("TVHEADEND_USER", "viewer")
	t.Setenv("TVHEADEND_PASS", "secret")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantWork := filepath.Join(tempHome, ".local", "share", "tvhshrink", "work")
	if cfg.Paths.WorkDir != wantWork {
		t.Fatalf("unexpected work dir: got %q want %q", cfg.Paths.WorkDir, wantWork)
	}
	if cfg.Registry.URL != "http://tvh.local:9981" {
		t.Fatalf("expected env registry url with trailing slash stripped, got %q", cfg.Registry.URL)
	}
	if cfg.Registry.Username != "viewer" || cfg.Registry.Password != "secret" {
		t.Fatalf("expected env credentials, got %q/%q", cfg.Registry.Username, cfg.Registry.Password)
	}
	if cfg.Registry.TimeoutSeconds != 30 {
		t.Fatalf("unexpected registry timeout: %d", cfg.Registry.TimeoutSeconds)
	}
	if cfg.Detector.Binary != "comskip" || cfg.Probe.Binary != "ffprobe" || cfg.Encoder.Binary != "ffmpeg" {
		t.Fatalf("unexpected tool defaults: %+v", cfg)
	}
	if cfg.Encoder.BitrateFactor != 0.6 {
		t.Fatalf("unexpected bitrate factor: %v", cfg.Encoder.BitrateFactor)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadReadsFileAndNormalizes(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "config.toml")
	body := strings.Join([]string{
		`[registry]`,
		`url = "https://dvr.example.net/"`,
		`username = "api"`,
		`password = "hunter2"`,
		`timeout_seconds = 5`,
		``,
		`[detector]`,
		`ini = "~/comskip/hd.ini"`,
		``,
		`[encoder]`,
		`bitrate_factor = 0.5`,
		``,
		`[logging]`,
		`format = "JSON"`,
		`level = "DEBUG"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be detected")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolved)
	}
	if cfg.Registry.URL != "https://dvr.example.net" {
		t.Fatalf("unexpected registry url: %q", cfg.Registry.URL)
	}
	if cfg.Registry.TimeoutSeconds != 5 {
		t.Fatalf("unexpected timeout: %d", cfg.Registry.TimeoutSeconds)
	}
	wantINI := filepath.Join(tempHome, "comskip", "hd.ini")
	if cfg.Detector.INI != wantINI {
		t.Fatalf("unexpected detector ini: got %q want %q", cfg.Detector.INI, wantINI)
	}
	if cfg.Encoder.BitrateFactor != 0.5 {
		t.Fatalf("unexpected bitrate factor: %v", cfg.Encoder.BitrateFactor)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased logging settings, got %+v", cfg.Logging)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "bad scheme",
			mutate: func(c *config.Config) { c.Registry.URL = "ftp://host" },
			want:   "registry.url",
		},
		{
			name: "password without username",
			mutate: func(c *config.Config) {
				c.Registry.URL = "http://127.0.0.1:9981"
				c.Registry.Password = "p"
				c.Registry.Username = ""
			},
			want: "registry.username",
		},
		{
			name: "factor above one",
			mutate: func(c *config.Config) {
				c.Registry.URL = "http://127.0.0.1:9981"
				c.Encoder.BitrateFactor = 1.5
			},
			want: "bitrate_factor",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleWritesParsableConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Encoder.BitrateFactor != 0.6 {
		t.Fatalf("unexpected sample bitrate factor: %v", cfg.Encoder.BitrateFactor)
	}
}

func TestEnsureDirectoriesCreatesWorkAndLogDirs(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.WorkDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q, err=%v", dir, err)
		}
	}
}
