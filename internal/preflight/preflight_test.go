package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"tvhshrink/internal/config"
	"tvhshrink/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFreeSpace(t *testing.T) {
	dir := t.TempDir()
	if result := CheckFreeSpace("space", dir, 1); !result.Passed {
		t.Fatalf("expected pass for 1 byte floor, got: %s", result.Detail)
	}
	if result := CheckFreeSpace("space", filepath.Join(dir, "nope"), 1); result.Passed {
		t.Fatal("expected failure for missing path")
	}
}

func TestCheckRegistry_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "api" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := config.Registry{URL: srv.URL, Username: "api", Password: "secret"}
	result := CheckRegistry(context.Background(), reg)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckRegistry_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	result := CheckRegistry(context.Background(), config.Registry{URL: srv.URL})
	if result.Passed {
		t.Fatal("expected failure for rejected credentials")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckSystemDepsWithStubbedTools(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	results := CheckSystemDeps(cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 tool results, got %d", len(results))
	}
	for _, result := range results {
		if !result.Available {
			t.Fatalf("expected %s to resolve from PATH, got: %s", result.Name, result.Detail)
		}
	}
}

func TestRunAllCoversConfiguredPaths(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Registry.URL = srv.URL
	cfg.Paths.WorkDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()

	results := RunAll(context.Background(), &cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d: %+v", len(results), results)
	}
	for _, result := range results {
		// Free space depends on the host disk; only the deterministic
		// checks must pass here.
		if result.Name == "Work directory space" {
			continue
		}
		if !result.Passed {
			t.Fatalf("expected %s to pass, got: %s", result.Name, result.Detail)
		}
	}
}
