package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DefaultServer != "127.0.0.1:6379" {
		t.Errorf("DefaultServer = %q, want 127.0.0.1:6379", cfg.DefaultServer)
	}
	if cfg.DefaultOutput != "text" {
		t.Errorf("DefaultOutput = %q, want text", cfg.DefaultOutput)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.HistoryFile != "" {
		t.Errorf("HistoryFile = %q, want empty", cfg.HistoryFile)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "cli.yaml" {
		t.Errorf("DefaultConfigPath() = %q, want cli.yaml", path)
	}
	if filepath.Base(filepath.Dir(path)) != ".kvmesh" {
		t.Errorf("DefaultConfigPath() = %q, want it under .kvmesh", path)
	}
}

// ============================================================================
// Load
// ============================================================================

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    CLIConfig
	}{
		{
			name:    "full file",
			content: "default_server: 10.0.0.1:6380\ndefault_output: json\ntimeout: 2s\nhistory_file: /tmp/h\n",
			want:    CLIConfig{DefaultServer: "10.0.0.1:6380", DefaultOutput: "json", Timeout: 2 * time.Second, HistoryFile: "/tmp/h"},
		},
		{
			name:    "partial file keeps defaults",
			content: "default_output: yaml\n",
			want:    CLIConfig{DefaultServer: "127.0.0.1:6379", DefaultOutput: "yaml", Timeout: 5 * time.Second},
		},
		{
			name:    "empty file",
			content: "",
			want:    *Default(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cli.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatalf("WriteFile error: %v", err)
			}

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if *cfg != tt.want {
				t.Errorf("Load() = %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults", *cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte("timeout: [1\n"), 0600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on invalid YAML")
	}
}

// ============================================================================
// Save
// ============================================================================

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "cli.yaml")

	want := &CLIConfig{
		DefaultServer: "db.internal:6379",
		DefaultOutput: "json",
		Timeout:       750 * time.Millisecond,
		HistoryFile:   "/var/tmp/kvmesh_history",
	}
	if err := Save(want, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *got != *want {
		t.Errorf("Load() = %+v, want %+v", *got, *want)
	}
}

func TestSave_Permissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "kvmesh")
	path := filepath.Join(dir, "cli.yaml")

	if err := Save(Default(), path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	info, err = os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0700 {
		t.Errorf("dir mode = %o, want 700", perm)
	}
}
