package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
storage:
  type: "memory"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Storage.Type != "memory" {
		t.Errorf("storage type = %q", cfg.Storage.Type)
	}
	if cfg.Logging.Debug {
		t.Error("debug should default to false when unset")
	}
	if cfg.Search.MinScore != 0.4 {
		t.Errorf("min_score should default to 0.4, got %v", cfg.Search.MinScore)
	}
}

func TestLoad_debugTrue(t *testing.T) {
	path := writeConfig(t, `
logging:
  debug: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Logging.Debug {
		t.Error("debug should be true when set in config")
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	path := writeConfig(t, `
storage:
  data_dir: "./resumes/data"
intake:
  drop_dir: "./resumes/drop"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Dir(path)
	wantData := filepath.Join(dir, "resumes", "data")
	if cfg.Storage.DataDir != wantData {
		t.Errorf("data_dir = %s, want %s", cfg.Storage.DataDir, wantData)
	}
	wantDrop := filepath.Join(dir, "resumes", "drop")
	if cfg.Intake.DropDir != wantDrop {
		t.Errorf("drop_dir = %s, want %s", cfg.Intake.DropDir, wantDrop)
	}
}

func TestLoad_rejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad storage type", "storage:\n  type: \"redis\"\n", "storage.type"},
		{"bad embedding type", "embedding:\n  type: \"openai\"\n", "embedding.type"},
		{"port out of range", "server:\n  port: 70000\n", "server.port"},
		{"min_score above one", "search:\n  min_score: 1.5\n", "min_score"},
		{"default_top_k above max", "search:\n  default_top_k: 60\n  max_top_k: 50\n", "default_top_k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Storage.Type != "file" {
		t.Errorf("default storage type: got %s", cfg.Storage.Type)
	}
	if cfg.Embedding.Type != "mock" {
		t.Errorf("default embedding type: got %s", cfg.Embedding.Type)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("default dimensions: got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Search.DefaultTopK != 10 || cfg.Search.MaxTopK != 50 {
		t.Errorf("default top_k bounds: got %d/%d", cfg.Search.DefaultTopK, cfg.Search.MaxTopK)
	}
	if cfg.Search.MinScore != 0.4 {
		t.Errorf("default min_score: got %v", cfg.Search.MinScore)
	}
	if cfg.Intake.DebounceMs != 500 {
		t.Errorf("default debounce_ms: got %d", cfg.Intake.DebounceMs)
	}
	if cfg.Intake.Enabled {
		t.Error("intake should be disabled by default")
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")
	cfg := Default()
	cfg.Server.Port = 9090
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("loaded port: got %d", loaded.Server.Port)
	}
	if loaded.Storage.Type != "file" {
		t.Errorf("loaded storage type: got %s", loaded.Storage.Type)
	}
}
