package config

import (
	"os"
	"path/filepath"
	"testing"
)

// withTempHome points HOME at a scratch directory so config paths never
// touch the real user profile.
func withTempHome(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	return tmpDir
}

func TestGetConfigDir(t *testing.T) {
	tmpDir := withTempHome(t)

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if want := filepath.Join(tmpDir, ".celora"); dir != want {
		t.Errorf("GetConfigDir() = %q, want %q", dir, want)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	withTempHome(t)

	dir, err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("config dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("config path is not a directory")
	}
	if perm := info.Mode().Perm(); perm != 0o700 {
		t.Errorf("config dir permissions = %o, want 700", perm)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	withTempHome(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

func TestSaveLoadConfig(t *testing.T) {
	withTempHome(t)

	in := Config{
		Model:           "gemini-3-flash-preview",
		CopyToClipboard: true,
		Markdown: MarkdownConfig{
			Style:            "light",
			EnableEmoji:      false,
			PreserveNewLines: true,
		},
	}
	if err := SaveConfig(in); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	out, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}

	path, _ := GetConfigPath()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat config file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file permissions = %o, want 600", perm)
	}
}

func TestLoadConfig_Corrupt(t *testing.T) {
	withTempHome(t)

	dir, err := EnsureConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("expected parse error for corrupt config")
	}
	if cfg != DefaultConfig() {
		t.Errorf("corrupt config should yield defaults, got %+v", cfg)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("CELORA_API_KEY", "sk-test")
	t.Setenv("CELORA_API_BASE", "http://127.0.0.1:9999")
	t.Setenv("CELORA_MODEL", "gemini-3-pro")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if env.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", env.APIKey)
	}
	if env.APIBase != "http://127.0.0.1:9999" {
		t.Errorf("APIBase = %q", env.APIBase)
	}
	if env.Model != "gemini-3-pro" {
		t.Errorf("Model = %q", env.Model)
	}
}
