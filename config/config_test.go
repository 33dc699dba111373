package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 8080
jwt:
  secret: test-secret
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Fatalf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Storage.Mode != "database" {
		t.Fatalf("expected default storage mode database, got %q", cfg.Storage.Mode)
	}
	if cfg.Storage.MaxFileSize != 16<<20 {
		t.Fatalf("expected default max file size, got %d", cfg.Storage.MaxFileSize)
	}
	if cfg.Storage.DefaultUserQuota != 1<<30 {
		t.Fatalf("expected default quota 1GiB, got %d", cfg.Storage.DefaultUserQuota)
	}
	if cfg.View.TokenTTLSeconds != 600 {
		t.Fatalf("expected default view ttl 600, got %d", cfg.View.TokenTTLSeconds)
	}
	if cfg.Thumbnail.Width != 200 || cfg.Thumbnail.Quality != 80 {
		t.Fatalf("expected thumbnail defaults, got %+v", cfg.Thumbnail)
	}
	if AppConfig != cfg {
		t.Fatalf("LoadConfig must install the global config")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
storage:
  mode: s3
  max_file_size: 1048576
  allowed_types: ["*"]
  s3:
    bucket: vault
    region: us-east-1
view:
  token_ttl_seconds: 60
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Storage.Mode != "s3" || cfg.Storage.S3.Bucket != "vault" {
		t.Fatalf("s3 settings not loaded: %+v", cfg.Storage)
	}
	if cfg.Storage.MaxFileSize != 1048576 {
		t.Fatalf("expected overridden max file size, got %d", cfg.Storage.MaxFileSize)
	}
	if cfg.View.TokenTTLSeconds != 60 {
		t.Fatalf("expected overridden ttl 60, got %d", cfg.View.TokenTTLSeconds)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
