package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.APIURL != DefaultAPIURL {
		t.Fatalf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.Uploads.MaxUploadBytes != DefaultUploadMaxBytes {
		t.Fatalf("unexpected upload limit %d", cfg.Uploads.MaxUploadBytes)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("unexpected log level %q", cfg.LogLevel)
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	content := `
api_url = "http://127.0.0.1:9999"
db_path = "/tmp/catalog.db"
blob_root = "/tmp/catalog-images"

[uploads]
max_upload_bytes = 1024
`
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigName), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PRODSTORE_CONFIG_DIR", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://127.0.0.1:9999" {
		t.Fatalf("api_url not loaded: %q", cfg.APIURL)
	}
	if cfg.BlobRoot != "/tmp/catalog-images" {
		t.Fatalf("blob_root not loaded: %q", cfg.BlobRoot)
	}
	if cfg.Uploads.MaxUploadBytes != 1024 {
		t.Fatalf("upload limit not loaded: %d", cfg.Uploads.MaxUploadBytes)
	}
	// Unset value falls back to default.
	if cfg.Uploads.MultipartMaxMemory != DefaultUploadMultipartMemory {
		t.Fatalf("multipart memory should default, got %d", cfg.Uploads.MultipartMaxMemory)
	}
}

func TestEnvOverridesAndBlobRootDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PRODSTORE_CONFIG_DIR", dir)
	t.Setenv("PRODSTORE_DB", filepath.Join(dir, "store.db"))
	t.Setenv("PRODSTORE_API_URL", "http://localhost:7777")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://localhost:7777" {
		t.Fatalf("env api_url not applied: %q", cfg.APIURL)
	}
	want := filepath.Join(dir, DefaultBlobDirName)
	if cfg.BlobRoot != want {
		t.Fatalf("blob root should default next to db: got %q want %q", cfg.BlobRoot, want)
	}
}

func TestSetKeyRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigName)

	if err := SetKey(path, "api_url", "http://127.0.0.1:8888"); err != nil {
		t.Fatalf("set api_url: %v", err)
	}
	if err := SetKey(path, "uploads.max_upload_bytes", "2048"); err != nil {
		t.Fatalf("set nested: %v", err)
	}
	if err := SetKey(path, "bogus", "x"); err == nil {
		t.Fatal("expected unknown key rejection")
	}
	if err := SetKey(path, "uploads.max_upload_bytes", "-5"); err == nil {
		t.Fatal("expected invalid value rejection")
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.APIURL != "http://127.0.0.1:8888" {
		t.Fatalf("api_url not persisted: %q", cfg.APIURL)
	}
	if cfg.Uploads.MaxUploadBytes != 2048 {
		t.Fatalf("nested key not persisted: %d", cfg.Uploads.MaxUploadBytes)
	}
}
