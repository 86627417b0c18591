package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWithoutConfigFile(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	// 文件缺失时回落到默认值，进程不退出
	if cfg.DB.Driver != "sqlite" {
		t.Fatalf("driver = %s, want sqlite default", cfg.DB.Driver)
	}
	if !cfg.DB.AutoMigrate {
		t.Fatalf("automigrate should default to true")
	}
	if cfg.App.HTTP.Port != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.App.HTTP.Port)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("log level = %s, want info", cfg.Log.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte(`
app:
  http:
    port: 9090
db:
  driver: postgres
  dsn: "host=db user=lease dbname=lease"
jwt:
  secret: "s"
  guard: true
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Load(path)
	if cfg.App.HTTP.Port != 9090 {
		t.Fatalf("port = %d, want 9090", cfg.App.HTTP.Port)
	}
	if cfg.DB.Driver != "postgres" {
		t.Fatalf("driver = %s, want postgres", cfg.DB.Driver)
	}
	if !cfg.JWT.Guard {
		t.Fatalf("jwt guard not read")
	}
}
