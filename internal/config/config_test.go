package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	cfg "github.com/toeirei/entities-service/internal/config"
	"github.com/toeirei/entities-service/internal/configstore"
)

// clearEnv makes sure settings from the developer's shell do not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configstore.Keys() {
		t.Setenv(cfg.EnvVar(key), "")
		_ = os.Unsetenv(cfg.EnvVar(key))
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	s, err := cfg.Load(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.BaseURL != "http://onto-ns.com/meta" {
		t.Fatalf("unexpected base_url default: %q", s.BaseURL)
	}
	if s.MongoURI != "mongodb://localhost:27017" {
		t.Fatalf("unexpected mongo_uri default: %q", s.MongoURI)
	}
	if s.MongoUser != "" || s.MongoPassword != "" {
		t.Fatalf("expected empty credentials, got %+v", s)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "BASE_URL=https://example.org/meta/\nMONGO_USER=alice\nIGNORED=1\n")
	s, err := cfg.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.BaseURL != "https://example.org/meta" {
		t.Fatalf("expected trailing slash stripped, got %q", s.BaseURL)
	}
	if s.MongoUser != "alice" {
		t.Fatalf("expected mongo_user from file, got %q", s.MongoUser)
	}
	if s.Lookup(configstore.MongoURI) != "mongodb://localhost:27017" {
		t.Fatalf("expected default mongo_uri, got %q", s.MongoURI)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "MONGO_URI=mongodb://file:27017\n")
	t.Setenv("ENTITY_SERVICE_MONGO_URI", "mongodb+srv://env.example.net")
	t.Setenv("ENTITY_SERVICE_MONGO_PASSWORD", "from-env")

	s, err := cfg.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.MongoURI != "mongodb+srv://env.example.net" {
		t.Fatalf("expected env to win, got %q", s.MongoURI)
	}
	if s.Lookup(configstore.MongoPassword) != "from-env" {
		t.Fatalf("expected password from env, got %q", s.MongoPassword)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"base_url scheme":  "BASE_URL=ftp://example.org\n",
		"mongo_uri scheme": "MONGO_URI=postgres://db\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			_, err := cfg.Load(writeEnvFile(t, content))
			if !errors.Is(err, cfg.ErrInvalidSetting) {
				t.Fatalf("expected ErrInvalidSetting, got %v", err)
			}
		})
	}
}

func TestEnvVar(t *testing.T) {
	if got := cfg.EnvVar(configstore.BaseURL); got != "ENTITY_SERVICE_BASE_URL" {
		t.Fatalf("EnvVar = %q", got)
	}
}
