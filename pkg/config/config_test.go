package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DataSource != SourceFixtures {
		t.Fatalf("DataSource = %q, want %q", cfg.DataSource, SourceFixtures)
	}
	if cfg.SearchDebounce != 300*time.Millisecond {
		t.Fatalf("SearchDebounce = %v, want 300ms", cfg.SearchDebounce)
	}
	if cfg.HeartBurstDuration != time.Second {
		t.Fatalf("HeartBurstDuration = %v, want 1s", cfg.HeartBurstDuration)
	}
	if cfg.StoryCleanupSchedule != "@hourly" {
		t.Fatalf("StoryCleanupSchedule = %q, want @hourly", cfg.StoryCleanupSchedule)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_SOURCE", "Database")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("SEARCH_DEBOUNCE", "50ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "9000" {
		t.Fatalf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.DataSource != SourceDatabase {
		t.Fatalf("DataSource = %q, want %q", cfg.DataSource, SourceDatabase)
	}
	if cfg.CacheBackend != CacheRedis {
		t.Fatalf("CacheBackend = %q, want %q", cfg.CacheBackend, CacheRedis)
	}
	if cfg.SearchDebounce != 50*time.Millisecond {
		t.Fatalf("SearchDebounce = %v, want 50ms", cfg.SearchDebounce)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := map[string]string{
		"DATA_SOURCE":   "sqlite",
		"AUTH_MODE":     "oauth",
		"CACHE_BACKEND": "disk",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() with %s=%s error = nil, want error", key, value)
			}
		})
	}
}

func TestLoadRequiresFirebaseCredentials(t *testing.T) {
	t.Setenv("AUTH_MODE", "firebase")
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want missing credentials error")
	}
}
