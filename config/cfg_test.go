package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigurationDefaults(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("version = %d", cfg.Version)
	}
	if cfg.Reader.PagesPerChapter != 5 || cfg.Reader.FillThreshold != 0.95 || cfg.Reader.WordsPerMinute != 238 {
		t.Errorf("reader defaults = %+v", cfg.Reader)
	}
	if cfg.Viewport.MinHeightDelta != 2 || cfg.Viewport.ResizeDebounceMs != 200 {
		t.Errorf("viewport defaults = %+v", cfg.Viewport)
	}
	if cfg.Storage.Kind != StoreKindSqlite || cfg.Storage.FlushDebounceMs != 1000 {
		t.Errorf("storage defaults = %+v", cfg.Storage)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" || cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaf.yaml")
	body := `version: 1
reader:
  pages_per_chapter: 8
storage:
  kind: json
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Reader.PagesPerChapter != 8 {
		t.Errorf("pages_per_chapter = %d, want file override", cfg.Reader.PagesPerChapter)
	}
	if cfg.Storage.Kind != StoreKindJson {
		t.Errorf("storage kind = %v, want file override", cfg.Storage.Kind)
	}
	// untouched values keep their defaults
	if cfg.Reader.WordsPerMinute != 238 {
		t.Errorf("words_per_minute = %d, want template default", cfg.Reader.WordsPerMinute)
	}
}

func TestLoadConfigurationRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaf.yaml")
	if err := os.WriteFile(path, []byte("version: 1\nnonsense: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("expected error for unknown configuration field")
	}
}

func TestLoadConfigurationValidates(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad version", "version: 2\n"},
		{"zero pages per chapter", "version: 1\nreader:\n  pages_per_chapter: 0\n"},
		{"threshold above one", "version: 1\nreader:\n  fill_threshold: 1.5\n"},
		{"bad log level", "version: 1\nlogging:\n  console:\n    level: chatty\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "leaf.yaml")
			if err := os.WriteFile(path, []byte(c.body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfiguration(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDumpRoundTrip(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "pages_per_chapter: 5") {
		t.Errorf("dump missing reader settings:\n%s", data)
	}

	reloaded, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("reparse error = %v", err)
	}
	if *reloaded != *cfg {
		t.Errorf("round trip drifted:\n%+v\n%+v", reloaded, cfg)
	}
}

func TestStoreKind(t *testing.T) {
	if StoreKindSqlite.Ext() != ".db" || StoreKindJson.Ext() != ".json" {
		t.Error("unexpected state file extensions")
	}
	k, err := ParseStoreKind("json")
	if err != nil || k != StoreKindJson {
		t.Errorf("ParseStoreKind(json) = %v, %v", k, err)
	}
	if _, err := ParseStoreKind("etcd"); err == nil {
		t.Error("expected error for unsupported backend")
	}
}
