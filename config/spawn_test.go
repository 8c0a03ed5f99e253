package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempSpawnDoc(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "spawn.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadSpawnDocumentDefaultsMaxAttempts(t *testing.T) {
	path := writeTempSpawnDoc(t, `
spawn_groups:
  - species: rabbit
    count: 5
    spawn_area:
      center: [0, 0]
      search_radius: 10
`)
	doc, err := LoadSpawnDocument(path)
	if err != nil {
		t.Fatalf("LoadSpawnDocument error: %v", err)
	}
	if len(doc.SpawnGroups) != 1 {
		t.Fatalf("len(SpawnGroups) = %d, want 1", len(doc.SpawnGroups))
	}
	if got := doc.SpawnGroups[0].SpawnArea.MaxAttempts; got != 20 {
		t.Errorf("MaxAttempts = %d, want defaulted to 20", got)
	}
}

func TestLoadSpawnDocumentRejectsNonPositiveCount(t *testing.T) {
	path := writeTempSpawnDoc(t, `
spawn_groups:
  - species: rabbit
    count: 0
    spawn_area:
      center: [0, 0]
      search_radius: 10
`)
	if _, err := LoadSpawnDocument(path); err == nil {
		t.Error("LoadSpawnDocument() = nil error for count: 0, want error")
	}
}

func TestLoadSpawnDocumentRejectsNonPositiveSearchRadius(t *testing.T) {
	path := writeTempSpawnDoc(t, `
spawn_groups:
  - species: rabbit
    count: 3
    spawn_area:
      center: [0, 0]
      search_radius: 0
`)
	if _, err := LoadSpawnDocument(path); err == nil {
		t.Error("LoadSpawnDocument() = nil error for search_radius: 0, want error")
	}
}

func TestLoadSpawnDocumentMissingFile(t *testing.T) {
	if _, err := LoadSpawnDocument("/nonexistent/spawn.yaml"); err == nil {
		t.Error("LoadSpawnDocument() = nil error for missing file, want error")
	}
}
