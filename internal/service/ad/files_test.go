package ad

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStem(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"outputs/scripts/demo_scene_prompts.json", "demo_scene_prompts"},
		{"demo_revised.txt", "demo_revised"},
		{"/abs/path/final.mp4", "final"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		if got := stem(tt.path); got != tt.want {
			t.Errorf("stem(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "dir", "out.json")

	in := map[string]any{"concept_name": "demo", "score": 88}
	if err := writeJSON(path, in); err != nil {
		t.Fatalf("writeJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out["concept_name"] != "demo" {
		t.Errorf("concept_name = %v, want demo", out["concept_name"])
	}
}

func TestLatestFileMatching(t *testing.T) {
	dir := t.TempDir()

	older := filepath.Join(dir, "brand_batch_summary_0101_0900.json")
	newer := filepath.Join(dir, "brand_batch_summary_0102_0900.json")
	noise := filepath.Join(dir, "brand_notes.txt")
	for _, p := range []string{older, newer, noise} {
		if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", p, err)
		}
	}
	// 文件系统时间粒度不可靠，显式错开修改时间
	if err := os.Chtimes(older, time.Now().Add(-time.Hour), time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	got, err := latestFileMatching(dir, "*_batch_summary_*.json")
	if err != nil {
		t.Fatalf("latestFileMatching() error = %v", err)
	}
	if got != newer {
		t.Errorf("latestFileMatching() = %v, want %v", got, newer)
	}

	if _, err := latestFileMatching(dir, "*_evaluation_*.json"); err == nil {
		t.Errorf("latestFileMatching() expected error for no match, got nil")
	}
}

func TestLatestDirWithPrefix(t *testing.T) {
	base := t.TempDir()

	olderDir := filepath.Join(base, "northwind_0101_0900")
	newerDir := filepath.Join(base, "northwind_0102_0900")
	otherDir := filepath.Join(base, "acme_0103_0900")
	for _, d := range []string{olderDir, newerDir, otherDir} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatalf("Mkdir(%s) error = %v", d, err)
		}
	}
	if err := os.Chtimes(olderDir, time.Now().Add(-time.Hour), time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	got, err := latestDirWithPrefix(base, "northwind_")
	if err != nil {
		t.Fatalf("latestDirWithPrefix() error = %v", err)
	}
	if got != newerDir {
		t.Errorf("latestDirWithPrefix() = %v, want %v", got, newerDir)
	}

	if _, err := latestDirWithPrefix(base, "missing_"); err == nil {
		t.Errorf("latestDirWithPrefix() expected error for no match, got nil")
	}
}

func TestFileAndDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if !fileExists(file) {
		t.Errorf("fileExists(%s) = false, want true", file)
	}
	if fileExists(dir) {
		t.Errorf("fileExists(%s) = true for directory, want false", dir)
	}
	if !dirExists(dir) {
		t.Errorf("dirExists(%s) = false, want true", dir)
	}
	if dirExists(file) {
		t.Errorf("dirExists(%s) = true for file, want false", file)
	}
	if fileExists(filepath.Join(dir, "missing")) {
		t.Errorf("fileExists() = true for missing path, want false")
	}
}

func TestBatchTimestamp(t *testing.T) {
	got := batchTimestamp()
	if _, err := time.Parse("0102_1504", got); err != nil {
		t.Errorf("batchTimestamp() = %q, not in MMDD_HHMM form: %v", got, err)
	}
}
