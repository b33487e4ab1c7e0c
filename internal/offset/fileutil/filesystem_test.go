package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem(t *testing.T) {
	fs := NewOSFileSystem()
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "001.STX")
	testData := []byte("test content")
	if err := fs.WriteFile(testFile, testData, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fs.ReadFile(testFile)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != string(testData) {
		t.Errorf("ReadFile = %q, want %q", data, testData)
	}

	info, err := fs.Stat(testFile)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Name() != "001.STX" || info.IsDir() || !info.IsRegular() {
		t.Errorf("Stat = {%s dir:%v regular:%v}", info.Name(), info.IsDir(), info.IsRegular())
	}

	subDir := filepath.Join(tmpDir, "sub")
	if err := os.Mkdir(subDir, 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	info, err = fs.Stat(subDir)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !info.IsDir() || info.IsRegular() {
		t.Errorf("Stat(dir) = {dir:%v regular:%v}", info.IsDir(), info.IsRegular())
	}

	entries, err := fs.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ReadDir returned %d entries, want 2", len(entries))
	}
	for _, entry := range entries {
		switch entry.Name() {
		case "001.STX":
			if !entry.IsRegular() {
				t.Error("001.STX should be a regular file")
			}
		case "sub":
			if !entry.IsDir() || entry.IsRegular() {
				t.Error("sub should be a directory")
			}
		default:
			t.Errorf("unexpected entry %q", entry.Name())
		}
	}

	if _, err := fs.Stat(filepath.Join(tmpDir, "missing")); err == nil {
		t.Error("Stat should fail for missing file")
	}
	if _, err := fs.Getwd(); err != nil {
		t.Errorf("Getwd failed: %v", err)
	}
}

func TestSourceLocator_OSFileSystem(t *testing.T) {
	tmpDir := t.TempDir()
	locator := NewSourceLocator(NewOSFileSystem(), "STEP.DAT", "STEP")

	if got := locator.Locate(tmpDir); got != SourceNotFound {
		t.Errorf("Locate() = %s, want not found", got)
	}

	if err := os.Mkdir(filepath.Join(tmpDir, "STEP"), 0755); err != nil {
		t.Fatal(err)
	}
	if got := locator.Locate(tmpDir); got != SourceDirectory {
		t.Errorf("Locate() = %s, want directory", got)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "STEP.DAT"), []byte("pack"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := locator.Locate(tmpDir); got != SourceContainer {
		t.Errorf("Locate() = %s, want container", got)
	}
}
