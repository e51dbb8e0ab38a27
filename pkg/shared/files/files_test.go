package files

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	got, err := ExpandPath("~/reports")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != filepath.Join(home, "reports") {
		t.Errorf("unexpected expansion: %q", got)
	}

	got, err = ExpandPath("/absolute/path")
	if err != nil || got != "/absolute/path" {
		t.Errorf("absolute paths must pass through, got %q, %v", got, err)
	}
}

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := ValidatePath(file); err != nil {
		t.Errorf("regular file should validate, got %v", err)
	}
	if err := ValidatePath(dir); err == nil {
		t.Error("directory should not validate")
	}
	if err := ValidatePath(filepath.Join(dir, "missing")); err == nil {
		t.Error("missing path should not validate")
	}
}

func TestWriteFileAtomicCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "out.json")
	if err := WriteFileAtomic(path, []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("unexpected content: %s", data)
	}
}

func TestIsLikelyText(t *testing.T) {
	if !IsLikelyText([]byte("package main\n")) {
		t.Error("source text should be text")
	}
	if IsLikelyText([]byte{0x7F, 'E', 'L', 'F', 0x00, 0x01}) {
		t.Error("binary with NUL should not be text")
	}
	if !IsLikelyText([]byte{}) {
		t.Error("empty content counts as text")
	}
}
