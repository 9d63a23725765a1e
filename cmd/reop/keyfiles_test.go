package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFileCappedRejectsOversizeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := f.Truncate(maxFileSize + 1); err != nil {
		t.Fatalf("Truncate: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := readFileCapped(path); err == nil {
		t.Fatal("expected an error for an oversize file")
	}
}

func TestReadFileCappedReadsNormalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small")
	want := []byte("attack at dawn")
	if err := os.WriteFile(path, want, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := readFileCapped(path)
	if err != nil {
		t.Fatalf("readFileCapped: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}
