package global

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readFile(t *testing.T, path string) string {
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read %s: %s", path, err)
	}

	return string(contents)
}

func TestRollingWriterAppends(t *testing.T) {
	writer := NewRollingFileWriter(t.TempDir(), "test")

	for _, line := range []string{"one\n", "two\n"} {
		if _, err := writer.Write([]byte(line)); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	if contents := readFile(t, writer.mainLogPath()); contents != "one\ntwo\n" {
		t.Fatalf("unexpected log contents %q", contents)
	}
}

func TestRollingWriterRotates(t *testing.T) {
	writer := NewRollingFileWriter(t.TempDir(), "test")
	writer.maxSize = 10
	writer.maxArchives = 2

	lines := []string{"first-line\n", "second-line\n", "third-line\n", "fourth-line\n"}
	for _, line := range lines {
		if _, err := writer.Write([]byte(line)); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	if contents := readFile(t, writer.mainLogPath()); contents != "fourth-line\n" {
		t.Fatalf("main log should only hold the newest line, got %q", contents)
	}

	if contents := readFile(t, writer.archivePath(1)); contents != "third-line\n" {
		t.Fatalf("first archive should hold the previous line, got %q", contents)
	}

	if contents := readFile(t, writer.archivePath(2)); contents != "second-line\n" {
		t.Fatalf("second archive should hold the line before that, got %q", contents)
	}

	if _, err := os.Stat(writer.archivePath(3)); !os.IsNotExist(err) {
		t.Fatalf("archives past the limit should be removed")
	}
}

func TestRollingWriterIgnoresStrayFiles(t *testing.T) {
	dir := t.TempDir()
	stray := filepath.Join(dir, "test-old.log")
	if err := os.WriteFile(stray, []byte("keep me"), 0644); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	writer := NewRollingFileWriter(dir, "test")
	writer.maxSize = 1

	for range 3 {
		if _, err := writer.Write([]byte("line\n")); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	if !strings.Contains(readFile(t, stray), "keep me") {
		t.Fatalf("stray file should be left alone")
	}
}

func TestArchiveIndex(t *testing.T) {
	cases := map[string]int{
		"pokeduel-1.log":  1,
		"pokeduel-12.log": 12,
	}

	for name, expected := range cases {
		index, ok := archiveIndex("pokeduel", name)
		if !ok || index != expected {
			t.Fatalf("%s: expected %d, got %d (%v)", name, expected, index, ok)
		}
	}

	for _, name := range []string{"pokeduel.log", "pokeduel-x.log", "pokeduel-0.log", "other-1.log"} {
		if _, ok := archiveIndex("pokeduel", name); ok {
			t.Fatalf("%s should not be an archive", name)
		}
	}
}
