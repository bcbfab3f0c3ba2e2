package atomicwrite

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

var testContent = []byte("lorem ipsum\ndolor $it amet\nmet consâ‚¬quiat\neladamet")

func writeContent(w io.Writer) error { _, err := w.Write(testContent); return err }

func TestWrite(t *testing.T) {
	name := filepath.Join(t.TempDir(), "token")
	if err := Write(name, writeContent); err != nil {
		t.Error(err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Error(err)
	}
	if !bytes.Equal(data, testContent) {
		t.Errorf("read back written data: got %q, want %q", data, testContent)
	}
	info, err := os.Stat(name)
	if err != nil {
		t.Fatal(err)
	}
	if perms := info.Mode().Perm(); perms != defaultPerms {
		t.Errorf("after Write, got permissions %v, want %v", perms, os.FileMode(defaultPerms))
	}
}

func TestPermissionsPreserved(t *testing.T) {
	name := filepath.Join(t.TempDir(), "token")
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0755)
	if err != nil {
		t.Fatal(err)
	}
	info, err := f.Stat()
	if err != nil {
		t.Fatal(err)
	}
	oldPerms := info.Mode() & os.ModePerm
	f.Close()
	if err := Write(name, writeContent); err != nil {
		t.Error(err)
	}
	if info, err = os.Stat(name); err != nil {
		t.Fatal(err)
	}
	if newPerms := info.Mode() & os.ModePerm; newPerms != oldPerms {
		t.Errorf("after Write, got permissions %v, want %v", newPerms, oldPerms)
	}
}

func TestWriteLeavesNoTempFileOnError(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "token")
	werr := errors.New("content generation failed")
	if err := Write(name, func(io.Writer) error { return werr }); err == nil {
		t.Error("Write succeeded despite a failing content writer")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("directory not empty after failed write: %v", entries)
	}
}
