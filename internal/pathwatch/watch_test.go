package pathwatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func init() {
	notifyOnAdd = true
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	t.Run("OnWrite", func(t *testing.T) {
		f := create(t, filepath.Join(dir, "A"))
		changes := w.addWait(f.Name())
		f.WriteString("Hello.")
		f.Close()
		waitChange(t, changes, time.Second)
	})
	t.Run("OnDelete", func(t *testing.T) {
		f := create(t, filepath.Join(dir, "B"))
		changes := w.addWait(f.Name())
		f.Close()
		os.Remove(f.Name())
		waitChange(t, changes, time.Second)
	})
	t.Run("OnCreate", func(t *testing.T) {
		name := filepath.Join(dir, "C")
		changes := w.addWait(name)
		create(t, name).Close()
		waitChange(t, changes, time.Second)
	})
	t.Run("OnReplace", func(t *testing.T) {
		name := filepath.Join(dir, "D")
		create(t, name).Close()
		changes := w.addWait(name)
		tmp := filepath.Join(dir, "D.tmp")
		if err := os.WriteFile(tmp, []byte("new content"), 0600); err != nil {
			t.Fatal(err)
		}
		if err := os.Rename(tmp, name); err != nil {
			t.Fatal(err)
		}
		waitChange(t, changes, time.Second)
	})
}

func (w *Watcher) addWait(path string) <-chan struct{} {
	changes := make(chan struct{}, 10)
	w.Add(path, changes)
	<-changes
	return changes
}

func create(t *testing.T, path string) *os.File {
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func waitChange(t *testing.T, ch <-chan struct{}, timeout time.Duration) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		t.Error("failed to receive notification after", timeout)
	}
}
