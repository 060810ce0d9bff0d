package util

import (
	"io/fs"
	"path"
	"testing/fstest"
	"time"
)

// TestFS is an in-memory WalkableFS. Parent directories are synthesised by
// fstest.MapFS, so writing "a/b/c.yaml" makes "a" and "a/b" visible.
type TestFS struct {
	MapFS fstest.MapFS
}

func NewTestFS() *TestFS {
	return &TestFS{
		MapFS: make(fstest.MapFS),
	}
}

// NewTestFSWith returns a TestFS holding the given path to content pairs.
func NewTestFSWith(files map[string]string) *TestFS {
	t := NewTestFS()
	for name, content := range files {
		_ = t.WriteFile(name, []byte(content), 0644)
	}
	return t
}

func (t *TestFS) Open(name string) (fs.File, error) {
	return t.MapFS.Open(clean(name))
}

func (t *TestFS) Stat(name string) (fs.FileInfo, error) {
	return fs.Stat(t.MapFS, clean(name))
}

func (t *TestFS) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(t.MapFS, clean(name))
}

func (t *TestFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	t.MapFS[clean(name)] = &fstest.MapFile{
		Data:    data,
		Mode:    perm,
		ModTime: time.Now(),
	}
	return nil
}

func (t *TestFS) MkdirAll(p string, perm fs.FileMode) error {
	p = clean(p)
	if p == "." {
		return nil
	}
	if _, exists := t.MapFS[p]; !exists {
		t.MapFS[p] = &fstest.MapFile{
			Mode:    fs.ModeDir | perm,
			ModTime: time.Now(),
		}
	}
	return nil
}

func (t *TestFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	return fs.WalkDir(t.MapFS, clean(root), fn)
}

func clean(name string) string {
	if name == "" {
		return "."
	}
	return path.Clean(name)
}
