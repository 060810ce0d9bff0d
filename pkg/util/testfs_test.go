package util

import (
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTestFS_ReadWrite(t *testing.T) {
	tfs := NewTestFS()

	if err := tfs.WriteFile("plans/out.md", []byte("# Plan"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := tfs.ReadFile("plans/out.md")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "# Plan" {
		t.Errorf("ReadFile() = %q, want %q", data, "# Plan")
	}

	info, err := tfs.Stat("plans")
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Error("Stat(plans) is not a directory")
	}

	if _, err := tfs.ReadFile("missing.yaml"); err == nil {
		t.Error("ReadFile(missing.yaml) error = nil, want error")
	}
}

func TestTestFS_WalkDir(t *testing.T) {
	tfs := NewTestFSWith(map[string]string{
		"catalog/core.yaml":        "a",
		"catalog/electives/ai.hcl": "b",
		"other/readme.txt":         "c",
	})

	var files []string
	err := tfs.WalkDir("catalog", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDir() error = %v", err)
	}

	want := []string{"catalog/core.yaml", "catalog/electives/ai.hcl"}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("WalkDir() files mismatch (-want +got):\n%s", diff)
	}
}

func TestTestFS_MkdirAll(t *testing.T) {
	tfs := NewTestFS()
	if err := tfs.MkdirAll("a/b", 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	info, err := tfs.Stat("a/b")
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Error("a/b is not a directory")
	}
}
