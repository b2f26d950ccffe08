package vault

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func tempVault(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	v := tempVault(t)
	content := []byte("[[Other]] #tag \n")
	if err := v.Write("note.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := v.Read("note.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestProjects(t *testing.T) {
	v := tempVault(t)
	_ = v.Write("root.md", []byte(""))
	_ = v.Write("gardening/a.md", []byte(""))
	_ = v.Write("work/b.md", []byte(""))
	if err := os.Mkdir(filepath.Join(v.Root(), ".hidden"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := v.Projects()
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"gardening", "work"}) {
		t.Errorf("Projects = %v, want [gardening work]", got)
	}
}

func TestListNotes_SkipsDotfilesAndNonMarkdown(t *testing.T) {
	v := tempVault(t)
	_ = v.Write("a.md", []byte(""))
	_ = v.Write(".md", []byte(""))
	_ = v.Write(".hidden.md", []byte(""))
	_ = v.Write("readme.txt", []byte(""))
	_ = v.Write("sub/nested.md", []byte(""))

	got, err := v.ListNotes("")
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"a.md"}) {
		t.Errorf("ListNotes = %v, want [a.md]", got)
	}

	got, err = v.ListNotes("sub")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"sub/nested.md"}) {
		t.Errorf("ListNotes(sub) = %v, want [sub/nested.md]", got)
	}
}

func TestDelete(t *testing.T) {
	v := tempVault(t)
	_ = v.Write("del.md", []byte("bye"))
	if err := v.Delete("del.md"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if v.Exists("del.md") {
		t.Error("deleted file still exists")
	}
}

func TestMove(t *testing.T) {
	v := tempVault(t)
	_ = v.Write("old.md", []byte("data"))
	if err := v.Move("old.md", "proj/new.md"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	got, err := v.Read("proj/new.md")
	if err != nil {
		t.Fatalf("Read after move: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("content = %q", got)
	}
	if v.Exists("old.md") {
		t.Error("old path should not exist")
	}
}

func TestTraversalBlocked(t *testing.T) {
	v := tempVault(t)
	cases := []string{
		"../../etc/passwd",
		"../outside.md",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := v.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := v.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	v := tempVault(t)
	_ = v.Write("atomic.md", []byte("one"))
	if err := v.Write("atomic.md", []byte("two")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := v.Read("atomic.md")
	if string(got) != "two" {
		t.Errorf("content = %q, want %q", got, "two")
	}
	matches, _ := filepath.Glob(filepath.Join(v.Root(), ".othala-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "othala-test-*")
	if err != nil {
		t.Fatal(err)
	}
	_ = f.Close()
	if _, err := NewFS(f.Name()); err == nil {
		t.Error("expected error when root is a file")
	}
}
